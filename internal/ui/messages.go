package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// samplesMsg carries one captured mono buffer into the update loop.
type samplesMsg []float64

// captureErrMsg reports a fatal capture failure.
type captureErrMsg struct{ err error }

// errPauseDoneMsg fires after the error screen has been shown long enough.
type errPauseDoneMsg struct{}

// errPause is how long the one-line error message stays visible before the
// program exits.
const errPause = 2 * time.Second

// readCmd blocks on the capture source until a full buffer is available.
// The buffer duration is what paces the frame loop; no other timer exists.
func readCmd(src Source) tea.Cmd {
	return func() tea.Msg {
		samples, err := src.Read()
		if err != nil {
			return captureErrMsg{err: err}
		}
		// The source reuses its buffer, so detach before handing it over.
		out := make([]float64, len(samples))
		copy(out, samples)
		return samplesMsg(out)
	}
}

func errPauseCmd() tea.Cmd {
	return tea.Tick(errPause, func(time.Time) tea.Msg {
		return errPauseDoneMsg{}
	})
}
