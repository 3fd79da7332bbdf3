// Package capture opens the system's default input device through
// portaudio and delivers fixed-length mono sample buffers. Pointing the
// default input at a monitor/loopback source makes the visualizer follow
// whatever the machine is playing.
package capture

import (
	"fmt"
	"log/slog"

	"github.com/gordonklaus/portaudio"
)

// Device is a blocking capture stream. Read fills one fixed-length buffer
// per call, so the buffer duration paces the caller's frame loop. Not safe
// for concurrent use.
type Device struct {
	stream     *portaudio.Stream
	sampleRate float64
	channels   int
	frames     int
	buf        []float32
	mono       []float64
}

// Open initializes portaudio and starts a capture stream on the default
// input device. frames is the number of samples delivered per Read.
func Open(sampleRate float64, frames, channels int) (*Device, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("capture buffer must hold at least one frame, got %d", frames)
	}
	if channels <= 0 {
		channels = 1
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize audio: %w", err)
	}

	d := &Device{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		buf:        make([]float32, frames*channels),
		mono:       make([]float64, frames),
	}
	stream, err := portaudio.OpenDefaultStream(channels, 0, sampleRate, frames, &d.buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("open capture stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("start capture stream: %w", err)
	}
	d.stream = stream
	slog.Info("capture stream started",
		"sample_rate", sampleRate, "frames", frames, "channels", channels)
	return d, nil
}

// Read blocks until a full buffer has been captured and returns it mixed
// down to mono. The returned slice is reused by the next Read.
func (d *Device) Read() ([]float64, error) {
	if err := d.stream.Read(); err != nil {
		return nil, fmt.Errorf("read capture buffer: %w", err)
	}
	if d.channels == 1 {
		for i, s := range d.buf {
			d.mono[i] = float64(s)
		}
		return d.mono, nil
	}
	inv := 1 / float64(d.channels)
	for i := range d.mono {
		var sum float64
		for c := 0; c < d.channels; c++ {
			sum += float64(d.buf[i*d.channels+c])
		}
		d.mono[i] = sum * inv
	}
	return d.mono, nil
}

// SampleRate returns the rate the stream was opened with.
func (d *Device) SampleRate() float64 { return d.sampleRate }

// Close stops the stream and tears down portaudio.
func (d *Device) Close() error {
	if d.stream == nil {
		return nil
	}
	err := d.stream.Stop()
	if cerr := d.stream.Close(); err == nil {
		err = cerr
	}
	d.stream = nil
	portaudio.Terminate()
	slog.Info("capture stream closed")
	if err != nil {
		return fmt.Errorf("close capture stream: %w", err)
	}
	return nil
}
