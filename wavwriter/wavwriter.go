// Package wavwriter captures the console's 32 kHz stereo output to a WAV
// file as it is drained, mainly for regression listening and debugging.
package wavwriter

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/golang/glog"
)

const (
	sampleRate = 32000
	bitDepth   = 16
	channels   = 2
)

type WavWriter struct {
	filename string
	f        *os.File
	enc      *wav.Encoder
}

func New(filename string) (*WavWriter, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("wavwriter: %w", err)
	}
	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	glog.Infof("Writing audio to %s", filename)
	return &WavWriter{filename: filename, f: f, enc: enc}, nil
}

// Write appends interleaved stereo float samples in [-1, 1).
func (w *WavWriter) Write(samples []float32) error {
	if len(samples) == 0 {
		return nil
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
		Data:           make([]int, len(samples)),
	}
	for i, s := range samples {
		buf.Data[i] = int(s * 32767)
	}
	if err := w.enc.Write(buf); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	return nil
}

// Close finalizes the WAV header.
func (w *WavWriter) Close() error {
	if err := w.enc.Close(); err != nil {
		w.f.Close()
		return fmt.Errorf("wavwriter: %w", err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	return nil
}
