package ui

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// The DSP emits 32 kHz stereo; portaudio pulls from a buffered channel.
const sampleRate = 32000

type audio struct {
	stream  *portaudio.Stream
	channel chan float32
	level   float32
}

func newAudio(level float32) *audio {
	a := &audio{level: level}
	a.channel = make(chan float32, sampleRate)
	return a
}

// queue feeds drained console samples to the callback, dropping when the
// host is behind.
func (a *audio) queue(samples []float32) {
	for _, s := range samples {
		select {
		case a.channel <- s:
		default:
		}
	}
}

func (a *audio) start() error {
	portaudio.Initialize()
	cb := func(out []float32) {
		for i := range out {
			select {
			case x := <-a.channel:
				out[i] = x * a.level
			default:
				out[i] = 0
			}
		}
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, sampleRate, 0, cb)
	if err != nil {
		return fmt.Errorf("Failed to open the audio stream: %w", err)
	}
	a.stream = stream
	if err := stream.Start(); err != nil {
		return fmt.Errorf("Failed to start the audio stream: %w", err)
	}
	return nil
}

func (a *audio) terminate() {
	portaudio.Terminate()
	a.stream.Close()
}
