package ui

import (
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/glog"

	"github.com/jyane/jsnes/snes"
	"github.com/jyane/jsnes/wavwriter"
)

// Options configures the native frontend.
type Options struct {
	Width       int
	Height      int
	Vsync       bool
	WavPath     string // when set, audio is also captured to this file
	MasterLevel float32
}

func mainLoop(window *glfw.Window, console *snes.Console, program uint32, audio *audio, rec *wavwriter.WavWriter) {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()
	for range ticker.C {
		if window.ShouldClose() {
			return
		}
		console.SetController(0, getKeys(window))
		if err := console.StepFrame(); err != nil {
			glog.Errorf("Frame step failed: %v", err)
			return
		}
		samples := console.AudioDrain()
		audio.queue(samples)
		if rec != nil {
			if err := rec.Write(samples); err != nil {
				glog.Warningf("WAV capture failed: %v", err)
			}
		}
		updateTexture(program, console.VideoBufferRGBA())
		window.SwapBuffers()
		glfw.PollEvents()
	}
}

// Start opens the window and runs the console until it is closed.
func Start(console *snes.Console, opts Options) {
	if err := glfw.Init(); err != nil {
		glog.Fatalln(err)
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(opts.Width, opts.Height, "JSNES", nil, nil)
	if err != nil {
		glog.Fatalln(err)
	}
	window.MakeContextCurrent()
	if !opts.Vsync {
		glfw.SwapInterval(0)
	}
	if err := gl.Init(); err != nil {
		glog.Fatalln(err)
	}
	program, err := newProgram()
	if err != nil {
		glog.Fatalln(err)
	}
	gl.UseProgram(program)

	audio := newAudio(opts.MasterLevel)
	if err := audio.start(); err != nil {
		glog.Fatalln(err)
	}
	defer audio.terminate()

	var rec *wavwriter.WavWriter
	if opts.WavPath != "" {
		rec, err = wavwriter.New(opts.WavPath)
		if err != nil {
			glog.Fatalln(err)
		}
		defer rec.Close()
	}

	mainLoop(window, console, program, audio, rec)
}
