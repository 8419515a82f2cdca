package main

import (
	"flag"
	"io/ioutil"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/golang/glog"

	"github.com/jyane/jsnes/config"
	"github.com/jyane/jsnes/snes"
	"github.com/jyane/jsnes/ui"
)

var (
	path       = flag.String("path", "", "path to SNES ROM file")
	configPath = flag.String("config", "jsnes.yaml", "path to config file")
	scale      = flag.Int("scale", 0, "window scale, overrides config")
	wavPath    = flag.String("wav", "", "capture audio to WAV file, overrides config")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	debug      = flag.Bool("debug", false, "run the stdio debugger instead of the UI")
)

// readFile reads file as bytes
func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ioutil.ReadAll(f)
}

func init() {
	runtime.LockOSThread()
}

func main() {
	flag.Parse()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			glog.Fatal("Failed to create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			glog.Fatal("Failed to start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		glog.Fatalln("Failed to load config: ", err)
	}
	if *scale > 0 {
		cfg.Video.Scale = *scale
	}
	if *wavPath != "" {
		cfg.Audio.WavCapture = *wavPath
	}
	buf, err := readFile(*path)
	if err != nil {
		glog.Fatalln("Failed to read: " + *path)
	}
	console := snes.NewConsole()
	if err := console.LoadROM(buf); err != nil {
		glog.Fatalln("Failed to load ROM: ", err)
	}
	if *debug {
		if err := snes.NewDebugConsole(console).Run(); err != nil {
			glog.Fatalln(err)
		}
		return
	}
	ui.Start(console, ui.Options{
		Width:       256 * cfg.Video.Scale,
		Height:      224 * cfg.Video.Scale,
		Vsync:       cfg.Video.Vsync,
		WavPath:     cfg.Audio.WavCapture,
		MasterLevel: float32(cfg.Audio.MasterVolume) / 100,
	})
}
