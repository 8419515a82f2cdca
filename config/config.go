// Package config loads the optional YAML configuration file. Flags in main
// override whatever the file sets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Video VideoConfig `yaml:"video"`
	Audio AudioConfig `yaml:"audio"`
	Paths PathConfig  `yaml:"paths"`
}

type VideoConfig struct {
	// Window scale multiplies the native 256x224 frame.
	Scale int  `yaml:"scale"`
	Vsync bool `yaml:"vsync"`
}

type AudioConfig struct {
	// Master volume, 0-100.
	MasterVolume int `yaml:"master_volume"`
	// Capture everything played to this WAV file when set.
	WavCapture string `yaml:"wav_capture"`
}

type PathConfig struct {
	// Directory for battery saves; defaults to the ROM's directory.
	SRAMDir string `yaml:"sram_dir"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Video: VideoConfig{Scale: 3, Vsync: true},
		Audio: AudioConfig{MasterVolume: 50},
	}
}

// Load reads path if it exists, overlaying the defaults. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
