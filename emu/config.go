package emu

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"nestor/emu/log"

	"github.com/BurntSushi/toml"
)

// Config is the persisted, user-editable configuration: everything the core
// needs that isn't part of a ROM. Window/audio device selection lives with
// the presentation layer, not here.
type Config struct {
	Input InputConfig `toml:"input"`

	TraceOut io.WriteCloser `toml:"-"`
}

// InputConfig binds each StdPadButton to a name a presentation layer can
// resolve against its own keymap; the core never reads a keyboard itself.
type InputConfig struct {
	Pad1Keys map[string]string `toml:"pad1_keys"`
	Pad2Keys map[string]string `toml:"pad2_keys"`
}

func DefaultInputConfig() InputConfig {
	return InputConfig{
		Pad1Keys: map[string]string{
			"A": "K", "B": "J", "Select": "RShift", "Start": "Return",
			"Up": "Up", "Down": "Down", "Left": "Left", "Right": "Right",
		},
	}
}

var ConfigDir = sync.OnceValue(func() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		log.ModEmu.Fatalf("failed to resolve config directory: %v", err)
	}
	dir = filepath.Join(dir, "nestor")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration from the nestor config
// directory, or returns a default one if none exists yet.
func LoadConfigOrDefault() Config {
	var cfg Config
	if _, err := toml.DecodeFile(filepath.Join(ConfigDir(), cfgFilename), &cfg); err != nil {
		return Config{Input: DefaultInputConfig()}
	}
	return cfg
}

// SaveConfig writes cfg into the nestor config directory.
func SaveConfig(cfg Config) error {
	f, err := os.Create(filepath.Join(ConfigDir(), cfgFilename))
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
