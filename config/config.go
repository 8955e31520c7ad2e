// Package config loads and saves the emulator's TOML configuration file,
// the same XDG-style resolution the teacher repo uses for its own config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds everything the CLI and the inspector API read at startup.
// The engine itself never touches this package (spec.md §5: the engine is
// budget-agnostic; the host enforces limits).
type Config struct {
	Execution struct {
		MaxCycles    uint64 `toml:"max_cycles"`
		DefaultImage string `toml:"default_image"`
	} `toml:"execution"`

	Inspector struct {
		Port   int  `toml:"port"`
		Enable bool `toml:"enable"`
	} `toml:"inspector"`

	Trace struct {
		Enabled  bool `toml:"enabled"`
		Capacity int  `toml:"capacity"`
	} `toml:"trace"`

	Statistics struct {
		Enabled bool   `toml:"enabled"`
		Format  string `toml:"format"` // text, json, csv
	} `toml:"statistics"`
}

// DefaultConfig returns the configuration the CLI runs with if no
// config.toml exists.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Execution.MaxCycles = 1000000
	cfg.Execution.DefaultImage = ""

	cfg.Inspector.Port = 8090
	cfg.Inspector.Enable = false

	cfg.Trace.Enabled = false
	cfg.Trace.Capacity = 4096

	cfg.Statistics.Enabled = false
	cfg.Statistics.Format = "text"

	return cfg
}

// GetConfigPath returns the platform-specific config file path,
// ~/.config/riscv32-emu/config.toml on macOS/Linux.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "riscv32-emu")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "riscv32-emu")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the given path. A missing file is not
// an error: it yields the default configuration.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the given path, creating parent
// directories as needed.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
