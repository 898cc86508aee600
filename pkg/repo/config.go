package repo

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds repository-local settings, stored as .mygit/config.toml.
type Config struct {
	User   UserConfig   `toml:"user"`
	Core   CoreConfig   `toml:"core"`
	Bundle BundleConfig `toml:"bundle"`
}

// UserConfig identifies the committer in human-readable output.
type UserConfig struct {
	Name string `toml:"name"`
}

// CoreConfig tunes the storage subsystem.
type CoreConfig struct {
	// MaxFileSize caps the size of a single staged file, in bytes. Add
	// rejects larger files outright rather than truncating them.
	MaxFileSize int64 `toml:"max_file_size"`
}

// BundleConfig tunes repository bundles.
type BundleConfig struct {
	// Level is the zstd compression level (1 fastest, 4 best).
	Level int `toml:"level"`
}

// DefaultMaxFileSize bounds staged files at 8 MiB unless configured.
const DefaultMaxFileSize = 8 << 20

// DefaultConfig returns the settings a fresh repository starts with.
func DefaultConfig() *Config {
	return &Config{
		Core:   CoreConfig{MaxFileSize: DefaultMaxFileSize},
		Bundle: BundleConfig{Level: 2},
	}
}

func (r *Repo) configPath() string {
	return filepath.Join(r.MygitDir, "config.toml")
}

// ReadConfig reads .mygit/config.toml. A missing file yields the defaults.
func (r *Repo) ReadConfig() (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(r.configPath(), cfg); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if cfg.Core.MaxFileSize <= 0 {
		cfg.Core.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Bundle.Level <= 0 {
		cfg.Bundle.Level = 2
	}
	return cfg, nil
}

// WriteConfig atomically writes .mygit/config.toml.
func (r *Repo) WriteConfig(cfg *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("write config: encode: %w", err)
	}
	if err := r.atomicWrite(r.configPath(), buf.Bytes()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
