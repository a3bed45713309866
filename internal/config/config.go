// Package config reads credupi's runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/zarlcorp/credupi/internal/qr"
)

const appName = "credupi"

// Config holds settings that can be changed without rebuilding.
type Config struct {
	// DataDir overrides where the encrypted store lives.
	DataDir string `env:"CREDUPI_DATA_DIR"`
	// XDGDataHome is the XDG base directory for user data.
	XDGDataHome string `env:"XDG_DATA_HOME"`
	// QRLevel is the error correction level for QR codes.
	QRLevel string `env:"CREDUPI_QR_LEVEL" envDefault:"medium"`
	// ClipboardDisabled turns copy actions into no-ops that report why.
	ClipboardDisabled bool `env:"CREDUPI_NO_CLIPBOARD"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	if _, err := qr.ParseLevel(cfg.QRLevel); err != nil {
		return Config{}, fmt.Errorf("CREDUPI_QR_LEVEL: %w", err)
	}
	return cfg, nil
}

// ResolveDataDir returns the directory for the encrypted store.
func (c Config) ResolveDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	if c.XDGDataHome != "" {
		return filepath.Join(c.XDGDataHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, ".local", "share", appName)
}

// Level returns the configured QR level, falling back to the default.
func (c Config) Level() qr.Level {
	l, err := qr.ParseLevel(c.QRLevel)
	if err != nil {
		return qr.DefaultLevel
	}
	return l
}

// IsFirstRun reports whether no store has been created in dir yet.
func IsFirstRun(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "salt"))
	return err != nil
}
