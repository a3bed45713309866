package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zarlcorp/credupi/internal/qr"
)

func TestLoadDefaults(t *testing.T) {
	// t.Setenv restores the originals after the unset
	for _, k := range []string{"CREDUPI_DATA_DIR", "CREDUPI_QR_LEVEL", "CREDUPI_NO_CLIPBOARD"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.QRLevel != "medium" {
		t.Errorf("QRLevel = %q, want medium", cfg.QRLevel)
	}
	if cfg.ClipboardDisabled {
		t.Error("clipboard should be enabled by default")
	}
	if cfg.Level() != qr.DefaultLevel {
		t.Errorf("Level() = %v, want default", cfg.Level())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CREDUPI_DATA_DIR", "/tmp/credupi-test")
	t.Setenv("CREDUPI_QR_LEVEL", "high")
	t.Setenv("CREDUPI_NO_CLIPBOARD", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataDir != "/tmp/credupi-test" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if !cfg.ClipboardDisabled {
		t.Error("ClipboardDisabled should be true")
	}
	want, _ := qr.ParseLevel("high")
	if cfg.Level() != want {
		t.Errorf("Level() = %v, want %v", cfg.Level(), want)
	}
}

func TestLoadRejectsBadLevel(t *testing.T) {
	t.Setenv("CREDUPI_QR_LEVEL", "extreme")

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown qr level")
	}
}

func TestLoadRejectsBadBool(t *testing.T) {
	t.Setenv("CREDUPI_QR_LEVEL", "low")
	t.Setenv("CREDUPI_NO_CLIPBOARD", "maybe")

	if _, err := Load(); err == nil {
		t.Error("expected error for non-boolean CREDUPI_NO_CLIPBOARD")
	}
}

func TestResolveDataDir(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "explicit dir wins",
			cfg:  Config{DataDir: "/data/credupi", XDGDataHome: "/xdg"},
			want: "/data/credupi",
		},
		{
			name: "xdg set",
			cfg:  Config{XDGDataHome: "/custom/data"},
			want: "/custom/data/credupi",
		},
		{
			name: "xdg empty falls back to home",
			cfg:  Config{},
			want: filepath.Join(".local", "share", "credupi"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.ResolveDataDir()
			if tt.cfg.DataDir == "" && tt.cfg.XDGDataHome == "" {
				if !strings.HasSuffix(got, tt.want) {
					t.Errorf("ResolveDataDir() = %s, want suffix %s", got, tt.want)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ResolveDataDir() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIsFirstRun(t *testing.T) {
	dir := t.TempDir()
	if !IsFirstRun(dir) {
		t.Error("expected first run for empty dir")
	}

	os.WriteFile(filepath.Join(dir, "salt"), []byte("test"), 0o600)
	if IsFirstRun(dir) {
		t.Error("expected not first run after salt exists")
	}
}
