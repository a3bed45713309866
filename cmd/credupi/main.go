package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/credupi/internal/cli"
	"github.com/zarlcorp/credupi/internal/config"
	"github.com/zarlcorp/credupi/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("credupi"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if len(os.Args) > 1 {
		code := runCLI(ctx, cfg, os.Args[1], os.Args[2:])
		_ = app.Close()
		if code != 0 {
			os.Exit(code)
		}
		return
	}

	if err := runTUI(cfg); err != nil {
		slog.Error("tui", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

func runCLI(_ context.Context, cfg config.Config, cmd string, args []string) int {
	if cmd == "version" {
		fmt.Printf("credupi %s\n", version)
		return 0
	}

	if err := cli.New(cfg).Run(cmd, args); err != nil {
		fmt.Fprintf(os.Stderr, "credupi: %v\n", err)
		return 1
	}
	return 0
}

func runTUI(cfg config.Config) error {
	dataDir := cfg.ResolveDataDir()
	firstRun := config.IsFirstRun(dataDir)

	m := tui.New(version, cfg, firstRun)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := finalModel.(tui.Model); ok {
		fm.Close()
	}

	return nil
}
