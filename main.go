package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"localbite/cmd"
	"localbite/internal/catalog"
	"localbite/internal/config"
	"localbite/internal/session"
	"localbite/internal/store"
	"localbite/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	// Parse CLI flags
	cfg, err := cmd.ParseFlags(version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.ShowVersion {
		return
	}

	// The TUI owns stdout, so logs go to a file
	logFile, err := config.OpenLogFile(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := config.NewLogger(logFile)

	// Open database
	database, err := store.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	events, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	sess, err := session.New(ctx, events, store.NewKV(database), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to restore session: %v\n", err)
		os.Exit(1)
	}
	if city := cfg.Settings.HomeCity; city != "" {
		sess.SetLocationQuery(city)
	}

	refresh, err := cfg.Settings.RefreshSchedule()
	if err != nil {
		logger.Warn("catalog refresh disabled", "error", err)
	}

	logger.Info("starting", "version", version, "events", len(events), "db", cfg.DBPath)

	// Create and run Bubble Tea app
	app := ui.New(ui.Options{
		Session:       sess,
		DB:            database,
		Logger:        logger,
		CatalogPath:   cfg.CatalogPath,
		ExportPath:    cfg.Settings.ExportPath,
		PrefsPath:     ui.PrefsPath(filepath.Dir(cfg.DBPath)),
		DashboardSort: cfg.Settings.DashboardSort,
		Refresh:       refresh,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
