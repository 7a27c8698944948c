package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"mdshelf/internal/adapters/browser"
	"mdshelf/internal/adapters/filesystem"
	"mdshelf/internal/adapters/tui"
	"mdshelf/internal/application/commands"
	"mdshelf/internal/config"
	"mdshelf/internal/domain"
	"mdshelf/internal/logging"
)

func main() {
	configFlag := flag.String("config", "", "config file (default mdshelf.yaml)")
	dataFlag := flag.String("data", "", "directory holding the markdown files")
	watchFlag := flag.Bool("watch", false, "reload when files in the data directory change")
	flag.Parse()

	if err := run(*configFlag, *dataFlag, *watchFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, dataDir string, watch bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.DataDir = config.ExpandHome(dataDir)
	}

	// The TUI owns the terminal; logs only go to a file
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Initialize adapters
	source := filesystem.NewSource(cfg.DataDir, logger)
	loader := commands.NewLoadCommand(source, domain.ParseLocale(cfg.Locale), logger)
	opener := browser.NewOpener()

	// Create and run TUI app
	app := tui.NewApp(loader, opener, logger)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if watch || cfg.Watch {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		watcher, err := filesystem.NewWatcher(source.Dir(), filesystem.DefaultDebounce, logger)
		if err != nil {
			// Browsing still works without live reload
			logger.Warn("watch disabled", zap.Error(err))
		} else {
			defer watcher.Close()
			go watcher.Run(ctx, func() { p.Send(tui.ReloadMsg{}) })
		}
	}

	logger.Info("starting", zap.String("data_dir", source.Dir()))
	_, err = p.Run()
	return err
}
