package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"mdshelf/internal/adapters/filesystem"
	mcpadapter "mdshelf/internal/adapters/mcp"
	"mdshelf/internal/adapters/sqlite"
	"mdshelf/internal/application/commands"
	"mdshelf/internal/config"
	"mdshelf/internal/domain"
	"mdshelf/internal/logging"
)

const version = "0.1.0"

func main() {
	configFlag := flag.String("config", "", "config file (default mdshelf.yaml)")
	dataFlag := flag.String("data", "", "directory holding the markdown files")
	httpFlag := flag.String("http", "", "serve streamable HTTP on this address instead of stdio (e.g. :8080)")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("mdshelf-mcp: %v", err)
	}
	if *dataFlag != "" {
		cfg.DataDir = config.ExpandHome(*dataFlag)
	}

	// stdout carries the protocol; logs only go to a file
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("mdshelf-mcp: init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	index := sqlite.NewIndex(cfg.IndexDir, logger)
	if err := index.Open(cfg.DataDir); err != nil {
		log.Fatalf("mdshelf-mcp: %v", err)
	}
	defer index.Close()

	source := filesystem.NewSource(cfg.DataDir, logger)
	loader := commands.NewLoadCommand(source, domain.ParseLocale(cfg.Locale), logger)
	syncer := commands.NewIndexCommand(loader, index, logger)

	result, err := syncer.Execute(context.Background())
	if err != nil {
		log.Fatalf("mdshelf-mcp: %v", err)
	}
	logger.Info("index ready",
		zap.String("path", index.Path()),
		zap.Int("documents", len(result.Documents)),
		zap.Bool("rebuilt", result.Rebuilt),
	)

	mcpServer := mcpadapter.NewServer(version, index, syncer, logger)

	if *httpFlag != "" {
		logger.Info("serving streamable HTTP", zap.String("addr", *httpFlag))
		if err := server.NewStreamableHTTPServer(mcpServer).Start(*httpFlag); err != nil {
			log.Fatalf("mdshelf-mcp: %v", err)
		}
		return
	}

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("mdshelf-mcp: %v", err)
	}
}
