package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mdshelf/internal/domain"
	"mdshelf/internal/ports"
)

// IndexResult contains the outcome of an index sync
type IndexResult struct {
	Documents []domain.Document
	Stats     *domain.SyncStats
	Rebuilt   bool
}

// IndexCommand loads the collection and syncs it into the document index
type IndexCommand struct {
	load   *LoadCommand
	index  ports.DocumentIndex
	logger *zap.Logger
}

// NewIndexCommand creates a new IndexCommand
func NewIndexCommand(load *LoadCommand, index ports.DocumentIndex, logger *zap.Logger) *IndexCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IndexCommand{
		load:   load,
		index:  index,
		logger: logger,
	}
}

// Execute runs the index command. A failed load leaves the index untouched.
func (c *IndexCommand) Execute(ctx context.Context) (*IndexResult, error) {
	docs, err := c.load.Execute(ctx)
	if err != nil {
		return nil, err
	}

	rebuilt := c.index.NeedsFullRebuild()
	if rebuilt {
		c.logger.Info("index needs full rebuild")
	}

	stats, err := c.index.Sync(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("sync index: %w", err)
	}

	return &IndexResult{
		Documents: docs,
		Stats:     stats,
		Rebuilt:   rebuilt,
	}, nil
}
