package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"mdshelf/internal/application"
	"mdshelf/internal/domain"
	"mdshelf/internal/ports"
)

// LoadCommand reads and parses every document in the collection
type LoadCommand struct {
	source ports.DocumentSource
	locale language.Tag
	logger *zap.Logger
}

// NewLoadCommand creates a new LoadCommand
func NewLoadCommand(source ports.DocumentSource, locale language.Tag, logger *zap.Logger) *LoadCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoadCommand{
		source: source,
		locale: locale,
		logger: logger,
	}
}

// Execute loads the collection sorted by title. Any read failure aborts the
// whole load and no documents are returned.
func (c *LoadCommand) Execute(ctx context.Context) ([]domain.Document, error) {
	files, err := c.source.ReadAll(ctx)
	if err != nil {
		c.logger.Error("load failed", zap.String("dir", c.source.Dir()), zap.Error(err))
		return nil, asLoadError(err)
	}

	docs := make([]domain.Document, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, &application.LoadError{Path: f.Path, Err: err}
		}
		docs = append(docs, domain.Parse(f.Name, f.Content))
	}

	domain.SortDocuments(docs, c.locale)

	c.logger.Debug("documents loaded",
		zap.String("dir", c.source.Dir()),
		zap.Int("count", len(docs)),
	)
	return docs, nil
}

func asLoadError(err error) error {
	var loadErr *application.LoadError
	if errors.As(err, &loadErr) {
		return err
	}
	return &application.LoadError{Err: err}
}
