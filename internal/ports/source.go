package ports

import (
	"context"

	"mdshelf/internal/domain"
)

// DocumentSource defines the interface for reading the raw markdown collection
type DocumentSource interface {
	// ReadAll returns every markdown file in the collection.
	// A single unreadable file fails the whole call.
	ReadAll(ctx context.Context) ([]domain.SourceFile, error)

	// Dir returns the directory the collection is read from
	Dir() string
}
