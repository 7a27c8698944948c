package ports

import (
	"context"

	"mdshelf/internal/domain"
)

// DocumentIndex provides cached access to parsed documents, their sections
// and the links they contain.
type DocumentIndex interface {
	// Lifecycle
	Open(dataDir string) error
	Close() error

	// Sync operations
	NeedsFullRebuild() bool
	Sync(ctx context.Context, docs []domain.Document) (*domain.SyncStats, error)

	// Queries
	Documents(ctx context.Context) ([]domain.Document, error)
	Search(ctx context.Context, query string) ([]domain.SearchHit, error)
	Links(ctx context.Context, fileName string) ([]domain.LinkRecord, error)
}

// IndexTx represents a transaction for atomic index updates
type IndexTx interface {
	// Hashes returns the content hash of every indexed document by file name
	Hashes(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error

	UpsertDocument(doc domain.Document, position int, hash string) error
	SetPosition(fileName string, position int) error
	DeleteDocument(fileName string) error

	Commit() error
	Rollback() error
}
