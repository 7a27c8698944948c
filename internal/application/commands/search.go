package commands

import (
	"context"
	"sort"
	"strings"

	"mdshelf/internal/application"
	"mdshelf/internal/domain"
	"mdshelf/internal/ports"
)

// SearchCommand finds documents containing a literal, case-insensitive query.
// With an index it queries sqlite, otherwise it scans the loaded documents.
type SearchCommand struct {
	docs  []domain.Document
	index ports.DocumentIndex
	Query string
}

// NewSearchCommand creates a SearchCommand over already-loaded documents
func NewSearchCommand(docs []domain.Document, query string) *SearchCommand {
	return &SearchCommand{
		docs:  docs,
		Query: query,
	}
}

// NewIndexedSearchCommand creates a SearchCommand backed by the document index
func NewIndexedSearchCommand(index ports.DocumentIndex, query string) *SearchCommand {
	return &SearchCommand{
		index: index,
		Query: query,
	}
}

// Execute runs the search command. Hits keep collection order.
func (c *SearchCommand) Execute(ctx context.Context) ([]domain.SearchHit, error) {
	if strings.TrimSpace(c.Query) == "" {
		return nil, application.ErrEmptyQuery
	}
	if c.index != nil {
		return c.index.Search(ctx, c.Query)
	}
	return domain.Search(c.docs, c.Query), nil
}

// RankByMatches orders hits by match count, most matches first.
// Hits with equal counts keep their collection order.
func RankByMatches(hits []domain.SearchHit) []domain.SearchHit {
	ranked := make([]domain.SearchHit, len(hits))
	copy(ranked, hits)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Matches > ranked[j].Matches
	})
	return ranked
}
