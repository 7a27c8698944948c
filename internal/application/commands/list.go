package commands

import (
	"context"

	"mdshelf/internal/domain"
)

// ListCommand builds the navigation tree for the documents matching a query
type ListCommand struct {
	docs     []domain.Document
	Query    string
	Expanded map[int]bool
}

// NewListCommand creates a new ListCommand
func NewListCommand(docs []domain.Document, query string, expanded map[int]bool) *ListCommand {
	return &ListCommand{
		docs:     docs,
		Query:    query,
		Expanded: expanded,
	}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context) (*domain.TreeNode, error) {
	visible := domain.FilterDocuments(c.docs, c.Query)
	return domain.BuildTree(c.docs, visible, c.Expanded, c.Query), nil
}

// ExpandAll marks every document as expanded
func ExpandAll(docs []domain.Document) map[int]bool {
	expanded := make(map[int]bool, len(docs))
	for i := range docs {
		expanded[i] = true
	}
	return expanded
}
