package commands

import (
	"context"

	"mdshelf/internal/domain"
	"mdshelf/internal/ports"
)

// LinksCommand lists the links of one document
type LinksCommand struct {
	docs   []domain.Document
	index  ports.DocumentIndex
	DocRef string
}

// NewLinksCommand creates a new LinksCommand over loaded documents
func NewLinksCommand(docs []domain.Document, docRef string) *LinksCommand {
	return &LinksCommand{docs: docs, DocRef: docRef}
}

// NewIndexedLinksCommand resolves the reference against docs but reads the
// links from the index
func NewIndexedLinksCommand(index ports.DocumentIndex, docs []domain.Document, docRef string) *LinksCommand {
	return &LinksCommand{docs: docs, index: index, DocRef: docRef}
}

// Execute runs the links command
func (c *LinksCommand) Execute(ctx context.Context) ([]domain.LinkRecord, error) {
	file, err := ResolveDocument(c.docs, c.DocRef)
	if err != nil {
		return nil, err
	}
	doc := c.docs[file]
	if c.index != nil {
		return c.index.Links(ctx, doc.FileName)
	}
	return doc.Links(), nil
}
