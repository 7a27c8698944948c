package commands

import (
	"context"
	"strconv"
	"strings"

	"mdshelf/internal/application"
	"mdshelf/internal/domain"
)

// ShowResult is a resolved and rendered selection
type ShowResult struct {
	Selection domain.Selection
	View      domain.View
	Nodes     []domain.DisplayNode
}

// ShowCommand resolves a document and optional section reference and renders it
type ShowCommand struct {
	docs       []domain.Document
	DocRef     string
	SectionRef string
	Query      string
}

// NewShowCommand creates a new ShowCommand
func NewShowCommand(docs []domain.Document, docRef, sectionRef, query string) *ShowCommand {
	return &ShowCommand{
		docs:       docs,
		DocRef:     docRef,
		SectionRef: sectionRef,
		Query:      query,
	}
}

// Execute runs the show command
func (c *ShowCommand) Execute(ctx context.Context) (*ShowResult, error) {
	file, err := ResolveDocument(c.docs, c.DocRef)
	if err != nil {
		return nil, err
	}

	sel := domain.NewSelection().SelectDocument(file)
	if strings.TrimSpace(c.SectionRef) != "" {
		section, err := ResolveSection(c.docs[file], c.SectionRef)
		if err != nil {
			return nil, err
		}
		sel = sel.SelectSection(file, section)
	}
	sel = sel.WithQuery(c.Query)

	view, nodes, _ := sel.Render(c.docs)
	return &ShowResult{Selection: sel, View: view, Nodes: nodes}, nil
}

// ResolveDocument turns a 1-based index, file name or title into a document index
func ResolveDocument(docs []domain.Document, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.NoSelection, application.ErrInvalidReference
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(docs) {
			return domain.NoSelection, &application.LookupError{Ref: ref, Kind: "document"}
		}
		return n - 1, nil
	}
	if i, ok := domain.FindDocument(docs, ref); ok {
		return i, nil
	}
	return domain.NoSelection, &application.LookupError{Ref: ref, Kind: "document"}
}

// ResolveSection turns a 1-based index or section title into a section index
func ResolveSection(doc domain.Document, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.NoSelection, application.ErrInvalidReference
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if _, ok := doc.Section(n - 1); !ok {
			return domain.NoSelection, &application.LookupError{Ref: ref, Kind: "section"}
		}
		return n - 1, nil
	}
	if i, ok := domain.FindSection(doc, ref); ok {
		return i, nil
	}
	return domain.NoSelection, &application.LookupError{Ref: ref, Kind: "section"}
}
