package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mdshelf/internal/application/commands"
	"mdshelf/internal/domain"
	"mdshelf/internal/ports"
)

// RegisterReadTools adds all read-only document tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, index ports.DocumentIndex) {
	s.AddTool(listDocumentsTool(), listDocumentsHandler(index))
	s.AddTool(getDocumentTool(), getDocumentHandler(index))
	s.AddTool(searchTool(), searchHandler(index))
	s.AddTool(linksTool(), linksHandler(index))
}

// --- list_documents ---

func listDocumentsTool() mcp.Tool {
	return mcp.NewTool("list_documents",
		mcp.WithDescription("List every document in the collection, sorted by title, with its numbered sections."),
	)
}

func listDocumentsHandler(index ports.DocumentIndex) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		docs, err := index.Documents(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(docs) == 0 {
			return mcp.NewToolResultText("No documents."), nil
		}

		var sb strings.Builder
		for i, doc := range docs {
			fmt.Fprintf(&sb, "%d. %s  (%s)\n", i+1, doc.Title, doc.FileName)
			for j, sec := range doc.Sections {
				fmt.Fprintf(&sb, "   %d.%d %s\n", i+1, j+1, sec.Title)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- get_document ---

func getDocumentTool() mcp.Tool {
	return mcp.NewTool("get_document",
		mcp.WithDescription("Read the raw markdown of a document, or of one of its sections."),
		mcp.WithString("file",
			mcp.Description("File name (e.g. guide.md), title, or 1-based position from list_documents"),
			mcp.Required(),
		),
		mcp.WithString("section",
			mcp.Description("Section title or 1-based section number. Omit to read the whole document."),
		),
	)
}

func getDocumentHandler(index ports.DocumentIndex) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file := req.GetString("file", "")
		if file == "" {
			return toolError(fmt.Errorf("file is required"))
		}

		docs, err := index.Documents(ctx)
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewShowCommand(docs, file, req.GetString("section", ""), "").Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", result.View.Title, result.View.Text)), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Find documents containing a phrase. Matching is literal and case-insensitive."),
		mcp.WithString("query",
			mcp.Description("Text to look for"),
			mcp.Required(),
		),
	)
}

func searchHandler(index ports.DocumentIndex) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		hits, err := commands.NewIndexedSearchCommand(index, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(hits) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, h := range hits {
			fmt.Fprintf(&sb, "%d. %s  (%s)  %s\n", h.File+1, h.Title, h.FileName, formatMatches(h.Matches))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- links ---

func linksTool() mcp.Tool {
	return mcp.NewTool("links",
		mcp.WithDescription("List the outbound links of a document in order of appearance."),
		mcp.WithString("file",
			mcp.Description("File name, title, or 1-based position from list_documents"),
			mcp.Required(),
		),
	)
}

func linksHandler(index ports.DocumentIndex) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file := req.GetString("file", "")
		if file == "" {
			return toolError(fmt.Errorf("file is required"))
		}

		docs, err := index.Documents(ctx)
		if err != nil {
			return toolError(err)
		}

		links, err := commands.NewIndexedLinksCommand(index, docs, file).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(links, formatLink)
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatLink(l domain.LinkRecord) string {
	return fmt.Sprintf("%s  %s", l.Label, l.URL)
}

func formatMatches(n int) string {
	if n == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", n)
}
