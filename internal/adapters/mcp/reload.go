package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"mdshelf/internal/application/commands"
)

// Syncer re-reads the collection into the index
type Syncer interface {
	Execute(ctx context.Context) (*commands.IndexResult, error)
}

// RegisterReloadTool adds the reload tool to the MCP server.
func RegisterReloadTool(s *server.MCPServer, syncer Syncer, logger *zap.Logger) {
	s.AddTool(reloadTool(), reloadHandler(syncer, logger))
}

func reloadTool() mcp.Tool {
	return mcp.NewTool("reload",
		mcp.WithDescription("Re-read every document from disk and refresh the index. Run this after files change."),
	)
}

func reloadHandler(syncer Syncer, logger *zap.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := syncer.Execute(ctx)
		if err != nil {
			logger.Error("reload failed", zap.Error(err))
			return toolError(err)
		}

		st := result.Stats
		return mcp.NewToolResultText(fmt.Sprintf(
			"Loaded %d documents: %d added, %d updated, %d removed, %d unchanged.",
			len(result.Documents), st.DocumentsAdded, st.DocumentsUpdated, st.DocumentsDeleted, st.DocumentsSkipped,
		)), nil
	}
}
