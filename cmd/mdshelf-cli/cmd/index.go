package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mdshelf/internal/adapters/sqlite"
	"mdshelf/internal/application/commands"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Sync the search index with the data directory",
	Long: `Read every document and sync it into the sqlite index used by
"search --index" and the MCP server.

Unchanged documents are skipped; the index is rebuilt from scratch when its
schema or data directory changed.

Example:
  mdshelf-cli index`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		idx := sqlite.NewIndex(cfg.IndexDir, logger)
		if err := idx.Open(cfg.DataDir); err != nil {
			return err
		}
		defer idx.Close()

		result, err := commands.NewIndexCommand(newLoadCommand(), idx, logger).Execute(ctx)
		if err != nil {
			return err
		}

		s := result.Stats
		if result.Rebuilt {
			fmt.Println("Rebuilt index")
		}
		fmt.Printf("Index: %s\n", idx.Path())
		fmt.Printf("Documents: %d added, %d updated, %d removed, %d unchanged\n",
			s.DocumentsAdded, s.DocumentsUpdated, s.DocumentsDeleted, s.DocumentsSkipped)
		fmt.Printf("Sections: %d  Links: %d  (%s)\n", s.SectionsIndexed, s.LinksIndexed, s.Duration.Round(time.Millisecond))
		if last := idx.LastSync(); !last.IsZero() {
			fmt.Printf("Last sync: %s\n", last.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
