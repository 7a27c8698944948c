package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mdshelf/internal/adapters/sqlite"
	"mdshelf/internal/application"
	"mdshelf/internal/application/commands"
)

var (
	searchIndexed bool
	searchRanked  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search document contents",
	Long: `Search for documents whose text contains the query, ignoring case.

Matching is literal: the query is not a pattern. Results keep collection
order unless --rank is given.

Examples:
  mdshelf-cli search install
  mdshelf-cli search "(http" --rank
  mdshelf-cli search install --index`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		ctx := context.Background()

		var search *commands.SearchCommand
		if searchIndexed {
			idx, err := openIndex(ctx)
			if err != nil {
				return err
			}
			defer idx.Close()
			search = commands.NewIndexedSearchCommand(idx, query)
		} else {
			docs, err := loadDocuments(ctx)
			if err != nil {
				return err
			}
			search = commands.NewSearchCommand(docs, query)
		}

		hits, err := search.Execute(ctx)
		if err != nil {
			return err
		}
		if searchRanked {
			hits = commands.RankByMatches(hits)
		}

		if len(hits) == 0 {
			fmt.Println("No results found")
			return nil
		}
		for _, h := range hits {
			fmt.Println(formatHit(h))
		}
		return nil
	},
}

func formatHit(h application.SearchHit) string {
	return fmt.Sprintf("%d. %s  (%s)  %s", h.File+1, h.Title, h.FileName, formatMatches(h.Matches))
}

func formatMatches(n int) string {
	if n == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", n)
}

// openIndex opens the sqlite index and brings it up to date with the data
// directory
func openIndex(ctx context.Context) (*sqlite.Index, error) {
	idx := sqlite.NewIndex(cfg.IndexDir, logger)
	if err := idx.Open(cfg.DataDir); err != nil {
		return nil, err
	}
	if _, err := commands.NewIndexCommand(newLoadCommand(), idx, logger).Execute(ctx); err != nil {
		idx.Close()
		return nil, err
	}
	return idx, nil
}

func init() {
	searchCmd.Flags().BoolVarP(&searchIndexed, "index", "i", false, "search through the sqlite index")
	searchCmd.Flags().BoolVarP(&searchRanked, "rank", "r", false, "order results by number of matches")
	rootCmd.AddCommand(searchCmd)
}
