package cmd

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"mdshelf/internal/application"
	"mdshelf/internal/application/commands"
)

var linksCopy int

var linksCmd = &cobra.Command{
	Use:   "links <document>",
	Short: "List the links of a document",
	Long: `List the inline [label](url) links of a document in order of
appearance.

Examples:
  mdshelf-cli links guide
  mdshelf-cli links guide.md --copy 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		docs, err := loadDocuments(ctx)
		if err != nil {
			return err
		}

		links, err := commands.NewLinksCommand(docs, args[0]).Execute(ctx)
		if err != nil {
			return err
		}

		if linksCopy > 0 {
			if linksCopy > len(links) {
				return fmt.Errorf("link %d out of range (document has %d)", linksCopy, len(links))
			}
			url := links[linksCopy-1].URL
			if err := clipboard.WriteAll(url); err != nil {
				return fmt.Errorf("copy link: %w", err)
			}
			fmt.Printf("Copied %s\n", url)
			return nil
		}

		if len(links) == 0 {
			fmt.Println("No links")
			return nil
		}
		for _, l := range links {
			fmt.Println(formatLink(l))
		}
		return nil
	},
}

func formatLink(l application.LinkRecord) string {
	return fmt.Sprintf("%d. %s  %s", l.Position+1, l.Label, l.URL)
}

func init() {
	linksCmd.Flags().IntVar(&linksCopy, "copy", 0, "copy the URL of the n-th link to the clipboard")
	rootCmd.AddCommand(linksCmd)
}
