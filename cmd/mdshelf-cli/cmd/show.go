package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mdshelf/internal/adapters/tui/render"
	"mdshelf/internal/application/commands"
)

var (
	showQuery string
	showPlain bool
	showWidth int
)

var showCmd = &cobra.Command{
	Use:   "show <document> [section]",
	Short: "Render a document or one of its sections",
	Long: `Render a document, or a single section of it, to the terminal.

On a terminal headings, list items and links are styled and links are
clickable. When the output is piped, links are written as "label <url>" and
search matches as [[match]].

Examples:
  mdshelf-cli show guide
  mdshelf-cli show guide.md 2
  mdshelf-cli show 1 "Getting started" --query install`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		docs, err := loadDocuments(ctx)
		if err != nil {
			return err
		}

		var sectionRef string
		if len(args) == 2 {
			sectionRef = args[1]
		}
		result, err := commands.NewShowCommand(docs, args[0], sectionRef, showQuery).Execute(ctx)
		if err != nil {
			return err
		}

		styled, width := outputMode(os.Stdout)
		if showPlain {
			styled = false
		}
		if showWidth > 0 {
			width = showWidth
		}

		if styled {
			fmt.Println(render.Styled(result.Nodes, width))
		} else {
			fmt.Println(render.Plain(result.Nodes, width))
		}
		return nil
	},
}

// outputMode reports whether f is a terminal and, if so, its width
func outputMode(f *os.File) (styled bool, width int) {
	fd := f.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return false, 0
	}
	if w, _, err := term.GetSize(int(fd)); err == nil {
		width = w
	}
	return true, width
}

func init() {
	showCmd.Flags().StringVarP(&showQuery, "query", "q", "", "highlight matches of this text")
	showCmd.Flags().BoolVar(&showPlain, "plain", false, "never style the output")
	showCmd.Flags().IntVarP(&showWidth, "width", "w", 0, "wrap at this many columns (default terminal width)")
	rootCmd.AddCommand(showCmd)
}
