package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mdshelf/internal/application"
	"mdshelf/internal/application/commands"
)

var (
	listQuery     string
	listCollapsed bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents and their sections",
	Long: `List every document in the data directory with its sections as a tree.

With --query only documents containing the text are listed, each with its
number of matches.

Examples:
  mdshelf-cli list
  mdshelf-cli list --query install
  mdshelf-cli list --collapsed`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		docs, err := loadDocuments(ctx)
		if err != nil {
			return err
		}

		expanded := commands.ExpandAll(docs)
		if listCollapsed {
			expanded = nil
		}
		root, err := commands.NewListCommand(docs, listQuery, expanded).Execute(ctx)
		if err != nil {
			return err
		}

		if !root.HasChildren() {
			fmt.Println("No documents")
			return nil
		}
		for _, node := range root.Flatten()[1:] {
			fmt.Println(formatNode(node, docs, listQuery))
		}
		return nil
	},
}

func formatNode(node *application.TreeNode, docs []application.Document, query string) string {
	indent := strings.Repeat("  ", node.Depth()-1)

	var line string
	if node.Type == application.TreeDocument {
		line = fmt.Sprintf("%s%d. %s  (%s)", indent, node.File+1, node.Title, docs[node.File].FileName)
	} else {
		line = fmt.Sprintf("%s%d.%d %s", indent, node.File+1, node.Section+1, node.Title)
	}
	if query != "" && node.Matches > 0 {
		line += fmt.Sprintf("  [%d]", node.Matches)
	}
	return line
}

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "only list documents containing this text")
	listCmd.Flags().BoolVar(&listCollapsed, "collapsed", false, "hide sections")
	rootCmd.AddCommand(listCmd)
}
