package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mdshelf/internal/adapters/filesystem"
	"mdshelf/internal/application/commands"
	"mdshelf/internal/config"
	"mdshelf/internal/domain"
	"mdshelf/internal/logging"
	"mdshelf/internal/ports"
)

var (
	dataDir    string
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
	source ports.DocumentSource
)

var rootCmd = &cobra.Command{
	Use:   "mdshelf-cli",
	Short: "CLI for browsing a folder of markdown documents",
	Long: `mdshelf-cli reads the markdown files of a data directory and lets you
list, show, search and index them from the command line.

Documents are split into level-2 sections; every command that takes a
document accepts its title, its file name or its 1-based position.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("data") {
			cfg.DataDir = config.ExpandHome(dataDir)
		}

		if verbose {
			logger, err = logging.Verbose()
		} else {
			logger, err = logging.New(cfg.Log)
		}
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		source = filesystem.NewSource(cfg.DataDir, logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", config.DataDir(), "directory holding the markdown files")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default mdshelf.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr at debug level")
}

// loadDocuments reads and parses the whole collection
func loadDocuments(ctx context.Context) ([]domain.Document, error) {
	return newLoadCommand().Execute(ctx)
}

func newLoadCommand() *commands.LoadCommand {
	return commands.NewLoadCommand(source, domain.ParseLocale(cfg.Locale), logger)
}
