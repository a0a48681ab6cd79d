package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thanhleviet/flowcraft/internal/config"
	"github.com/thanhleviet/flowcraft/internal/logging"
)

var (
	flagOutputDir string
	flagRecipeDir string
	flagDBPath    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	cfg    config.Config
)

// defaultDBPath checks the FLOWCRAFT_DB env var before falling back to
// the per-user default.
func defaultDBPath() string {
	if s := os.Getenv("FLOWCRAFT_DB"); s != "" {
		return s
	}
	return config.DefaultDBPath()
}

// defaultRecipeDir checks the FLOWCRAFT_RECIPES env var; empty means
// builtins only.
func defaultRecipeDir() string {
	return os.Getenv("FLOWCRAFT_RECIPES")
}

// NewRootCmd creates the root cobra command for the flowcraft CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "flowcraft",
		Short: "flowcraft — Nextflow pipeline assembler for genomics",
		Long:  "flowcraft builds ready-to-run Nextflow pipelines from modular components.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.New(flagLogLevel, flagLogFormat)
			cfg = config.Default()
			cfg.OutputDir = flagOutputDir
			cfg.RecipeDir = flagRecipeDir
			cfg.DBPath = flagDBPath
			cfg.LogLevel = flagLogLevel
			cfg.LogFormat = flagLogFormat
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagOutputDir, "output-dir", ".", "Directory for generated files")
	root.PersistentFlags().StringVar(&flagRecipeDir, "recipe-dir", defaultRecipeDir(),
		"Directory with additional recipe YAML files (or FLOWCRAFT_RECIPES env)")
	root.PersistentFlags().StringVar(&flagDBPath, "db", defaultDBPath(), "Build history database path (or FLOWCRAFT_DB env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newBuildCmd(),
		newListCmd(),
		newRecipesCmd(),
		newRunsCmd(),
	)

	return root
}
