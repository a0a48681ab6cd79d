package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/thanhleviet/flowcraft/internal/store"
)

func newRunsCmd() *cobra.Command {
	var flagLimit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List past pipeline builds",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewSQLiteStore(cfg.DBPath, logger)
			if err != nil {
				return fmt.Errorf("open build history: %w", err)
			}
			defer st.Close()
			if err := st.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migrate build history: %w", err)
			}

			builds, total, err := st.ListBuilds(cmd.Context(), store.ListOptions{Limit: flagLimit})
			if err != nil {
				return fmt.Errorf("list builds: %w", err)
			}
			if len(builds) == 0 {
				fmt.Println("No builds recorded.")
				return nil
			}

			fmt.Printf("%-42s  %-12s  %-40s  %s\n", "ID", "RECIPE", "PIPELINE", "BUILT")
			fmt.Printf("%-42s  %-12s  %-40s  %s\n", "----", "------", "--------", "-----")
			for _, b := range builds {
				recipe := b.Recipe
				if recipe == "" {
					recipe = "-"
				}
				pipeline := b.Pipeline
				if len(pipeline) > 40 {
					pipeline = pipeline[:37] + "..."
				}
				fmt.Printf("%-42s  %-12s  %-40s  %s\n", b.ID, recipe, pipeline, humanize.Time(b.CreatedAt))
			}

			if total > len(builds) {
				fmt.Printf("\n(%d of %d shown)\n", len(builds), total)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of builds to show")
	return cmd
}
