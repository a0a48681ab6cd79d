package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thanhleviet/flowcraft/internal/recipes"
)

func newRecipesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "List curated pipeline recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			list := make([]recipes.Recipe, 0)
			for _, name := range recipes.Names() {
				r, _ := recipes.Builtin(name)
				list = append(list, r)
			}
			if cfg.RecipeDir != "" {
				loaded, err := recipes.LoadDir(cfg.RecipeDir)
				if err != nil {
					return err
				}
				list = append(list, loaded...)
			}

			for _, r := range list {
				fmt.Printf("%s\n", r.Name)
				if r.Description != "" {
					fmt.Printf("    %s\n", r.Description)
				}
				fmt.Printf("    %s\n\n", r.Pipeline)
			}
			return nil
		},
	}

	return cmd
}
