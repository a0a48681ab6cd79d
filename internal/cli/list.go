package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thanhleviet/flowcraft/internal/components"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available pipeline components",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("%-22s  %-10s  %-10s  %s\n", "COMPONENT", "INPUT", "OUTPUT", "PARAMS")
			fmt.Printf("%-22s  %-10s  %-10s  %s\n", "---------", "-----", "------", "------")
			for _, name := range components.Names() {
				def, _ := components.Get(name)
				output := def.Output
				if output == "" {
					output = "-"
				}
				fmt.Printf("%-22s  %-10s  %-10s  %d\n", name, def.Input, output, len(def.Params))
			}
			return nil
		},
	}
}
