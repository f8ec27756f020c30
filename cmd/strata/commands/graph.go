package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/strata/internal/adapters/settings" //nolint:depguard // Settings are assembled at the CLI edge
)

func (c *CLI) newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the imported dependency graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := settings.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return c.app.Graph(cmd.Context(), s)
		},
	}
	cmd.Flags().StringP("format", "f", "dot", "Graph format: dot, mermaid, json or yaml")
	return cmd
}
