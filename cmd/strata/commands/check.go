package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/strata/internal/adapters/settings" //nolint:depguard // Settings are assembled at the CLI edge
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the dependency graph against the rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := settings.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return c.app.Check(cmd.Context(), s)
		},
	}
	cmd.Flags().StringP("format", "f", "text", "Report format: text or json")
	cmd.Flags().IntP("parallelism", "p", 0, "Rules evaluated at once (default: number of CPUs)")
	cmd.Flags().BoolP("watch", "w", false, "Check again whenever sources or the rule file change")
	return cmd
}
