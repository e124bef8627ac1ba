package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRelinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relink",
		Short: "Recompute the dynamic-linker dependency graph for every installed object",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Relink(cmd.Context()); err != nil {
				return err
			}
			return c.saveDB()
		},
	}
}
