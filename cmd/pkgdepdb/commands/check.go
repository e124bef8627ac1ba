package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [package]...",
		Short: "Simulate a recursive installation and report dependency/conflict problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			var targets []string
			if len(args) > 0 {
				targets = args
			}
			findings := c.app.CheckIntegrity(cmd.Context(), targets)
			for _, f := range findings {
				if f.Other != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s: %s (%s)\n", f.Kind, f.Package, f.Detail, f.Other)
					continue
				}
				if len(f.Others) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s: %s %v\n", f.Kind, f.Package, f.Detail, f.Others)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s: %s\n", f.Kind, f.Package, f.Detail)
			}
			if len(findings) > 0 {
				return fmt.Errorf("%d integrity findings", len(findings))
			}
			return nil
		},
	}
}
