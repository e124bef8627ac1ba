package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
)

func (c *CLI) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <package>...",
		Short: "Remove one or more installed packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				if !c.app.RemovePackage(cmd.Context(), name) {
					return zerr.With(domain.ErrPackageNotFound, "package", name)
				}
			}
			return c.saveDB()
		},
	}
}
