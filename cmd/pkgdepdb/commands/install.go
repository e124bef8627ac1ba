package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install <archive>...",
		Short: "Virtually install one or more package archives",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, archivePath := range args {
				if err := c.app.InstallArchive(cmd.Context(), archivePath); err != nil {
					return err
				}
			}
			return c.saveDB()
		},
	}
}
