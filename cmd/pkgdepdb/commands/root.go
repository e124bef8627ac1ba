// Package commands implements the CLI commands for pkgdepdb.
package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/Acidburn0zzz/pkgdepdb/internal/adapters/config"
	"github.com/Acidburn0zzz/pkgdepdb/internal/adapters/telemetry/progrock"
	"github.com/Acidburn0zzz/pkgdepdb/internal/app"
)

// CLI represents the command line interface for pkgdepdb.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command

	dbPath     string
	configPath string
	progress   bool
}

// New creates a new CLI instance operating on the given App.
func New(a *app.App) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "pkgdepdb",
		Short:         "Track ELF dynamic-linker dependencies across installed packages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&c.dbPath, "database", "f", "pkgdepdb.db", "Path to the persisted database file")
	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to a YAML defaults file applied when no database exists yet")
	rootCmd.PersistentFlags().BoolVar(&c.progress, "progress", false, "Record vertex progress for relink/install/remove operations via the progrock recorder")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newRemoveCmd())
	rootCmd.AddCommand(c.newRelinkCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newQueryCmd())
	rootCmd.AddCommand(c.newRulesCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if c.progress {
			c.app.Telemetry = progrock.New()
		}
		if cmd.Name() == "version" {
			return nil
		}
		if _, err := os.Stat(c.dbPath); os.IsNotExist(err) {
			// No database yet: start from the fresh, empty DB the CLI
			// was wired up with (install creates it on first save),
			// optionally seeded from a defaults file.
			if c.configPath == "" {
				return nil
			}
			defaults, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			defaults.ApplyTo(c.app.DB)
			return nil
		}
		return c.app.LoadDB(c.dbPath)
	}

	return c
}

// Execute runs the root command with the given context. If --progress
// requested a progrock recorder, its recording is closed once the command
// finishes regardless of outcome.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	err := c.rootCmd.Execute()
	if closer, ok := c.app.Telemetry.(interface{ Close() error }); ok {
		if cerr := closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

func (c *CLI) saveDB() error {
	return c.app.SaveDB(c.dbPath)
}
