package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Acidburn0zzz/pkgdepdb/internal/engine"
)

func (c *CLI) newRulesCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rules",
		Short: "Manage library-path, ignore-file, assume-found and base-package rules",
	}
	root.AddCommand(c.newLibraryPathCmd())
	root.AddCommand(c.newIgnoreFileCmd())
	root.AddCommand(c.newAssumeFoundCmd())
	root.AddCommand(c.newBasePackageCmd())
	return root
}

func (c *CLI) ruleMutated(changed bool) error {
	if !changed {
		return nil
	}
	return c.saveDB()
}

func (c *CLI) newLibraryPathCmd() *cobra.Command {
	root := &cobra.Command{Use: "library-path", Short: "Manage the global additional search path list"}

	var index int
	addCmd := &cobra.Command{
		Use:  "add <path>",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.ruleMutated(engine.LibraryPathInsert(c.app.DB, index, args[0]))
		},
	}
	addCmd.Flags().IntVar(&index, "index", 1<<30, "position to insert at (default: append)")

	delCmd := &cobra.Command{
		Use:  "delete <path-or-index>",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.ruleMutated(engine.LibraryPathDelete(c.app.DB, args[0]))
		},
	}

	listCmd := &cobra.Command{
		Use: "list",
		RunE: func(cc *cobra.Command, _ []string) error {
			for i, p := range c.app.DB.LibraryPath {
				fmt.Fprintf(cc.OutOrStdout(), "%d: %s\n", i, p)
			}
			return nil
		},
	}

	root.AddCommand(addCmd, delCmd, listCmd)
	return root
}

func (c *CLI) newIgnoreFileCmd() *cobra.Command {
	root := &cobra.Command{Use: "ignore-file", Short: "Manage the ignored-file rule set"}

	addCmd := &cobra.Command{
		Use:  "add <path>",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.ruleMutated(engine.IgnoreFileRuleAdd(c.app.DB, args[0]))
		},
	}
	delCmd := &cobra.Command{
		Use:  "delete <path>",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.ruleMutated(engine.IgnoreFileRuleRemove(c.app.DB, args[0]))
		},
	}
	listCmd := &cobra.Command{
		Use: "list",
		RunE: func(cc *cobra.Command, _ []string) error {
			paths := make([]string, 0, len(c.app.DB.IgnoreFileRules))
			for path := range c.app.DB.IgnoreFileRules {
				paths = append(paths, path)
			}
			sort.Strings(paths)
			for _, path := range paths {
				fmt.Fprintln(cc.OutOrStdout(), path)
			}
			return nil
		},
	}
	root.AddCommand(addCmd, delCmd, listCmd)
	return root
}

func (c *CLI) newAssumeFoundCmd() *cobra.Command {
	root := &cobra.Command{Use: "assume-found", Short: "Manage the assume-found soname rule set"}

	addCmd := &cobra.Command{
		Use:  "add <soname>",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.ruleMutated(engine.AssumeFoundRuleAdd(c.app.DB, args[0]))
		},
	}
	delCmd := &cobra.Command{
		Use:  "delete <soname>",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.ruleMutated(engine.AssumeFoundRuleRemove(c.app.DB, args[0]))
		},
	}
	listCmd := &cobra.Command{
		Use: "list",
		RunE: func(cc *cobra.Command, _ []string) error {
			sonames := make([]string, 0, len(c.app.DB.AssumeFoundRules))
			for soname := range c.app.DB.AssumeFoundRules {
				sonames = append(sonames, soname)
			}
			sort.Strings(sonames)
			for _, soname := range sonames {
				fmt.Fprintln(cc.OutOrStdout(), soname)
			}
			return nil
		},
	}
	root.AddCommand(addCmd, delCmd, listCmd)
	return root
}

func (c *CLI) newBasePackageCmd() *cobra.Command {
	root := &cobra.Command{Use: "base-package", Short: "Manage the base-packages seed set used by check"}

	addCmd := &cobra.Command{
		Use:  "add <package>",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.ruleMutated(engine.BasePackageAdd(c.app.DB, args[0]))
		},
	}
	delCmd := &cobra.Command{
		Use:  "delete <package>",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.ruleMutated(engine.BasePackageRemove(c.app.DB, args[0]))
		},
	}
	listCmd := &cobra.Command{
		Use: "list",
		RunE: func(cc *cobra.Command, _ []string) error {
			for _, name := range c.app.DB.BasePackages {
				fmt.Fprintln(cc.OutOrStdout(), name)
			}
			return nil
		},
	}
	root.AddCommand(addCmd, delCmd, listCmd)
	return root
}
