package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
	"github.com/Acidburn0zzz/pkgdepdb/internal/engine"
)

func sortedMissing(obj *domain.Elf) []string {
	out := make([]string, 0, len(obj.ReqMissing))
	for soname := range obj.ReqMissing {
		out = append(out, soname)
	}
	sort.Strings(out)
	return out
}

func (c *CLI) newQueryCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "query",
		Short: "Inspect the persisted database",
	}
	root.AddCommand(c.newQueryPackagesCmd())
	root.AddCommand(c.newQueryObjectsCmd())
	root.AddCommand(c.newQueryBrokenCmd())
	root.AddCommand(c.newQueryFilesCmd())
	root.AddCommand(c.newQueryOwnerCmd())
	return root
}

func (c *CLI) newQueryPackagesCmd() *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "packages",
		Short: "List installed packages",
		RunE: func(cc *cobra.Command, _ []string) error {
			for _, pkg := range engine.ListPackages(c.app.DB, group) {
				fmt.Fprintf(cc.OutOrStdout(), "%s %s\n", pkg.Name, pkg.Version)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "filter by group membership")
	return cmd
}

func (c *CLI) newQueryObjectsCmd() *cobra.Command {
	var owner string
	cmd := &cobra.Command{
		Use:   "objects",
		Short: "List tracked ELF objects",
		RunE: func(cc *cobra.Command, _ []string) error {
			for _, obj := range engine.ListObjects(c.app.DB, owner) {
				fmt.Fprintln(cc.OutOrStdout(), obj.Path())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "filter by owning package name")
	return cmd
}

func (c *CLI) newQueryBrokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "broken",
		Short: "List ELF objects with unresolved dependencies",
		RunE: func(cc *cobra.Command, _ []string) error {
			for _, obj := range engine.ListBrokenObjects(c.app.DB) {
				fmt.Fprintf(cc.OutOrStdout(), "%s: %v\n", obj.Path(), sortedMissing(obj))
			}
			return nil
		},
	}
}

func (c *CLI) newQueryFilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List every file owned by an installed package",
		RunE: func(cc *cobra.Command, _ []string) error {
			for _, f := range engine.ListFiles(c.app.DB) {
				fmt.Fprintf(cc.OutOrStdout(), "%s\t%s\n", f.Package, f.Path)
			}
			return nil
		},
	}
}

func (c *CLI) newQueryOwnerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "owner <dirname> <basename>",
		Short: "Find the package owning a given file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cc *cobra.Command, args []string) error {
			pkg := engine.FindOwner(c.app.DB, args[0], args[1])
			if pkg == nil {
				return fmt.Errorf("no package owns %s/%s", args[0], args[1])
			}
			fmt.Fprintln(cc.OutOrStdout(), pkg.Name)
			return nil
		},
	}
}
