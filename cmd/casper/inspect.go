package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"casper/internal/config"
	"casper/internal/fsys"
	"casper/internal/listing"
	"casper/internal/location"
	"casper/internal/sidebar"

	"github.com/spf13/cobra"
)

func newLsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [directory]",
		Short: "Print a folder the way the file views list it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := firstArg(args)
			if dir == "" {
				var err error
				if dir, err = opts.cfg.StartDirectory(); err != nil {
					return err
				}
			}

			l, err := listing.NewService(newFS(opts.cfg)).Load(parseLocation(config.ExpandHome(dir)))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range l.Entries() {
				name := e.Name
				if e.IsDir() {
					name += "/"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, e.SizeDisplay, e.ModifiedDisplay)
			}
			return w.Flush()
		},
	}
}

func newSidebarCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sidebar",
		Short: "Print the places shown in the sidebar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			model := sidebar.Build(home, newFS(opts.cfg), sidebar.SystemMounts{SkipFSTypes: opts.cfg.Sidebar.SkipFSTypes}, sidebar.Options{
				StandardDirs: opts.cfg.Sidebar.StandardDirs,
				ShowMounts:   opts.cfg.Sidebar.ShowMounts,
				UserDirs:     sidebar.UserDirs(),
			})

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, item := range model.Items() {
				if item.IsSeparator {
					fmt.Fprintln(w, "--")
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", item.Label, item.Target.String(), item.Detail)
			}
			return w.Flush()
		},
	}
}

func newFS(cfg *config.Config) *fsys.Local {
	return fsys.NewLocal(fsys.WithOpener(cfg.Launcher.OpenCommand))
}

// parseLocation accepts plain paths and URIs such as trash:///.
func parseLocation(arg string) location.Location {
	if loc, err := location.FromURI(arg); err == nil {
		return loc
	}
	return location.FromPath(arg)
}
