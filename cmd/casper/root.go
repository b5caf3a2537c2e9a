package main

import (
	"fmt"
	"io"

	"casper/internal/config"
	"casper/internal/gui"
	"casper/internal/log"

	"github.com/spf13/cobra"
)

// options carries the persistent flags and the configuration they load.
type options struct {
	cfgFile string
	debug   bool
	cfg     *config.Config
}

// NewRootCmd creates the root command. Without a subcommand it opens the
// window, or the terminal interface in builds without one.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "casper [directory]",
		Short:   "A small desktop file manager",
		Long:    `Casper browses folders in list or grid view, keeps back/forward history and moves files between folders and the trash.`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if gui.IsGUIAvailable() {
				return runGUI(opts.cfg, firstArg(args))
			}
			return runTUI(opts.cfg, firstArg(args))
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/casper/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newGUICmd(opts))
	rootCmd.AddCommand(newTUICmd(opts))
	rootCmd.AddCommand(newLsCmd(opts))
	rootCmd.AddCommand(newSidebarCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// load reads the configuration and configures logging from it. A broken
// file is reported and replaced by the defaults.
func (o *options) load(stderr io.Writer) error {
	var err error
	if o.cfgFile != "" {
		o.cfg, err = config.LoadConfigFile(o.cfgFile)
	} else {
		o.cfg, err = config.LoadConfig()
	}
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v\nUsing default settings.\n", err)
		o.cfg = config.New()
	}

	var logOpts []log.Option
	if o.cfg.Logging.JSON {
		logOpts = append(logOpts, log.WithJSON())
	}
	if o.cfg.Logging.File != "" {
		logOpts = append(logOpts, log.WithFile(config.ExpandHome(o.cfg.Logging.File)))
	}
	log.Configure(logOpts...)
	log.SetDebug(o.debug || o.cfg.Logging.Debug)
	return nil
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
