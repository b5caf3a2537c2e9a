package main

import (
	"io"
	"os"

	"casper/internal/app"
	"casper/internal/config"
	"casper/internal/gui"
	"casper/internal/log"
	"casper/internal/tui"

	"github.com/spf13/cobra"
)

func newGUICmd(opts *options) *cobra.Command {
	var startDir string

	cmd := &cobra.Command{
		Use:   "gui [directory]",
		Short: "Open the file manager window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if startDir == "" {
				startDir = firstArg(args)
			}
			return runGUI(opts.cfg, startDir)
		},
	}
	cmd.Flags().StringVar(&startDir, "start-dir", "", "folder to open (overrides start.directory)")
	return cmd
}

func newTUICmd(opts *options) *cobra.Command {
	var startDir string

	cmd := &cobra.Command{
		Use:   "tui [directory]",
		Short: "Browse in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if startDir == "" {
				startDir = firstArg(args)
			}
			return runTUI(opts.cfg, startDir)
		},
	}
	cmd.Flags().StringVar(&startDir, "start-dir", "", "folder to open (overrides start.directory)")
	return cmd
}

func runGUI(cfg *config.Config, startDir string) error {
	return gui.Run(app.Options{Config: cfg, StartDir: config.ExpandHome(startDir)})
}

func runTUI(cfg *config.Config, startDir string) error {
	// the alternate screen owns stdout
	var out io.Writer = io.Discard
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(config.ExpandHome(cfg.Logging.File), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	logOpts := []log.Option{log.WithOutput(out)}
	if cfg.Logging.JSON {
		logOpts = append(logOpts, log.WithJSON())
	}
	log.Configure(logOpts...)

	state, err := app.New(app.Options{Config: cfg, StartDir: config.ExpandHome(startDir)})
	if err != nil {
		return err
	}
	return tui.Run(state)
}
