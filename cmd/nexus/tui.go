package main

import (
	"fmt"

	"nexus/internal/log"
	"nexus/internal/session"
	"nexus/internal/tui"

	"github.com/spf13/cobra"
)

// newTUICmd represents the TUI command
func newTUICmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the terminal user interface",
		Long:  `Start the interactive interface for browsing and managing files on the service.`,
		Args:  cobra.NoArgs,
		RunE:  c.runTUI,
	}
}

func (c *cli) runTUI(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	log.LogWithFields(log.F("server", c.cfg.Server.URL)).Info("Starting TUI")
	if err := tui.Run(cmd.Context(), c.controller(session.RootLocation)); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
