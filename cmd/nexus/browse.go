package main

import (
	"fmt"
	"strings"

	"nexus/internal/app"
	"nexus/internal/navigator"
	"nexus/internal/session"

	"github.com/spf13/cobra"
)

// newBrowseCmd lists the subdirectories of a service path
func newBrowseCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [PATH]",
		Short: "List directories on the service",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := session.RootLocation
			if len(args) > 0 {
				p = args[0]
			}

			ctrl := c.controller(p)
			ctrl.Run(cmd.Context(), app.OpenLocation{})

			s := ctrl.State()
			if s.Active == session.ViewLocation {
				crumbs := append([]string{navigator.Root}, navigator.Segments(s.Listing.CurrentPath)...)
				fmt.Fprintln(c.out, infoText("📍 "+strings.Join(crumbs, " / ")))
				if len(s.Listing.Subdirectories) == 0 {
					fmt.Fprintln(c.out, mutedText("  (no subdirectories)"))
				}
				for _, d := range s.Listing.Subdirectories {
					fmt.Fprintf(c.out, "  📁 %s\n", d)
				}
			}
			return c.report(cmd, s)
		},
	}
}
