package main

import (
	"fmt"
	"path/filepath"
	"time"

	"nexus/internal/session"
	"nexus/internal/watch"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// newWatchCmd pushes local changes to the service
func newWatchCmd(c *cli) *cobra.Command {
	var (
		ignore   []string
		location string
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [DIR]",
		Short: "Push local file changes to the service",
		Long: `Watch a local directory and push every created or modified file to the
service, keeping the directory layout below the target location. Files
the service already has are updated through edit; new files are created.
Press Ctrl+C to stop.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("error resolving %s: %w", dir, err)
			}

			wait := c.cfg.Debounce()
			if cmd.Flags().Changed("debounce") {
				wait = debounce
			}

			patterns := append(append([]string{}, c.cfg.Watch.Ignore...), ignore...)
			p, err := watch.NewPusher(c.svc, abs, patterns,
				watch.WithBase(location),
				watch.WithDebounce(wait),
				watch.WithCallback(func(r watch.Result) {
					target := r.Filename
					if r.Location != session.RootLocation {
						target = r.Location + "/" + r.Filename
					}
					switch {
					case r.Err != nil:
						fmt.Fprintln(c.errOut, errorText(fmt.Sprintf("%s: %v", target, r.Err)))
					case r.Created:
						fmt.Fprintln(c.out, successText("created "+target))
					default:
						fmt.Fprintln(c.out, successText("updated "+target))
					}
				}),
			)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := p.Start(ctx); err != nil {
				return err
			}
			fmt.Fprintln(c.errOut, infoText(fmt.Sprintf("Watching %s → %s (Ctrl+C to stop)", abs, location)))

			<-ctx.Done()
			stopped := time.Now()
			p.Stop()

			st := p.Status()
			summary := fmt.Sprintf("Pushed %s file(s), %s failure(s)", humanize.Comma(int64(st.FilesPushed)), humanize.Comma(int64(st.Failures)))
			if !st.LastActivity.IsZero() {
				summary += ", last push " + humanize.RelTime(st.LastActivity, stopped, "ago", "from now")
			}
			fmt.Fprintln(c.errOut, mutedText(summary))
			if st.Failures > 0 {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&ignore, "ignore", nil, "glob pattern to skip (repeatable)")
	cmd.Flags().StringVar(&location, "location", session.RootLocation, "directory on the service to push into")
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "quiet period before a changed file is pushed")

	return cmd
}
