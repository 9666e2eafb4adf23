package main

import (
	"fmt"

	"nexus/internal/app"
	"nexus/internal/catalog"
	"nexus/internal/client"
	"nexus/internal/errors"
	"nexus/internal/execution"
	"nexus/internal/session"

	"github.com/spf13/cobra"
)

// newExecCmd compiles and/or runs a code file on the service
func newExecCmd(c *cli) *cobra.Command {
	var (
		action   string
		location string
	)

	cmd := &cobra.Command{
		Use:   "exec FILE",
		Short: "Compile and/or run a code file on the service",
		Long: `Ask the service to compile, run, or compile and run a code file and print
the result. The exit status is the program's exit code when the service
reports one, 1 for any other failure, and 0 on success.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			act, err := client.ParseAction(action)
			if err != nil {
				return err
			}
			name := args[0]
			if !catalog.IsCode(name) {
				return errors.NewValidationError(fmt.Sprintf("%s is not a code file", name), "file")
			}

			ctx := cmd.Context()
			ctrl := c.controller(location)
			ctrl.Run(ctx, app.OpenExecute{Name: name})
			fmt.Fprintln(c.errOut, mutedText(fmt.Sprintf("%s: %s", act, name)))
			ctrl.Run(ctx, app.Execute{Action: act})

			o, ok := ctrl.Execution().Outcome()
			if ok {
				fmt.Fprintln(c.out, o.Render())
			}
			if err := c.report(cmd, ctrl.State()); err != nil {
				return err
			}
			if !ok {
				return &exitError{code: 1}
			}
			if code := exitStatus(o); code != 0 {
				return &exitError{code: code}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&action, "action", "a", string(client.ActionBoth), "compile, run or both")
	cmd.Flags().StringVar(&location, "location", session.RootLocation, "directory on the service")

	return cmd
}

// exitStatus mirrors an outcome as a process exit status.
func exitStatus(o execution.Outcome) int {
	switch o.Kind {
	case execution.Succeeded:
		return 0
	case execution.Failed:
		if code, known := o.ExitCode(); known && code > 0 && code < 256 {
			return code
		}
	}
	return 1
}
