package main

import (
	"fmt"
	"os"

	"nexus/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newConfigCmd manages the configuration file
func newConfigCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(c.cfgFile); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to replace it)", c.cfgFile)
			}
			if err := config.SaveConfig(config.New(), c.cfgFile); err != nil {
				return err
			}
			fmt.Fprintln(c.out, successText("Wrote "+c.cfgFile))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "replace an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(c.cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprintln(c.out, mutedText("# "+c.cfgFile))
			fmt.Fprint(c.out, string(data))
			return nil
		},
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "List the available color themes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListThemes() {
				marker := "  "
				if name == c.cfg.UI.Theme {
					marker = "* "
				}
				fmt.Fprintln(c.out, marker+name)
			}
		},
	}

	cmd.AddCommand(initCmd, showCmd, themesCmd)
	return cmd
}
