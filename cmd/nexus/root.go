package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"nexus/internal/app"
	"nexus/internal/catalog"
	"nexus/internal/client"
	"nexus/internal/config"
	"nexus/internal/log"
	"nexus/internal/session"
	"nexus/internal/tui/styles"

	"github.com/spf13/cobra"
)

// exitError carries a process exit status without an extra message; the
// command has already reported what went wrong.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// cli is the state shared by every command of one invocation.
type cli struct {
	cfgFile string
	cfg     *config.Config

	svc      client.FileService
	canceler app.Canceler

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	// Overridden in tests
	logOutput  io.Writer
	newService func(cfg *config.Config) (client.FileService, app.Canceler, error)
}

func newCLI() *cli {
	return &cli{
		in:         os.Stdin,
		out:        os.Stdout,
		errOut:     os.Stderr,
		newService: dialService,
	}
}

func dialService(cfg *config.Config) (client.FileService, app.Canceler, error) {
	c, err := client.New(cfg.Server.URL, client.WithTimeout(cfg.Timeout()))
	if err != nil {
		return nil, nil, err
	}
	return c, c.Tracker(), nil
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(newCLI())
}

func newRootCmd(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nexus",
		Short: "Terminal client for the NEXUS file service",
		Long: `
  ◆ NEXUS

Browse, create, edit, delete and execute files held by a NEXUS file
service. Run without a subcommand to start the interactive interface.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE:              c.runTUI,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.config/nexus/config.yaml)")
	flags.String("server", "", "file service URL")
	flags.Int("timeout", 0, "request timeout in seconds")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("view", "", "initial view mode (grid or list)")
	flags.String("theme", "", "color theme ("+strings.Join(config.ListThemes(), ", ")+")")

	rootCmd.AddCommand(
		newTUICmd(c),
		newListCmd(c),
		newCatCmd(c),
		newCreateCmd(c),
		newEditCmd(c),
		newRemoveCmd(c),
		newExecCmd(c),
		newBrowseCmd(c),
		newWatchCmd(c),
		newConfigCmd(c),
	)

	return rootCmd
}

// setup loads configuration, points logging away from the terminal and
// connects the service client.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	path := c.cfgFile
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return err
		}
	}

	cfg, err := config.LoadConfigFile(path, cmd.Flags())
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.cfgFile = path

	switch {
	case c.logOutput != nil:
		log.Configure(log.WithOutput(c.logOutput))
	case cfg.Log.File != "":
		log.Configure(log.WithFile(cfg.Log.File))
	}
	log.SetDebug(cfg.Log.Debug)
	styles.Use(cfg.UI.Theme)

	// config subcommands work without a reachable service.
	if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
		return nil
	}

	svc, canceler, err := c.newService(cfg)
	if err != nil {
		return err
	}
	c.svc, c.canceler = svc, canceler
	log.LogWithFields(log.F("server", cfg.Server.URL), log.F("command", cmd.Name())).Debug("Client ready")
	return nil
}

// controller builds an orchestration controller over the configured
// service, positioned at location.
func (c *cli) controller(location string) *app.Controller {
	s := session.New()
	s.SetLocation(location)
	if mode, err := catalog.ParseViewMode(c.cfg.UI.ViewMode); err == nil {
		s.ViewMode = mode
	}

	opts := []app.Option{app.WithState(s)}
	if c.canceler != nil {
		opts = append(opts, app.WithCanceler(c.canceler))
	}
	return app.New(c.svc, opts...)
}

// report prints the notices raised so far and fails the command if any of
// them was an error or the command was interrupted.
func (c *cli) report(cmd *cobra.Command, s *session.State) error {
	failed := false
	for _, n := range s.DrainNotices() {
		fmt.Fprintln(c.errOut, noticeText(n))
		if n.Level == session.LevelError {
			failed = true
		}
	}
	if cmd.Context() != nil && cmd.Context().Err() != nil {
		return &exitError{code: 130}
	}
	if failed {
		return &exitError{code: 1}
	}
	return nil
}

// confirm asks a yes/no question on the command's input.
func (c *cli) confirm(prompt string) bool {
	fmt.Fprintf(c.errOut, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(c.errOut)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// readSource returns the content named by a --from flag; "-" reads stdin.
func (c *cli) readSource(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "-" {
		data, err := io.ReadAll(c.in)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
