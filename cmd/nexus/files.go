package main

import (
	"fmt"

	"nexus/internal/app"
	"nexus/internal/catalog"
	"nexus/internal/session"
	"nexus/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// newListCmd lists the catalog
func newListCmd(c *cli) *cobra.Command {
	var (
		code   bool
		recent bool
		query  string
		long   bool
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List files on the service",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := c.controller(session.RootLocation)
			ctrl.Run(cmd.Context(), app.Reload{})

			section := catalog.SectionAll
			switch {
			case code:
				section = catalog.SectionCode
			case recent:
				section = catalog.SectionRecent
			}
			ctrl.Run(cmd.Context(), app.SetSection{Section: section})
			ctrl.Run(cmd.Context(), app.Search{Query: query})

			s := ctrl.State()
			visible := s.Visible()
			if long {
				fmt.Fprintln(c.out, fileTable(visible))
				stats := s.Stats()
				fmt.Fprintln(c.out, mutedText(fmt.Sprintf("%s shown, %s files, %s code",
					humanize.Comma(int64(len(visible))), humanize.Comma(int64(stats.Total)), humanize.Comma(int64(stats.Code)))))
			} else {
				for _, f := range visible {
					fmt.Fprintln(c.out, f.Name)
				}
			}
			return c.report(cmd, s)
		},
	}

	cmd.Flags().BoolVar(&code, "code", false, "only code files")
	cmd.Flags().BoolVar(&recent, "recent", false, "only the most recent files")
	cmd.Flags().StringVarP(&query, "search", "s", "", "case-insensitive name filter")
	cmd.Flags().BoolVarP(&long, "long", "l", false, "show type and code columns")
	cmd.MarkFlagsMutuallyExclusive("code", "recent")

	return cmd
}

func fileTable(files []catalog.FileEntry) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Theme.Muted).
		Headers("", "NAME", "TYPE", "CODE")
	for _, f := range files {
		mark := ""
		if f.IsCode {
			mark = "⚡"
		}
		t.Row(f.Icon, f.Name, f.Extension, mark)
	}
	return t.String()
}

// newCatCmd prints a file
func newCatCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "cat FILE",
		Short: "Print the content of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := c.controller(session.RootLocation)
			ctrl.Run(cmd.Context(), app.OpenView{Name: args[0]})

			s := ctrl.State()
			if s.Active == session.ViewContent {
				fmt.Fprint(c.out, s.ViewContent)
			}
			return c.report(cmd, s)
		},
	}
}

// newCreateCmd creates a file, negotiating overwrites
func newCreateCmd(c *cli) *cobra.Command {
	var (
		from     string
		location string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a file on the service",
		Long: `Create a file on the service. If the file already exists you are asked
before it is overwritten, unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := c.readSource(from)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			ctrl := c.controller(location)
			ctrl.Run(ctx, app.OpenCreate{})
			form := ctrl.State().Form
			form.Name = args[0]
			form.Content = content
			ctrl.Run(ctx, app.UpdateCreateForm{Form: form})
			ctrl.Run(ctx, app.CreateFile{})

			s := ctrl.State()
			if s.Active == session.ViewOverwrite {
				prompt := fmt.Sprintf("%q already exists in %s. Overwrite it?", s.Form.Name, s.Form.Location)
				if force || c.confirm(prompt) {
					ctrl.Run(ctx, app.ConfirmOverwrite{})
				} else {
					ctrl.Run(ctx, app.CancelOverwrite{})
					fmt.Fprintln(c.errOut, infoText("Nothing was written"))
				}
			}
			return c.report(cmd, s)
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "read content from a local file (- for stdin)")
	cmd.Flags().StringVar(&location, "location", session.RootLocation, "directory on the service")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite without asking")

	return cmd
}

// newEditCmd replaces a file's content
func newEditCmd(c *cli) *cobra.Command {
	var (
		from     string
		location string
	)

	cmd := &cobra.Command{
		Use:   "edit NAME",
		Short: "Replace the content of an existing file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := c.readSource(from)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			ctrl := c.controller(location)
			ctrl.Run(ctx, app.OpenEdit{Name: args[0]})

			s := ctrl.State()
			if s.Active == session.ViewEdit {
				if content == s.EditContent {
					fmt.Fprintln(c.errOut, infoText("Content unchanged"))
					ctrl.Run(ctx, app.Close{})
				} else {
					ctrl.Run(ctx, app.SaveEdit{Content: content})
				}
			}
			return c.report(cmd, s)
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "read content from a local file (- for stdin)")
	cmd.Flags().StringVar(&location, "location", session.RootLocation, "directory on the service")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

// newRemoveCmd deletes a file after confirmation
func newRemoveCmd(c *cli) *cobra.Command {
	var (
		yes      bool
		location string
	)

	cmd := &cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"delete"},
		Short:   "Delete a file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl := c.controller(location)
			ctrl.Run(ctx, app.DeleteFile{Name: args[0]})

			if yes || c.confirm(fmt.Sprintf("Are you sure you want to delete %q?", args[0])) {
				ctrl.Run(ctx, app.ConfirmDelete{})
			} else {
				ctrl.Run(ctx, app.Close{})
				fmt.Fprintln(c.errOut, infoText("Nothing was deleted"))
			}
			return c.report(cmd, ctrl.State())
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().StringVar(&location, "location", session.RootLocation, "directory on the service")

	return cmd
}
