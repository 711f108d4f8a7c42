package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/faces/internal/config"
	"github.com/alexisbeaulieu97/faces/internal/engine"
	"github.com/alexisbeaulieu97/faces/internal/preview"
	"github.com/alexisbeaulieu97/faces/internal/tui"
)

func newBrowseCmd(rootFlags *rootFlags) *cobra.Command {
	var sample string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse styles interactively, each shown in its face",
		Long: `Launch the interactive browser. With a theme, edits to the file are
applied while browsing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			s, err := openSession(ctx, cmd, rootFlags, engine.Options{})
			if err != nil {
				return err
			}

			opts := tui.Options{
				Renderer:   preview.New(cmd.OutOrStdout()),
				Surface:    s.surface,
				SampleText: sample,
			}
			if s.theme != nil {
				w, err := config.NewWatcher(s.theme.Path, s.engine, config.ApplyOptions{Logger: s.logger})
				if err != nil {
					return newCommandError("browse", "watching the theme", err, "Check that the theme directory is readable.")
				}
				defer w.Close()

				reloads := make(chan error, 1)
				w.OnReload(func(_ *config.Theme, err error) {
					select {
					case reloads <- err:
					default:
					}
				})
				go func() { _ = w.Run(ctx) }()
				opts.Reloads = reloads
			}

			program := tea.NewProgram(
				tui.NewModel(s.engine, opts),
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := program.Run(); err != nil {
				return newCommandError("browse", "running the browser", err, "Run in an interactive terminal.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sample, "sample", "", "Sample text shown in each face")

	return cmd
}
