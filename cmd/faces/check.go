package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/faces/internal/config"
)

func newCheckCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [theme]",
		Short: "Validate a theme file without applying it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootFlags.theme
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return newCommandError("check", "no theme given", fmt.Errorf("theme path is required"), "Pass the theme path or --theme.")
			}

			theme, err := config.Load(path)
			if err != nil {
				return newCommandError("check", path, err, "Fix the reported field or line and try again.")
			}
			levels, err := config.StyleOrder(theme.Styles)
			if err != nil {
				return newCommandError("check", path, err, "Break the inheritance cycle.")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ %s is valid\n", path)
			fmt.Fprintf(out, "  styles:   %d\n", len(theme.Styles))
			fmt.Fprintf(out, "  aliases:  %d\n", len(theme.Aliases))
			fmt.Fprintf(out, "  surfaces: %d\n", len(theme.Surfaces))
			if rootFlags.verbose {
				for i, level := range levels {
					fmt.Fprintf(out, "  level %d: %s\n", i, strings.Join(level, ", "))
				}
			}
			return nil
		},
	}

	return cmd
}
