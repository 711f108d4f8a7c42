package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/faces/internal/engine"
)

func newSupportsCmd(rootFlags *rootFlags) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "supports <ref>...",
		Short: "Report whether a surface can display the given attributes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRefArgs(args)
			if err != nil {
				return newCommandError("check support", "parsing the reference", err, "Use a style name or a mapping such as '{slant: italic}'.")
			}
			s, err := openSession(cmd.Context(), cmd, rootFlags, engine.Options{})
			if err != nil {
				return err
			}
			ok, err := s.engine.SupportsAttributes(s.surface, ref)
			if err != nil {
				return newCommandError("check support", ref.String(), err, "Run 'faces list' to see the defined styles.")
			}
			if !ok {
				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: not supported on %s\n", ref, s.surface)
				}
				return errUnsupported
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: supported on %s\n", ref, s.surface)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only set the exit status")

	return cmd
}
