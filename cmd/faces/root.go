package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	theme    string
	surface  string
	verbose  bool
	jsonLogs bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "faces",
		Short:         "Resolve, realize and inspect display faces from a theme",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.theme, "theme", "t", "", "Theme file (YAML or TOML); without one a single terminal surface is detected")
	cmd.PersistentFlags().StringVarP(&flags.surface, "surface", "s", "", "Surface to work on (defaults to the first)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&flags.jsonLogs, "log-json", false, "Write logs as JSON")

	cmd.AddCommand(newResolveCmd(flags))
	cmd.AddCommand(newSupportsCmd(flags))
	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newShowCmd(flags))
	cmd.AddCommand(newCheckCmd(flags))
	cmd.AddCommand(newBrowseCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
