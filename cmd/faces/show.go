package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/faces/internal/engine"
	"github.com/alexisbeaulieu97/faces/internal/facecache"
	"github.com/alexisbeaulieu97/faces/pkg/diff"
)

type showOptions struct {
	jsonOutput bool
	save       string
	from       string
	diffWith   string
}

func newShowCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the realized faces of a surface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the snapshot as JSON")
	cmd.Flags().StringVar(&opts.save, "save", "", "Also write the snapshot to this file")
	cmd.Flags().StringVar(&opts.from, "from", "", "Show a snapshot saved earlier instead of loading the theme")
	cmd.Flags().StringVar(&opts.diffWith, "diff", "", "Compare against a snapshot saved earlier")

	return cmd
}

func runShow(cmd *cobra.Command, rootFlags *rootFlags, opts *showOptions) error {
	var snap facecache.Snapshot
	if opts.from != "" {
		var err error
		snap, err = facecache.ReadSnapshot(opts.from)
		if err != nil {
			return newCommandError("show", fmt.Sprintf("reading snapshot %q", opts.from), err, "Write one with 'faces show --save'.")
		}
	} else {
		s, err := openSession(cmd.Context(), cmd, rootFlags, engine.Options{})
		if err != nil {
			return err
		}
		snap, err = s.engine.Snapshot(s.surface)
		if err != nil {
			return err
		}
	}

	if opts.save != "" {
		if err := snap.WriteFile(opts.save); err != nil {
			return newCommandError("show", fmt.Sprintf("saving snapshot to %q", opts.save), err, "Check that the directory is writable.")
		}
	}

	if opts.diffWith != "" {
		before, err := facecache.ReadSnapshot(opts.diffWith)
		if err != nil {
			return newCommandError("show", fmt.Sprintf("reading snapshot %q", opts.diffWith), err, "Write one with 'faces show --save'.")
		}
		out := diff.Snapshots(before, snap)
		if out == "" {
			out = "No differences.\n"
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(snap)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Surface: %s\n", snap.Surface)
	fmt.Fprintf(out, "Faces:   %d\n\n", len(snap.Faces))

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tBASE\tHASH\tATTRIBUTES")
	for _, f := range snap.Faces {
		base := "yes"
		if !f.Base {
			base = fmt.Sprintf("of %d", f.BaseID)
		}
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\n", f.ID, base, f.Hash, summarize(f.Attrs))
	}
	return writer.Flush()
}

// summarize prints attributes as key=value pairs in name order.
func summarize(attrs map[string]any) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, attrs[k]))
	}
	return strings.Join(parts, " ")
}
