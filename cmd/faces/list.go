package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/faces/internal/engine"
	"github.com/alexisbeaulieu97/faces/internal/preview"
)

type listOptions struct {
	jsonOutput bool
	surfaces   bool
	samples    bool
}

func newListCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List styles, aliases and surfaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), cmd, rootFlags, engine.Options{})
			if err != nil {
				return err
			}
			if opts.surfaces {
				return renderSurfaces(cmd, s, opts)
			}
			return renderStyles(cmd, s, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&opts.surfaces, "surfaces", false, "List surfaces instead of styles")
	cmd.Flags().BoolVar(&opts.samples, "samples", false, "Render each style name in its face")

	return cmd
}

type styleJSON struct {
	Name    string `json:"name"`
	Face    int    `json:"face"`
	AliasOf string `json:"alias_of,omitempty"`
}

func renderStyles(cmd *cobra.Command, s *session, opts *listOptions) error {
	aliases := s.engine.Aliases()
	rows := make([]styleJSON, 0)
	for _, name := range s.engine.StyleNames() {
		id, err := s.engine.LookupNamed(s.surface, name, false)
		if err != nil {
			s.logger.WithFields(map[string]any{"face": name}).Warn(err.Error())
			id = -1
		}
		rows = append(rows, styleJSON{Name: name, Face: id})
	}
	aliasNames := make([]string, 0, len(aliases))
	for name := range aliases {
		aliasNames = append(aliasNames, name)
	}
	sort.Strings(aliasNames)
	for _, name := range aliasNames {
		id, err := s.engine.LookupNamed(s.surface, name, false)
		if err != nil {
			id = -1
		}
		rows = append(rows, styleJSON{Name: name, Face: id, AliasOf: aliases[name]})
	}

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(rows)
	}

	var r *preview.Renderer
	if opts.samples {
		r = preview.New(cmd.OutOrStdout())
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "STYLE\tFACE\tALIAS OF")
	for _, row := range rows {
		name := row.Name
		if r != nil && row.Face >= 0 {
			if tf, err := s.engine.TerminalFace(s.surface, row.Face); err == nil && tf != nil {
				name = r.Sample(tf, name)
			}
		}
		fmt.Fprintf(writer, "%s\t%d\t%s\n", name, row.Face, valueOrFallback(row.AliasOf, "-"))
	}
	return writer.Flush()
}

type surfaceJSON struct {
	Name           string   `json:"name"`
	Kind           string   `json:"kind"`
	BackgroundMode string   `json:"background_mode"`
	Faces          int      `json:"faces"`
	Remaps         []string `json:"remaps"`
}

func renderSurfaces(cmd *cobra.Command, s *session, opts *listOptions) error {
	names := s.engine.SurfaceNames()
	rows := make([]surfaceJSON, 0, len(names))
	for _, name := range names {
		sf, err := s.engine.Surface(name)
		if err != nil {
			continue
		}
		mode, _ := s.engine.BackgroundMode(name)
		remaps, _ := s.engine.Remaps(name)
		rows = append(rows, surfaceJSON{
			Name:           name,
			Kind:           sf.Kind().String(),
			BackgroundMode: mode,
			Faces:          sf.Cache().Len(),
			Remaps:         remaps,
		})
	}

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(rows)
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "SURFACE\tKIND\tBACKGROUND\tFACES\tREMAPS")
	for _, row := range rows {
		remaps := "-"
		if len(row.Remaps) > 0 {
			remaps = fmt.Sprint(row.Remaps)
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%d\t%s\n", row.Name, row.Kind, row.BackgroundMode, row.Faces, remaps)
	}
	return writer.Flush()
}

func valueOrFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
