package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/faces/internal/engine"
	"github.com/alexisbeaulieu97/faces/internal/preview"
)

type resolveOptions struct {
	jsonOutput bool
	preview    bool
	sample     string
}

func newResolveCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve <ref>...",
		Short: "Realize a face from style names and property lists",
		Long: `Realize the face for one or more references on a surface. Earlier
references take precedence. A reference is a style name or a YAML flow
mapping, for example:

  faces resolve link '{weight: bold}'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, rootFlags, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the face as JSON")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "Render a sample even when the output is not a terminal")
	cmd.Flags().StringVar(&opts.sample, "sample", "The quick brown fox jumps over the lazy dog", "Sample text for the preview")

	return cmd
}

type faceJSON struct {
	Surface  string         `json:"surface"`
	ID       int            `json:"id"`
	Attrs    map[string]any `json:"attrs"`
	Terminal map[string]any `json:"terminal,omitempty"`
}

func runResolve(cmd *cobra.Command, rootFlags *rootFlags, opts *resolveOptions, args []string) error {
	ref, err := parseRefArgs(args)
	if err != nil {
		return newCommandError("resolve", "parsing the reference", err, "Use a style name or a mapping such as '{foreground: red}'.")
	}

	s, err := openSession(cmd.Context(), cmd, rootFlags, engine.Options{})
	if err != nil {
		return err
	}

	// Unknown styles and bad values are skipped when realizing; say so.
	if _, err := s.engine.MergeAdHoc(s.surface, ref); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}

	id, err := s.engine.ComputeCharFace(s.surface, ref)
	if err != nil {
		return newCommandError("resolve", ref.String(), err, "Run 'faces list' to see the defined styles.")
	}
	face, err := s.engine.Face(s.surface, id)
	if err != nil {
		return err
	}
	tf, err := s.engine.TerminalFace(s.surface, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		payload := faceJSON{Surface: s.surface, ID: id, Attrs: face.Attrs.Plain()}
		if tf != nil {
			payload.Terminal = tf.Plain()
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	fmt.Fprintf(out, "Surface: %s\n", s.surface)
	fmt.Fprintf(out, "Face:    %d\n", id)
	if tf != nil {
		fmt.Fprintf(out, "Terminal: %s\n", tf.String())
	}
	fmt.Fprintln(out)
	if err := writeAttrs(out, face.Attrs.Plain()); err != nil {
		return err
	}

	if opts.preview || isTerminal(out) {
		r := preview.New(out)
		var sample string
		if tf != nil {
			sample = r.Sample(tf, opts.sample)
		} else {
			sf, err := s.engine.Surface(s.surface)
			if err != nil {
				return err
			}
			sample = r.StyleAttrs(&face.Attrs, sf.Colors()).Render(opts.sample)
		}
		fmt.Fprintf(out, "\n%s\n", sample)
	}
	return nil
}

func writeAttrs(w io.Writer, attrs map[string]any) error {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	writer := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ATTRIBUTE\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(writer, "%s\t%v\n", k, attrs[k])
	}
	return writer.Flush()
}
