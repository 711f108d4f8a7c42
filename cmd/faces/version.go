package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/faces/internal/engine"
	"github.com/alexisbeaulieu97/faces/internal/merge"
)

// Set at link time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type buildInfo struct {
	Version    string `json:"version"`
	Commit     string `json:"commit"`
	Built      string `json:"built"`
	Go         string `json:"go"`
	BasicFaces int    `json:"basic_faces"`
	MaxDepth   int    `json:"max_depth"`
}

// currentBuild fills whatever the linker left unset from the module's
// embedded build information.
func currentBuild() buildInfo {
	info := buildInfo{
		Version:    version,
		Commit:     commit,
		Built:      date,
		Go:         runtime.Version(),
		BasicFaces: len(engine.BasicStyles),
		MaxDepth:   merge.DefaultMaxDepth,
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && info.Commit == "none":
			info.Commit = s.Value
		case s.Key == "vcs.time" && info.Built == "unknown":
			info.Built = s.Value
		}
	}
	return info
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := currentBuild()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Fprintf(out, "faces %s (%s)\n", info.Version, info.Go)
			fmt.Fprintf(out, "commit: %s\nbuilt:  %s\n", info.Commit, info.Built)
			fmt.Fprintf(out, "engine: %d basic faces, merge depth %d\n", info.BasicFaces, info.MaxDepth)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print build information as JSON")
	return cmd
}
