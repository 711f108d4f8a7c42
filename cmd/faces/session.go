package main

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/faces/internal/config"
	"github.com/alexisbeaulieu97/faces/internal/engine"
	"github.com/alexisbeaulieu97/faces/internal/logger"
	"github.com/alexisbeaulieu97/faces/internal/merge"
	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

// terminalSurface names the surface created when no theme is given.
const terminalSurface = "terminal"

// session is an engine loaded from the command line.
type session struct {
	engine  *engine.Engine
	theme   *config.Theme
	logger  *logger.Logger
	surface string
	results []engine.RefreshResult
}

func newLogger(cmd *cobra.Command, flags *rootFlags) (*logger.Logger, error) {
	level := "warn"
	if flags.verbose {
		level = "debug"
	}
	return logger.New(logger.Options{
		Level:         level,
		HumanReadable: !flags.jsonLogs,
		Writer:        cmd.ErrOrStderr(),
		Component:     "faces",
	})
}

// openSession builds an engine from the theme flag. base supplies what the
// theme cannot, such as an observer.
func openSession(ctx context.Context, cmd *cobra.Command, flags *rootFlags, base engine.Options) (*session, error) {
	log, err := newLogger(cmd, flags)
	if err != nil {
		return nil, newCommandError("start", "configuring logging", err, "Check the logging flags.")
	}
	base.Logger = log

	s := &session{logger: log}
	if flags.theme == "" {
		s.engine = engine.New(base)
		cfg, err := config.SurfaceConfig(&config.Theme{}, &config.Surface{
			Name:           terminalSurface,
			Depth:          "auto",
			BackgroundMode: backgroundMode(cmd.OutOrStdout()),
		})
		if err != nil {
			return nil, newCommandError("start", "detecting the terminal", err, "Pass a theme with --theme.")
		}
		if _, err := s.engine.AddSurface(cfg); err != nil {
			return nil, err
		}
		s.results, err = s.engine.Refresh(ctx)
		if err != nil {
			return nil, newCommandError("start", "realizing the terminal faces", err, "Run with --verbose for details.")
		}
	} else {
		theme, err := config.Load(flags.theme)
		if err != nil {
			return nil, newCommandError("load theme", flags.theme, err, "Fix the reported field or line and try again.")
		}
		s.theme = theme
		s.engine = engine.New(theme.EngineOptions(base))
		s.results, err = config.Apply(ctx, s.engine, theme, config.ApplyOptions{Logger: log})
		if err != nil {
			return nil, newCommandError("apply theme", flags.theme, err, "Run 'faces check' on the theme for details.")
		}
	}

	s.surface = flags.surface
	if s.surface == "" {
		names := s.engine.SurfaceNames()
		if len(names) == 0 {
			return nil, newCommandError("select surface", "the theme defines no surfaces", errors.New("no surfaces"), "Add an entry under surfaces: in the theme.")
		}
		s.surface = names[0]
	}
	if _, err := s.engine.Surface(s.surface); err != nil {
		return nil, newCommandError("select surface", s.surface, err, "Pass one of: "+strings.Join(s.engine.SurfaceNames(), ", "))
	}
	return s, nil
}

// backgroundMode asks the terminal behind w for its background, when w is
// a terminal at all.
func backgroundMode(w io.Writer) string {
	if !isTerminal(w) {
		return engine.BackgroundLight
	}
	if termenv.HasDarkBackground() {
		return engine.BackgroundDark
	}
	return engine.BackgroundLight
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// parseRefArg reads a face reference from the command line. Words are
// style names. Arguments starting with '{' or '[' are YAML flow syntax, so
// '{weight: bold, foreground: red}' is a property list.
func parseRefArg(arg string) (merge.Ref, error) {
	s := strings.TrimSpace(arg)
	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
		var raw any
		if err := yaml.Unmarshal([]byte(s), &raw); err != nil {
			return nil, faceerrors.NewInvalidReferenceError(arg, err.Error())
		}
		return config.ParseRef(raw)
	}
	return config.ParseRef(s)
}

// parseRefArgs combines several arguments into one reference. Earlier
// arguments take precedence.
func parseRefArgs(args []string) (merge.Ref, error) {
	refs := make(merge.List, 0, len(args))
	for _, arg := range args {
		ref, err := parseRefArg(arg)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	if len(refs) == 1 {
		return refs[0], nil
	}
	return refs, nil
}
