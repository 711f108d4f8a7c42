package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

// Format is the syntax of a theme file.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// FormatOf picks the format from a file extension. Anything other than
// .toml is read as YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads, decodes and validates a theme file.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, faceerrors.NewParseError(path, 0, err)
	}
	return parse(path, data, FormatOf(path))
}

// Parse decodes and validates theme data.
func Parse(data []byte, format Format) (*Theme, error) {
	return parse("", data, format)
}

func parse(path string, data []byte, format Format) (*Theme, error) {
	raw := make(map[string]any)
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, faceerrors.NewParseError(path, tomlLine(err), err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, faceerrors.NewParseError(path, extractLine(err), err)
		}
	}

	theme, err := Decode(raw)
	if err != nil {
		return nil, faceerrors.NewParseError(path, 0, err)
	}
	theme.Path = path
	if err := ValidateTheme(theme); err != nil {
		return nil, err
	}
	return theme, nil
}

// Decode maps generic data onto a Theme. Unknown keys are rejected and
// scalars are converted where the target type asks for it, so a depth of
// 256 is read as "256".
func Decode(raw map[string]any) (*Theme, error) {
	var theme Theme
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &theme,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode theme: %w", err)
	}
	return &theme, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}

func tomlLine(err error) int {
	var pe toml.ParseError
	if errors.As(err, &pe) {
		return pe.Position.Line
	}
	return extractLine(err)
}
