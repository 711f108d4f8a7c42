package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/faces/internal/attr"
	"github.com/alexisbeaulieu97/faces/internal/color"
	"github.com/alexisbeaulieu97/faces/internal/engine"
	"github.com/alexisbeaulieu97/faces/internal/tty"
)

func applyYAML(t *testing.T, contents string) (*engine.Engine, *Theme) {
	t.Helper()

	theme, err := Load(writeTheme(t, "theme.yaml", contents))
	require.NoError(t, err)

	e := engine.New(theme.EngineOptions(engine.Options{}))
	results, err := Apply(context.Background(), e, theme, ApplyOptions{})
	require.NoError(t, err)
	require.Len(t, results, len(theme.Surfaces))
	return e, theme
}

func TestApplyEndToEnd(t *testing.T) {
	t.Parallel()

	e, _ := applyYAML(t, validYAML)

	assert.Equal(t, 50, e.Options().MaxDepth)
	assert.Equal(t, []attr.Slot{attr.SlotWeight, attr.SlotSlant, attr.SlotWidth, attr.SlotHeight}, e.FontSelectionOrder())
	assert.Equal(t, map[string]string{"hyperlink": "link"}, e.Aliases())
	assert.Equal(t, []string{"term"}, e.SurfaceNames())

	id, err := e.LookupNamed("term", "hyperlink", true)
	require.NoError(t, err)
	face, err := e.Face("term", id)
	require.NoError(t, err)
	assert.Equal(t, attr.On(), face.Attrs[attr.SlotUnderline])
	assert.Equal(t, attr.WeightOf(attr.WeightBold), face.Attrs[attr.SlotWeight], "surface-local override")

	global, err := e.StyleAttribute("link", attr.SlotWeight, engine.Global())
	require.NoError(t, err)
	assert.True(t, global.IsUnspecified())

	tf, err := e.TerminalFace("term", id)
	require.NoError(t, err)
	assert.Equal(t, "#0000ff", tf.Foreground.Hex())

	remaps, err := e.Remaps("term")
	require.NoError(t, err)
	assert.Equal(t, []string{"bold"}, remaps)
}

func TestApplyReplacesSurfaces(t *testing.T) {
	t.Parallel()

	e, theme := applyYAML(t, validYAML)

	id, err := e.LookupNamed("term", "link", true)
	require.NoError(t, err)
	require.Greater(t, id, engine.DefaultFaceID)

	theme.Styles["link"]["foreground"] = "red"
	theme.Surfaces[0].Styles = nil
	_, err = Apply(context.Background(), e, theme, ApplyOptions{})
	require.NoError(t, err)

	id, err = e.LookupNamed("term", "link", true)
	require.NoError(t, err)
	face, err := e.Face("term", id)
	require.NoError(t, err)
	assert.Equal(t, attr.String("red"), face.Attrs[attr.SlotForeground])
	assert.True(t, face.Attrs[attr.SlotWeight].Equal(attr.WeightOf(attr.WeightNormal)))
	assert.Equal(t, []string{"term"}, e.SurfaceNames())
}

func TestApplyFilteredRemap(t *testing.T) {
	t.Parallel()

	e, _ := applyYAML(t, `styles:
  default:
    foreground: black
    background: white
surfaces:
  - name: dark
    depth: 256
    params: {mode: dark}
    remaps:
      default:
        - filtered: {param: mode, value: dark}
          face: {foreground: white, background: black}
        - default
  - name: light
    depth: 256
    params: {mode: light}
    remaps:
      default:
        - filtered: {param: mode, value: dark}
          face: {foreground: white, background: black}
        - default
`)

	dark, err := e.DefaultAttributes("dark")
	require.NoError(t, err)
	light, err := e.DefaultAttributes("light")
	require.NoError(t, err)

	darkID, err := e.LookupBasic("dark", engine.DefaultFaceID)
	require.NoError(t, err)
	darkFace, err := e.Face("dark", darkID)
	require.NoError(t, err)
	assert.Equal(t, attr.String("white"), darkFace.Attrs[attr.SlotForeground])

	lightID, err := e.LookupBasic("light", engine.DefaultFaceID)
	require.NoError(t, err)
	lightFace, err := e.Face("light", lightID)
	require.NoError(t, err)
	assert.Equal(t, attr.String("black"), lightFace.Attrs[attr.SlotForeground])

	assert.Equal(t, attr.String("black"), dark[attr.SlotForeground])
	assert.Equal(t, attr.String("black"), light[attr.SlotForeground])
}

func TestSurfaceConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rgb.txt"), []byte("! comment\n255 128 0\t\tpumpkin\n"), 0o600))
	theme := &Theme{Path: filepath.Join(dir, "theme.yaml")}

	cases := []struct {
		name    string
		surface Surface
		assert  func(t *testing.T, cfg engine.SurfaceConfig, err error)
	}{
		{
			name:    "explicit depth implies capabilities",
			surface: Surface{Name: "t", Depth: "8"},
			assert: func(t *testing.T, cfg engine.SurfaceConfig, err error) {
				require.NoError(t, err)
				assert.Equal(t, engine.KindTTY, cfg.Kind)
				assert.Equal(t, color.Depth8, cfg.Colors.(*color.Palette).Depth())
				assert.Equal(t, tty.CapAll&^tty.CapUnderlineStyled, cfg.Caps)
			},
		},
		{
			name:    "monochrome surface",
			surface: Surface{Name: "t", Depth: "none"},
			assert: func(t *testing.T, cfg engine.SurfaceConfig, err error) {
				require.NoError(t, err)
				assert.Equal(t, tty.CapInverse|tty.CapUnderline|tty.CapBold, cfg.Caps)
			},
		},
		{
			name:    "explicit capabilities win",
			surface: Surface{Name: "t", Depth: "256", Capabilities: []string{"bold", "italic"}},
			assert: func(t *testing.T, cfg engine.SurfaceConfig, err error) {
				require.NoError(t, err)
				assert.Equal(t, tty.CapBold|tty.CapItalic, cfg.Caps)
			},
		},
		{
			name:    "gui surfaces default to true color",
			surface: Surface{Name: "g", Kind: "gui", Foreground: "black", Background: "white"},
			assert: func(t *testing.T, cfg engine.SurfaceConfig, err error) {
				require.NoError(t, err)
				assert.Equal(t, engine.KindGUI, cfg.Kind)
				assert.Equal(t, color.DepthTrue, cfg.Colors.(*color.Palette).Depth())
				assert.Equal(t, "black", cfg.Foreground)
			},
		},
		{
			name:    "color file relative to the theme",
			surface: Surface{Name: "t", Depth: "truecolor", ColorFile: "rgb.txt"},
			assert: func(t *testing.T, cfg engine.SurfaceConfig, err error) {
				require.NoError(t, err)
				device, _, ok := cfg.Colors.LookupColor("pumpkin")
				require.True(t, ok)
				assert.Equal(t, "#ff8000", device.Hex())
			},
		},
		{
			name:    "missing color file adds nothing",
			surface: Surface{Name: "t", ColorFile: "absent.txt", Depth: "16"},
			assert: func(t *testing.T, cfg engine.SurfaceConfig, err error) {
				require.NoError(t, err)
				_, _, ok := cfg.Colors.LookupColor("pumpkin")
				assert.False(t, ok)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := SurfaceConfig(theme, &tc.surface)
			tc.assert(t, cfg, err)
		})
	}
}
