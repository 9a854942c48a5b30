package bbf

import (
	"sort"
	"strings"

	"pkt.systems/bbf/internal/palette"
)

// Styles groups the base styles the renderer applies per role. Styles from
// the markup take precedence over them attribute by attribute.
type Styles struct {
	Text       TextStyle
	LinkText   TextStyle
	LinkURL    TextStyle
	ImageFrame TextStyle
	Caption    TextStyle
}

// Theme provides named styles for BBCode rendering.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

func paletteColor(hex string) *Color {
	if hex == "" {
		return nil
	}
	c, err := ParseColor(hex)
	if err != nil {
		return nil
	}
	return &c
}

func stylesFromPalette(p palette.Palette) Styles {
	return Styles{
		Text:       TextStyle{Foreground: paletteColor(p.Text)},
		LinkText:   TextStyle{Decoration: DecorationUnderline, Foreground: paletteColor(p.LinkText)},
		LinkURL:    TextStyle{Foreground: paletteColor(p.LinkURL)},
		ImageFrame: TextStyle{Foreground: paletteColor(p.ImageFrame)},
		Caption:    TextStyle{Slant: SlantItalic, Foreground: paletteColor(p.Caption)},
	}
}

func builtin(name string, p palette.Palette) Theme {
	return theme{name: name, styles: stylesFromPalette(p)}
}

var builtinThemes = map[string]Theme{
	"default":          builtin("default", palette.PaletteDefault),
	"boring":           builtin("boring", palette.PaletteBoring),
	"outrun-electric":  builtin("outrun-electric", palette.PaletteOutrunElectric),
	"gruvbox":          builtin("gruvbox", palette.PaletteGruvbox),
	"gruvbox-light":    builtin("gruvbox-light", palette.PaletteGruvboxLight),
	"dracula":          builtin("dracula", palette.PaletteDracula),
	"nord":             builtin("nord", palette.PaletteNord),
	"tokyo-night":      builtin("tokyo-night", palette.PaletteTokyoNight),
	"catppuccin-mocha": builtin("catppuccin-mocha", palette.PaletteCatppuccinMocha),
	"solarized-dark":   builtin("solarized-dark", palette.PaletteSolarizedDark),
	"solarized-light":  builtin("solarized-light", palette.PaletteSolarizedLight),
	"github-dark":      builtin("github-dark", palette.PaletteGithubDark),
	"github-light":     builtin("github-light", palette.PaletteGithubLight),
	"rose-pine":        builtin("rose-pine", palette.PaletteRosePine),
	"one-dark":         builtin("one-dark", palette.PaletteOneDark),
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}

// BoringTheme returns the built-in theme without colors.
func BoringTheme() Theme {
	return builtinThemes["boring"]
}
