package bbf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

var (
	quoteColor      = Color{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	codeBackground  = Color{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	transparentName = "transparent"
)

// ParseColor accepts #RGB, #ARGB, #RRGGBB, #AARRGGBB and the SVG/CSS color
// names (case-insensitive, plus "transparent").
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("empty color")
	}
	if !strings.HasPrefix(s, "#") {
		name := strings.ToLower(s)
		if name == transparentName {
			return Color{}, nil
		}
		c, ok := colornames.Map[name]
		if !ok {
			return Color{}, fmt.Errorf("unknown color name %q", s)
		}
		return Color{R: c.R, G: c.G, B: c.B, A: 0xff}, nil
	}
	hex := s[1:]
	alpha := uint8(0xff)
	switch len(hex) {
	case 3, 6:
	case 4:
		a, err := strconv.ParseUint(hex[:1], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q", s)
		}
		alpha = uint8(a * 0x11)
		hex = hex[1:]
	case 8:
		a, err := strconv.ParseUint(hex[:2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q", s)
		}
		alpha = uint8(a)
		hex = hex[2:]
	default:
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

// MustParseColor is ParseColor for trusted constants; it panics on error.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as #RRGGBB, ignoring alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String returns #RRGGBB for opaque colors and #AARRGGBB otherwise.
func (c Color) String() string {
	if c.A == 0xff {
		return c.Hex()
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
