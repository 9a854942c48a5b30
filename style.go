package bbf

// Weight is the font weight of a run.
type Weight uint8

const (
	WeightUnset Weight = iota
	WeightNormal
	WeightBold
)

// Slant is the font style of a run.
type Slant uint8

const (
	SlantUnset Slant = iota
	SlantNormal
	SlantItalic
)

// Decoration is the text decoration of a run.
type Decoration uint8

const (
	DecorationNone Decoration = iota
	DecorationUnderline
	DecorationStrikethrough
)

func (w Weight) String() string {
	switch w {
	case WeightNormal:
		return "normal"
	case WeightBold:
		return "bold"
	default:
		return ""
	}
}

func (s Slant) String() string {
	switch s {
	case SlantNormal:
		return "normal"
	case SlantItalic:
		return "italic"
	default:
		return ""
	}
}

func (d Decoration) String() string {
	switch d {
	case DecorationUnderline:
		return "underline"
	case DecorationStrikethrough:
		return "strikethrough"
	default:
		return ""
	}
}

// TextStyle is the resolved style of a run. Zero-valued fields are unset and
// render with the host's defaults.
type TextStyle struct {
	FontFamily string
	FontSize   *float64
	Weight     Weight
	Slant      Slant
	Decoration Decoration
	Foreground *Color
	Background *Color
}

// IsZero reports whether no attribute is set.
func (s TextStyle) IsZero() bool {
	return s.FontFamily == "" && s.FontSize == nil && s.Weight == WeightUnset &&
		s.Slant == SlantUnset && s.Decoration == DecorationNone &&
		s.Foreground == nil && s.Background == nil
}

// Over returns s with every unset attribute taken from base.
func (s TextStyle) Over(base TextStyle) TextStyle {
	out := s
	if out.FontFamily == "" {
		out.FontFamily = base.FontFamily
	}
	if out.FontSize == nil {
		out.FontSize = base.FontSize
	}
	if out.Weight == WeightUnset {
		out.Weight = base.Weight
	}
	if out.Slant == SlantUnset {
		out.Slant = base.Slant
	}
	if out.Decoration == DecorationNone {
		out.Decoration = base.Decoration
	}
	if out.Foreground == nil {
		out.Foreground = base.Foreground
	}
	if out.Background == nil {
		out.Background = base.Background
	}
	return out
}

// pendingImage is an [img] whose attribute has been read but not emitted.
type pendingImage struct {
	uri    string
	width  *float64
	height *float64
}

// styleContext accumulates the attributes set by open tags during one parse.
// A close tag clears what its open tag set; there is no save/restore, so an
// inner close of a nested tag of the same kind also clears the outer one.
type styleContext struct {
	fontFamily string
	fontSize   *float64
	weight     Weight
	slant      Slant
	decoration Decoration
	foreground *Color
	background *Color

	linkTarget string
	hasLink    bool
	image      *pendingImage

	listMode  bool
	listItems int
}

func (c *styleContext) snapshot() TextStyle {
	return TextStyle{
		FontFamily: c.fontFamily,
		FontSize:   copyFloat(c.fontSize),
		Weight:     c.weight,
		Slant:      c.slant,
		Decoration: c.decoration,
		Foreground: copyColor(c.foreground),
		Background: copyColor(c.background),
	}
}

// run materializes text with the current style.
func (c *styleContext) run(text string) *Run {
	return &Run{Text: text, Style: c.snapshot()}
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func copyColor(c *Color) *Color {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}
