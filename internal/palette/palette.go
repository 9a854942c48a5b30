// Package palette holds the color sets behind the built-in themes.
package palette

// Palette assigns a hex color to each renderer role. An empty string leaves
// the role uncolored.
type Palette struct {
	Text       string
	LinkText   string
	LinkURL    string
	ImageFrame string
	Caption    string
}

// PaletteBoring colors nothing.
var PaletteBoring = Palette{}

var (
	PaletteDefault = Palette{
		Text:       "",
		LinkText:   "#5FAFFF",
		LinkURL:    "#8A8A8A",
		ImageFrame: "#AF87FF",
		Caption:    "#BCBCBC",
	}
	PaletteOutrunElectric = Palette{
		Text:       "#F8F8F2",
		LinkText:   "#00E5FF",
		LinkURL:    "#7B6CF6",
		ImageFrame: "#FF2E97",
		Caption:    "#FFD319",
	}
	PaletteGruvbox = Palette{
		Text:       "#EBDBB2",
		LinkText:   "#83A598",
		LinkURL:    "#928374",
		ImageFrame: "#D3869B",
		Caption:    "#FABD2F",
	}
	PaletteGruvboxLight = Palette{
		Text:       "#3C3836",
		LinkText:   "#076678",
		LinkURL:    "#928374",
		ImageFrame: "#8F3F71",
		Caption:    "#B57614",
	}
	PaletteDracula = Palette{
		Text:       "#F8F8F2",
		LinkText:   "#8BE9FD",
		LinkURL:    "#6272A4",
		ImageFrame: "#BD93F9",
		Caption:    "#F1FA8C",
	}
	PaletteNord = Palette{
		Text:       "#D8DEE9",
		LinkText:   "#88C0D0",
		LinkURL:    "#4C566A",
		ImageFrame: "#81A1C1",
		Caption:    "#EBCB8B",
	}
	PaletteTokyoNight = Palette{
		Text:       "#C0CAF5",
		LinkText:   "#7AA2F7",
		LinkURL:    "#565F89",
		ImageFrame: "#BB9AF7",
		Caption:    "#E0AF68",
	}
	PaletteCatppuccinMocha = Palette{
		Text:       "#CDD6F4",
		LinkText:   "#89B4FA",
		LinkURL:    "#6C7086",
		ImageFrame: "#CBA6F7",
		Caption:    "#F9E2AF",
	}
	PaletteSolarizedDark = Palette{
		Text:       "#839496",
		LinkText:   "#268BD2",
		LinkURL:    "#586E75",
		ImageFrame: "#6C71C4",
		Caption:    "#B58900",
	}
	PaletteSolarizedLight = Palette{
		Text:       "#657B83",
		LinkText:   "#268BD2",
		LinkURL:    "#93A1A1",
		ImageFrame: "#6C71C4",
		Caption:    "#B58900",
	}
	PaletteGithubDark = Palette{
		Text:       "#C9D1D9",
		LinkText:   "#58A6FF",
		LinkURL:    "#8B949E",
		ImageFrame: "#D2A8FF",
		Caption:    "#E3B341",
	}
	PaletteGithubLight = Palette{
		Text:       "#24292F",
		LinkText:   "#0969DA",
		LinkURL:    "#6E7781",
		ImageFrame: "#8250DF",
		Caption:    "#9A6700",
	}
	PaletteRosePine = Palette{
		Text:       "#E0DEF4",
		LinkText:   "#9CCFD8",
		LinkURL:    "#6E6A86",
		ImageFrame: "#C4A7E7",
		Caption:    "#F6C177",
	}
	PaletteOneDark = Palette{
		Text:       "#ABB2BF",
		LinkText:   "#61AFEF",
		LinkURL:    "#5C6370",
		ImageFrame: "#C678DD",
		Caption:    "#E5C07B",
	}
)
