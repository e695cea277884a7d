package viewstate

// Palette holds the colours the page applies for a mode.
type Palette struct {
	Background string `json:"background"`
	Heading    string `json:"heading"`
	Body       string `json:"body"`
	Muted      string `json:"muted"`
	Accent     string `json:"accent"`
	GlowTop    string `json:"glow_top"`
	GlowBottom string `json:"glow_bottom"`
}

const gold = "#c8b27c"

var (
	darkPalette = Palette{
		Background: "#070708",
		Heading:    "#ffffff",
		Body:       "#d4d4d4",
		Muted:      "#a3a3a3",
		Accent:     gold,
		GlowTop:    "#c8b27c22",
		GlowBottom: "#b89f6a22",
	}
	lightPalette = Palette{
		Background: "#f8f5f0",
		Heading:    "#262626",
		Body:       "#404040",
		Muted:      "#525252",
		Accent:     gold,
		GlowTop:    "#d8c79c55",
		GlowBottom: "#bca77444",
	}
)

// PaletteFor returns the palette for mode. The loader sits above a dark page.
func PaletteFor(mode Mode) Palette {
	if mode == ModeRevealedLight {
		return lightPalette
	}
	return darkPalette
}
