package gochart

// DefaultPalette is the cyclic palette used for new per-category colors.
var DefaultPalette = []Color{
	NewColor("#6A5ACD"),
	NewColor("#FFDAB9"),
	NewColor("#66C0B4"),
	NewColor("#E6E6FA"),
	NewColor("#DDA0DD"),
	NewColor("#ADD8E6"),
	NewColor("#FAEBD7"),
	NewColor("#C0C0C0"),
}

// OpeningPalette colors the pie/donut placeholder data.
var OpeningPalette = []Color{
	NewColor("#6A5ACD"),
	NewColor("#FFDAB9"),
	NewColor("#66C0B4"),
}

// Per-series defaults for bar and line charts.
var (
	DefaultBarColors    = []Color{NewColor("#5422B0"), NewColor("#AB0000"), NewColor("#004269")}
	DefaultLineColors   = []Color{NewColor("#5422B0"), NewColor("#AB0000")}
	DefaultMarkerColors = []Color{NewColor("#5422B0"), NewColor("#AB0000")}
)

// PaletteColor returns the default palette entry for index i, cycling.
func PaletteColor(i int) Color {
	n := len(DefaultPalette)
	return DefaultPalette[((i%n)+n)%n]
}

// seriesColor picks palette[i], falling back to the first entry.
func seriesColor(palette []Color, i int) Color {
	if i >= 0 && i < len(palette) && !palette[i].IsZero() {
		return palette[i]
	}
	if len(palette) > 0 {
		return palette[0]
	}
	return PaletteColor(i)
}

func copyColors(c []Color) []Color {
	if c == nil {
		return nil
	}
	out := make([]Color, len(c))
	copy(out, c)
	return out
}
