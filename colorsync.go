package gochart

// SeriesPalette holds the per-series colors indexed by series position.
type SeriesPalette struct {
	Base   []Color // bar base colors
	Line   []Color
	Marker []Color
}

// SyncColors aligns every series' colors with categoryCount. It is
// idempotent and keeps existing per-category entries at their index.
//
// Line series get a single line and marker color from the palette by
// series position. Other kinds get one color per category: missing
// entries are appended from DefaultPalette at the next cyclic index and
// surplus entries are dropped from the tail.
func SyncColors(kind ChartKind, categoryCount int, series []*Series, p SeriesPalette) {
	if categoryCount < 0 {
		categoryCount = 0
	}
	for i, ser := range series {
		if !kind.perCategoryColors() {
			ser.LineColor = seriesColor(p.Line, i)
			ser.MarkerColor = seriesColor(p.Marker, i)
			ser.BaseColor = ser.LineColor
			ser.Colors = nil
			continue
		}

		if kind == KindBar {
			ser.BaseColor = seriesColor(p.Base, i)
		} else if ser.BaseColor.IsZero() {
			ser.BaseColor = PaletteColor(0)
		}

		colors := ser.Colors
		for len(colors) < categoryCount {
			colors = append(colors, PaletteColor(len(colors)))
		}
		ser.Colors = colors[:categoryCount:categoryCount]
	}
}
