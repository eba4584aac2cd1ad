package gochart

import "math"

type legendItem struct {
	entry LegendEntry
	label string
	width float64
}

// renderLegend draws the legend at the top or bottom of area and returns
// the space left for the plot.
func (r *renderer) renderLegend(d *RenderDescriptor, area Rect) Rect {
	l := d.Legend
	if !l.Visible || len(l.Entries) == 0 {
		return area
	}

	face := r.fontFace(l.Font)
	lh := lineHeight(face)
	swatch := math.Round(lh * 0.7)
	swatchGap := r.px(6)
	itemGap := r.px(12)
	rowGap := r.px(4)

	var rows [][]legendItem
	var row []legendItem
	rowW := 0.0
	for _, e := range l.Entries {
		label := ellipsize(face, e.Label, area.W-swatch-swatchGap)
		w := swatch + swatchGap + measureText(face, label)
		if len(row) > 0 && rowW+itemGap+w > area.W {
			rows = append(rows, row)
			row, rowW = nil, 0
		}
		if len(row) > 0 {
			rowW += itemGap
		}
		row = append(row, legendItem{entry: e, label: label, width: w})
		rowW += w
	}
	rows = append(rows, row)

	height := float64(len(rows))*(lh+rowGap) + r.px(chartPadding)
	if height >= area.H {
		return area
	}

	top := area.Y
	plot := Rect{X: area.X, Y: area.Y + height, W: area.W, H: area.H - height}
	if l.Position == LegendBottom {
		top = area.MaxY() - height + r.px(chartPadding)
		plot = Rect{X: area.X, Y: area.Y, W: area.W, H: area.H - height}
	}

	textColor := ColorBlack
	if l.Font != nil {
		textColor = l.Font.Color
	}
	for i, items := range rows {
		total := 0.0
		for j, it := range items {
			if j > 0 {
				total += itemGap
			}
			total += it.width
		}
		x := area.X + (area.W-total)/2
		y := top + float64(i)*(lh+rowGap)
		mid := y + lh/2
		for _, it := range items {
			r.fillPolygons(it.entry.Color, legendSwatch(l.PointStyle, x, mid, swatch)...)
			r.drawText(it.label, face, textColor, x+swatch+swatchGap, y+ascent(face), HorizontalLeft)
			x += it.width + itemGap
		}
	}
	return plot
}

// legendSwatch returns the swatch shape with its left edge at x,
// vertically centered on mid.
func legendSwatch(style PointStyle, x, mid, size float64) [][]point {
	switch style {
	case PointCircle:
		return [][]point{circlePolygon(x+size/2, mid, size/2)}
	case PointLine:
		return [][]point{hline(x, x+size, mid, math.Max(2, size/4))}
	}
	return [][]point{{{x, mid - size/2}, {x + size, mid - size/2}, {x + size, mid + size/2}, {x, mid + size/2}}}
}
