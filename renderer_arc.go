package gochart

import "math"

// chartPadding is the preview-size inset around the plot.
const chartPadding = 10

// renderArc draws a pie or donut. Slices start at twelve o'clock and run
// clockwise; gaps between slices are painted in the background edge color.
// Corner rounding is not rasterized.
func (r *renderer) renderArc(d *RenderDescriptor, area Rect) {
	if len(d.Datasets) == 0 || d.Arc == nil {
		return
	}
	ds := d.Datasets[0]

	total := 0.0
	slices := 0
	for _, v := range ds.Values {
		if v > 0 {
			total += v
			slices++
		}
	}
	if total <= 0 {
		return
	}

	radius := math.Min(area.W, area.H)/2 - r.px(chartPadding)
	if radius <= 0 {
		return
	}
	cx, cy := area.X+area.W/2, area.Y+area.H/2
	inner := radius * clampFloat(d.Arc.Cutout, 0, 0.95)

	var boundaries []float64
	a0 := -math.Pi / 2
	for i, v := range ds.Values {
		if v <= 0 {
			continue
		}
		a1 := a0 + 2*math.Pi*v/total
		r.fillPolygons(seriesColor(ds.Colors, i), wedge(cx, cy, inner, radius, a0, a1))
		boundaries = append(boundaries, a0)
		a0 = a1
	}

	gap := r.px(float64(d.Arc.GapWidth))
	if gap <= 0 || slices < 2 {
		return
	}
	polys := make([][]point, 0, len(boundaries))
	for _, a := range boundaries {
		polys = append(polys, radialBar(cx, cy, inner, radius+1, a, gap))
	}
	r.paintEdge(d.Arc.GapColor, polys...)
}

// wedge returns a circle sector, or an annular sector when inner > 0.
func wedge(cx, cy, inner, outer, a0, a1 float64) []point {
	pts := arcPoints(cx, cy, outer, a0, a1)
	if inner <= 0 {
		if a1-a0 >= 2*math.Pi-1e-9 {
			return pts[:len(pts)-1]
		}
		return append(pts, point{cx, cy})
	}
	in := arcPoints(cx, cy, inner, a0, a1)
	for i := len(in) - 1; i >= 0; i-- {
		pts = append(pts, in[i])
	}
	return pts
}

// radialBar returns a band of the given width along angle a from radius
// r0 to r1.
func radialBar(cx, cy, r0, r1, a, width float64) []point {
	ux, uy := math.Cos(a), math.Sin(a)
	nx, ny := -uy*width/2, ux*width/2
	return []point{
		{cx + ux*r0 + nx, cy + uy*r0 + ny},
		{cx + ux*r1 + nx, cy + uy*r1 + ny},
		{cx + ux*r1 - nx, cy + uy*r1 - ny},
		{cx + ux*r0 - nx, cy + uy*r0 - ny},
	}
}
