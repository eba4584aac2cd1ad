package gochart

import (
	"math"

	"golang.org/x/image/font"
)

// barThickness is the share of a series slot a bar fills.
const barThickness = 0.9

// maxTicks bounds the number of value-axis ticks.
const maxTicks = 6

// valueScale maps data values onto an axis.
type valueScale struct {
	min, max float64
	ticks    []float64
}

// niceScale returns a scale covering lo..hi with round tick steps of 1, 2
// or 5 times a power of ten.
func niceScale(lo, hi float64, ticks int) valueScale {
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi == lo {
		if lo == 0 {
			hi = 1
		} else {
			lo, hi = lo-math.Abs(lo)/2, hi+math.Abs(hi)/2
		}
	}
	step := niceNum((hi-lo)/float64(ticks-1), true)
	s := valueScale{
		min: math.Floor(lo/step) * step,
		max: math.Ceil(hi/step) * step,
	}
	for v := s.min; v <= s.max+step/2; v += step {
		s.ticks = append(s.ticks, roundTo(v, 10))
	}
	return s
}

func niceNum(x float64, round bool) float64 {
	exp := math.Floor(math.Log10(x))
	f := x / math.Pow(10, exp)
	var nf float64
	switch {
	case round && f < 1.5, !round && f <= 1:
		nf = 1
	case round && f < 3, !round && f <= 2:
		nf = 2
	case round && f < 7, !round && f <= 5:
		nf = 5
	default:
		nf = 10
	}
	return nf * math.Pow(10, exp)
}

// fraction returns v's position on the scale in [0,1].
func (s valueScale) fraction(v float64) float64 {
	if s.max == s.min {
		return 0
	}
	return (v - s.min) / (s.max - s.min)
}

// baseline returns zero clamped into the scale.
func (s valueScale) baseline() float64 {
	return clampFloat(0, s.min, s.max)
}

// xyLayout is the plot rectangle left after tick labels.
type xyLayout struct {
	plot      Rect
	face      font.Face
	textColor Color
}

// layoutAxes reserves room for value labels on the value axis and category
// labels on the other axis. horizontal puts values along x.
func (r *renderer) layoutAxes(d *RenderDescriptor, area Rect, scale valueScale, horizontal bool) xyLayout {
	pad := r.px(chartPadding)
	l := xyLayout{
		plot:      Rect{X: area.X + pad, Y: area.Y + pad, W: area.W - 2*pad, H: area.H - 2*pad},
		face:      r.fontFace(d.Axes.Font),
		textColor: ColorBlack,
	}
	if d.Axes.Font != nil {
		l.textColor = d.Axes.Font.Color
	}
	if !d.Axes.Visible {
		return l
	}

	lh := lineHeight(l.face)
	gap := r.px(8)
	var leftW float64
	if horizontal {
		for _, c := range d.Categories {
			leftW = math.Max(leftW, measureText(l.face, ellipsize(l.face, c, area.W*0.3)))
		}
	} else {
		for _, t := range scale.ticks {
			leftW = math.Max(leftW, measureText(l.face, formatNumber(t)))
		}
	}
	l.plot.X += leftW + gap
	l.plot.W -= leftW + gap
	l.plot.H -= lh + gap
	if l.plot.W < 0 {
		l.plot.W = 0
	}
	if l.plot.H < 0 {
		l.plot.H = 0
	}
	return l
}

// drawValueLabels draws tick labels and, when grid is set, gridlines.
func (r *renderer) drawValueLabels(d *RenderDescriptor, l xyLayout, scale valueScale, horizontal, grid bool) {
	if !d.Axes.Visible {
		return
	}
	gap := r.px(8)
	width := math.Max(1, r.px(0.5))
	var lines [][]point
	for _, t := range scale.ticks {
		f := scale.fraction(t)
		label := formatNumber(t)
		if horizontal {
			x := l.plot.X + f*l.plot.W
			r.drawText(label, l.face, l.textColor, x, l.plot.MaxY()+gap+ascent(l.face), HorizontalCenter)
			if grid {
				lines = append(lines, vline(x, l.plot.Y, l.plot.MaxY(), width))
			}
			continue
		}
		y := l.plot.MaxY() - f*l.plot.H
		r.drawText(label, l.face, l.textColor, l.plot.X-gap, y+ascent(l.face)/2, HorizontalRight)
		if grid {
			lines = append(lines, hline(l.plot.X, l.plot.MaxX(), y, width))
		}
	}
	r.fillPolygons(d.Axes.GridColor, lines...)
}

// drawCategoryLabels draws one label per category centered on centers.
func (r *renderer) drawCategoryLabels(d *RenderDescriptor, l xyLayout, centers []float64, horizontal bool) {
	if !d.Axes.Visible || len(centers) == 0 {
		return
	}
	gap := r.px(8)
	for i, c := range d.Categories {
		if i >= len(centers) {
			break
		}
		if horizontal {
			label := ellipsize(l.face, c, l.plot.X-gap-r.px(chartPadding))
			r.drawText(label, l.face, l.textColor, l.plot.X-gap, centers[i]+ascent(l.face)/2, HorizontalRight)
			continue
		}
		slot := l.plot.W / float64(len(centers))
		label := ellipsize(l.face, c, slot)
		r.drawText(label, l.face, l.textColor, centers[i], l.plot.MaxY()+gap+ascent(l.face), HorizontalCenter)
	}
}

// drawAxisBorders draws the value and category axis lines.
func (r *renderer) drawAxisBorders(d *RenderDescriptor, l xyLayout) {
	if !d.Axes.Visible {
		return
	}
	w := math.Max(1, r.px(0.5))
	r.fillPolygons(d.Axes.GridColor,
		vline(l.plot.X, l.plot.Y, l.plot.MaxY(), w),
		hline(l.plot.X, l.plot.MaxX(), l.plot.MaxY(), w),
	)
}

// --- Bars ---

// barRange returns the data extent, summing per category when stacked.
func barRange(d *RenderDescriptor, stacked bool) (lo, hi float64) {
	for i := range d.Categories {
		var pos, neg float64
		for _, ds := range d.Datasets {
			if i >= len(ds.Values) {
				continue
			}
			v := ds.Values[i]
			if stacked {
				if v >= 0 {
					pos += v
				} else {
					neg += v
				}
				continue
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
		if stacked {
			lo, hi = math.Min(lo, neg), math.Max(hi, pos)
		}
	}
	return lo, hi
}

// renderBars draws grouped or stacked bars in either orientation. The end
// of each bar away from the baseline gets the corner radius.
func (r *renderer) renderBars(d *RenderDescriptor, area Rect) {
	if d.Bar == nil || len(d.Categories) == 0 || len(d.Datasets) == 0 {
		return
	}
	horizontal := d.Bar.Orientation == BarHorizontal
	stacked := d.Bar.Stacked
	lo, hi := barRange(d, stacked)
	scale := niceScale(lo, hi, maxTicks)
	l := r.layoutAxes(d, area, scale, horizontal)
	if l.plot.W <= 0 || l.plot.H <= 0 {
		return
	}

	n := len(d.Categories)
	span := l.plot.W
	if horizontal {
		span = l.plot.H
	}
	band := span / float64(n)
	group := band * clampFloat(d.Bar.CategoryFraction, 0.1, 1)
	radius := r.px(float64(d.Bar.CornerRadius))

	// pos maps a value to canvas position along the value axis.
	pos := func(v float64) float64 {
		f := scale.fraction(v)
		if horizontal {
			return l.plot.X + f*l.plot.W
		}
		return l.plot.MaxY() - f*l.plot.H
	}

	centers := make([]float64, n)
	for i := range d.Categories {
		start := band*float64(i) + (band-group)/2
		if horizontal {
			start += l.plot.Y
		} else {
			start += l.plot.X
		}
		centers[i] = start + group/2

		var posSum, negSum float64
		for s, ds := range d.Datasets {
			if i >= len(ds.Values) {
				continue
			}
			v := ds.Values[i]
			slot := group / float64(len(d.Datasets))
			offset := float64(s) * slot
			if stacked {
				slot, offset = group, 0
			}
			thick := slot * barThickness
			a := start + offset + (slot-thick)/2

			from := scale.baseline()
			to := v
			if stacked {
				if v >= 0 {
					from, to = posSum, posSum+v
					posSum += v
				} else {
					from, to = negSum, negSum+v
					negSum += v
				}
			}
			if to == from {
				continue
			}
			p0, p1 := pos(from), pos(to)
			var c corners
			var poly []point
			if horizontal {
				if v >= 0 {
					c = corners{tr: radius, br: radius}
				} else {
					c = corners{tl: radius, bl: radius}
				}
				poly = roundedRect(p0, a, p1, a+thick, c)
			} else {
				if v >= 0 {
					c = corners{tl: radius, tr: radius}
				} else {
					c = corners{bl: radius, br: radius}
				}
				poly = roundedRect(a, p1, a+thick, p0, c)
			}
			r.fillPolygons(seriesColor(ds.Colors, i), poly)
		}
	}

	r.drawAxisBorders(d, l)
	r.drawValueLabels(d, l, scale, horizontal, false)
	r.drawCategoryLabels(d, l, centers, horizontal)
}

// --- Lines ---

// lineRange returns the data extent, including zero when beginAtZero.
func lineRange(d *RenderDescriptor, beginAtZero bool) (lo, hi float64) {
	first := true
	for _, ds := range d.Datasets {
		for _, v := range ds.Values {
			if first {
				lo, hi, first = v, v, false
				continue
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if beginAtZero {
		lo, hi = math.Min(lo, 0), math.Max(hi, 0)
	}
	return lo, hi
}

// renderLines draws each series as a polyline or tension spline, with
// optional markers and horizontal gridlines.
func (r *renderer) renderLines(d *RenderDescriptor, area Rect) {
	if d.Line == nil || len(d.Categories) == 0 || len(d.Datasets) == 0 {
		return
	}
	lo, hi := lineRange(d, d.Line.BeginAtZero)
	scale := niceScale(lo, hi, maxTicks)
	l := r.layoutAxes(d, area, scale, false)
	if l.plot.W <= 0 || l.plot.H <= 0 {
		return
	}
	r.drawValueLabels(d, l, scale, false, d.Axes.Gridlines)

	n := len(d.Categories)
	xs := make([]float64, n)
	for i := range xs {
		if n == 1 {
			xs[i] = l.plot.X + l.plot.W/2
			continue
		}
		xs[i] = l.plot.X + l.plot.W*float64(i)/float64(n-1)
	}

	for _, ds := range d.Datasets {
		pts := make([]point, 0, n)
		for i, v := range ds.Values {
			if i >= n {
				break
			}
			pts = append(pts, point{xs[i], l.plot.MaxY() - scale.fraction(v)*l.plot.H})
		}
		path := splinePath(pts, ds.Tension)
		r.fillPolygons(ds.BorderColor, strokePolyline(path, math.Max(1, r.px(float64(ds.BorderWidth))))...)

		if !ds.MarkerVisible {
			continue
		}
		size := r.px(float64(ds.MarkerSize))
		markers := make([][]point, 0, len(pts))
		for _, p := range pts {
			markers = append(markers, markerPolygon(ds.MarkerStyle, p, size))
		}
		r.fillPolygons(ds.MarkerColor, markers...)
	}

	r.drawAxisBorders(d, l)
	r.drawCategoryLabels(d, l, xs, false)
}

// splineSegments is the number of samples per curve segment.
const splineSegments = 16

// splinePath returns pts joined by cubic curves whose control points follow
// the neighbouring points scaled by tension. Zero tension keeps straight
// segments.
func splinePath(pts []point, tension float64) []point {
	if tension <= 0 || len(pts) < 3 {
		return pts
	}
	type ctrl struct{ prev, next point }
	cps := make([]ctrl, len(pts))
	for i, p := range pts {
		prev, next := p, p
		if i > 0 {
			prev = pts[i-1]
		}
		if i < len(pts)-1 {
			next = pts[i+1]
		}
		d01 := math.Hypot(p.x-prev.x, p.y-prev.y)
		d12 := math.Hypot(next.x-p.x, next.y-p.y)
		var fa, fb float64
		if sum := d01 + d12; sum > 0 {
			fa = tension * d01 / sum
			fb = tension * d12 / sum
		}
		cps[i] = ctrl{
			prev: point{p.x - fa*(next.x-prev.x), p.y - fa*(next.y-prev.y)},
			next: point{p.x + fb*(next.x-prev.x), p.y + fb*(next.y-prev.y)},
		}
	}

	out := []point{pts[0]}
	for i := 0; i+1 < len(pts); i++ {
		p0, c0, c1, p1 := pts[i], cps[i].next, cps[i+1].prev, pts[i+1]
		for s := 1; s <= splineSegments; s++ {
			t := float64(s) / splineSegments
			mt := 1 - t
			out = append(out, point{
				mt*mt*mt*p0.x + 3*mt*mt*t*c0.x + 3*mt*t*t*c1.x + t*t*t*p1.x,
				mt*mt*mt*p0.y + 3*mt*mt*t*c0.y + 3*mt*t*t*c1.y + t*t*t*p1.y,
			})
		}
	}
	return out
}

// markerPolygon returns the marker shape of radius size centered on p.
func markerPolygon(style MarkerStyle, p point, size float64) []point {
	switch style {
	case MarkerRect:
		return []point{{p.x - size, p.y - size}, {p.x + size, p.y - size}, {p.x + size, p.y + size}, {p.x - size, p.y + size}}
	case MarkerRectRot:
		return []point{{p.x, p.y - size}, {p.x + size, p.y}, {p.x, p.y + size}, {p.x - size, p.y}}
	}
	return circlePolygon(p.x, p.y, size)
}
