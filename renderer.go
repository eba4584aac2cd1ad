package gochart

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// previewChartWidth is the on-screen chart width that style sizes refer to.
// Export draws the chart larger and scales sizes by the same ratio.
const previewChartWidth = 500

// --- renderer ---

type renderer struct {
	img       *image.RGBA
	fontCache *FontCache
	bg        Background
	scale     float64
}

func newRenderer(img *image.RGBA, fonts *FontCache, bg Background) *renderer {
	if fonts == nil {
		fonts = newEmbeddedFontCache()
	}
	return &renderer{img: img, fontCache: fonts, bg: bg, scale: 1}
}

// px scales a preview-size length to canvas pixels.
func (r *renderer) px(v float64) float64 {
	return v * r.scale
}

// renderChart draws the chart body of d inside area.
func (r *renderer) renderChart(d *RenderDescriptor, area Rect) {
	r.scale = area.W / previewChartWidth
	plot := r.renderLegend(d, area)
	switch d.Kind {
	case KindPie, KindDonut:
		r.renderArc(d, plot)
	case KindBar:
		r.renderBars(d, plot)
	case KindLine:
		r.renderLines(d, plot)
	}
}

// --- Background ---

// paintBackground fills the whole canvas. Transparent backgrounds leave
// the canvas clear.
func (r *renderer) paintBackground() {
	switch r.bg.Type {
	case FillNone:
		return
	case FillGradientLinear:
		if r.bg.Gradient != nil {
			r.paintGradient(r.bg.Gradient)
			return
		}
	}
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.bg.Color.premultiplied()), image.Point{}, draw.Src)
}

// gradientSteps is the resolution of the sampled gradient table.
const gradientSteps = 256

// paintGradient draws a CSS-style linear gradient: 0° points up and angles
// turn clockwise; the gradient line spans the projection of the canvas.
func (r *renderer) paintGradient(g *Gradient) {
	b := r.img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	theta := float64(g.Rotation) * math.Pi / 180
	dx, dy := math.Sin(theta), -math.Cos(theta)
	length := math.Abs(w*dx) + math.Abs(h*dy)
	if length == 0 {
		return
	}

	var table [gradientSteps]Color
	for i := range table {
		table[i] = g.ColorAt(float64(i) / (gradientSteps - 1))
	}

	cx, cy := w/2, h/2
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			t := ((float64(x)+0.5-cx)*dx+(float64(y)+0.5-cy)*dy)/length + 0.5
			i := clampInt(int(t*(gradientSteps-1)+0.5), 0, gradientSteps-1)
			r.img.SetRGBA(x, y, table[i].premultiplied())
		}
	}
}

// --- Drawing primitives ---

type point struct {
	x, y float64
}

// fillPolygons fills the union of polys with c, anti-aliased.
func (r *renderer) fillPolygons(c Color, polys ...[]point) {
	if c.GetAlpha() == 0 {
		return
	}
	r.rasterize(image.NewUniform(c.premultiplied()), draw.Over, polys)
}

// clearPolygons erases polys back to transparent.
func (r *renderer) clearPolygons(polys ...[]point) {
	r.rasterize(image.Transparent, draw.Src, polys)
}

// paintEdge fills polys in the background edge color, erasing them when
// the background is transparent.
func (r *renderer) paintEdge(c Color, polys ...[]point) {
	if r.bg.Type == FillNone || c.GetAlpha() == 0 {
		r.clearPolygons(polys...)
		return
	}
	r.fillPolygons(c, polys...)
}

func (r *renderer) rasterize(src image.Image, op draw.Op, polys [][]point) {
	b := r.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = op
	n := 0
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		addPolygon(z, poly)
		n++
	}
	if n == 0 {
		return
	}
	z.Draw(r.img, b, src, image.Point{})
}

// addPolygon adds poly with a consistent winding so overlapping polygons
// in one pass form a union instead of cancelling.
func addPolygon(z *vector.Rasterizer, poly []point) {
	if signedArea(poly) < 0 {
		for i := len(poly) - 1; i >= 0; i-- {
			pathTo(z, poly[i], i == len(poly)-1)
		}
	} else {
		for i, p := range poly {
			pathTo(z, p, i == 0)
		}
	}
	z.ClosePath()
}

func pathTo(z *vector.Rasterizer, p point, first bool) {
	if first {
		z.MoveTo(float32(p.x), float32(p.y))
		return
	}
	z.LineTo(float32(p.x), float32(p.y))
}

func signedArea(poly []point) float64 {
	a := 0.0
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		a += p.x*q.y - q.x*p.y
	}
	return a / 2
}

// arcSteps returns a segment count that keeps chords under about 2px.
func arcSteps(radius, sweep float64) int {
	n := int(math.Ceil(math.Abs(sweep) * radius / 2))
	return clampInt(n, 2, 720)
}

// arcPoints samples the circle (cx, cy, radius) from angle a0 to a1
// inclusive. Angles are radians, clockwise from the positive x axis in
// canvas coordinates.
func arcPoints(cx, cy, radius, a0, a1 float64) []point {
	n := arcSteps(radius, a1-a0)
	pts := make([]point, 0, n+1)
	for i := 0; i <= n; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		pts = append(pts, point{cx + radius*math.Cos(a), cy + radius*math.Sin(a)})
	}
	return pts
}

func circlePolygon(cx, cy, radius float64) []point {
	pts := arcPoints(cx, cy, radius, 0, 2*math.Pi)
	return pts[:len(pts)-1]
}

// corners holds per-corner radii of a rectangle.
type corners struct {
	tl, tr, br, bl float64
}

// roundedRect returns the outline of x0,y0–x1,y1 with the given corner
// radii, each limited to half the shorter side.
func roundedRect(x0, y0, x1, y1 float64, c corners) []point {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	limit := math.Min(x1-x0, y1-y0) / 2
	lim := func(v float64) float64 { return math.Max(0, math.Min(v, limit)) }
	c = corners{lim(c.tl), lim(c.tr), lim(c.br), lim(c.bl)}

	var pts []point
	corner := func(cx, cy, radius, a0 float64, px, py float64) {
		if radius <= 0 {
			pts = append(pts, point{px, py})
			return
		}
		pts = append(pts, arcPoints(cx, cy, radius, a0, a0+math.Pi/2)...)
	}
	corner(x0+c.tl, y0+c.tl, c.tl, math.Pi, x0, y0)
	corner(x1-c.tr, y0+c.tr, c.tr, -math.Pi/2, x1, y0)
	corner(x1-c.br, y1-c.br, c.br, 0, x1, y1)
	corner(x0+c.bl, y1-c.bl, c.bl, math.Pi/2, x0, y1)
	return pts
}

// strokePolyline returns polygons covering a polyline of the given width
// with round joins and caps.
func strokePolyline(pts []point, width float64) [][]point {
	if len(pts) == 0 || width <= 0 {
		return nil
	}
	hw := width / 2
	polys := make([][]point, 0, 2*len(pts))
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		dx, dy := b.x-a.x, b.y-a.y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw
		polys = append(polys, []point{
			{a.x + nx, a.y + ny}, {b.x + nx, b.y + ny},
			{b.x - nx, b.y - ny}, {a.x - nx, a.y - ny},
		})
	}
	for _, p := range pts {
		polys = append(polys, circlePolygon(p.x, p.y, hw))
	}
	return polys
}

// hline returns a rectangle covering a horizontal line.
func hline(x0, x1, y, width float64) []point {
	return []point{{x0, y - width/2}, {x1, y - width/2}, {x1, y + width/2}, {x0, y + width/2}}
}

// vline returns a rectangle covering a vertical line.
func vline(x, y0, y1, width float64) []point {
	return []point{{x - width/2, y0}, {x + width/2, y0}, {x + width/2, y1}, {x - width/2, y1}}
}
