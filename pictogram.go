package gochart

import "math"

// Pictogram grid constants.
const (
	PictogramIconCount = 10
	PictogramColumns   = 5
	PictogramRows      = 2
)

// PictogramMetrics holds the constants that differ between the preview
// and the high-resolution export.
type PictogramMetrics struct {
	Padding float64
}

// Layout presets.
var (
	PreviewMetrics = PictogramMetrics{Padding: 20}
	ExportMetrics  = PictogramMetrics{Padding: 40}
)

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	X, Y, W, H float64
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Translate returns r moved by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// PictogramGeometry is the computed icon grid.
type PictogramGeometry struct {
	CanvasWidth  float64
	CanvasHeight float64
	IconWidth    float64
	IconHeight   float64
	OffsetH      float64 // px between columns, negative overlaps
	OffsetV      float64 // px between rows, negative overlaps
	Padding      float64
	Cells        []Rect // one per icon, row-major
}

// LayoutPictogram computes the 5×2 grid for the given spacing sliders and
// canvas width. Icons are square; the canvas height follows from the
// icon size, vertical offset and padding.
func LayoutPictogram(spacingH, spacingV, canvasWidth float64, m PictogramMetrics) PictogramGeometry {
	hOff := SpacingOffset(spacingH)
	vOff := SpacingOffset(spacingV)
	available := canvasWidth - 2*m.Padding

	iconW := (available - hOff*(PictogramColumns-1)) / PictogramColumns
	if iconW < 0 || math.IsNaN(iconW) {
		iconW = 0
	}
	iconH := iconW

	g := PictogramGeometry{
		CanvasWidth:  canvasWidth,
		CanvasHeight: math.Max(0, PictogramRows*iconH+vOff*(PictogramRows-1)+2*m.Padding),
		IconWidth:    iconW,
		IconHeight:   iconH,
		OffsetH:      hOff,
		OffsetV:      vOff,
		Padding:      m.Padding,
		Cells:        make([]Rect, PictogramIconCount),
	}
	for i := range g.Cells {
		row, col := i/PictogramColumns, i%PictogramColumns
		g.Cells[i] = Rect{
			X: m.Padding + float64(col)*(iconW+hOff),
			Y: m.Padding + float64(row)*(iconH+vOff),
			W: iconW,
			H: iconH,
		}
	}
	return g
}

// IconDrawOp draws icon IconID into Rect in Color, limited to Clip.
type IconDrawOp struct {
	Index  int
	IconID string
	Rect   Rect
	Clip   Rect
	Color  Color
}

// Partial reports whether the op covers only part of its icon.
func (op IconDrawOp) Partial() bool {
	return op.Clip.W < op.Rect.W
}

// fillFractionEpsilon absorbs float error in amounts such as 6.7 - 6.
const fillFractionEpsilon = 1e-9

// PictogramFrame returns the draw operations for one frame. Icons below
// floor(filled) are drawn in filledColor; a fractional remainder splits the
// next icon into a filled left part and an unfilled right part; the rest
// are drawn in unfilledColor.
func PictogramFrame(filled float64, iconID string, filledColor, unfilledColor Color, g PictogramGeometry) []IconDrawOp {
	filled = clampFloat(filled, 0, PictogramIconCount)
	full := int(math.Floor(filled + fillFractionEpsilon))
	frac := filled - float64(full)
	if frac < fillFractionEpsilon {
		frac = 0
	}

	ops := make([]IconDrawOp, 0, len(g.Cells)+1)
	for i, cell := range g.Cells {
		switch {
		case i < full:
			ops = append(ops, IconDrawOp{Index: i, IconID: iconID, Rect: cell, Clip: cell, Color: filledColor})
		case i == full && frac > 0:
			split := cell.W * frac
			ops = append(ops,
				IconDrawOp{Index: i, IconID: iconID, Rect: cell, Clip: Rect{X: cell.X, Y: cell.Y, W: split, H: cell.H}, Color: filledColor},
				IconDrawOp{Index: i, IconID: iconID, Rect: cell, Clip: Rect{X: cell.X + split, Y: cell.Y, W: cell.W - split, H: cell.H}, Color: unfilledColor},
			)
		default:
			ops = append(ops, IconDrawOp{Index: i, IconID: iconID, Rect: cell, Clip: cell, Color: unfilledColor})
		}
	}
	return ops
}
