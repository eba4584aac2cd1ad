package gochart

import (
	"image"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// fallbackFonts are tried in order when a font name is not installed.
var fallbackFonts = []string{"dejavu sans", "liberation sans", "arial", "helvetica", "noto sans", "go"}

// --- Text rendering ---

// getFace returns a TrueType font.Face for f at sizePx, falling back to
// basicfont.
func (r *renderer) getFace(f *Font, sizePx float64) font.Face {
	if f == nil {
		f = NewFont()
	}
	if sizePx <= 0 {
		sizePx = 12
	}

	if face := r.fontCache.GetFace(f.Name, sizePx, f.Bold, f.Italic); face != nil {
		return face
	}
	for _, fallback := range fallbackFonts {
		if face := r.fontCache.GetFace(fallback, sizePx, f.Bold, f.Italic); face != nil {
			return face
		}
	}
	return basicfont.Face7x13
}

// fontFace returns the face for f at its own size, scaled to the canvas.
func (r *renderer) fontFace(f *Font) font.Face {
	size := 12.0
	if f != nil {
		size = float64(f.Size)
	}
	return r.getFace(f, r.px(size))
}

func measureText(face font.Face, text string) float64 {
	return float64(font.MeasureString(face, text)) / 64
}

func lineHeight(face font.Face) float64 {
	h := face.Metrics().Height.Ceil()
	if h <= 0 {
		h = 14
	}
	return float64(h)
}

// ascent returns the distance from the top of a line to its baseline.
func ascent(face font.Face) float64 {
	return float64(face.Metrics().Ascent.Ceil())
}

// drawText draws text with its baseline at y. x is the left edge, center
// or right edge depending on align.
func (r *renderer) drawText(text string, face font.Face, c Color, x, y float64, align HorizontalAlignment) {
	if text == "" || c.GetAlpha() == 0 {
		return
	}
	switch align {
	case HorizontalCenter:
		x -= measureText(face, text) / 2
	case HorizontalRight:
		x -= measureText(face, text)
	}
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c.premultiplied()),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.Int26_6(math.Round(y * 64))},
	}
	d.DrawString(text)
}

// drawTextBlock draws a title or caption line at baseline y across a
// canvas of the given width, inset by margin on the aligned side.
func (r *renderer) drawTextBlock(b TextBlock, sizePx, width, margin, y float64) {
	if b.Text == "" {
		return
	}
	face := r.getFace(b.Font, sizePx)
	var x float64
	switch b.Alignment {
	case HorizontalLeft:
		x = margin
	case HorizontalRight:
		x = width - margin
	default:
		x = width / 2
	}
	c := ColorBlack
	if b.Font != nil {
		c = b.Font.Color
	}
	r.drawText(b.Text, face, c, x, y, b.Alignment)
}

// ellipsize shortens text with a trailing "…" until it fits maxWidth.
func ellipsize(face font.Face, text string, maxWidth float64) string {
	if maxWidth <= 0 || measureText(face, text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		s := strings.TrimRight(string(runes[:n]), " ") + "…"
		if measureText(face, s) <= maxWidth {
			return s
		}
	}
	return "…"
}
