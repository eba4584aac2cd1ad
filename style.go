package gochart

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents an ARGB color.
type Color struct {
	ARGB string // 8-character hex string, e.g., "FF000000" for black
}

// Predefined colors.
var (
	ColorBlack       = Color{ARGB: "FF000000"}
	ColorWhite       = Color{ARGB: "FFFFFFFF"}
	ColorTransparent = Color{ARGB: "00000000"}
)

// NewColor creates a new Color from a hex string.
// Accepts 3-char RGB, 6-char RGB (e.g. "FF0000") or 8-char ARGB (e.g. "FFFF0000").
// A leading "#" is stripped automatically. Invalid input yields black.
func NewColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		return ColorBlack
	}
	return c
}

// ParseColor parses a hex color string and reports malformed input.
func ParseColor(hex string) (Color, error) {
	s := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
	alpha := "FF"
	if len(s) == 8 {
		alpha, s = s[:2], s[2:]
	}
	if (len(s) != 3 && len(s) != 6) || !isHexDigits(alpha+s) {
		return Color{}, fmt.Errorf("%w: color %q", ErrInvalidStyle, hex)
	}
	cf, err := colorful.Hex("#" + s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: color %q: %v", ErrInvalidStyle, hex, err)
	}
	return Color{ARGB: alpha + strings.ToUpper(strings.TrimPrefix(cf.Hex(), "#"))}, nil
}

// isHexDigits reports whether s holds only upper-case hex digits.
func isHexDigits(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// GetRed returns the red component (0-255).
func (c Color) GetRed() uint8 {
	return parseHexByte(c.ARGB, 2)
}

// GetGreen returns the green component (0-255).
func (c Color) GetGreen() uint8 {
	return parseHexByte(c.ARGB, 4)
}

// GetBlue returns the blue component (0-255).
func (c Color) GetBlue() uint8 {
	return parseHexByte(c.ARGB, 6)
}

// GetAlpha returns the alpha component (0-255).
func (c Color) GetAlpha() uint8 {
	return parseHexByte(c.ARGB, 0)
}

// Hex returns the color as "#RRGGBB", dropping alpha.
func (c Color) Hex() string {
	if len(c.ARGB) != 8 {
		return "#000000"
	}
	return "#" + c.ARGB[2:]
}

// IsZero reports whether the color was never set.
func (c Color) IsZero() bool {
	return c.ARGB == ""
}

// RGBA converts the color to a straight-alpha image/color value.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.GetRed(), G: c.GetGreen(), B: c.GetBlue(), A: c.GetAlpha()}
}

// premultiplied returns the color ready for draw operations on image.RGBA.
func (c Color) premultiplied() color.RGBA {
	a := uint32(c.GetAlpha())
	return color.RGBA{
		R: uint8(uint32(c.GetRed()) * a / 255),
		G: uint8(uint32(c.GetGreen()) * a / 255),
		B: uint8(uint32(c.GetBlue()) * a / 255),
		A: uint8(a),
	}
}

func (c Color) toColorful() colorful.Color {
	return colorful.Color{
		R: float64(c.GetRed()) / 255,
		G: float64(c.GetGreen()) / 255,
		B: float64(c.GetBlue()) / 255,
	}
}

func fromColorful(cf colorful.Color) Color {
	return NewColor(cf.Clamped().Hex())
}

// BlendColors interpolates between a and b in RGB space, t in [0,1].
func BlendColors(a, b Color, t float64) Color {
	t = math.Max(0, math.Min(1, t))
	return fromColorful(a.toColorful().BlendRgb(b.toColorful(), t))
}

// parseHexByte parses two hex characters at offset into a uint8.
// Returns 0 on any error (out of range, invalid chars).
func parseHexByte(s string, offset int) uint8 {
	if offset+2 > len(s) {
		return 0
	}
	h := hexVal(s[offset])
	l := hexVal(s[offset+1])
	if h < 0 || l < 0 {
		return 0
	}
	return uint8(h<<4 | l)
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return -1
	}
}

// Font represents text font properties.
type Font struct {
	Name       string
	Size       int // in pixels at preview scale
	Bold       bool
	Italic     bool
	Color      Color
	LineHeight float64
}

// LineHeights lists the selectable line-height multipliers.
var LineHeights = []float64{1.0, 1.2, 1.4, 1.6, 1.8, 2.0}

// NewFont creates a new Font with defaults.
func NewFont() *Font {
	return &Font{
		Name:       "Inter",
		Size:       12,
		Color:      NewColor("#555555"),
		LineHeight: 1.2,
	}
}

// SetBold sets the bold property and returns the font for chaining.
func (f *Font) SetBold(bold bool) *Font {
	f.Bold = bold
	return f
}

// SetItalic sets the italic property.
func (f *Font) SetItalic(italic bool) *Font {
	f.Italic = italic
	return f
}

// SetSize sets the font size (clamped to 1–400).
func (f *Font) SetSize(size int) *Font {
	f.Size = clampInt(size, 1, 400)
	return f
}

// SetColor sets the font color.
func (f *Font) SetColor(color Color) *Font {
	f.Color = color
	return f
}

// SetName sets the font name.
func (f *Font) SetName(name string) *Font {
	f.Name = name
	return f
}

// SetLineHeight snaps h to the nearest selectable multiplier.
func (f *Font) SetLineHeight(h float64) *Font {
	best := LineHeights[0]
	for _, v := range LineHeights {
		if math.Abs(v-h) < math.Abs(best-h) {
			best = v
		}
	}
	f.LineHeight = best
	return f
}

func (f *Font) clone() *Font {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

// HorizontalAlignment represents horizontal text alignment.
type HorizontalAlignment string

const (
	HorizontalLeft   HorizontalAlignment = "left"
	HorizontalCenter HorizontalAlignment = "center"
	HorizontalRight  HorizontalAlignment = "right"
)

// Next cycles center → left → right → center.
func (h HorizontalAlignment) Next() HorizontalAlignment {
	switch h {
	case HorizontalCenter:
		return HorizontalLeft
	case HorizontalLeft:
		return HorizontalRight
	default:
		return HorizontalCenter
	}
}

func parseAlignment(s string) (HorizontalAlignment, bool) {
	switch HorizontalAlignment(strings.ToLower(s)) {
	case HorizontalLeft:
		return HorizontalLeft, true
	case HorizontalCenter:
		return HorizontalCenter, true
	case HorizontalRight:
		return HorizontalRight, true
	}
	return "", false
}

// TextBlock is a title or caption line.
type TextBlock struct {
	Text      string
	Font      *Font
	Alignment HorizontalAlignment
}

func (t TextBlock) clone() TextBlock {
	t.Font = t.Font.clone()
	return t
}

// Background describes the chart canvas fill.
type Background struct {
	Type     FillType
	Color    Color
	Gradient *Gradient
}

// FillType represents the type of fill.
type FillType int

const (
	FillSolid FillType = iota
	FillNone
	FillGradientLinear
)

// GradientStop is one color stop, Offset in [0,1].
type GradientStop struct {
	Offset float64
	Color  Color
}

// Gradient is a linear gradient; Rotation follows CSS degrees (0 = upwards).
type Gradient struct {
	Rotation int
	Stops    []GradientStop
}

// Named background tokens.
const (
	BackgroundWhite       = "white"
	BackgroundTransparent = "transparent"
	BackgroundRainbow     = "rainbow"
)

// RainbowGradient is the preset multi-stop background.
func RainbowGradient() *Gradient {
	return &Gradient{
		Rotation: 135,
		Stops: []GradientStop{
			{Offset: 0, Color: NewColor("#667EEA")},
			{Offset: 0.5, Color: NewColor("#764BA2")},
			{Offset: 1, Color: NewColor("#F093FB")},
		},
	}
}

// SolidBackground returns an opaque background.
func SolidBackground(c Color) Background {
	return Background{Type: FillSolid, Color: c}
}

// ParseBackground accepts a named token or a hex color.
func ParseBackground(s string) (Background, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case BackgroundWhite, "":
		return SolidBackground(ColorWhite), nil
	case BackgroundTransparent:
		return Background{Type: FillNone, Color: ColorTransparent}, nil
	case BackgroundRainbow, "gradient":
		return Background{Type: FillGradientLinear, Color: NewColor("#667EEA"), Gradient: RainbowGradient()}, nil
	}
	c, err := ParseColor(s)
	if err != nil {
		return Background{}, err
	}
	return SolidBackground(c), nil
}

// ColorAt samples the gradient at t in [0,1].
func (g *Gradient) ColorAt(t float64) Color {
	if len(g.Stops) == 0 {
		return ColorTransparent
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return BlendColors(a.Color, b.Color, (t-a.Offset)/span)
		}
	}
	return g.Stops[len(g.Stops)-1].Color
}

// String returns the token or color used to build the background.
func (b Background) String() string {
	switch b.Type {
	case FillNone:
		return BackgroundTransparent
	case FillGradientLinear:
		return BackgroundRainbow
	}
	return b.Color.Hex()
}

// EdgeColor is the color used where shapes must blend into the canvas,
// such as the gap between pie slices.
func (b Background) EdgeColor() Color {
	switch b.Type {
	case FillNone:
		return ColorTransparent
	case FillGradientLinear:
		if b.Gradient != nil {
			return b.Gradient.ColorAt(0.5)
		}
	}
	return b.Color
}
