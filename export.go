package gochart

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

// ParseImageFormat accepts "png", "jpg" or "jpeg".
func ParseImageFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png", "":
		return ImageFormatPNG, nil
	case "jpg", "jpeg":
		return ImageFormatJPEG, nil
	}
	return 0, fmt.Errorf("unknown image format %q", s)
}

// Extension returns the file extension without a dot.
func (f ImageFormat) Extension() string {
	if f == ImageFormatJPEG {
		return "jpg"
	}
	return "png"
}

func (f ImageFormat) String() string { return f.Extension() }

// Export layout at the reference width. Other widths scale these.
const (
	ExportWidth         = 1080
	exportChartWidth    = 1000
	exportTopPadding    = 120
	exportTitleBlock    = 80
	exportCaptionBlock  = 80
	exportBottomPadding = 60
	exportTitleBaseline = 60
	exportTitleSize     = 48
	exportCaptionSize   = 28
	exportCaptionOffset = 40
	exportTextMargin    = 40
)

// ExportOptions configures chart-to-image rendering.
type ExportOptions struct {
	// Width is the output image width in pixels. Default: 1080.
	Width int
	// Format is the output image format (PNG or JPEG).
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 90.
	JPEGQuality int
	// FontDirs specifies additional directories to search for TrueType/OpenType fonts.
	FontDirs []string
	// FontCache allows sharing a pre-configured FontCache across renders.
	// If nil, one is created from FontDirs.
	FontCache *FontCache
	// Decoder rasterizes pictogram icons. If nil, builtin icons are used.
	Decoder *IconDecoder
}

// DefaultExportOptions returns default export options.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Width:       ExportWidth,
		Format:      ImageFormatPNG,
		JPEGQuality: 90,
	}
}

// ExportLayout holds the vertical placement of the export canvas parts.
type ExportLayout struct {
	Width, Height   int
	TitleBaseline   float64
	Chart           Rect
	CaptionBaseline float64
	Scale           float64
}

// LayoutExport computes the export canvas for d. The chart area is
// centered and sized by the chart's aspect ratio; the pictogram grid spans
// the full width with its own padding.
func LayoutExport(d *RenderDescriptor, width int) ExportLayout {
	if width <= 0 {
		width = ExportWidth
	}
	k := float64(width) / ExportWidth
	l := ExportLayout{Width: width, Scale: k}

	var chartW, chartH, chartX float64
	if d.Kind == KindPictogram && d.Pictogram != nil {
		g := LayoutPictogram(d.Pictogram.SpacingH, d.Pictogram.SpacingV, float64(width), scaledMetrics(ExportMetrics, k))
		chartW, chartH = float64(width), g.CanvasHeight
	} else {
		chartW = exportChartWidth * k
		chartH = chartW / d.AspectRatio()
		chartX = (float64(width) - chartW) / 2
	}

	y := exportTitleBaseline * k
	height := exportTopPadding * k
	if d.Title.Text != "" {
		l.TitleBaseline = y
		y += exportTitleBlock * k
		height += exportTitleBlock * k
	}
	l.Chart = Rect{X: chartX, Y: y, W: chartW, H: chartH}
	height += chartH
	if d.Caption.Text != "" {
		l.CaptionBaseline = l.Chart.MaxY() + exportCaptionOffset*k
		height += exportCaptionBlock * k
	}
	height += exportBottomPadding * k
	l.Height = int(math.Ceil(height))
	return l
}

func scaledMetrics(m PictogramMetrics, k float64) PictogramMetrics {
	return PictogramMetrics{Padding: m.Padding * k}
}

// RenderImage draws d onto a new canvas. Pictogram icons that fail to
// decode are left out; their *IconDecodeError values are returned joined
// alongside the image. A nil image is returned only with
// ErrFrameSuperseded or a cancelled context.
func RenderImage(ctx context.Context, d *RenderDescriptor, opts ExportOptions) (*image.RGBA, error) {
	if d == nil {
		return nil, errors.New("nil render descriptor")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l := LayoutExport(d, opts.Width)
	img := image.NewRGBA(image.Rect(0, 0, l.Width, l.Height))

	fonts := opts.FontCache
	if fonts == nil {
		fonts = NewFontCache(opts.FontDirs...)
	}
	r := newRenderer(img, fonts, d.Background)
	r.paintBackground()

	w := float64(l.Width)
	margin := exportTextMargin * l.Scale
	r.drawTextBlock(d.Title, exportTitleSize*l.Scale, w, margin, l.TitleBaseline)

	var decodeErr error
	if d.Kind == KindPictogram {
		img, decodeErr = r.renderPictogram(ctx, d, l, opts.Decoder)
		if img == nil {
			return nil, decodeErr
		}
	} else {
		r.renderChart(d, l.Chart)
	}

	r.drawTextBlock(d.Caption, exportCaptionSize*l.Scale, w, margin, l.CaptionBaseline)
	return img, decodeErr
}

// renderPictogram draws the icon grid for the export layout.
func (r *renderer) renderPictogram(ctx context.Context, d *RenderDescriptor, l ExportLayout, dec *IconDecoder) (*image.RGBA, error) {
	p := d.Pictogram
	if p == nil {
		return r.img, nil
	}
	if dec == nil {
		dec = NewIconDecoder(nil)
	}
	g := LayoutPictogram(p.SpacingH, p.SpacingV, l.Chart.W, scaledMetrics(ExportMetrics, l.Scale))
	ops := PictogramFrame(p.Filled, p.IconID, p.FilledColor, p.UnfilledColor, g)
	origin := image.Pt(int(math.Round(l.Chart.X)), int(math.Round(l.Chart.Y)))
	err := dec.RenderPictogram(ctx, r.img, ops, origin)
	if errors.Is(err, ErrFrameSuperseded) {
		return nil, err
	}
	return r.img, err
}

// EncodeImage writes img in the configured format.
func EncodeImage(w io.Writer, img image.Image, opts ExportOptions) error {
	switch opts.Format {
	case ImageFormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		return jpeg.Encode(w, flatten(img), &jpeg.Options{Quality: quality})
	default:
		return png.Encode(w, img)
	}
}

// flatten composites img onto white; JPEG has no alpha channel.
func flatten(img image.Image) image.Image {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}

// SaveImage encodes img to path, creating parent directories.
func SaveImage(img image.Image, path string, opts ExportOptions) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := EncodeImage(f, img, opts); err != nil {
		f.Close()
		return fmt.Errorf("encode image: %w", err)
	}
	return f.Close()
}

// ExportFileName returns the download name for a chart exported on day t,
// e.g. "chartflam-bar-2026-01-02.png".
func ExportFileName(kind ChartKind, t time.Time, format ImageFormat) string {
	return fmt.Sprintf("chartflam-%s-%s.%s", kind, t.Format(time.DateOnly), format.Extension())
}
