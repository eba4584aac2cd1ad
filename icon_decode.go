package gochart

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// Decoder defaults.
const (
	DefaultDecodeWorkers = 4
	DefaultDecodeTimeout = 2 * time.Second
)

// FrameSequencer hands out increasing frame generations. A frame whose
// generation is no longer current has been superseded.
type FrameSequencer struct {
	gen atomic.Uint64
}

// Next starts a new frame and returns its generation.
func (f *FrameSequencer) Next() uint64 { return f.gen.Add(1) }

// Current returns the newest generation handed out.
func (f *FrameSequencer) Current() uint64 { return f.gen.Load() }

// IsCurrent reports whether gen is still the newest frame.
func (f *FrameSequencer) IsCurrent(gen uint64) bool { return f.gen.Load() == gen }

// IconDecoder rasterizes icons from a repository with bounded concurrency.
type IconDecoder struct {
	repo    IconRepository
	workers int
	timeout time.Duration
	seq     FrameSequencer
}

// DecoderOption configures an IconDecoder.
type DecoderOption func(*IconDecoder)

// WithDecodeWorkers limits concurrent decodes. Values below 1 are ignored.
func WithDecodeWorkers(n int) DecoderOption {
	return func(d *IconDecoder) {
		if n > 0 {
			d.workers = n
		}
	}
}

// WithDecodeTimeout bounds each decode. Values of zero or less are ignored.
func WithDecodeTimeout(t time.Duration) DecoderOption {
	return func(d *IconDecoder) {
		if t > 0 {
			d.timeout = t
		}
	}
}

// NewIconDecoder creates a decoder over repo. A nil repo uses BuiltinIcons.
func NewIconDecoder(repo IconRepository, opts ...DecoderOption) *IconDecoder {
	if repo == nil {
		repo = BuiltinIcons()
	}
	d := &IconDecoder{
		repo:    repo,
		workers: DefaultDecodeWorkers,
		timeout: DefaultDecodeTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Repository returns the icon source.
func (d *IconDecoder) Repository() IconRepository { return d.repo }

// Sequencer returns the frame counter shared by every RenderPictogram call.
func (d *IconDecoder) Sequencer() *FrameSequencer { return &d.seq }

// RasterizeIcon renders icon id at w×h pixels in color c.
func (d *IconDecoder) RasterizeIcon(ctx context.Context, id string, c Color, w, h int) (*image.RGBA, error) {
	icon, ok := d.repo.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrIconNotFound, id)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("icon size %dx%d", w, h)
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	type result struct {
		img *image.RGBA
		err error
	}
	done := make(chan result, 1)
	go func() {
		img, err := rasterizeSVG(colorizeSVG(icon.SVG, c), w, h)
		done <- result{img, err}
	}()

	select {
	case r := <-done:
		return r.img, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// rasterizeSVG draws markup scaled to w×h.
func rasterizeSVG(markup string, w, h int) (img *image.RGBA, err error) {
	defer func() {
		if p := recover(); p != nil {
			img, err = nil, fmt.Errorf("rasterize svg: %v", p)
		}
	}()
	icon, err := oksvg.ReadIconStream(strings.NewReader(markup), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("read svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	img = image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img, nil
}

// RenderPictogram decodes and draws one frame of ops onto dst, with op
// coordinates offset by origin. Icons that fail are omitted and reported
// as *IconDecodeError values joined into the returned error; the rest are
// drawn. If a newer frame starts before decoding finishes, nothing is
// drawn and ErrFrameSuperseded is returned.
func (d *IconDecoder) RenderPictogram(ctx context.Context, dst xdraw.Image, ops []IconDrawOp, origin image.Point) error {
	gen := d.seq.Next()

	type decoded struct {
		img *image.RGBA
		err error
	}
	results := make([]decoded, len(ops))

	var g errgroup.Group
	g.SetLimit(d.workers)
	for i, op := range ops {
		cell := pixelRect(op.Rect)
		if cell.Empty() {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = decoded{err: err}
				return nil
			}
			img, err := d.RasterizeIcon(ctx, op.IconID, op.Color, cell.Dx(), cell.Dy())
			results[i] = decoded{img: img, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if !d.seq.IsCurrent(gen) {
		return ErrFrameSuperseded
	}

	var errs []error
	for i, op := range ops {
		r := results[i]
		if r.err != nil {
			errs = append(errs, &IconDecodeError{IconID: op.IconID, Index: op.Index, Err: r.err})
			continue
		}
		if r.img == nil {
			continue
		}
		cell := pixelRect(op.Rect).Add(origin)
		clip := pixelRect(op.Clip).Add(origin).Intersect(cell)
		if clip.Empty() {
			continue
		}
		xdraw.Draw(dst, clip, r.img, clip.Min.Sub(cell.Min), xdraw.Over)
	}
	return errors.Join(errs...)
}

// pixelRect rounds each edge independently so adjacent clips abut.
func pixelRect(r Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.MaxX())), int(math.Round(r.MaxY())),
	)
}
