package gochart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/VantageDataChat/GoChart/internal/logging"
)

// Engine is the presentation-facing wrapper around a ChartState. Every
// mutation either succeeds and leaves the state validated and
// color-synchronized, or fails and leaves it exactly as it was.
//
// An Engine is not safe for concurrent mutation; exports may run
// concurrently with each other.
type Engine struct {
	state   *ChartState
	dirty   bool
	desc    *RenderDescriptor
	log     *bolt.Logger
	icons   IconRepository
	decoder *IconDecoder
	fonts   *FontCache
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger. The default drops every event.
func WithLogger(l *bolt.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithIcons sets the icon repository used by SelectIcon and exports.
func WithIcons(repo IconRepository) EngineOption {
	return func(e *Engine) {
		if repo != nil {
			e.icons = repo
		}
	}
}

// WithDecoder sets the pictogram icon decoder. It takes precedence over
// WithIcons for rendering.
func WithDecoder(d *IconDecoder) EngineOption {
	return func(e *Engine) {
		if d != nil {
			e.decoder = d
		}
	}
}

// WithFontCache shares a font cache across exports.
func WithFontCache(fc *FontCache) EngineOption {
	return func(e *Engine) {
		if fc != nil {
			e.fonts = fc
		}
	}
}

// NewEngine creates an engine holding the default pie chart.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		state: NewChartState(),
		dirty: true,
		log:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.decoder == nil {
		e.decoder = NewIconDecoder(e.icons)
	}
	if e.icons == nil {
		e.icons = e.decoder.Repository()
	}
	return e
}

// State returns a snapshot of the chart model.
func (e *Engine) State() *ChartState { return e.state.clone() }

// Kind returns the active chart kind.
func (e *Engine) Kind() ChartKind { return e.state.kind }

// Icons returns the icon repository.
func (e *Engine) Icons() IconRepository { return e.icons }

// mutate runs fn against the state and rolls back on error or when the
// result fails validation.
func (e *Engine) mutate(op string, fn func(s *ChartState) error) error {
	snapshot := e.state.clone()
	if err := fn(e.state); err != nil {
		e.state = snapshot
		logging.NewEvent(e.log.Debug()).
			Add(logging.Operation(op)).
			Add(logging.ErrorField(err)).
			Msg("operation rejected")
		return err
	}
	if err := e.state.Validate(); err != nil {
		e.state = snapshot
		logging.NewEvent(e.log.Error()).
			Add(logging.Operation(op)).
			Add(logging.ChartKind(string(e.state.kind))).
			Add(logging.ErrorField(err)).
			Msg("invariant violation, state restored")
		return err
	}
	e.dirty = true
	return nil
}

// SetChartType switches the active kind, saving bar/line input for later
// and restoring the target kind's cached input when it still parses.
func (e *Engine) SetChartType(kind ChartKind) (TransitionResult, error) {
	kind, err := ParseChartKind(string(kind))
	if err != nil {
		return TransitionResult{From: e.state.kind}, err
	}
	var res TransitionResult
	err = e.mutate("set_chart_type", func(s *ChartState) error {
		res = s.SetChartType(kind)
		return nil
	})
	if err != nil {
		return res, err
	}
	if !res.Changed {
		return res, nil
	}

	logging.NewEvent(e.log.Debug()).
		Add(logging.FromKind(string(res.From))).
		Add(logging.ToKind(string(res.To))).
		Add(logging.Restored(res.Restored)).
		Msg("chart type changed")
	if res.CacheErr != nil {
		logging.NewEvent(e.log.Warn()).
			Add(logging.ChartKind(string(kind))).
			Add(logging.ErrorField(res.CacheErr)).
			Msg("cached input unusable, placeholder data installed")
	}
	return res, nil
}

// IngestTabularText parses text for the active kind. Empty text installs
// placeholder data and returns a nil result.
func (e *Engine) IngestTabularText(text string) (*ParseResult, error) {
	var res *ParseResult
	err := e.mutate("ingest", func(s *ChartState) error {
		var err error
		res, err = s.IngestTabularText(text)
		return err
	})
	if err != nil {
		var empty *EmptyResultError
		if errors.As(err, &empty) {
			logging.NewEvent(e.log.Warn()).
				Add(logging.ChartKind(string(e.state.kind))).
				Add(logging.Skipped(len(empty.Skipped))).
				Msg("no valid rows, data unchanged")
		}
		return nil, err
	}

	ev := logging.NewEvent(e.log.Info()).Add(logging.ChartKind(string(e.state.kind)))
	if res == nil {
		ev.Add(logging.Rows(len(e.state.categories))).Msg("placeholder data installed")
		return nil, nil
	}
	ev.Add(logging.Rows(len(res.Categories))).
		Add(logging.Series(res.SeriesCount())).
		Add(logging.Skipped(len(res.Skipped))).
		Msg("tabular data ingested")
	return res, nil
}

// SetManualRow replaces one data row.
func (e *Engine) SetManualRow(index int, label string, values []float64) error {
	return e.mutate("set_row", func(s *ChartState) error {
		return s.SetManualRow(index, label, values)
	})
}

// AddManualRow appends one data row.
func (e *Engine) AddManualRow(label string, values []float64) error {
	return e.mutate("add_row", func(s *ChartState) error {
		return s.AddManualRow(label, values)
	})
}

// RemoveManualRow deletes one data row.
func (e *Engine) RemoveManualRow(index int) error {
	return e.mutate("remove_row", func(s *ChartState) error {
		return s.RemoveManualRow(index)
	})
}

// SetColor assigns a color slot.
func (e *Engine) SetColor(target ColorTarget, value string) error {
	return e.mutate("set_color", func(s *ChartState) error {
		return s.SetColor(target, value)
	})
}

// ResetCategoryColor restores a bar category to its series base color.
func (e *Engine) ResetCategoryColor(series, category int) error {
	return e.mutate("reset_color", func(s *ChartState) error {
		return s.ResetCategoryColor(series, category)
	})
}

// SetStyleParameter applies one appearance setting. Icon parameters are
// checked against the repository.
func (e *Engine) SetStyleParameter(param StyleParam, value string) error {
	if param == ParamPictogramIcon {
		return e.SelectIcon(value)
	}
	err := e.mutate("set_style", func(s *ChartState) error {
		return s.SetStyleParameter(param, value)
	})
	if err == nil {
		logging.NewEvent(e.log.Debug()).Add(logging.Param(string(param), value)).Msg("style updated")
	}
	return err
}

// SetPictogramFilled sets the filled icon amount, clamped to 0–10.
func (e *Engine) SetPictogramFilled(v float64) error {
	return e.mutate("set_filled", func(s *ChartState) error {
		s.SetPictogramFilled(v)
		return nil
	})
}

// SetPictogramSpacing sets both spacing sliders, clamped to 0–100.
func (e *Engine) SetPictogramSpacing(h, v float64) error {
	return e.mutate("set_spacing", func(s *ChartState) error {
		s.SetPictogramSpacing(h, v)
		return nil
	})
}

// SelectIcon sets the pictogram icon. Unknown ids return ErrIconNotFound.
func (e *Engine) SelectIcon(id string) error {
	id = strings.TrimSpace(id)
	if _, ok := e.icons.Lookup(id); !ok {
		return fmt.Errorf("%w: %q", ErrIconNotFound, id)
	}
	return e.mutate("select_icon", func(s *ChartState) error {
		return s.SelectIcon(id)
	})
}

// SetBackground applies a background token or color.
func (e *Engine) SetBackground(value string) error {
	return e.mutate("set_background", func(s *ChartState) error {
		return s.SetBackground(value)
	})
}

// SetTitle sets the title text.
func (e *Engine) SetTitle(text string) error {
	return e.mutate("set_title", func(s *ChartState) error {
		return s.SetTitle(text)
	})
}

// SetCaption sets the caption text.
func (e *Engine) SetCaption(text string) error {
	return e.mutate("set_caption", func(s *ChartState) error {
		return s.SetCaption(text)
	})
}

// Descriptor returns the render descriptor, rebuilding it only after a
// mutation. Callers must not modify the result.
func (e *Engine) Descriptor() *RenderDescriptor {
	if e.dirty || e.desc == nil {
		e.desc = BuildDescriptor(e.state)
		e.dirty = false
	}
	return e.desc
}

// PictogramGeometry lays out the icon grid for a preview canvas of width.
func (e *Engine) PictogramGeometry(width float64) PictogramGeometry {
	p := e.state.pictogramStyle()
	return LayoutPictogram(p.SpacingH, p.SpacingV, width, PreviewMetrics)
}

// ExportImage renders the chart and encodes it to w. Icons that failed
// to decode are left out of the image; their errors are returned after
// the image has been written.
func (e *Engine) ExportImage(ctx context.Context, w io.Writer, opts ExportOptions) error {
	if opts.Decoder == nil {
		opts.Decoder = e.decoder
	}
	if opts.FontCache == nil && e.fonts != nil {
		opts.FontCache = e.fonts
	}

	start := time.Now()
	d := e.Descriptor()
	img, renderErr := RenderImage(ctx, d, opts)
	if img == nil {
		if errors.Is(renderErr, ErrFrameSuperseded) {
			logging.NewEvent(e.log.Debug()).
				Add(logging.Generation(opts.Decoder.Sequencer().Current())).
				Msg("export superseded by a newer frame")
		}
		return renderErr
	}
	if renderErr != nil {
		ev := logging.NewEvent(e.log.Warn()).Add(logging.ChartKind(string(d.Kind)))
		if d.Pictogram != nil {
			ev.Add(logging.IconID(d.Pictogram.IconID))
		}
		ev.Add(logging.ErrorField(renderErr)).Msg("icons omitted from export")
	}

	if err := EncodeImage(w, img, opts); err != nil {
		return fmt.Errorf("encode image: %w", err)
	}
	logging.NewEvent(e.log.Info()).
		Add(logging.ChartKind(string(d.Kind))).
		Add(logging.Str("format", opts.Format.String())).
		Add(logging.Duration(time.Since(start))).
		Msg("image exported")
	return renderErr
}

// ExportHTML writes an interactive HTML rendering of the chart.
func (e *Engine) ExportHTML(w io.Writer) error {
	d := e.Descriptor()
	if err := WriteHTML(w, d); err != nil {
		return err
	}
	logging.NewEvent(e.log.Info()).Add(logging.ChartKind(string(d.Kind))).Msg("html exported")
	return nil
}
