package gochart

import (
	"fmt"
	"strings"
)

// ChartKind identifies one of the supported chart types.
type ChartKind string

// Chart kinds.
const (
	KindPie       ChartKind = "pie"
	KindDonut     ChartKind = "donut"
	KindBar       ChartKind = "bar"
	KindLine      ChartKind = "line"
	KindPictogram ChartKind = "pictogram"
)

// ChartKinds lists every kind in menu order.
var ChartKinds = []ChartKind{KindPie, KindDonut, KindBar, KindLine, KindPictogram}

// ParseChartKind resolves a kind name, accepting "doughnut" for donut.
func ParseChartKind(s string) (ChartKind, error) {
	switch k := ChartKind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindPie, KindDonut, KindBar, KindLine, KindPictogram:
		return k, nil
	case "doughnut":
		return KindDonut, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
}

// MaxSeries returns how many series the kind can plot.
func (k ChartKind) MaxSeries() int {
	switch k {
	case KindBar:
		return 3
	case KindLine:
		return 2
	}
	return 1
}

// AllowsNegative reports whether values below zero are meaningful.
func (k ChartKind) AllowsNegative() bool {
	return k == KindBar || k == KindLine
}

// IsArc reports whether the kind is drawn as circle sectors.
func (k ChartKind) IsArc() bool {
	return k == KindPie || k == KindDonut
}

// IsCartesian reports whether the kind is plotted against axes.
func (k ChartKind) IsCartesian() bool {
	return k == KindBar || k == KindLine
}

// perCategoryColors reports whether each category has its own color.
func (k ChartKind) perCategoryColors() bool {
	return k != KindLine
}

// defaultSeriesName is the name used when input carries no header.
func (k ChartKind) defaultSeriesName(i int) string {
	if k == KindLine {
		return fmt.Sprintf("Line %d", i+1)
	}
	return fmt.Sprintf("Series %d", i+1)
}

// Data and text limits.
const (
	MinCategories    = 1
	MaxCategories    = 20
	MaxValue         = 1_000_000
	MaxLabelLength   = 50
	MaxTitleLength   = 100
	MaxCaptionLength = 200
	MaxInputLength   = 5000
)

// Series is one named sequence of values plotted against the categories.
type Series struct {
	Name   string
	Values []float64
	// Colors holds one color per category; nil for line series.
	Colors      []Color
	LineColor   Color
	MarkerColor Color
	BaseColor   Color
}

func (s *Series) clone() *Series {
	c := *s
	c.Values = append([]float64(nil), s.Values...)
	c.Colors = copyColors(s.Colors)
	return &c
}

// ChartAxis holds the shared axis appearance.
type ChartAxis struct {
	Visible   bool
	Font      *Font
	GridColor Color
}

// NewChartAxis creates a visible axis with default typography.
func NewChartAxis() *ChartAxis {
	return &ChartAxis{
		Visible:   true,
		Font:      NewFont(),
		GridColor: NewColor("#E0E0E0"),
	}
}

// LegendPosition is where the legend sits relative to the plot.
type LegendPosition string

const (
	LegendTop    LegendPosition = "top"
	LegendBottom LegendPosition = "bottom"
)

// ChartLegend holds legend appearance.
type ChartLegend struct {
	Visible  bool
	Position LegendPosition
	Font     *Font
}

// NewChartLegend creates a visible bottom legend.
func NewChartLegend() *ChartLegend {
	return &ChartLegend{
		Visible:  true,
		Position: LegendBottom,
		Font:     NewFont(),
	}
}

// ChartStyle is the kind-specific part of the chart appearance.
// Implementations: *ArcStyle, *BarStyle, *LineStyle, *PictogramStyle.
type ChartStyle interface {
	isChartStyle()
}

// ArcStyle applies to pie and donut charts.
type ArcStyle struct {
	CornerRadius int // 0–20 px
	GapWidth     int // 0–20 px
	Cutout       int // 0–90 percent, donut only
}

// BarOrientation is the direction bars grow in.
type BarOrientation string

const (
	BarVertical   BarOrientation = "vertical"
	BarHorizontal BarOrientation = "horizontal"
)

// BarMode selects how multiple series share a category.
type BarMode string

const (
	BarGrouped BarMode = "grouped"
	BarStacked BarMode = "stacked"
)

// BarStyle applies to bar charts.
type BarStyle struct {
	Orientation      BarOrientation
	Mode             BarMode
	CornerRadius     int     // 0–40 px
	CategoryFraction float64 // 0.4–1.0
	AspectRatio      float64 // 1.0–2.0
	BaseColors       []Color
}

// MarkerStyle is the point shape on line charts.
type MarkerStyle string

const (
	MarkerCircle  MarkerStyle = "circle"
	MarkerRectRot MarkerStyle = "rectRot"
	MarkerRect    MarkerStyle = "rect"
)

// LineStyle applies to line charts.
type LineStyle struct {
	Tension       float64 // 0–0.5
	Width         int     // 1–15 px
	AspectRatio   float64 // 1.0–2.0
	MarkerVisible bool
	MarkerStyle   MarkerStyle
	MarkerSize    int // 0–15 px
	LineColors    []Color
	MarkerColors  []Color
	BeginAtZero   bool
}

// PictogramStyle applies to the icon grid chart.
type PictogramStyle struct {
	IconID        string
	Filled        float64 // 0–10 icons
	FilledColor   Color
	UnfilledColor Color
	SpacingH      float64 // slider 0–100
	SpacingV      float64 // slider 0–100
}

func (*ArcStyle) isChartStyle()       {}
func (*BarStyle) isChartStyle()       {}
func (*LineStyle) isChartStyle()      {}
func (*PictogramStyle) isChartStyle() {}

func defaultStyles() map[ChartKind]ChartStyle {
	arc := &ArcStyle{CornerRadius: 5, GapWidth: 4, Cutout: 50}
	return map[ChartKind]ChartStyle{
		KindPie:   arc,
		KindDonut: arc,
		KindBar: &BarStyle{
			Orientation:      BarVertical,
			Mode:             BarGrouped,
			CornerRadius:     10,
			CategoryFraction: 0.8,
			AspectRatio:      1,
			BaseColors:       copyColors(DefaultBarColors),
		},
		KindLine: &LineStyle{
			Width:         3,
			AspectRatio:   1,
			MarkerVisible: true,
			MarkerStyle:   MarkerCircle,
			MarkerSize:    5,
			LineColors:    copyColors(DefaultLineColors),
			MarkerColors:  copyColors(DefaultMarkerColors),
			BeginAtZero:   true,
		},
		KindPictogram: &PictogramStyle{
			IconID:        DefaultIconID,
			Filled:        6.7,
			FilledColor:   NewColor("#8628DC"),
			UnfilledColor: NewColor("#E2C4FF"),
			SpacingH:      50,
			SpacingV:      50,
		},
	}
}

// ChartState is the canonical in-memory model of one chart. It is not safe
// for concurrent mutation; callers serialize access.
type ChartState struct {
	kind       ChartKind
	categories []string
	series     []*Series
	styles     map[ChartKind]ChartStyle
	axis       *ChartAxis
	legend     *ChartLegend
	title      TextBlock
	caption    TextBlock
	background Background
	inputCache map[ChartKind]string
}

// NewChartState creates a pie chart seeded with demo data.
func NewChartState() *ChartState {
	titleFont := NewFont().SetSize(24).SetBold(true)
	captionFont := NewFont().SetSize(14).SetLineHeight(1.4)
	s := &ChartState{
		kind:       KindPie,
		styles:     defaultStyles(),
		axis:       NewChartAxis(),
		legend:     NewChartLegend(),
		title:      TextBlock{Text: "Sample Chart", Font: titleFont, Alignment: HorizontalCenter},
		caption:    TextBlock{Font: captionFont, Alignment: HorizontalCenter},
		background: SolidBackground(ColorWhite),
		inputCache: make(map[ChartKind]string),
	}
	s.installPlaceholder(KindPie)
	return s
}

// Kind returns the active chart kind.
func (s *ChartState) Kind() ChartKind { return s.kind }

// Categories returns a copy of the category labels.
func (s *ChartState) Categories() []string {
	return append([]string(nil), s.categories...)
}

// SeriesCount returns the number of plotted series.
func (s *ChartState) SeriesCount() int { return len(s.series) }

// Series returns deep copies of every series.
func (s *ChartState) Series() []*Series {
	out := make([]*Series, len(s.series))
	for i, ser := range s.series {
		out[i] = ser.clone()
	}
	return out
}

// Axis returns the axis settings.
func (s *ChartState) Axis() ChartAxis {
	a := *s.axis
	a.Font = a.Font.clone()
	return a
}

// Legend returns the legend settings.
func (s *ChartState) Legend() ChartLegend {
	l := *s.legend
	l.Font = l.Font.clone()
	return l
}

// Title returns the title block.
func (s *ChartState) Title() TextBlock { return s.title.clone() }

// Caption returns the caption block.
func (s *ChartState) Caption() TextBlock { return s.caption.clone() }

// Background returns the canvas background.
func (s *ChartState) Background() Background { return s.background }

// CachedInput returns the tabular text stored for kind, if any.
func (s *ChartState) CachedInput(kind ChartKind) (string, bool) {
	text, ok := s.inputCache[kind]
	return text, ok
}

// ArcStyle returns the pie/donut style.
func (s *ChartState) ArcStyle() ArcStyle { return *s.arcStyle() }

// BarStyle returns the bar style.
func (s *ChartState) BarStyle() BarStyle {
	b := *s.barStyle()
	b.BaseColors = copyColors(b.BaseColors)
	return b
}

// LineStyle returns the line style.
func (s *ChartState) LineStyle() LineStyle {
	l := *s.lineStyle()
	l.LineColors = copyColors(l.LineColors)
	l.MarkerColors = copyColors(l.MarkerColors)
	return l
}

// PictogramStyle returns the pictogram style.
func (s *ChartState) PictogramStyle() PictogramStyle { return *s.pictogramStyle() }

func (s *ChartState) arcStyle() *ArcStyle { return s.styles[KindPie].(*ArcStyle) }

func (s *ChartState) barStyle() *BarStyle { return s.styles[KindBar].(*BarStyle) }

func (s *ChartState) lineStyle() *LineStyle { return s.styles[KindLine].(*LineStyle) }

func (s *ChartState) pictogramStyle() *PictogramStyle {
	return s.styles[KindPictogram].(*PictogramStyle)
}

// palette returns the per-series colors used by the synchronizer.
func (s *ChartState) palette() SeriesPalette {
	line := s.lineStyle()
	return SeriesPalette{
		Base:   s.barStyle().BaseColors,
		Line:   line.LineColors,
		Marker: line.MarkerColors,
	}
}

// syncColors runs the color synchronizer over the current data.
func (s *ChartState) syncColors() {
	SyncColors(s.kind, len(s.categories), s.series, s.palette())
}

// setData replaces categories and series and resynchronizes colors.
func (s *ChartState) setData(categories []string, series []*Series) {
	s.categories = categories
	s.series = series
	s.syncColors()
}

var placeholderMonths = []string{"Jan", "Feb", "Mar", "Apr", "May"}

// installPlaceholder resets data to the fixed starting set for kind.
func (s *ChartState) installPlaceholder(kind ChartKind) {
	switch kind {
	case KindBar, KindLine:
		ser := &Series{Name: kind.defaultSeriesName(0), Values: []float64{12, 19, 15, 25, 22}}
		s.setData(append([]string(nil), placeholderMonths...), []*Series{ser})
		if kind == KindBar {
			s.resetToBaseColors()
		}
	case KindPictogram:
		s.installPictogramData()
	default:
		ser := &Series{
			Name:   kind.defaultSeriesName(0),
			Values: []float64{30, 50, 20},
			Colors: copyColors(OpeningPalette),
		}
		s.setData([]string{"Category A", "Category B", "Category C"}, []*Series{ser})
	}
}

// installPictogramData derives Completed/Remaining from the filled amount.
func (s *ChartState) installPictogramData() {
	p := s.pictogramStyle()
	done := roundTo(p.Filled*10, 1)
	ser := &Series{
		Name:   KindPictogram.defaultSeriesName(0),
		Values: []float64{done, roundTo(100-done, 1)},
		Colors: []Color{p.FilledColor, p.UnfilledColor},
	}
	s.setData([]string{"Completed", "Remaining"}, []*Series{ser})
}

// resetToBaseColors fills every bar series with its base color.
func (s *ChartState) resetToBaseColors() {
	for _, ser := range s.series {
		ser.Colors = make([]Color, len(s.categories))
		for i := range ser.Colors {
			ser.Colors[i] = ser.BaseColor
		}
	}
}

// clone returns a deep copy of s. Pie and donut keep sharing one arc style.
func (s *ChartState) clone() *ChartState {
	c := *s
	c.categories = append([]string(nil), s.categories...)
	c.series = s.Series()

	arc := *s.arcStyle()
	bar := s.BarStyle()
	line := s.LineStyle()
	pict := *s.pictogramStyle()
	c.styles = map[ChartKind]ChartStyle{
		KindPie:       &arc,
		KindDonut:     &arc,
		KindBar:       &bar,
		KindLine:      &line,
		KindPictogram: &pict,
	}

	axis := s.Axis()
	legend := s.Legend()
	c.axis = &axis
	c.legend = &legend
	c.title = s.title.clone()
	c.caption = s.caption.clone()

	c.inputCache = make(map[ChartKind]string, len(s.inputCache))
	for k, v := range s.inputCache {
		c.inputCache[k] = v
	}
	return &c
}
