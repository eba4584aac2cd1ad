package gochart

// PointStyle is the swatch shape used for legend entries.
type PointStyle string

const (
	PointCircle PointStyle = "circle"
	PointRect   PointStyle = "rect"
	PointLine   PointStyle = "line"
)

// Dataset is one series as the drawing layer consumes it.
type Dataset struct {
	Label  string
	Values []float64
	// Colors holds one fill per category. Line datasets leave it nil.
	Colors        []Color
	BorderColor   Color
	BorderWidth   int
	CornerRadius  int
	Tension       float64
	MarkerVisible bool
	MarkerStyle   MarkerStyle
	MarkerSize    int
	MarkerColor   Color
}

// BarOptions configures bar drawing.
type BarOptions struct {
	Orientation      BarOrientation
	Stacked          bool
	CornerRadius     int
	CategoryFraction float64
	AspectRatio      float64
}

// ArcOptions configures pie and donut drawing.
type ArcOptions struct {
	CornerRadius int
	GapWidth     int
	GapColor     Color
	// Cutout is the inner radius as a fraction of the outer radius.
	Cutout float64
}

// LineOptions configures line drawing.
type LineOptions struct {
	AspectRatio float64
	BeginAtZero bool
}

// PictogramOptions configures the icon grid.
type PictogramOptions struct {
	IconID        string
	Filled        float64
	FilledColor   Color
	UnfilledColor Color
	SpacingH      float64
	SpacingV      float64
}

// AxisOptions configures tick labels and gridlines.
type AxisOptions struct {
	Visible   bool
	Font      *Font
	GridColor Color
	// Gridlines is true when value gridlines are drawn.
	Gridlines bool
}

// LegendEntry is one swatch and label.
type LegendEntry struct {
	Label string
	Color Color
}

// LegendOptions configures the legend.
type LegendOptions struct {
	Visible    bool
	Position   LegendPosition
	Font       *Font
	PointStyle PointStyle
	Entries    []LegendEntry
}

// RenderDescriptor is the complete drawing input for one chart. It shares
// no memory with the ChartState it was built from.
type RenderDescriptor struct {
	Kind       ChartKind
	Categories []string
	Datasets   []Dataset
	Bar        *BarOptions
	Arc        *ArcOptions
	Line       *LineOptions
	Pictogram  *PictogramOptions
	Axes       AxisOptions
	Legend     LegendOptions
	Title      TextBlock
	Caption    TextBlock
	Background Background
}

// AspectRatio returns width/height of the chart area.
func (d *RenderDescriptor) AspectRatio() float64 {
	switch {
	case d.Bar != nil && d.Bar.AspectRatio > 0:
		return d.Bar.AspectRatio
	case d.Line != nil && d.Line.AspectRatio > 0:
		return d.Line.AspectRatio
	}
	return 1
}

// BuildDescriptor derives the drawing input from the current state.
func BuildDescriptor(s *ChartState) *RenderDescriptor {
	d := &RenderDescriptor{
		Kind:       s.kind,
		Categories: append([]string(nil), s.categories...),
		Title:      s.title.clone(),
		Caption:    s.caption.clone(),
		Background: s.background,
		Axes: AxisOptions{
			Visible:   s.axis.Visible && s.kind.IsCartesian(),
			Font:      s.axis.Font.clone(),
			GridColor: s.axis.GridColor,
			Gridlines: s.kind == KindLine,
		},
	}
	if g := s.background.Gradient; g != nil {
		gc := *g
		gc.Stops = append([]GradientStop(nil), g.Stops...)
		d.Background.Gradient = &gc
	}

	switch s.kind {
	case KindPie, KindDonut:
		d.Arc, d.Datasets = arcDatasets(s)
	case KindBar:
		d.Bar, d.Datasets = barDatasets(s)
	case KindLine:
		d.Line, d.Datasets = lineDatasets(s)
	case KindPictogram:
		d.Pictogram, d.Datasets = pictogramDatasets(s)
	}
	d.Legend = buildLegend(s, d.Datasets)
	return d
}

func arcDatasets(s *ChartState) (*ArcOptions, []Dataset) {
	a := s.arcStyle()
	opts := &ArcOptions{
		CornerRadius: a.CornerRadius,
		GapWidth:     a.GapWidth,
		GapColor:     s.background.EdgeColor(),
	}
	if s.kind == KindDonut {
		opts.Cutout = PercentToFraction(float64(a.Cutout))
	}
	out := make([]Dataset, len(s.series))
	for i, ser := range s.series {
		out[i] = Dataset{
			Label:        ser.Name,
			Values:       append([]float64(nil), ser.Values...),
			Colors:       copyColors(ser.Colors),
			BorderColor:  opts.GapColor,
			BorderWidth:  a.GapWidth,
			CornerRadius: a.CornerRadius,
		}
	}
	return opts, out
}

func barDatasets(s *ChartState) (*BarOptions, []Dataset) {
	b := s.barStyle()
	opts := &BarOptions{
		Orientation:      b.Orientation,
		Stacked:          b.Mode == BarStacked && len(s.series) > 1,
		CornerRadius:     b.CornerRadius,
		CategoryFraction: b.CategoryFraction,
		AspectRatio:      b.AspectRatio,
	}
	out := make([]Dataset, len(s.series))
	for i, ser := range s.series {
		out[i] = Dataset{
			Label:        ser.Name,
			Values:       append([]float64(nil), ser.Values...),
			Colors:       copyColors(ser.Colors),
			BorderColor:  ser.BaseColor,
			CornerRadius: b.CornerRadius,
		}
	}
	return opts, out
}

func lineDatasets(s *ChartState) (*LineOptions, []Dataset) {
	l := s.lineStyle()
	opts := &LineOptions{AspectRatio: l.AspectRatio, BeginAtZero: l.BeginAtZero}
	out := make([]Dataset, len(s.series))
	for i, ser := range s.series {
		out[i] = Dataset{
			Label:         ser.Name,
			Values:        append([]float64(nil), ser.Values...),
			BorderColor:   ser.LineColor,
			BorderWidth:   l.Width,
			Tension:       l.Tension,
			MarkerVisible: l.MarkerVisible && l.MarkerSize > 0,
			MarkerStyle:   l.MarkerStyle,
			MarkerSize:    l.MarkerSize,
			MarkerColor:   ser.MarkerColor,
		}
	}
	return opts, out
}

func pictogramDatasets(s *ChartState) (*PictogramOptions, []Dataset) {
	p := s.pictogramStyle()
	opts := &PictogramOptions{
		IconID:        p.IconID,
		Filled:        p.Filled,
		FilledColor:   p.FilledColor,
		UnfilledColor: p.UnfilledColor,
		SpacingH:      p.SpacingH,
		SpacingV:      p.SpacingV,
	}
	out := make([]Dataset, len(s.series))
	for i, ser := range s.series {
		out[i] = Dataset{
			Label:  ser.Name,
			Values: append([]float64(nil), ser.Values...),
			Colors: copyColors(ser.Colors),
		}
	}
	return opts, out
}

// buildLegend applies the visibility rules: pie and donut follow the
// toggle, bar and line need the toggle and more than one series, and the
// pictogram never shows a legend.
func buildLegend(s *ChartState, datasets []Dataset) LegendOptions {
	l := LegendOptions{
		Position: s.legend.Position,
		Font:     s.legend.Font.clone(),
	}
	switch s.kind {
	case KindPie, KindDonut:
		l.Visible = s.legend.Visible
		l.PointStyle = PointCircle
		if len(datasets) > 0 {
			for i, cat := range s.categories {
				l.Entries = append(l.Entries, LegendEntry{Label: cat, Color: seriesColor(datasets[0].Colors, i)})
			}
		}
	case KindBar:
		l.Visible = s.legend.Visible && len(datasets) > 1
		l.PointStyle = PointRect
		for _, ds := range datasets {
			l.Entries = append(l.Entries, LegendEntry{Label: ds.Label, Color: ds.BorderColor})
		}
	case KindLine:
		l.Visible = s.legend.Visible && len(datasets) > 1
		l.PointStyle = PointLine
		for _, ds := range datasets {
			l.Entries = append(l.Entries, LegendEntry{Label: ds.Label, Color: ds.BorderColor})
		}
	}
	return l
}
