package gochart

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// htmlStackName groups stacked bar series.
const htmlStackName = "total"

// WriteHTML writes d as a standalone interactive HTML page. Pictograms
// have no HTML form and return ErrUnsupportedKind.
func WriteHTML(w io.Writer, d *RenderDescriptor) error {
	var err error
	switch d.Kind {
	case KindBar:
		err = htmlBar(d).Render(w)
	case KindLine:
		err = htmlLine(d).Render(w)
	case KindPie, KindDonut:
		err = htmlPie(d).Render(w)
	default:
		return fmt.Errorf("%w: %s has no html form", ErrUnsupportedKind, d.Kind)
	}
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func htmlGlobals(d *RenderDescriptor) []charts.GlobalOpts {
	width := exportChartWidth
	height := int(float64(width) / d.AspectRatio())
	init := opts.Initialization{
		PageTitle: d.Title.Text,
		Width:     strconv.Itoa(width) + "px",
		Height:    strconv.Itoa(height) + "px",
	}
	if d.Background.Type != FillNone {
		init.BackgroundColor = d.Background.EdgeColor().Hex()
	}

	title := opts.Title{Title: d.Title.Text, Subtitle: d.Caption.Text, Left: string(d.Title.Alignment)}
	if f := d.Title.Font; f != nil {
		title.TitleStyle = htmlTextStyle(f)
	}
	if f := d.Caption.Font; f != nil {
		title.SubtitleStyle = htmlTextStyle(f)
	}

	legend := opts.Legend{Show: opts.Bool(d.Legend.Visible)}
	if d.Legend.Position == LegendTop {
		legend.Top = "40"
	} else {
		legend.Bottom = "0"
	}
	if d.Legend.Font != nil {
		legend.TextStyle = htmlTextStyle(d.Legend.Font)
	}

	return []charts.GlobalOpts{
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(title),
		charts.WithLegendOpts(legend),
	}
}

func htmlTextStyle(f *Font) *opts.TextStyle {
	ts := &opts.TextStyle{
		Color:      f.Color.Hex(),
		FontFamily: f.Name,
		FontSize:   f.Size,
	}
	if f.Bold {
		ts.FontWeight = "bold"
	}
	if f.Italic {
		ts.FontStyle = "italic"
	}
	return ts
}

func htmlAxes(d *RenderDescriptor) (opts.XAxis, opts.YAxis) {
	show := opts.Bool(d.Axes.Visible)
	x := opts.XAxis{Show: show}
	y := opts.YAxis{Show: show}
	if d.Axes.Gridlines {
		y.SplitLine = &opts.SplitLine{
			Show:      opts.Bool(true),
			LineStyle: &opts.LineStyle{Color: d.Axes.GridColor.Hex()},
		}
	}
	return x, y
}

func htmlBar(d *RenderDescriptor) *charts.Bar {
	bar := charts.NewBar()
	x, y := htmlAxes(d)
	bar.SetGlobalOptions(append(htmlGlobals(d), charts.WithXAxisOpts(x), charts.WithYAxisOpts(y))...)
	bar.SetXAxis(d.Categories)
	for _, ds := range d.Datasets {
		data := make([]opts.BarData, len(ds.Values))
		for i, v := range ds.Values {
			data[i] = opts.BarData{Value: v, ItemStyle: &opts.ItemStyle{Color: seriesColor(ds.Colors, i).Hex()}}
		}
		series := []charts.SeriesOpts{charts.WithItemStyleOpts(opts.ItemStyle{Color: ds.BorderColor.Hex()})}
		if d.Bar != nil && d.Bar.Stacked {
			series = append(series, charts.WithBarChartOpts(opts.BarChart{Stack: htmlStackName}))
		}
		bar.AddSeries(ds.Label, data, series...)
	}
	if d.Bar != nil && d.Bar.Orientation == BarHorizontal {
		bar.XYReversal()
	}
	return bar
}

// htmlSymbols maps marker styles to echarts symbol names.
var htmlSymbols = map[MarkerStyle]string{
	MarkerCircle:  "circle",
	MarkerRect:    "rect",
	MarkerRectRot: "diamond",
}

func htmlLine(d *RenderDescriptor) *charts.Line {
	line := charts.NewLine()
	x, y := htmlAxes(d)
	if d.Line != nil && !d.Line.BeginAtZero {
		y.Scale = opts.Bool(true)
	}
	line.SetGlobalOptions(append(htmlGlobals(d), charts.WithXAxisOpts(x), charts.WithYAxisOpts(y))...)
	line.SetXAxis(d.Categories)
	for _, ds := range d.Datasets {
		data := make([]opts.LineData, len(ds.Values))
		for i, v := range ds.Values {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(ds.Label, data,
			charts.WithLineChartOpts(opts.LineChart{
				Smooth:     opts.Bool(ds.Tension > 0),
				ShowSymbol: opts.Bool(ds.MarkerVisible),
				Symbol:     htmlSymbols[ds.MarkerStyle],
				SymbolSize: ds.MarkerSize * 2,
			}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: ds.BorderColor.Hex(), Width: float32(ds.BorderWidth)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: ds.MarkerColor.Hex()}),
		)
	}
	return line
}

func htmlPie(d *RenderDescriptor) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(htmlGlobals(d)...)
	if len(d.Datasets) == 0 {
		return pie
	}
	ds := d.Datasets[0]
	data := make([]opts.PieData, 0, len(ds.Values))
	for i, v := range ds.Values {
		if i >= len(d.Categories) {
			break
		}
		style := &opts.ItemStyle{Color: seriesColor(ds.Colors, i).Hex()}
		if d.Arc != nil && d.Arc.GapWidth > 0 {
			style.BorderColor = d.Arc.GapColor.Hex()
			style.BorderWidth = float32(d.Arc.GapWidth)
		}
		data = append(data, opts.PieData{Name: d.Categories[i], Value: v, ItemStyle: style})
	}
	var radius interface{} = "70%"
	if d.Arc != nil && d.Arc.Cutout > 0 {
		radius = []string{strconv.Itoa(int(d.Arc.Cutout*70)) + "%", "70%"}
	}
	pie.AddSeries(ds.Label, data, charts.WithPieChartOpts(opts.PieChart{Radius: radius}))
	return pie
}
