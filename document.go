package gochart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Document is a declarative chart description, usually read from YAML:
//
//	type: bar
//	data: |
//	  Month,Sales,Costs
//	  Jan,10,4
//	title: Quarterly sales
//	style:
//	  bar_mode: stacked
//	colors:
//	  base:1: "#AB0000"
type Document struct {
	Type       string             `yaml:"type"`
	Data       string             `yaml:"data,omitempty"`
	Series     []string           `yaml:"series,omitempty"`
	Rows       []DocumentRow      `yaml:"rows,omitempty"`
	Title      *string            `yaml:"title,omitempty"`
	Caption    *string            `yaml:"caption,omitempty"`
	Background string             `yaml:"background,omitempty"`
	Style      map[string]string  `yaml:"style,omitempty"`
	Colors     map[string]string  `yaml:"colors,omitempty"`
	Pictogram  *DocumentPictogram `yaml:"pictogram,omitempty"`
}

// DocumentRow is one manually entered category.
type DocumentRow struct {
	Label  string    `yaml:"label"`
	Values []float64 `yaml:"values"`
}

// DocumentPictogram holds the icon grid settings.
type DocumentPictogram struct {
	Icon          string   `yaml:"icon,omitempty"`
	Filled        *float64 `yaml:"filled,omitempty"`
	SpacingH      *float64 `yaml:"spacing_h,omitempty"`
	SpacingV      *float64 `yaml:"spacing_v,omitempty"`
	FilledColor   string   `yaml:"filled_color,omitempty"`
	UnfilledColor string   `yaml:"unfilled_color,omitempty"`
}

// LoadDocument decodes a YAML chart document.
func LoadDocument(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("decode chart document: %w", err)
	}
	return &doc, nil
}

// LoadDocumentFile decodes the chart document at path.
func LoadDocumentFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open chart document: %w", err)
	}
	defer f.Close()
	return LoadDocument(f)
}

// Apply replays the document onto e: chart type, data, pictogram
// settings, style parameters, colors, then text and background. It stops
// at the first failing step; steps already applied are kept.
func (d *Document) Apply(e *Engine) error {
	if d.Data != "" && len(d.Rows) > 0 {
		return &ValidationError{Field: "document", Reason: "data and rows are mutually exclusive"}
	}

	if d.Type != "" {
		kind, err := ParseChartKind(d.Type)
		if err != nil {
			return err
		}
		if _, err := e.SetChartType(kind); err != nil {
			return err
		}
	}

	switch {
	case d.Data != "":
		if _, err := e.IngestTabularText(d.Data); err != nil {
			return fmt.Errorf("document data: %w", err)
		}
	case len(d.Rows) > 0:
		text, err := d.rowsText(e.Kind())
		if err != nil {
			return err
		}
		if _, err := e.IngestTabularText(text); err != nil {
			return fmt.Errorf("document rows: %w", err)
		}
	}

	if err := d.applyPictogram(e); err != nil {
		return err
	}

	for _, name := range sortedKeys(d.Style) {
		if err := e.SetStyleParameter(StyleParam(name), d.Style[name]); err != nil {
			return fmt.Errorf("style %s: %w", name, err)
		}
	}
	for _, name := range sortedKeys(d.Colors) {
		target, err := ParseColorTarget(name)
		if err != nil {
			return err
		}
		if err := e.SetColor(target, d.Colors[name]); err != nil {
			return fmt.Errorf("color %s: %w", name, err)
		}
	}

	if d.Title != nil {
		if err := e.SetTitle(*d.Title); err != nil {
			return err
		}
	}
	if d.Caption != nil {
		if err := e.SetCaption(*d.Caption); err != nil {
			return err
		}
	}
	if d.Background != "" {
		if err := e.SetBackground(d.Background); err != nil {
			return err
		}
	}
	return nil
}

// rowsText serializes manual rows so they go through the parser's checks.
func (d *Document) rowsText(kind ChartKind) (string, error) {
	width := len(d.Rows[0].Values)
	if width == 0 {
		return "", &ValidationError{Field: "rows", Reason: "row 1 has no values"}
	}
	if width > kind.MaxSeries() {
		return "", &ValidationError{Field: "rows", Reason: fmt.Sprintf("%s charts take at most %d values per row", kind, kind.MaxSeries())}
	}
	if len(d.Series) > 0 && len(d.Series) != width {
		return "", &ValidationError{Field: "series", Reason: fmt.Sprintf("%d names for %d values per row", len(d.Series), width)}
	}

	categories := make([]string, len(d.Rows))
	series := make([]ParsedSeries, width)
	for i := range series {
		series[i].Name = kind.defaultSeriesName(i)
		if i < len(d.Series) {
			series[i].Name = d.Series[i]
		}
	}
	for i, row := range d.Rows {
		label, err := checkLabel(row.Label)
		if err != nil {
			return "", err
		}
		if len(row.Values) != width {
			return "", &ValidationError{Field: "rows", Reason: fmt.Sprintf("row %d has %d values, want %d", i+1, len(row.Values), width)}
		}
		categories[i] = label
		for j, v := range row.Values {
			series[j].Values = append(series[j].Values, v)
		}
	}
	return FormatTabular(kind, categories, series), nil
}

func (d *Document) applyPictogram(e *Engine) error {
	p := d.Pictogram
	if p == nil {
		return nil
	}
	if p.Icon != "" {
		if err := e.SelectIcon(p.Icon); err != nil {
			return err
		}
	}
	if p.FilledColor != "" {
		if err := e.SetColor(ColorTarget{Role: RolePictogramFilled}, p.FilledColor); err != nil {
			return err
		}
	}
	if p.UnfilledColor != "" {
		if err := e.SetColor(ColorTarget{Role: RolePictogramUnfilled}, p.UnfilledColor); err != nil {
			return err
		}
	}
	if p.Filled != nil {
		if err := e.SetPictogramFilled(*p.Filled); err != nil {
			return err
		}
	}
	if p.SpacingH != nil || p.SpacingV != nil {
		st := e.state.pictogramStyle()
		h, v := st.SpacingH, st.SpacingV
		if p.SpacingH != nil {
			h = *p.SpacingH
		}
		if p.SpacingV != nil {
			v = *p.SpacingV
		}
		if err := e.SetPictogramSpacing(h, v); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
