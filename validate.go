package gochart

import (
	"fmt"
	"strings"
)

// Validate checks the chart state for structural issues and returns an error
// describing all problems found, or nil if the state is consistent.
func (s *ChartState) Validate() error {
	var errs []string

	if _, err := ParseChartKind(string(s.kind)); err != nil {
		errs = append(errs, fmt.Sprintf("unknown chart kind %q", s.kind))
	}
	n := len(s.categories)
	if n < MinCategories || n > MaxCategories {
		errs = append(errs, fmt.Sprintf("category count %d outside %d-%d", n, MinCategories, MaxCategories))
	}
	if len(s.series) == 0 {
		errs = append(errs, "chart must have at least one series")
	}
	if limit := s.kind.MaxSeries(); len(s.series) > limit {
		errs = append(errs, fmt.Sprintf("%d series exceed the %s limit of %d", len(s.series), s.kind, limit))
	}

	for i, ser := range s.series {
		prefix := fmt.Sprintf("series %d", i+1)
		if ser == nil {
			errs = append(errs, prefix+": series is nil")
			continue
		}
		for _, e := range validateSeries(ser, s.kind, n) {
			errs = append(errs, prefix+": "+e)
		}
	}

	errs = append(errs, s.validateStyles()...)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func validateSeries(ser *Series, kind ChartKind, categories int) []string {
	var errs []string
	if len(ser.Values) != categories {
		errs = append(errs, fmt.Sprintf("%d values for %d categories", len(ser.Values), categories))
	}
	if kind.perCategoryColors() {
		if len(ser.Colors) != categories {
			errs = append(errs, fmt.Sprintf("%d colors for %d categories", len(ser.Colors), categories))
		}
	} else if ser.Colors != nil {
		errs = append(errs, "line series must not carry category colors")
	}
	for j, v := range ser.Values {
		if reason := checkValue(v, kind); reason != "" {
			errs = append(errs, fmt.Sprintf("value %d: %s", j+1, reason))
		}
	}
	return errs
}

func (s *ChartState) validateStyles() []string {
	var errs []string
	for _, k := range ChartKinds {
		if s.styles[k] == nil {
			errs = append(errs, fmt.Sprintf("%s style is nil", k))
		}
	}
	if len(errs) > 0 {
		return errs
	}

	a := s.arcStyle()
	if a.Cutout < 0 || a.Cutout > 90 {
		errs = append(errs, fmt.Sprintf("cutout %d outside 0-90", a.Cutout))
	}
	b := s.barStyle()
	if len(b.BaseColors) < KindBar.MaxSeries() {
		errs = append(errs, "bar base colors shorter than the series limit")
	}
	l := s.lineStyle()
	if len(l.LineColors) < KindLine.MaxSeries() || len(l.MarkerColors) < KindLine.MaxSeries() {
		errs = append(errs, "line colors shorter than the series limit")
	}
	p := s.pictogramStyle()
	if p.Filled < 0 || p.Filled > PictogramIconCount {
		errs = append(errs, fmt.Sprintf("filled amount %g outside 0-%d", p.Filled, PictogramIconCount))
	}
	if s.axis == nil || s.axis.Font == nil {
		errs = append(errs, "axis font is nil")
	}
	if s.legend == nil || s.legend.Font == nil {
		errs = append(errs, "legend font is nil")
	}
	if s.title.Font == nil || s.caption.Font == nil {
		errs = append(errs, "text block font is nil")
	}
	return errs
}
