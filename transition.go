package gochart

import "strings"

// TransitionResult reports what SetChartType did.
type TransitionResult struct {
	From    ChartKind
	To      ChartKind
	Changed bool
	// Restored is true when bar/line data came back from the input cache.
	Restored bool
	// CacheErr holds the parse error when cached input was unusable and
	// placeholder data was installed instead.
	CacheErr error
}

// SetChartType switches the active chart kind. It never fails: cached
// input that no longer parses is replaced by placeholder data and the
// parse error is returned in the result for logging.
func (s *ChartState) SetChartType(kind ChartKind) TransitionResult {
	res := TransitionResult{From: s.kind, To: kind}
	if kind == s.kind {
		return res
	}
	res.Changed = true

	if s.kind.IsCartesian() && len(s.categories) > 0 {
		s.inputCache[s.kind] = FormatTabular(s.kind, s.categories, toParsedSeries(s.series))
	}
	s.kind = kind

	switch kind {
	case KindBar, KindLine:
		cached := s.inputCache[kind]
		if strings.TrimSpace(cached) == "" {
			s.installPlaceholder(kind)
			break
		}
		parsed, err := ParseTabular(cached, kind)
		if err != nil {
			res.CacheErr = err
			s.installPlaceholder(kind)
			break
		}
		s.applyParseResult(parsed)
		res.Restored = true
	default:
		s.installPlaceholder(kind)
	}

	s.syncColors()
	return res
}

// applyParseResult installs parsed data for the active kind. Bar data
// resets category colors to each series' base color; other kinds keep
// existing colors by index.
func (s *ChartState) applyParseResult(res *ParseResult) {
	var keep []Color
	if len(s.series) > 0 {
		keep = s.series[0].Colors
	}

	series := make([]*Series, len(res.Series))
	for i, ps := range res.Series {
		series[i] = &Series{Name: ps.Name, Values: append([]float64(nil), ps.Values...)}
	}
	if s.kind.IsArc() && len(series) == 1 {
		series[0].Colors = copyColors(keep)
	}

	s.setData(append([]string(nil), res.Categories...), series)
	if s.kind == KindBar {
		s.resetToBaseColors()
	}
	if len(series) > 1 {
		s.legend.Visible = true
	}
}

// IngestTabularText parses text for the active kind and applies it. Empty
// text restores placeholder data. On error the state is left unchanged.
func (s *ChartState) IngestTabularText(text string) (*ParseResult, error) {
	if s.kind == KindPictogram {
		return nil, ErrUnsupportedKind
	}
	if strings.TrimSpace(text) == "" {
		s.installPlaceholder(s.kind)
		return nil, nil
	}
	res, err := ParseTabular(text, s.kind)
	if err != nil {
		return nil, err
	}
	s.applyParseResult(res)
	return res, nil
}
