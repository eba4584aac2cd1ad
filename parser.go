package gochart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// SkippedRow describes one data row the parser rejected.
type SkippedRow struct {
	Line   int // 1-based line number in the input
	Text   string
	Reason string
}

// ParsedSeries is one series of parsed values.
type ParsedSeries struct {
	Name   string
	Values []float64
}

// ParseResult is the structured form of tabular input.
type ParseResult struct {
	Categories     []string
	Series         []ParsedSeries
	HeaderDetected bool
	Skipped        []SkippedRow
}

// SeriesCount returns the number of detected series.
func (r *ParseResult) SeriesCount() int { return len(r.Series) }

// SeriesNames returns the name of each series in order.
func (r *ParseResult) SeriesNames() []string {
	names := make([]string, len(r.Series))
	for i, s := range r.Series {
		names[i] = s.Name
	}
	return names
}

// tabularRow is one non-blank input line split into trimmed fields.
type tabularRow struct {
	line   int
	text   string
	fields []string
}

// ParseTabular parses comma-separated rows of "label,value[,value...]".
//
// The first row's column count selects the format. Two columns, or any
// chart kind other than bar and line, give a single series from columns
// 0 and 1. Line charts with three or more columns give two series. Bar
// charts with three or more columns give two series, or three when the
// header's fourth column is non-empty or any data row has a numeric
// fourth column.
//
// Row 0 is a header iff one of its required value columns is not a
// number; its value fields then name the series. Invalid data rows are
// skipped and reported in the result. Zero valid rows yields an
// *EmptyResultError. Oversized input is rejected whole with a *ParseError
// counting every non-blank row as skipped.
func ParseTabular(text string, kind ChartKind) (*ParseResult, error) {
	if n := utf8.RuneCountInString(text); n > MaxInputLength {
		return nil, &ParseError{
			Reason:          fmt.Sprintf("input is %d characters, limit is %d", n, MaxInputLength),
			SkippedRowCount: len(splitRows(text)),
		}
	}

	rows := splitRows(text)
	if len(rows) == 0 {
		return nil, &ParseError{Reason: "no rows"}
	}

	count := detectSeriesCount(rows, kind)
	first := rows[0]
	header := isHeaderRow(first, count)

	res := &ParseResult{HeaderDetected: header}
	res.Series = make([]ParsedSeries, count)
	for i := range res.Series {
		name := kind.defaultSeriesName(i)
		if header && i+1 < len(first.fields) && first.fields[i+1] != "" {
			name = norm.NFC.String(first.fields[i+1])
		}
		res.Series[i] = ParsedSeries{Name: name}
	}

	data := rows
	if header {
		data = rows[1:]
	}

	for _, row := range data {
		label, values, reason := parseDataRow(row, count, kind)
		if reason == "" && len(res.Categories) >= MaxCategories {
			reason = fmt.Sprintf("row limit of %d reached", MaxCategories)
		}
		if reason != "" {
			res.Skipped = append(res.Skipped, SkippedRow{Line: row.line, Text: row.text, Reason: reason})
			continue
		}
		res.Categories = append(res.Categories, label)
		for i, v := range values {
			res.Series[i].Values = append(res.Series[i].Values, v)
		}
	}

	if len(res.Categories) == 0 {
		return nil, &EmptyResultError{Skipped: res.Skipped}
	}
	return res, nil
}

func splitRows(text string) []tabularRow {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var rows []tabularRow
	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		parts := strings.Split(trimmed, ",")
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}
		rows = append(rows, tabularRow{line: i + 1, text: trimmed, fields: parts})
	}
	return rows
}

// detectSeriesCount applies the first-row column rule.
func detectSeriesCount(rows []tabularRow, kind ChartKind) int {
	cols := len(rows[0].fields)
	if cols < 3 || !kind.IsCartesian() {
		return 1
	}
	if kind == KindLine {
		return 2
	}

	first := rows[0]
	if isHeaderRow(first, 2) {
		if len(first.fields) > 3 && first.fields[3] != "" {
			return 3
		}
		rows = rows[1:]
	}
	for _, row := range rows {
		if len(row.fields) > 3 {
			if _, ok := parseNumber(row.fields[3]); ok {
				return 3
			}
		}
	}
	return 2
}

// isHeaderRow reports whether any of the first count value columns that
// row actually has is not numeric. A short row is data, not a header.
func isHeaderRow(row tabularRow, count int) bool {
	for i := 1; i <= count && i < len(row.fields); i++ {
		if _, ok := parseNumber(row.fields[i]); !ok {
			return true
		}
	}
	return false
}

// parseDataRow returns the label and values, or a non-empty skip reason.
func parseDataRow(row tabularRow, count int, kind ChartKind) (string, []float64, string) {
	if len(row.fields) < count+1 {
		return "", nil, fmt.Sprintf("expected %d columns, got %d", count+1, len(row.fields))
	}
	label := norm.NFC.String(row.fields[0])
	if label == "" {
		return "", nil, "empty label"
	}
	if utf8.RuneCountInString(label) > MaxLabelLength {
		return "", nil, fmt.Sprintf("label longer than %d characters", MaxLabelLength)
	}

	values := make([]float64, count)
	for i := 0; i < count; i++ {
		field := row.fields[i+1]
		v, ok := parseNumber(field)
		if !ok {
			return "", nil, fmt.Sprintf("value %q is not a number", field)
		}
		if reason := checkValue(v, kind); reason != "" {
			return "", nil, reason
		}
		values[i] = v
	}
	return label, values, ""
}

// checkValue enforces the sign and magnitude limits for kind.
func checkValue(v float64, kind ChartKind) string {
	if v < 0 && !kind.AllowsNegative() {
		return fmt.Sprintf("negative value %s not allowed for %s charts", formatNumber(v), kind)
	}
	if math.Abs(v) > MaxValue {
		return fmt.Sprintf("value %s exceeds %d", formatNumber(v), MaxValue)
	}
	return ""
}

// parseNumber accepts finite decimal numbers only.
func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatTabular serializes data back into text ParseTabular accepts.
// Multi-series line and bar data carry a header naming the series;
// single-series data is written as bare "label,value" rows.
func FormatTabular(kind ChartKind, categories []string, series []ParsedSeries) string {
	var b strings.Builder
	multi := len(series) > 1 && kind.IsCartesian()
	if multi {
		if kind == KindLine {
			b.WriteString("Label")
		} else {
			b.WriteString("Category")
		}
		for _, s := range series {
			b.WriteByte(',')
			b.WriteString(s.Name)
		}
		b.WriteByte('\n')
	}

	n := 1
	if multi {
		n = len(series)
	}
	for i, label := range categories {
		b.WriteString(label)
		for j := 0; j < n && j < len(series); j++ {
			b.WriteByte(',')
			if i < len(series[j].Values) {
				b.WriteString(formatNumber(series[j].Values[i]))
			}
		}
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// toParsedSeries converts model series for serialization.
func toParsedSeries(series []*Series) []ParsedSeries {
	out := make([]ParsedSeries, len(series))
	for i, s := range series {
		out[i] = ParsedSeries{Name: s.Name, Values: append([]float64(nil), s.Values...)}
	}
	return out
}
