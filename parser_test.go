package gochart

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseTabular_PieSingleSeries(t *testing.T) {
	res, err := ParseTabular("A,30\nB,50\nC,20", KindPie)
	if err != nil {
		t.Fatalf("ParseTabular: %v", err)
	}
	if res.HeaderDetected {
		t.Error("expected no header")
	}
	if !reflect.DeepEqual(res.Categories, []string{"A", "B", "C"}) {
		t.Errorf("expected categories [A B C], got %v", res.Categories)
	}
	if res.SeriesCount() != 1 {
		t.Fatalf("expected 1 series, got %d", res.SeriesCount())
	}
	if !reflect.DeepEqual(res.Series[0].Values, []float64{30, 50, 20}) {
		t.Errorf("expected values [30 50 20], got %v", res.Series[0].Values)
	}
	if res.Series[0].Name != "Series 1" {
		t.Errorf("expected default name Series 1, got %q", res.Series[0].Name)
	}
}

func TestParseTabular_LineTwoSeries(t *testing.T) {
	res, err := ParseTabular("Label,Q1,Q2\nJan,10,20\nFeb,15,25", KindLine)
	if err != nil {
		t.Fatalf("ParseTabular: %v", err)
	}
	if !res.HeaderDetected {
		t.Error("expected header")
	}
	if !reflect.DeepEqual(res.SeriesNames(), []string{"Q1", "Q2"}) {
		t.Errorf("expected series [Q1 Q2], got %v", res.SeriesNames())
	}
	if !reflect.DeepEqual(res.Categories, []string{"Jan", "Feb"}) {
		t.Errorf("expected categories [Jan Feb], got %v", res.Categories)
	}
	if !reflect.DeepEqual(res.Series[0].Values, []float64{10, 15}) {
		t.Errorf("expected Q1 [10 15], got %v", res.Series[0].Values)
	}
	if !reflect.DeepEqual(res.Series[1].Values, []float64{20, 25}) {
		t.Errorf("expected Q2 [20 25], got %v", res.Series[1].Values)
	}
}

func TestParseTabular_LineDefaultNames(t *testing.T) {
	res, err := ParseTabular("Jan,1,2\nFeb,3,4", KindLine)
	if err != nil {
		t.Fatalf("ParseTabular: %v", err)
	}
	if !reflect.DeepEqual(res.SeriesNames(), []string{"Line 1", "Line 2"}) {
		t.Errorf("expected default line names, got %v", res.SeriesNames())
	}
	if len(res.Categories) != 2 {
		t.Errorf("expected row 0 as data, got %d categories", len(res.Categories))
	}
}

func TestParseTabular_BarSeriesCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"two columns", "A,1\nB,2", 1},
		{"three columns", "A,1,2\nB,3,4", 2},
		{"header with fourth name", "Cat,X,Y,Z\nA,1,2,3", 3},
		{"header with empty fourth", "Cat,X,Y,\nA,1,2,", 2},
		{"data row with fourth value", "A,1,2\nB,3,4,5", 3},
		{"non-numeric fourth value", "A,1,2,x\nB,3,4,y", 2},
		{"numeric short first row", "Jan,10,20\nFeb,1,2,3\nMar,4,5,6", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseTabular(tt.input, KindBar)
			if err != nil {
				t.Fatalf("ParseTabular: %v", err)
			}
			if res.SeriesCount() != tt.want {
				t.Errorf("expected %d series, got %d", tt.want, res.SeriesCount())
			}
		})
	}
}

func TestParseTabular_ShortNumericFirstRowIsData(t *testing.T) {
	res, err := ParseTabular("Jan,10,20\nFeb,1,2,3\nMar,4,5,6", KindBar)
	if err != nil {
		t.Fatalf("ParseTabular: %v", err)
	}
	if res.HeaderDetected {
		t.Error("expected no header for a numeric first row")
	}
	want := []string{"Series 1", "Series 2", "Series 3"}
	if !reflect.DeepEqual(res.SeriesNames(), want) {
		t.Errorf("expected names %v, got %v", want, res.SeriesNames())
	}
	if !reflect.DeepEqual(res.Categories, []string{"Feb", "Mar"}) {
		t.Errorf("expected categories [Feb Mar], got %v", res.Categories)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Line != 1 {
		t.Fatalf("expected line 1 skipped, got %+v", res.Skipped)
	}
}

func TestParseTabular_SingleSeriesKindsIgnoreExtraColumns(t *testing.T) {
	for _, kind := range []ChartKind{KindPie, KindDonut, KindPictogram} {
		res, err := ParseTabular("A,1,9,9\nB,2,9,9", kind)
		if err != nil {
			t.Fatalf("%s: ParseTabular: %v", kind, err)
		}
		if res.SeriesCount() != 1 {
			t.Errorf("%s: expected 1 series, got %d", kind, res.SeriesCount())
		}
		if !reflect.DeepEqual(res.Series[0].Values, []float64{1, 2}) {
			t.Errorf("%s: expected values [1 2], got %v", kind, res.Series[0].Values)
		}
	}
}

func TestParseTabular_SkipsBadRows(t *testing.T) {
	res, err := ParseTabular("A,1\nFeb,abc\n,5\nC,3", KindPie)
	if err != nil {
		t.Fatalf("ParseTabular: %v", err)
	}
	if !reflect.DeepEqual(res.Categories, []string{"A", "C"}) {
		t.Errorf("expected categories [A C], got %v", res.Categories)
	}
	if len(res.Skipped) != 2 {
		t.Fatalf("expected 2 skipped rows, got %d", len(res.Skipped))
	}
	if res.Skipped[0].Line != 2 || res.Skipped[0].Text != "Feb,abc" {
		t.Errorf("unexpected first skipped row %+v", res.Skipped[0])
	}
	if res.Skipped[1].Reason != "empty label" {
		t.Errorf("expected empty label reason, got %q", res.Skipped[1].Reason)
	}
}

func TestParseTabular_OnlyBadRow(t *testing.T) {
	_, err := ParseTabular("A,1\nFeb,abc", KindPie)
	if err != nil {
		t.Fatalf("expected success with one valid row, got %v", err)
	}

	_, err = ParseTabular("Feb,abc", KindPie)
	var empty *EmptyResultError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyResultError, got %v", err)
	}
	if !errors.Is(err, ErrEmptyResult) {
		t.Error("expected errors.Is(err, ErrEmptyResult)")
	}
}

func TestParseTabular_NegativeValues(t *testing.T) {
	res, err := ParseTabular("A,-5\nB,3", KindBar)
	if err != nil {
		t.Fatalf("bar: ParseTabular: %v", err)
	}
	if res.Series[0].Values[0] != -5 {
		t.Errorf("expected -5 kept for bar, got %v", res.Series[0].Values[0])
	}

	res, err = ParseTabular("A,-5\nB,3", KindPie)
	if err != nil {
		t.Fatalf("pie: ParseTabular: %v", err)
	}
	if len(res.Categories) != 1 || len(res.Skipped) != 1 {
		t.Errorf("expected negative pie row skipped, got %v / %d skipped", res.Categories, len(res.Skipped))
	}
}

func TestParseTabular_StrictNumbers(t *testing.T) {
	for _, v := range []string{"NaN", "Inf", "1e400", "12abc", "0x10"} {
		_, err := ParseTabular("A,"+v, KindBar)
		if !errors.Is(err, ErrEmptyResult) {
			t.Errorf("%q: expected ErrEmptyResult, got %v", v, err)
		}
	}
	res, err := ParseTabular("A,1.5e2\nB, 7 ", KindBar)
	if err != nil {
		t.Fatalf("ParseTabular: %v", err)
	}
	if !reflect.DeepEqual(res.Series[0].Values, []float64{150, 7}) {
		t.Errorf("expected [150 7], got %v", res.Series[0].Values)
	}
}

func TestParseTabular_Limits(t *testing.T) {
	var b strings.Builder
	for i := 0; i < MaxCategories+3; i++ {
		b.WriteString("row,1\n")
	}
	res, err := ParseTabular(b.String(), KindPie)
	if err != nil {
		t.Fatalf("ParseTabular: %v", err)
	}
	if len(res.Categories) != MaxCategories {
		t.Errorf("expected %d categories, got %d", MaxCategories, len(res.Categories))
	}
	if len(res.Skipped) != 3 {
		t.Errorf("expected 3 rows over the limit skipped, got %d", len(res.Skipped))
	}

	_, err = ParseTabular("A,1\n\nB,"+strings.Repeat("1", MaxInputLength), KindPie)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError for oversized input, got %v", err)
	}
	if perr.SkippedRowCount != 2 {
		t.Errorf("expected 2 rows skipped, got %d", perr.SkippedRowCount)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("expected errors.Is(err, ErrInvalidInput)")
	}

	_, err = ParseTabular("A,2000000", KindBar)
	if !errors.Is(err, ErrEmptyResult) {
		t.Errorf("expected value over limit to be skipped, got %v", err)
	}
}

func TestParseTabular_BlankInput(t *testing.T) {
	_, err := ParseTabular("\n  \r\n", KindPie)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParseTabular_CRLF(t *testing.T) {
	res, err := ParseTabular("A,1\r\nB,2\r\n", KindPie)
	if err != nil {
		t.Fatalf("ParseTabular: %v", err)
	}
	if !reflect.DeepEqual(res.Categories, []string{"A", "B"}) {
		t.Errorf("expected [A B], got %v", res.Categories)
	}
}

func TestFormatTabular_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		kind  ChartKind
		input string
	}{
		{"pie single series", KindPie, "A,30\nB,50.5\nC,20"},
		{"bar single series", KindBar, "Jan,-3\nFeb,4"},
		{"bar two series", KindBar, "Category,North,South\nJan,1,2\nFeb,3,4"},
		{"bar three series", KindBar, "Category,X,Y,Z\nA,1,2,3\nB,4,5,6"},
		{"line two series", KindLine, "Label,Q1,Q2\nJan,10,20\nFeb,15,25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, err := ParseTabular(tt.input, tt.kind)
			if err != nil {
				t.Fatalf("ParseTabular: %v", err)
			}
			text := FormatTabular(tt.kind, first.Categories, first.Series)
			second, err := ParseTabular(text, tt.kind)
			if err != nil {
				t.Fatalf("re-parse %q: %v", text, err)
			}
			if !reflect.DeepEqual(first.Categories, second.Categories) {
				t.Errorf("categories changed: %v -> %v", first.Categories, second.Categories)
			}
			if !reflect.DeepEqual(first.Series, second.Series) {
				t.Errorf("series changed: %+v -> %+v", first.Series, second.Series)
			}
		})
	}
}
