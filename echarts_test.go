package gochart

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestWriteHTML(t *testing.T) {
	tests := []struct {
		name string
		kind ChartKind
		data string
		want []string
	}{
		{"pie", KindPie, "", []string{"Category A", "#6A5ACD"}},
		{"donut", KindDonut, "", []string{"Category B", "35%"}},
		{"bar", KindBar, "Month,North,South\nJan,1,2", []string{"North", "South", "Jan"}},
		{"line", KindLine, "", []string{"Line 1", "May"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewChartState()
			s.SetChartType(tt.kind)
			if tt.data != "" {
				if _, err := s.IngestTabularText(tt.data); err != nil {
					t.Fatalf("IngestTabularText: %v", err)
				}
			}

			var buf bytes.Buffer
			if err := WriteHTML(&buf, BuildDescriptor(s)); err != nil {
				t.Fatalf("WriteHTML: %v", err)
			}
			out := buf.String()
			if !strings.Contains(out, "echarts") {
				t.Error("expected echarts page")
			}
			if !strings.Contains(out, "Sample Chart") {
				t.Error("expected title in page")
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("expected %q in page", w)
				}
			}
		})
	}
}

func TestWriteHTML_Pictogram(t *testing.T) {
	s := NewChartState()
	s.SetChartType(KindPictogram)
	var buf bytes.Buffer
	if err := WriteHTML(&buf, BuildDescriptor(s)); !errors.Is(err, ErrUnsupportedKind) {
		t.Errorf("expected ErrUnsupportedKind, got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("expected nothing written")
	}
}
