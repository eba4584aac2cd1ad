package gochart

import "testing"

func TestBuildDescriptor_Legend(t *testing.T) {
	tests := []struct {
		name    string
		kind    ChartKind
		data    string
		visible bool
		style   PointStyle
	}{
		{"pie", KindPie, "", true, PointCircle},
		{"donut", KindDonut, "", true, PointCircle},
		{"single bar", KindBar, "", false, PointRect},
		{"multi bar", KindBar, "A,1,2\nB,3,4", true, PointRect},
		{"single line", KindLine, "A,1\nB,2", false, PointLine},
		{"multi line", KindLine, "A,1,2\nB,3,4", true, PointLine},
		{"pictogram", KindPictogram, "", false, ""},
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
			d := BuildDescriptor(s)
			if d.Legend.Visible != tt.visible {
				t.Errorf("expected legend visible=%t, got %t", tt.visible, d.Legend.Visible)
			}
			if d.Legend.PointStyle != tt.style {
				t.Errorf("expected point style %q, got %q", tt.style, d.Legend.PointStyle)
			}
		})
	}
}

func TestBuildDescriptor_LegendToggle(t *testing.T) {
	s := NewChartState()
	if err := s.SetStyleParameter(ParamLegendVisible, "false"); err != nil {
		t.Fatalf("SetStyleParameter: %v", err)
	}
	if BuildDescriptor(s).Legend.Visible {
		t.Error("expected pie legend hidden by toggle")
	}
}

func TestBuildDescriptor_PieEntries(t *testing.T) {
	s := NewChartState()
	d := BuildDescriptor(s)
	if len(d.Legend.Entries) != 3 {
		t.Fatalf("expected one entry per category, got %d", len(d.Legend.Entries))
	}
	if d.Legend.Entries[1].Label != "Category B" || d.Legend.Entries[1].Color != OpeningPalette[1] {
		t.Errorf("unexpected entry %+v", d.Legend.Entries[1])
	}
}

func TestBuildDescriptor_Stacked(t *testing.T) {
	s := NewChartState()
	s.SetChartType(KindBar)
	if err := s.SetStyleParameter(ParamBarMode, "stacked"); err != nil {
		t.Fatalf("SetStyleParameter: %v", err)
	}
	if BuildDescriptor(s).Bar.Stacked {
		t.Error("expected single series never stacked")
	}
	if _, err := s.IngestTabularText("A,1,2\nB,3,4"); err != nil {
		t.Fatalf("IngestTabularText: %v", err)
	}
	if !BuildDescriptor(s).Bar.Stacked {
		t.Error("expected multi-series bars stacked")
	}
}

func TestBuildDescriptor_Axes(t *testing.T) {
	tests := []struct {
		kind      ChartKind
		visible   bool
		gridlines bool
	}{
		{KindPie, false, false},
		{KindBar, true, false},
		{KindLine, true, true},
		{KindPictogram, false, false},
	}
	for _, tt := range tests {
		s := NewChartState()
		s.SetChartType(tt.kind)
		d := BuildDescriptor(s)
		if d.Axes.Visible != tt.visible || d.Axes.Gridlines != tt.gridlines {
			t.Errorf("%s: expected axes %t/%t, got %t/%t", tt.kind, tt.visible, tt.gridlines, d.Axes.Visible, d.Axes.Gridlines)
		}
	}
}

func TestBuildDescriptor_DonutCutout(t *testing.T) {
	s := NewChartState()
	if BuildDescriptor(s).Arc.Cutout != 0 {
		t.Error("expected pie without cutout")
	}
	s.SetChartType(KindDonut)
	if got := BuildDescriptor(s).Arc.Cutout; got != 0.5 {
		t.Errorf("expected donut cutout 0.5, got %v", got)
	}
}

func TestBuildDescriptor_GapColorFollowsBackground(t *testing.T) {
	s := NewChartState()
	if err := s.SetBackground("#102030"); err != nil {
		t.Fatalf("SetBackground: %v", err)
	}
	d := BuildDescriptor(s)
	if d.Arc.GapColor != NewColor("#102030") {
		t.Errorf("expected gap color to match background, got %v", d.Arc.GapColor)
	}
}

func TestBuildDescriptor_Independent(t *testing.T) {
	s := NewChartState()
	d := BuildDescriptor(s)
	d.Categories[0] = "changed"
	d.Datasets[0].Values[0] = -1
	d.Datasets[0].Colors[0] = ColorBlack
	d.Title.Font.SetSize(99)

	if s.Categories()[0] != "Category A" {
		t.Error("descriptor categories alias the state")
	}
	ser := s.Series()[0]
	if ser.Values[0] != 30 || ser.Colors[0] != OpeningPalette[0] {
		t.Error("descriptor datasets alias the state")
	}
	if s.Title().Font.Size == 99 {
		t.Error("descriptor fonts alias the state")
	}
}

func TestBuildDescriptor_LineMarkers(t *testing.T) {
	s := NewChartState()
	s.SetChartType(KindLine)
	if err := s.SetStyleParameter(ParamMarkerSize, "0"); err != nil {
		t.Fatalf("SetStyleParameter: %v", err)
	}
	ds := BuildDescriptor(s).Datasets[0]
	if ds.MarkerVisible {
		t.Error("expected zero-size markers hidden")
	}
	if ds.Colors != nil {
		t.Error("expected line dataset without category colors")
	}
	if ds.BorderColor != DefaultLineColors[0] {
		t.Errorf("expected line color %v, got %v", DefaultLineColors[0], ds.BorderColor)
	}
}

func TestRenderDescriptor_AspectRatio(t *testing.T) {
	s := NewChartState()
	s.SetChartType(KindBar)
	if err := s.SetStyleParameter(ParamBarAspect, "200"); err != nil {
		t.Fatalf("SetStyleParameter: %v", err)
	}
	if got := BuildDescriptor(s).AspectRatio(); got != 2 {
		t.Errorf("expected 2, got %v", got)
	}
	s.SetChartType(KindPie)
	if got := BuildDescriptor(s).AspectRatio(); got != 1 {
		t.Errorf("expected 1 for pie, got %v", got)
	}
}
