package gochart

import (
	"reflect"
	"testing"
)

func TestPaletteColor_Cycles(t *testing.T) {
	if PaletteColor(8) != PaletteColor(0) {
		t.Errorf("expected palette to wrap at 8")
	}
	if PaletteColor(-1) != PaletteColor(7) {
		t.Errorf("expected negative index to wrap, got %v", PaletteColor(-1))
	}
}

func TestSyncColors_GrowPreservesPrefix(t *testing.T) {
	custom := NewColor("#123456")
	ser := &Series{Values: make([]float64, 10), Colors: []Color{custom, PaletteColor(1), PaletteColor(2)}}

	SyncColors(KindPie, 10, []*Series{ser}, SeriesPalette{})

	if len(ser.Colors) != 10 {
		t.Fatalf("expected 10 colors, got %d", len(ser.Colors))
	}
	if ser.Colors[0] != custom {
		t.Errorf("expected custom color kept at index 0, got %v", ser.Colors[0])
	}
	for i := 3; i < 10; i++ {
		if ser.Colors[i] != PaletteColor(i) {
			t.Errorf("index %d: expected palette color %v, got %v", i, PaletteColor(i), ser.Colors[i])
		}
	}
	if ser.Colors[8] != DefaultPalette[0] {
		t.Errorf("expected index 8 to wrap to the first palette entry")
	}
}

func TestSyncColors_TruncateFromTail(t *testing.T) {
	colors := []Color{NewColor("#111111"), NewColor("#222222"), NewColor("#333333"), NewColor("#444444")}
	ser := &Series{Colors: append([]Color(nil), colors...)}

	SyncColors(KindBar, 2, []*Series{ser}, SeriesPalette{Base: DefaultBarColors})

	if !reflect.DeepEqual(ser.Colors, colors[:2]) {
		t.Errorf("expected %v, got %v", colors[:2], ser.Colors)
	}
	if ser.BaseColor != DefaultBarColors[0] {
		t.Errorf("expected base color from palette, got %v", ser.BaseColor)
	}

	// Growing again must not resurrect the dropped entries.
	SyncColors(KindBar, 3, []*Series{ser}, SeriesPalette{Base: DefaultBarColors})
	if ser.Colors[2] != PaletteColor(2) {
		t.Errorf("expected fresh palette entry at index 2, got %v", ser.Colors[2])
	}
}

func TestSyncColors_Idempotent(t *testing.T) {
	ser := &Series{Colors: []Color{NewColor("#ABCDEF")}}
	p := SeriesPalette{Base: DefaultBarColors}

	SyncColors(KindBar, 5, []*Series{ser}, p)
	first := append([]Color(nil), ser.Colors...)
	SyncColors(KindBar, 5, []*Series{ser}, p)

	if !reflect.DeepEqual(first, ser.Colors) {
		t.Errorf("second sync changed colors: %v -> %v", first, ser.Colors)
	}
}

func TestSyncColors_LineSeries(t *testing.T) {
	a := &Series{Colors: []Color{ColorBlack}}
	b := &Series{}
	p := SeriesPalette{Line: DefaultLineColors, Marker: DefaultMarkerColors}

	SyncColors(KindLine, 4, []*Series{a, b}, p)

	if a.Colors != nil || b.Colors != nil {
		t.Error("expected line series to carry no category colors")
	}
	if a.LineColor != DefaultLineColors[0] || b.LineColor != DefaultLineColors[1] {
		t.Errorf("expected line colors by series position, got %v %v", a.LineColor, b.LineColor)
	}
	if b.MarkerColor != DefaultMarkerColors[1] {
		t.Errorf("expected marker color %v, got %v", DefaultMarkerColors[1], b.MarkerColor)
	}
}

func TestSyncColors_NegativeCount(t *testing.T) {
	ser := &Series{Colors: []Color{ColorBlack}}
	SyncColors(KindPie, -3, []*Series{ser}, SeriesPalette{})
	if len(ser.Colors) != 0 {
		t.Errorf("expected no colors, got %d", len(ser.Colors))
	}
}
