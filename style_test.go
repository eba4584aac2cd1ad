package gochart

import (
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#FF0000", "FFFF0000", false},
		{"00ff00", "FF00FF00", false},
		{"#abc", "FFAABBCC", false},
		{"80112233", "80112233", false},
		{" #123456 ", "FF123456", false},
		{"", "", true},
		{"#12345", "", true},
		{"#GGGGGG", "", true},
		{"#1a2b3c", "FF1A2B3C", false},
		{"#fff", "FFFFFFFF", false},
		{"ZZ123456", "", true},
		{"#+1+2+3", "", true},
		{"#1234567", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStyle) {
					t.Errorf("expected ErrInvalidStyle, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.ARGB != tt.want {
				t.Errorf("expected %s, got %s", tt.want, c.ARGB)
			}
		})
	}
}

func TestColor_Hex(t *testing.T) {
	if got := NewColor("#1A2B3C").Hex(); got != "#1A2B3C" {
		t.Errorf("expected #1A2B3C, got %s", got)
	}
	if got := (Color{}).Hex(); got != "#000000" {
		t.Errorf("expected #000000 for zero color, got %s", got)
	}
}

func TestParseBackground(t *testing.T) {
	tests := []struct {
		in   string
		want FillType
	}{
		{"white", FillSolid},
		{"", FillSolid},
		{"Transparent", FillNone},
		{"rainbow", FillGradientLinear},
		{"gradient", FillGradientLinear},
		{"#336699", FillSolid},
	}
	for _, tt := range tests {
		bg, err := ParseBackground(tt.in)
		if err != nil {
			t.Fatalf("ParseBackground(%q): %v", tt.in, err)
		}
		if bg.Type != tt.want {
			t.Errorf("ParseBackground(%q): expected fill %d, got %d", tt.in, tt.want, bg.Type)
		}
	}
	if _, err := ParseBackground("plaid"); !errors.Is(err, ErrInvalidStyle) {
		t.Errorf("expected ErrInvalidStyle, got %v", err)
	}
}

func TestBackground_EdgeColor(t *testing.T) {
	solid, _ := ParseBackground("#336699")
	if solid.EdgeColor() != NewColor("#336699") {
		t.Errorf("expected solid edge color, got %v", solid.EdgeColor())
	}
	none, _ := ParseBackground("transparent")
	if none.EdgeColor() != ColorTransparent {
		t.Errorf("expected transparent edge, got %v", none.EdgeColor())
	}
	rainbow, _ := ParseBackground("rainbow")
	if rainbow.EdgeColor() != NewColor("#764BA2") {
		t.Errorf("expected gradient midpoint, got %v", rainbow.EdgeColor())
	}
}

func TestGradient_ColorAt(t *testing.T) {
	g := RainbowGradient()
	if g.ColorAt(-1) != g.Stops[0].Color {
		t.Error("expected first stop below range")
	}
	if g.ColorAt(2) != g.Stops[len(g.Stops)-1].Color {
		t.Error("expected last stop above range")
	}
}

func TestHorizontalAlignment_Next(t *testing.T) {
	if HorizontalCenter.Next() != HorizontalLeft || HorizontalLeft.Next() != HorizontalRight || HorizontalRight.Next() != HorizontalCenter {
		t.Error("expected center -> left -> right -> center")
	}
}
