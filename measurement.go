package gochart

import "math"

// Slider conversion helpers. Style sliders are integer positions; the
// chart consumes derived fractions and pixel offsets.

const (
	// spacingNeutral is the spacing slider position with no gap and no overlap.
	spacingNeutral = 50
	sliderMax      = 100
)

// SpacingOffset maps a spacing slider in [0,100] to a pixel offset in
// [-50,+50]. Out-of-range positions are clamped.
func SpacingOffset(slider float64) float64 {
	return clampFloat(slider, 0, sliderMax) - spacingNeutral
}

// PercentToFraction converts a percentage slider to a fraction.
func PercentToFraction(percent float64) float64 {
	return percent / 100
}

// FractionToPercent converts a fraction back to slider units.
func FractionToPercent(f float64) float64 {
	return math.Round(f * 100)
}

// TensionFromSlider maps the 0–5 tension slider to a spline tension of 0–0.5.
func TensionFromSlider(v float64) float64 {
	return clampFloat(v, 0, 5) / 10
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
