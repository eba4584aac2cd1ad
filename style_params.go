package gochart

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// StyleParam names one adjustable appearance setting.
type StyleParam string

// Style parameters. Numeric parameters take slider positions and are
// clamped to their range.
const (
	ParamArcCornerRadius   StyleParam = "corner_radius"   // 0–20
	ParamArcGap            StyleParam = "gap"             // 0–20
	ParamDonutCutout       StyleParam = "cutout"          // 0–90
	ParamBarOrientation    StyleParam = "orientation"     // vertical|horizontal
	ParamBarMode           StyleParam = "bar_mode"        // grouped|stacked
	ParamBarRadius         StyleParam = "bar_radius"      // 0–40
	ParamBarSpacing        StyleParam = "bar_spacing"     // 40–100 percent of category
	ParamBarAspect         StyleParam = "bar_aspect"      // 100–200
	ParamLineTension       StyleParam = "tension"         // 0–5
	ParamLineWidth         StyleParam = "line_width"      // 1–15
	ParamLineAspect        StyleParam = "line_aspect"     // 100–200
	ParamMarkerVisible     StyleParam = "marker_visible"  // bool
	ParamMarkerStyle       StyleParam = "marker_style"    // circle|rectRot|rect
	ParamMarkerSize        StyleParam = "marker_size"     // 0–15
	ParamBeginAtZero       StyleParam = "begin_at_zero"   // bool
	ParamAxisVisible       StyleParam = "axis_visible"    // bool
	ParamAxisSize          StyleParam = "axis_size"       // 8–18
	ParamAxisBold          StyleParam = "axis_bold"       // bool
	ParamLegendVisible     StyleParam = "legend_visible"  // bool
	ParamLegendPosition    StyleParam = "legend_position" // top|bottom
	ParamLegendSize        StyleParam = "legend_size"     // 10–18
	ParamTitleText         StyleParam = "title"
	ParamTitleFont         StyleParam = "title_font"
	ParamTitleSize         StyleParam = "title_size" // 16–48
	ParamTitleBold         StyleParam = "title_bold"
	ParamTitleItalic       StyleParam = "title_italic"
	ParamTitleLineHeight   StyleParam = "title_line_height"
	ParamTitleAlign        StyleParam = "title_align"
	ParamCaptionText       StyleParam = "caption"
	ParamCaptionFont       StyleParam = "caption_font"
	ParamCaptionSize       StyleParam = "caption_size" // 12–24
	ParamCaptionBold       StyleParam = "caption_bold"
	ParamCaptionItalic     StyleParam = "caption_italic"
	ParamCaptionLineHeight StyleParam = "caption_line_height"
	ParamCaptionAlign      StyleParam = "caption_align"
	ParamBackground        StyleParam = "background"
	ParamPictogramFilled   StyleParam = "filled"    // 0–10
	ParamPictogramIcon     StyleParam = "icon"      // icon id
	ParamSpacingH          StyleParam = "spacing_h" // 0–100
	ParamSpacingV          StyleParam = "spacing_v" // 0–100
)

type styleSetter func(s *ChartState, value string) error

var styleSetters = map[StyleParam]styleSetter{
	ParamArcCornerRadius: intSetter(0, 20, func(s *ChartState, v int) { s.arcStyle().CornerRadius = v }),
	ParamArcGap:          intSetter(0, 20, func(s *ChartState, v int) { s.arcStyle().GapWidth = v }),
	ParamDonutCutout:     intSetter(0, 90, func(s *ChartState, v int) { s.arcStyle().Cutout = v }),
	ParamBarOrientation: func(s *ChartState, value string) error {
		switch o := BarOrientation(strings.ToLower(value)); o {
		case BarVertical, BarHorizontal:
			s.barStyle().Orientation = o
			return nil
		}
		return invalidValue(ParamBarOrientation, value)
	},
	ParamBarMode: func(s *ChartState, value string) error {
		switch m := BarMode(strings.ToLower(value)); m {
		case BarGrouped, BarStacked:
			s.barStyle().Mode = m
			return nil
		}
		return invalidValue(ParamBarMode, value)
	},
	ParamBarRadius: intSetter(0, 40, func(s *ChartState, v int) { s.barStyle().CornerRadius = v }),
	ParamBarSpacing: floatSetter(40, 100, func(s *ChartState, v float64) {
		s.barStyle().CategoryFraction = PercentToFraction(v)
	}),
	ParamBarAspect: floatSetter(100, 200, func(s *ChartState, v float64) {
		s.barStyle().AspectRatio = PercentToFraction(v)
	}),
	ParamLineTension: floatSetter(0, 5, func(s *ChartState, v float64) {
		s.lineStyle().Tension = TensionFromSlider(v)
	}),
	ParamLineWidth: intSetter(1, 15, func(s *ChartState, v int) { s.lineStyle().Width = v }),
	ParamLineAspect: floatSetter(100, 200, func(s *ChartState, v float64) {
		s.lineStyle().AspectRatio = PercentToFraction(v)
	}),
	ParamMarkerVisible: boolSetter(func(s *ChartState, v bool) { s.lineStyle().MarkerVisible = v }),
	ParamMarkerStyle: func(s *ChartState, value string) error {
		for _, m := range []MarkerStyle{MarkerCircle, MarkerRectRot, MarkerRect} {
			if strings.EqualFold(string(m), value) {
				s.lineStyle().MarkerStyle = m
				return nil
			}
		}
		return invalidValue(ParamMarkerStyle, value)
	},
	ParamMarkerSize:     intSetter(0, 15, func(s *ChartState, v int) { s.lineStyle().MarkerSize = v }),
	ParamBeginAtZero:    boolSetter(func(s *ChartState, v bool) { s.lineStyle().BeginAtZero = v }),
	ParamAxisVisible:    boolSetter(func(s *ChartState, v bool) { s.axis.Visible = v }),
	ParamAxisSize:       intSetter(8, 18, func(s *ChartState, v int) { s.axis.Font.SetSize(v) }),
	ParamAxisBold:       boolSetter(func(s *ChartState, v bool) { s.axis.Font.SetBold(v) }),
	ParamLegendVisible:  boolSetter(func(s *ChartState, v bool) { s.legend.Visible = v }),
	ParamLegendPosition: legendPositionSetter,
	ParamLegendSize:     intSetter(10, 18, func(s *ChartState, v int) { s.legend.Font.SetSize(v) }),
	ParamTitleText:      func(s *ChartState, value string) error { return s.SetTitle(value) },
	ParamTitleFont:      fontNameSetter(func(s *ChartState) *Font { return s.title.Font }),
	ParamTitleSize:      intSetter(16, 48, func(s *ChartState, v int) { s.title.Font.SetSize(v) }),
	ParamTitleBold:      boolSetter(func(s *ChartState, v bool) { s.title.Font.SetBold(v) }),
	ParamTitleItalic:    boolSetter(func(s *ChartState, v bool) { s.title.Font.SetItalic(v) }),
	ParamTitleLineHeight: floatSetter(1, 2, func(s *ChartState, v float64) {
		s.title.Font.SetLineHeight(v)
	}),
	ParamTitleAlign:   alignSetter(func(s *ChartState) *TextBlock { return &s.title }),
	ParamCaptionText:  func(s *ChartState, value string) error { return s.SetCaption(value) },
	ParamCaptionFont:  fontNameSetter(func(s *ChartState) *Font { return s.caption.Font }),
	ParamCaptionSize:  intSetter(12, 24, func(s *ChartState, v int) { s.caption.Font.SetSize(v) }),
	ParamCaptionBold:  boolSetter(func(s *ChartState, v bool) { s.caption.Font.SetBold(v) }),
	ParamCaptionItalic: boolSetter(func(s *ChartState, v bool) { s.caption.Font.SetItalic(v) }),
	ParamCaptionLineHeight: floatSetter(1, 2, func(s *ChartState, v float64) {
		s.caption.Font.SetLineHeight(v)
	}),
	ParamCaptionAlign:    alignSetter(func(s *ChartState) *TextBlock { return &s.caption }),
	ParamBackground:      func(s *ChartState, value string) error { return s.SetBackground(value) },
	ParamPictogramFilled: floatSetter(0, PictogramIconCount, func(s *ChartState, v float64) { s.SetPictogramFilled(v) }),
	ParamPictogramIcon:   func(s *ChartState, value string) error { return s.SelectIcon(value) },
	ParamSpacingH: floatSetter(0, sliderMax, func(s *ChartState, v float64) {
		s.SetPictogramSpacing(v, s.pictogramStyle().SpacingV)
	}),
	ParamSpacingV: floatSetter(0, sliderMax, func(s *ChartState, v float64) {
		s.SetPictogramSpacing(s.pictogramStyle().SpacingH, v)
	}),
}

// StyleParams lists every known parameter name, sorted.
func StyleParams() []StyleParam {
	out := make([]StyleParam, 0, len(styleSetters))
	for p := range styleSetters {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SetStyleParameter applies one appearance setting. Styles are kept per
// chart kind, so settings for inactive kinds are stored for later.
func (s *ChartState) SetStyleParameter(param StyleParam, value string) error {
	set, ok := styleSetters[param]
	if !ok {
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalidStyle, param)
	}
	return set(s, strings.TrimSpace(value))
}

func invalidValue(p StyleParam, value string) error {
	return fmt.Errorf("%w: %s=%q", ErrInvalidStyle, p, value)
}

func parseSlider(value string) (float64, bool) {
	return parseNumber(strings.TrimSpace(value))
}

func intSetter(lo, hi int, apply func(*ChartState, int)) styleSetter {
	return func(s *ChartState, value string) error {
		v, ok := parseSlider(value)
		if !ok {
			return fmt.Errorf("%w: %q is not a number", ErrInvalidStyle, value)
		}
		apply(s, clampInt(int(v+0.5*sign(v)), lo, hi))
		return nil
	}
}

func floatSetter(lo, hi float64, apply func(*ChartState, float64)) styleSetter {
	return func(s *ChartState, value string) error {
		v, ok := parseSlider(value)
		if !ok {
			return fmt.Errorf("%w: %q is not a number", ErrInvalidStyle, value)
		}
		apply(s, clampFloat(v, lo, hi))
		return nil
	}
}

func boolSetter(apply func(*ChartState, bool)) styleSetter {
	return func(s *ChartState, value string) error {
		v, err := strconv.ParseBool(value)
		if err != nil {
			switch strings.ToLower(value) {
			case "on", "yes", "show":
				v = true
			case "off", "no", "hide":
				v = false
			default:
				return fmt.Errorf("%w: %q is not a boolean", ErrInvalidStyle, value)
			}
		}
		apply(s, v)
		return nil
	}
}

func fontNameSetter(font func(*ChartState) *Font) styleSetter {
	return func(s *ChartState, value string) error {
		if value == "" {
			return fmt.Errorf("%w: empty font name", ErrInvalidStyle)
		}
		font(s).SetName(value)
		return nil
	}
}

func alignSetter(block func(*ChartState) *TextBlock) styleSetter {
	return func(s *ChartState, value string) error {
		b := block(s)
		if strings.EqualFold(value, "next") {
			b.Alignment = b.Alignment.Next()
			return nil
		}
		a, ok := parseAlignment(value)
		if !ok {
			return fmt.Errorf("%w: alignment %q", ErrInvalidStyle, value)
		}
		b.Alignment = a
		return nil
	}
}

func legendPositionSetter(s *ChartState, value string) error {
	switch p := LegendPosition(strings.ToLower(value)); p {
	case LegendTop, LegendBottom:
		s.legend.Position = p
		return nil
	}
	return invalidValue(ParamLegendPosition, value)
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
