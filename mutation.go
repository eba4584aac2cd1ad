package gochart

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// checkLabel validates a manually entered category label.
func checkLabel(label string) (string, error) {
	label = norm.NFC.String(strings.TrimSpace(label))
	switch {
	case label == "":
		return "", &ValidationError{Field: "label", Reason: "must not be empty"}
	case utf8.RuneCountInString(label) > MaxLabelLength:
		return "", &ValidationError{Field: "label", Reason: fmt.Sprintf("longer than %d characters", MaxLabelLength)}
	case strings.ContainsAny(label, ",\r\n"):
		return "", &ValidationError{Field: "label", Reason: "must not contain commas or line breaks"}
	}
	return label, nil
}

// checkRowValues validates one value per series for the active kind.
func (s *ChartState) checkRowValues(values []float64) error {
	if len(values) != len(s.series) {
		return &ValidationError{Field: "values", Reason: fmt.Sprintf("expected %d values, got %d", len(s.series), len(values))}
	}
	for _, v := range values {
		if _, ok := parseNumber(formatNumber(v)); !ok {
			return &ValidationError{Field: "value", Reason: "must be a finite number"}
		}
		if reason := checkValue(v, s.kind); reason != "" {
			return &ValidationError{Field: "value", Reason: reason}
		}
	}
	return nil
}

func (s *ChartState) checkManualKind() error {
	if s.kind == KindPictogram {
		return fmt.Errorf("%w: pictogram data follows the filled amount", ErrUnsupportedKind)
	}
	return nil
}

// SetManualRow replaces the label and values of row index.
func (s *ChartState) SetManualRow(index int, label string, values []float64) error {
	if err := s.checkManualKind(); err != nil {
		return err
	}
	if index < 0 || index >= len(s.categories) {
		return &ValidationError{Field: "row", Reason: fmt.Sprintf("index %d out of range (0-%d)", index, len(s.categories)-1)}
	}
	label, err := checkLabel(label)
	if err != nil {
		return err
	}
	if err := s.checkRowValues(values); err != nil {
		return err
	}
	s.categories[index] = label
	for i, ser := range s.series {
		ser.Values[index] = values[i]
	}
	s.syncColors()
	return nil
}

// AddManualRow appends a row, up to MaxCategories.
func (s *ChartState) AddManualRow(label string, values []float64) error {
	if err := s.checkManualKind(); err != nil {
		return err
	}
	if len(s.categories) >= MaxCategories {
		return &ValidationError{Field: "row", Reason: fmt.Sprintf("at most %d rows", MaxCategories)}
	}
	label, err := checkLabel(label)
	if err != nil {
		return err
	}
	if err := s.checkRowValues(values); err != nil {
		return err
	}
	s.categories = append(s.categories, label)
	for i, ser := range s.series {
		ser.Values = append(ser.Values, values[i])
	}
	s.syncColors()
	return nil
}

// RemoveManualRow deletes row index, keeping at least MinCategories rows.
// Category colors stay at their index; the surplus is dropped from the tail.
func (s *ChartState) RemoveManualRow(index int) error {
	if err := s.checkManualKind(); err != nil {
		return err
	}
	if len(s.categories) <= MinCategories {
		return &ValidationError{Field: "row", Reason: fmt.Sprintf("at least %d row required", MinCategories)}
	}
	if index < 0 || index >= len(s.categories) {
		return &ValidationError{Field: "row", Reason: fmt.Sprintf("index %d out of range (0-%d)", index, len(s.categories)-1)}
	}
	s.categories = append(s.categories[:index], s.categories[index+1:]...)
	for _, ser := range s.series {
		ser.Values = append(ser.Values[:index], ser.Values[index+1:]...)
	}
	s.syncColors()
	return nil
}

// ColorRole names what a color assignment applies to.
type ColorRole string

// Color roles.
const (
	RoleCategory          ColorRole = "category"
	RoleBase              ColorRole = "base"
	RoleLine              ColorRole = "line"
	RoleMarker            ColorRole = "marker"
	RolePictogramFilled   ColorRole = "filled"
	RolePictogramUnfilled ColorRole = "unfilled"
	RoleTitle             ColorRole = "title"
	RoleCaption           ColorRole = "caption"
	RoleLegend            ColorRole = "legend"
	RoleAxis              ColorRole = "axis"
	RoleGrid              ColorRole = "grid"
)

// ColorTarget addresses one color slot in the model.
type ColorTarget struct {
	Role     ColorRole
	Series   int
	Category int
}

// CategoryColor targets one category of one series.
func CategoryColor(series, category int) ColorTarget {
	return ColorTarget{Role: RoleCategory, Series: series, Category: category}
}

// BaseColor targets a bar series' base color.
func BaseColor(series int) ColorTarget {
	return ColorTarget{Role: RoleBase, Series: series}
}

// LineColor targets a line series' stroke color.
func LineColor(series int) ColorTarget {
	return ColorTarget{Role: RoleLine, Series: series}
}

// MarkerColor targets a line series' marker color.
func MarkerColor(series int) ColorTarget {
	return ColorTarget{Role: RoleMarker, Series: series}
}

// ParseColorTarget parses "role[:series[:category]]", e.g. "category:0:2".
func ParseColorTarget(s string) (ColorTarget, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	t := ColorTarget{Role: ColorRole(strings.ToLower(parts[0]))}
	nums := make([]int, 0, 2)
	for _, p := range parts[1:] {
		n, err := strconv.Atoi(p)
		if err != nil {
			return ColorTarget{}, fmt.Errorf("%w: color target %q", ErrInvalidStyle, s)
		}
		nums = append(nums, n)
	}
	need := 0
	switch t.Role {
	case RoleCategory:
		need = 2
	case RoleBase, RoleLine, RoleMarker:
		need = 1
	case RolePictogramFilled, RolePictogramUnfilled, RoleTitle, RoleCaption, RoleLegend, RoleAxis, RoleGrid:
	default:
		return ColorTarget{}, fmt.Errorf("%w: color target %q", ErrInvalidStyle, s)
	}
	if len(nums) != need {
		return ColorTarget{}, fmt.Errorf("%w: color target %q needs %d indexes", ErrInvalidStyle, s, need)
	}
	if need >= 1 {
		t.Series = nums[0]
	}
	if need == 2 {
		t.Category = nums[1]
	}
	return t, nil
}

func (s *ChartState) seriesAt(i int) (*Series, error) {
	if i < 0 || i >= len(s.series) {
		return nil, &ValidationError{Field: "series", Reason: fmt.Sprintf("index %d out of range (0-%d)", i, len(s.series)-1)}
	}
	return s.series[i], nil
}

// SetColor assigns value to the target slot.
//
// Setting a bar base color overwrites every per-category color of that
// series, discarding individual overrides.
func (s *ChartState) SetColor(target ColorTarget, value string) error {
	c, err := ParseColor(value)
	if err != nil {
		return err
	}

	switch target.Role {
	case RoleCategory:
		if !s.kind.perCategoryColors() {
			return fmt.Errorf("%w: line series have no category colors", ErrUnsupportedKind)
		}
		ser, err := s.seriesAt(target.Series)
		if err != nil {
			return err
		}
		if target.Category < 0 || target.Category >= len(ser.Colors) {
			return &ValidationError{Field: "category", Reason: fmt.Sprintf("index %d out of range", target.Category)}
		}
		ser.Colors[target.Category] = c
		if s.kind == KindPictogram {
			s.syncPictogramColors(target.Category, c)
		}
	case RoleBase:
		if s.kind != KindBar {
			return fmt.Errorf("%w: base colors apply to bar charts", ErrUnsupportedKind)
		}
		if target.Series < 0 || target.Series >= len(s.barStyle().BaseColors) {
			return &ValidationError{Field: "series", Reason: fmt.Sprintf("index %d out of range", target.Series)}
		}
		s.barStyle().BaseColors[target.Series] = c
		if target.Series < len(s.series) {
			ser := s.series[target.Series]
			ser.BaseColor = c
			for i := range ser.Colors {
				ser.Colors[i] = c
			}
		}
	case RoleLine, RoleMarker:
		ls := s.lineStyle()
		palette := ls.LineColors
		if target.Role == RoleMarker {
			palette = ls.MarkerColors
		}
		if target.Series < 0 || target.Series >= len(palette) {
			return &ValidationError{Field: "series", Reason: fmt.Sprintf("index %d out of range", target.Series)}
		}
		palette[target.Series] = c
	case RolePictogramFilled:
		s.pictogramStyle().FilledColor = c
		if s.kind == KindPictogram {
			s.installPictogramData()
		}
	case RolePictogramUnfilled:
		s.pictogramStyle().UnfilledColor = c
		if s.kind == KindPictogram {
			s.installPictogramData()
		}
	case RoleTitle:
		s.title.Font.SetColor(c)
	case RoleCaption:
		s.caption.Font.SetColor(c)
	case RoleLegend:
		s.legend.Font.SetColor(c)
	case RoleAxis:
		s.axis.Font.SetColor(c)
	case RoleGrid:
		s.axis.GridColor = c
	default:
		return fmt.Errorf("%w: color role %q", ErrInvalidStyle, target.Role)
	}
	s.syncColors()
	return nil
}

// syncPictogramColors mirrors a Completed/Remaining color edit into the style.
func (s *ChartState) syncPictogramColors(category int, c Color) {
	p := s.pictogramStyle()
	switch category {
	case 0:
		p.FilledColor = c
	case 1:
		p.UnfilledColor = c
	}
}

// ResetCategoryColor restores one bar category color to the series base color.
func (s *ChartState) ResetCategoryColor(series, category int) error {
	if s.kind != KindBar {
		return fmt.Errorf("%w: category reset applies to bar charts", ErrUnsupportedKind)
	}
	ser, err := s.seriesAt(series)
	if err != nil {
		return err
	}
	if category < 0 || category >= len(ser.Colors) {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("index %d out of range", category)}
	}
	ser.Colors[category] = ser.BaseColor
	return nil
}

// SetBackground applies a named background token or hex color.
func (s *ChartState) SetBackground(value string) error {
	bg, err := ParseBackground(value)
	if err != nil {
		return err
	}
	s.background = bg
	return nil
}

// SetTitle sets the title text.
func (s *ChartState) SetTitle(text string) error {
	if utf8.RuneCountInString(text) > MaxTitleLength {
		return &ValidationError{Field: "title", Reason: fmt.Sprintf("longer than %d characters", MaxTitleLength)}
	}
	s.title.Text = text
	return nil
}

// SetCaption sets the caption text.
func (s *ChartState) SetCaption(text string) error {
	if utf8.RuneCountInString(text) > MaxCaptionLength {
		return &ValidationError{Field: "caption", Reason: fmt.Sprintf("longer than %d characters", MaxCaptionLength)}
	}
	s.caption.Text = text
	return nil
}

// SetPictogramFilled sets the filled amount, clamped to 0–10. The active
// pictogram's Completed/Remaining values follow it.
func (s *ChartState) SetPictogramFilled(v float64) {
	s.pictogramStyle().Filled = roundTo(clampFloat(v, 0, PictogramIconCount), 1)
	if s.kind == KindPictogram {
		s.installPictogramData()
	}
}

// SetPictogramSpacing sets both spacing sliders, clamped to 0–100.
func (s *ChartState) SetPictogramSpacing(h, v float64) {
	p := s.pictogramStyle()
	p.SpacingH = clampFloat(h, 0, sliderMax)
	p.SpacingV = clampFloat(v, 0, sliderMax)
}

// SelectIcon sets the pictogram icon id.
func (s *ChartState) SelectIcon(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return &ValidationError{Field: "icon", Reason: "must not be empty"}
	}
	s.pictogramStyle().IconID = id
	return nil
}
