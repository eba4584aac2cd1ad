package gochart

import (
	_ "embed"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultIconID is the icon selected for new pictograms.
const DefaultIconID = "gas"

// defaultViewBox is applied to icon markup that declares none.
const defaultViewBox = "0 0 24 24"

// Icon is one pictogram glyph.
type Icon struct {
	ID       string `yaml:"id"`
	Category string `yaml:"category"`
	SVG      string `yaml:"svg"`
}

// IconRepository supplies icon markup by id and by category.
type IconRepository interface {
	Lookup(id string) (Icon, bool)
	ByCategory() map[string][]Icon
}

// IconSet is an in-memory IconRepository.
type IconSet struct {
	icons []Icon
	byID  map[string]int
}

// NewIconSet builds a set from icons. Markup is sanitized on the way in;
// later duplicates of an id replace earlier ones.
func NewIconSet(icons []Icon) (*IconSet, error) {
	set := &IconSet{byID: make(map[string]int, len(icons))}
	for _, ic := range icons {
		ic.ID = strings.TrimSpace(ic.ID)
		if ic.ID == "" {
			return nil, fmt.Errorf("icon with empty id in category %q", ic.Category)
		}
		svg, err := sanitizeSVG(ic.SVG)
		if err != nil {
			return nil, fmt.Errorf("icon %q: %w", ic.ID, err)
		}
		ic.SVG = svg
		if ic.Category == "" {
			ic.Category = "other"
		}
		if i, ok := set.byID[ic.ID]; ok {
			set.icons[i] = ic
			continue
		}
		set.byID[ic.ID] = len(set.icons)
		set.icons = append(set.icons, ic)
	}
	return set, nil
}

// Lookup returns the icon with the given id.
func (s *IconSet) Lookup(id string) (Icon, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Icon{}, false
	}
	return s.icons[i], true
}

// ByCategory groups icons by category, preserving input order within each.
func (s *IconSet) ByCategory() map[string][]Icon {
	out := make(map[string][]Icon)
	for _, ic := range s.icons {
		out[ic.Category] = append(out[ic.Category], ic)
	}
	return out
}

// Len returns the number of icons.
func (s *IconSet) Len() int { return len(s.icons) }

// Categories returns the sorted category names of repo.
func Categories(repo IconRepository) []string {
	groups := repo.ByCategory()
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type iconPack struct {
	Icons []Icon `yaml:"icons"`
}

// LoadIconSet reads a YAML icon pack: a top-level "icons" list of
// {id, category, svg} records.
func LoadIconSet(r io.Reader) (*IconSet, error) {
	var pack iconPack
	if err := yaml.NewDecoder(r).Decode(&pack); err != nil {
		if errors.Is(err, io.EOF) {
			return NewIconSet(nil)
		}
		return nil, fmt.Errorf("decode icon pack: %w", err)
	}
	return NewIconSet(pack.Icons)
}

// LoadIconSetFile reads an icon pack from path.
func LoadIconSetFile(path string) (*IconSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open icon pack: %w", err)
	}
	defer f.Close()
	return LoadIconSet(f)
}

//go:embed assets/icons.yaml
var builtinIconsYAML string

// BuiltinIcons returns the icons compiled into the library.
func BuiltinIcons() *IconSet {
	set, err := LoadIconSet(strings.NewReader(builtinIconsYAML))
	if err != nil {
		panic("gochart: builtin icons: " + err.Error())
	}
	return set
}

// MergeIconSets layers sets left to right; later ids win.
func MergeIconSets(sets ...*IconSet) *IconSet {
	var all []Icon
	for _, s := range sets {
		if s != nil {
			all = append(all, s.icons...)
		}
	}
	merged, _ := NewIconSet(all) // inputs are already sanitized
	return merged
}

// sanitizeSVG rewrites the root <svg> start tag without width and height
// attributes and with a viewBox, leaving the rest of the markup intact.
func sanitizeSVG(markup string) (string, error) {
	markup = strings.TrimSpace(markup)
	dec := xml.NewDecoder(strings.NewReader(markup))
	dec.Strict = false
	for {
		start := dec.InputOffset()
		tok, err := dec.RawToken()
		if err == io.EOF {
			return "", errors.New("no <svg> element")
		}
		if err != nil {
			return "", fmt.Errorf("parse svg: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "svg" {
			return "", fmt.Errorf("root element is <%s>, want <svg>", se.Name.Local)
		}
		end := dec.InputOffset()
		selfClosing := strings.HasSuffix(strings.TrimSpace(markup[start:end]), "/>")
		return markup[:start] + svgStartTag(se, selfClosing) + markup[end:], nil
	}
}

func svgStartTag(se xml.StartElement, selfClosing bool) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(qualifiedName(se.Name))
	hasViewBox := false
	for _, a := range se.Attr {
		switch a.Name.Local {
		case "width", "height":
			if a.Name.Space == "" {
				continue
			}
		case "viewBox":
			hasViewBox = true
		}
		writeAttr(&b, qualifiedName(a.Name), a.Value)
	}
	if !hasViewBox {
		writeAttr(&b, "viewBox", defaultViewBox)
	}
	if selfClosing {
		b.WriteString("/>")
	} else {
		b.WriteString(">")
	}
	return b.String()
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	xml.EscapeText(b, []byte(value))
	b.WriteString(`"`)
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// colorizeSVG substitutes currentColor with c.
func colorizeSVG(markup string, c Color) string {
	return strings.ReplaceAll(markup, "currentColor", c.Hex())
}
