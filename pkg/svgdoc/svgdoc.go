// Package svgdoc parses SVG template instances and filters their
// conditional layers.
//
// A layer is a <g> element carrying an inkscape:label attribute. When
// the label embeds an %IF_column% or %UNLESS_column% marker, the row's
// value for that column decides whether the layer is shown (style
// attribute stripped, so an inline display:none cannot hide it) or
// emptied (children and attributes removed, the element itself stays
// in the tree). The 'etree' package is used for XML parsing and
// modification.
package svgdoc

import (
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	xmltree "github.com/beevik/etree"

	"github.com/svgmerge/svgmerge/pkg/tabdata"
)

// LabelAttr identifies a group element as a layer.
const LabelAttr = "inkscape:label"

// Visibility is the decision taken for one conditional layer.
type Visibility int

const (
	// Keep shows the layer: the style attribute is removed and the
	// content is left intact.
	Keep Visibility = iota
	// Empty hides the layer: children and attributes are removed.
	Empty
)

func (v Visibility) String() string {
	if v == Keep {
		return "keep"
	}
	return "empty"
}

var (
	// Greedy leading .* so that the last marker in a label wins,
	// matching how labels like "Front %IF_a% %IF_b%" have always
	// been resolved.
	ifMarker     = regexp.MustCompile(`.*%IF_([^%]*)%`)
	unlessMarker = regexp.MustCompile(`.*%UNLESS_([^%]*)%`)
)

// Parse reads an SVG document from its serialized form.
func Parse(text string) (*xmltree.Document, error) {
	doc := xmltree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return nil, err
	}
	return doc, nil
}

// IsTrue implements the truthiness rule for layer conditions: a value
// is false when empty or, case-insensitively, "0", "false" or "no".
func IsTrue(v string) bool {
	if v == "" {
		return false
	}
	switch strings.ToLower(v) {
	case "0", "false", "no":
		return false
	}
	return true
}

// FilterLayers walks every group element of the document and applies
// the layer condition embedded in its label, if any, against desc.
// The tree is modified in place. A marker referencing a column that is
// missing from the descriptor is reported as a warning and leaves the
// group untouched.
func FilterLayers(doc *xmltree.Document, desc tabdata.Descriptor) {
	for _, g := range doc.FindElements("//g") {
		filterGroup(g, desc)
	}
}

func filterGroup(g *xmltree.Element, desc tabdata.Descriptor) {
	attr := g.SelectAttr(LabelAttr)
	if attr == nil {
		// Not a layer.
		return
	}
	label := attr.Value
	if !strings.Contains(label, "%") {
		return
	}

	decision := decide(label, desc, true)
	if decision == nil {
		return
	}
	apply(g, *decision)
}

func decide(label string, desc tabdata.Descriptor, warn bool) *Visibility {
	var decision *Visibility

	if m := ifMarker.FindStringSubmatch(label); m != nil {
		value, ok := desc[m[1]]
		if !ok {
			if warn {
				log.Warnf("Column %q not in the data file", m[1])
			}
			return nil
		}
		decision = visibility(IsTrue(value))
	}

	// An UNLESS marker in the same label is evaluated after IF and
	// overrides its outcome.
	if m := unlessMarker.FindStringSubmatch(label); m != nil {
		value, ok := desc[m[1]]
		if !ok {
			if warn {
				log.Warnf("Column %q not in the data file", m[1])
			}
		} else {
			decision = visibility(!IsTrue(value))
		}
	}

	return decision
}

// Decide evaluates the condition embedded in a layer label against
// desc without touching any document. The second return value is
// false when the label carries no resolvable marker.
func Decide(label string, desc tabdata.Descriptor) (Visibility, bool) {
	v := decide(label, desc, false)
	if v == nil {
		return Keep, false
	}
	return *v, true
}

// Layer describes one conditional layer found in a template.
type Layer struct {
	Label  string
	If     string // column referenced by an %IF_% marker, "" if none
	Unless string // column referenced by an %UNLESS_% marker, "" if none
}

// ConditionalLayers lists the labeled groups of a template whose
// labels embed visibility markers.
func ConditionalLayers(doc *xmltree.Document) []Layer {
	var layers []Layer
	for _, g := range doc.FindElements("//g") {
		attr := g.SelectAttr(LabelAttr)
		if attr == nil || !strings.Contains(attr.Value, "%") {
			continue
		}
		l := Layer{Label: attr.Value}
		if m := ifMarker.FindStringSubmatch(attr.Value); m != nil {
			l.If = m[1]
		}
		if m := unlessMarker.FindStringSubmatch(attr.Value); m != nil {
			l.Unless = m[1]
		}
		if l.If == "" && l.Unless == "" {
			continue
		}
		layers = append(layers, l)
	}
	return layers
}

func visibility(show bool) *Visibility {
	v := Empty
	if show {
		v = Keep
	}
	return &v
}

func apply(g *xmltree.Element, v Visibility) {
	switch v {
	case Keep:
		// Defeat any inline hidden/visibility style.
		g.RemoveAttr("style")
	case Empty:
		g.Child = nil
		g.Attr = nil
	}
}
