package selector

import (
	"github.com/andybalholm/cascadia"

	"github.com/selmatch/selmatch/dom"
)

// Selector is one parsed complex selector together with the derived
// discriminators the matching strategies rely on. The boolean match itself
// is delegated to cascadia.
type Selector struct {
	sel              cascadia.Sel
	source           string   // raw source text, for discriminator scanning
	text             string   // canonical text, for cross-strategy comparison
	ancestors        []uint64 // required ancestor fingerprints
	bucket           bucket
	siblingDependent bool
}

// Parse parses the source text of a single complex selector.
//
// Selectors containing pseudo-classes or pseudo-elements are rejected with
// ok=false: the corpus strategies must all see the same selector set, and
// pseudo-class semantics (state, structural position) are outside the scope
// of the comparison. Parse failures likewise yield ok=false; the caller
// excludes such selectors before any traversal begins.
func Parse(source string) (*Selector, bool) {
	if hasPseudo(source) {
		tracer().Debugf("excluding selector with pseudo component: %q", source)
		return nil, false
	}
	sel, err := cascadia.Parse(source)
	if err != nil {
		tracer().Infof("cannot parse selector %q: %v", source, err)
		return nil, false
	}
	compounds := splitComplex(source)
	s := &Selector{
		sel:              sel,
		source:           source,
		text:             sel.String(),
		ancestors:        ancestorFingerprints(compounds),
		bucket:           bucketFor(compounds),
		siblingDependent: hasSiblingCombinator(source),
	}
	return s, true
}

// ParseGroup parses a comma-separated selector group, dropping every
// selector Parse rejects.
func ParseGroup(source string) []*Selector {
	var selectors []*Selector
	for _, part := range splitGroup(source) {
		if part == "" {
			continue
		}
		if s, ok := Parse(part); ok {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// Matches reports whether the selector matches the element. Purely
// structural; any ancestor filter is consulted by the rule map beforehand,
// never here.
func (s *Selector) Matches(el dom.ElementRef) bool {
	return s.sel.Match(el.HTMLNode())
}

// Text returns the canonical serialization of the selector. Two selectors
// with equal Text are considered the same selector for cross-strategy
// comparison, regardless of object identity.
func (s *Selector) Text() string {
	return s.text
}

// AncestorFingerprints returns the fingerprints this selector requires of
// the ancestor chain of a matching element. An empty slice means the
// selector cannot be fast-rejected.
func (s *Selector) AncestorFingerprints() []uint64 {
	return s.ancestors
}

// SiblingDependent reports whether the selector's outcome can differ between
// two elements that agree on tag, attributes and parent. Such selectors are
// revalidated by the style-sharing predicate.
func (s *Selector) SiblingDependent() bool {
	return s.siblingDependent
}

func (s *Selector) String() string {
	return s.text
}
