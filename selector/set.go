package selector

import (
	"github.com/selmatch/selmatch/dom"
)

// Set is the complete selector collection for one document corpus entry:
// the flat list (for the naive strategy), the rule map (for the indexed
// strategies), and the revalidation list backing the style-sharing
// predicate.
//
// A Set is immutable after construction and may be shared by concurrent
// traversals.
type Set struct {
	selectors    []*Selector
	rules        *RuleMap
	revalidation []*Selector
}

// NewSet builds the selector set over an already-parsed selector list.
func NewSet(selectors []*Selector) *Set {
	set := &Set{
		selectors: selectors,
		rules:     NewRuleMap(selectors),
	}
	for _, s := range selectors {
		if s.siblingDependent {
			set.revalidation = append(set.revalidation, s)
		}
	}
	tracer().Debugf("selector set: %d selectors, %d need revalidation",
		len(selectors), len(set.revalidation))
	return set
}

// Selectors returns the full selector list.
func (set *Set) Selectors() []*Selector {
	return set.selectors
}

// Rules returns the rule map over the set.
func (set *Set) Rules() *RuleMap {
	return set.rules
}

// Len returns the number of selectors in the set.
func (set *Set) Len() int {
	return len(set.selectors)
}

// EligibleForSharing reports whether an element may serve as a style-sharing
// candidate at all. Elements with an id are never eligible (ids are
// document-unique, so an id-bucket selector could distinguish the pair), and
// the topmost element has no parent to anchor the comparison.
func (set *Set) EligibleForSharing(el dom.ElementRef) bool {
	if el.ID() != "" {
		return false
	}
	_, hasParent := el.ParentElement()
	return hasParent
}

// CanShare decides whether two elements are interchangeable with respect to
// every selector in the set, i.e. whether el may reuse candidate's match
// result verbatim. The check is intentionally strict:
//
//   - same tag name,
//   - same parent element (hence identical ancestor chains),
//   - neither carries an id,
//   - identical attribute sets (covers class and style attributes),
//   - every sibling-dependent selector agrees on both elements.
//
// Under these conditions any selector without sibling combinators evaluates
// identically on both elements, and the sibling-dependent remainder has been
// revalidated explicitly.
func (set *Set) CanShare(el, candidate dom.ElementRef) bool {
	if el.TagName() != candidate.TagName() {
		return false
	}
	if el.ID() != "" || candidate.ID() != "" {
		return false
	}
	pa, ok := el.ParentElement()
	pb, okc := candidate.ParentElement()
	if !ok || !okc || !pa.Equal(pb) {
		return false
	}
	if !sameAttributes(el, candidate) {
		return false
	}
	for _, s := range set.revalidation {
		if s.Matches(el) != s.Matches(candidate) {
			return false
		}
	}
	return true
}

// sameAttributes compares attribute sets order-insensitively. Duplicate
// attribute keys do not survive the HTML parser, so a bare key/value
// comparison suffices.
func sameAttributes(a, b dom.ElementRef) bool {
	attrsA, attrsB := a.Attrs(), b.Attrs()
	if len(attrsA) != len(attrsB) {
		return false
	}
	for _, attr := range attrsA {
		val, ok := b.Attr(attr.Key)
		if !ok || val != attr.Val {
			return false
		}
	}
	return true
}
