package match

import (
	"fmt"

	"github.com/selmatch/selmatch/dom"
	"github.com/selmatch/selmatch/selector"
)

// MatchOutcome is the per-element result of a traversal. It either carries
// the selectors matched directly against the element, or a back-reference to
// a previously visited element whose outcome was shared. The zero value is a
// direct outcome with no matching selectors.
type MatchOutcome struct {
	selectors []*selector.Selector
	sharedKey dom.NodeKey
	shared    bool
}

// Direct wraps selectors matched against the element itself. The slice may
// be nil for an element no selector matches.
func Direct(selectors []*selector.Selector) MatchOutcome {
	return MatchOutcome{selectors: selectors}
}

// SharedWith records that the element shares the outcome of another element,
// which the style-sharing strategy guarantees to appear earlier in traversal
// order.
func SharedWith(other dom.NodeKey) MatchOutcome {
	return MatchOutcome{sharedKey: other, shared: true}
}

// Shared returns the key of the sharing source, with ok=false for a direct
// outcome.
func (o MatchOutcome) Shared() (dom.NodeKey, bool) {
	return o.sharedKey, o.shared
}

// DirectSelectors returns the directly matched selectors and panics for a
// shared outcome; callers resolve sharing through Canonicalize.
func (o MatchOutcome) DirectSelectors() []*selector.Selector {
	if o.shared {
		panic(fmt.Sprintf("DirectSelectors on outcome shared with %s", o.sharedKey))
	}
	return o.selectors
}

func (o MatchOutcome) String() string {
	if o.shared {
		return fmt.Sprintf("shared with %s", o.sharedKey)
	}
	return fmt.Sprintf("%d selector(s)", len(o.selectors))
}

// ElementMatches pairs an element with its outcome.
type ElementMatches struct {
	Key     dom.NodeKey
	Element dom.ElementRef
	Outcome MatchOutcome
}

// DocumentMatches is the complete result of one traversal: exactly one entry
// per element of the document, in traversal (preorder) order.
type DocumentMatches struct {
	doc      *dom.Document
	strategy Strategy
	entries  []ElementMatches
}

// Document returns the traversed document.
func (m *DocumentMatches) Document() *dom.Document { return m.doc }

// Strategy returns the strategy that produced the result.
func (m *DocumentMatches) Strategy() Strategy { return m.strategy }

// Entries returns the per-element outcomes in traversal order. The slice is
// owned by m and must not be modified.
func (m *DocumentMatches) Entries() []ElementMatches { return m.entries }

// Len returns the number of recorded elements.
func (m *DocumentMatches) Len() int { return len(m.entries) }

// CheckCoverage verifies that the result holds exactly one entry per element
// of the document, with no duplicate keys.
func (m *DocumentMatches) CheckCoverage() error {
	seen := make(map[dom.NodeKey]struct{}, len(m.entries))
	for _, e := range m.entries {
		if _, dup := seen[e.Key]; dup {
			return fmt.Errorf("duplicate entry for %s", e.Key)
		}
		seen[e.Key] = struct{}{}
	}
	if len(seen) != m.doc.NumElements() {
		return fmt.Errorf("result covers %d of %d elements", len(seen), m.doc.NumElements())
	}
	return nil
}
