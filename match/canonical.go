package match

import (
	"fmt"
	"sort"

	"github.com/selmatch/selmatch/dom"
)

// CanonicalMatches is the strategy-independent form of a traversal result:
// sharing back-references resolved to the selector set of their terminal
// source, selectors reduced to their serialized text, texts sorted and
// de-duplicated per element. Two strategies agree on a document exactly when
// their canonical forms are Equal.
type CanonicalMatches struct {
	strategy Strategy
	keys     []dom.NodeKey // traversal order
	sets     map[dom.NodeKey][]string
	tags     map[dom.NodeKey]string // start tags, for reporting
}

// Canonicalize resolves m into its canonical form. Shared outcomes are
// followed, with memoization, until a direct outcome is reached; the chain is
// finite because sharing sources always precede their dependents in traversal
// order. A back-reference to an unrecorded element panics.
func (m *DocumentMatches) Canonicalize() *CanonicalMatches {
	outcomes := make(map[dom.NodeKey]MatchOutcome, len(m.entries))
	for _, e := range m.entries {
		outcomes[e.Key] = e.Outcome
	}
	c := &CanonicalMatches{
		strategy: m.strategy,
		keys:     make([]dom.NodeKey, 0, len(m.entries)),
		sets:     make(map[dom.NodeKey][]string, len(m.entries)),
		tags:     make(map[dom.NodeKey]string, len(m.entries)),
	}
	for _, e := range m.entries {
		c.keys = append(c.keys, e.Key)
		c.tags[e.Key] = e.Element.StartTag()
		c.resolve(e.Key, outcomes)
	}
	return c
}

func (c *CanonicalMatches) resolve(key dom.NodeKey, outcomes map[dom.NodeKey]MatchOutcome) []string {
	if set, done := c.sets[key]; done {
		return set
	}
	outcome, recorded := outcomes[key]
	if !recorded {
		panic(fmt.Sprintf("outcome shared with %s, which has no recorded outcome", key))
	}
	var set []string
	if source, shared := outcome.Shared(); shared {
		set = c.resolve(source, outcomes)
	} else {
		set = canonicalTexts(outcome)
	}
	c.sets[key] = set
	return set
}

func canonicalTexts(outcome MatchOutcome) []string {
	selectors := outcome.DirectSelectors()
	if len(selectors) == 0 {
		return nil
	}
	texts := make([]string, 0, len(selectors))
	for _, s := range selectors {
		texts = append(texts, s.Text())
	}
	sort.Strings(texts)
	unique := texts[:1]
	for _, t := range texts[1:] {
		if t != unique[len(unique)-1] {
			unique = append(unique, t)
		}
	}
	return unique
}

// Strategy returns the strategy that produced the underlying result.
func (c *CanonicalMatches) Strategy() Strategy { return c.strategy }

// Keys returns the element keys in traversal order. The slice is owned by c.
func (c *CanonicalMatches) Keys() []dom.NodeKey { return c.keys }

// SelectorTexts returns the sorted, de-duplicated selector texts matching
// the element. Nil for an element no selector matches.
func (c *CanonicalMatches) SelectorTexts(key dom.NodeKey) []string { return c.sets[key] }

// StartTag returns the opening tag of the element, for reporting.
func (c *CanonicalMatches) StartTag(key dom.NodeKey) string { return c.tags[key] }

// MatchingPairs counts (element, selector) pairs across the document.
func (c *CanonicalMatches) MatchingPairs() int64 {
	var pairs int64
	for _, set := range c.sets {
		pairs += int64(len(set))
	}
	return pairs
}

// Equal reports whether two canonical results cover the same elements with
// the same selector sets. Traversal order is not compared; both sides visit
// preorder anyway.
func (c *CanonicalMatches) Equal(other *CanonicalMatches) bool {
	return len(c.Diff(other)) == 0 && len(c.sets) == len(other.sets)
}

// Diff returns the keys, in c's traversal order, whose selector sets differ
// between the two results, including keys missing from either side.
func (c *CanonicalMatches) Diff(other *CanonicalMatches) []dom.NodeKey {
	var diff []dom.NodeKey
	for _, key := range c.keys {
		if !sameTexts(c.sets[key], other.sets[key]) {
			diff = append(diff, key)
		}
	}
	for _, key := range other.keys {
		if _, covered := c.sets[key]; !covered {
			diff = append(diff, key)
		}
	}
	return diff
}

func sameTexts(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
