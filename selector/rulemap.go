package selector

import (
	"time"

	"github.com/selmatch/selmatch/bloom"
	"github.com/selmatch/selmatch/dom"
)

// bucket is the discriminator a selector is indexed under in a RuleMap.
// Exactly one bucket per selector, chosen from the rightmost compound with
// priority id > class > tag > universal. An element can only match a
// selector if it carries the bucket discriminator, so querying the element's
// own id/classes/tag buckets (plus universal) never loses a candidate.
type bucket struct {
	kind  bucketKind
	ident string
}

type bucketKind uint8

const (
	bucketUniversal bucketKind = iota
	bucketTag
	bucketClass
	bucketID
)

func bucketFor(compounds []compound) bucket {
	if len(compounds) == 0 {
		return bucket{kind: bucketUniversal}
	}
	f := scanCompound(compounds[len(compounds)-1].text)
	switch {
	case f.opaque:
		return bucket{kind: bucketUniversal}
	case f.id != "":
		return bucket{kind: bucketID, ident: f.id}
	case len(f.classes) > 0:
		return bucket{kind: bucketClass, ident: f.classes[0]}
	case f.tag != "" && f.tag != "*":
		return bucket{kind: bucketTag, ident: f.tag}
	}
	return bucket{kind: bucketUniversal}
}

// RuleMap indexes selectors by cheap discriminators so that per-element
// matching only examines plausible candidates instead of the full list.
type RuleMap struct {
	byID      map[string][]*Selector
	byClass   map[string][]*Selector
	byTag     map[string][]*Selector
	universal []*Selector
	size      int
}

// QueryStats records the work one rule-map query performed. The traversal
// driver folds these numbers into its per-element statistics.
type QueryStats struct {
	Candidates    int64 // selectors the bucket narrowing produced
	FastRejects   int64 // candidates discarded by the ancestor filter alone
	SlowRejects   int64 // candidates run through the full matcher without matching
	SlowRejecting time.Duration
}

// NewRuleMap builds the index over a selector list.
func NewRuleMap(selectors []*Selector) *RuleMap {
	m := &RuleMap{
		byID:    make(map[string][]*Selector),
		byClass: make(map[string][]*Selector),
		byTag:   make(map[string][]*Selector),
	}
	for _, s := range selectors {
		switch s.bucket.kind {
		case bucketID:
			m.byID[s.bucket.ident] = append(m.byID[s.bucket.ident], s)
		case bucketClass:
			m.byClass[s.bucket.ident] = append(m.byClass[s.bucket.ident], s)
		case bucketTag:
			m.byTag[s.bucket.ident] = append(m.byTag[s.bucket.ident], s)
		default:
			m.universal = append(m.universal, s)
		}
		m.size++
	}
	tracer().Debugf("rule map: %d selectors, %d id / %d class / %d tag buckets, %d universal",
		m.size, len(m.byID), len(m.byClass), len(m.byTag), len(m.universal))
	return m
}

// Len returns the number of indexed selectors.
func (m *RuleMap) Len() int {
	return m.size
}

// MatchingSelectors returns the selectors matching el. filter, when
// non-nil, must hold the fingerprints of exactly el's ancestor chain; it is
// consulted before the full matcher for every candidate that requires
// ancestor fingerprints. stats, when non-nil, receives the work counters of
// this query.
func (m *RuleMap) MatchingSelectors(el dom.ElementRef, filter *bloom.Filter, stats *QueryStats) []*Selector {
	var matched []*Selector
	examine := func(candidates []*Selector) {
		for _, s := range candidates {
			if stats != nil {
				stats.Candidates++
			}
			if filter != nil && len(s.ancestors) > 0 && !filter.MayContainAll(s.ancestors) {
				if stats != nil {
					stats.FastRejects++
				}
				continue
			}
			start := time.Now()
			if s.Matches(el) {
				matched = append(matched, s)
			} else if stats != nil {
				stats.SlowRejects++
				stats.SlowRejecting += time.Since(start)
			}
		}
	}
	if id := el.ID(); id != "" {
		examine(m.byID[id])
	}
	for _, class := range el.Classes() {
		examine(m.byClass[class])
	}
	examine(m.byTag[el.TagName()])
	examine(m.universal)
	return matched
}
