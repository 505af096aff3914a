package match

import (
	"fmt"
	"strings"
)

// Strategy selects how a traversal obtains the matching selectors for each
// element. Strategies are cumulative; each one layers a further optimization
// on top of the previous.
type Strategy uint8

const (
	// Naive tests every selector against every element. It is the ground
	// truth the other strategies are verified against.
	Naive Strategy = iota
	// SelectorMap narrows candidate selectors through an indexed rule map
	// before testing them.
	SelectorMap
	// BloomFilter additionally maintains an ancestor bloom filter and
	// fast-rejects candidates whose ancestor requirements cannot be met.
	BloomFilter
	// StyleSharing additionally consults a bounded cache of recently matched
	// elements and shares their outcome instead of matching, when safe.
	StyleSharing
)

// AllStrategies returns every strategy in evaluation order.
func AllStrategies() []Strategy {
	return []Strategy{Naive, SelectorMap, BloomFilter, StyleSharing}
}

func (s Strategy) String() string {
	switch s {
	case Naive:
		return "naive"
	case SelectorMap:
		return "selector-map"
	case BloomFilter:
		return "bloom-filter"
	case StyleSharing:
		return "style-sharing"
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// ParseStrategy converts a string, as given on a command line, to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "naive":
		return Naive, nil
	case "selector-map", "selectormap":
		return SelectorMap, nil
	case "bloom-filter", "bloomfilter", "bloom":
		return BloomFilter, nil
	case "style-sharing", "stylesharing", "sharing":
		return StyleSharing, nil
	}
	return Naive, fmt.Errorf("unknown strategy %q", name)
}

// usesRuleMap is true for strategies that query the indexed rule map instead
// of scanning the full selector list.
func (s Strategy) usesRuleMap() bool {
	return s >= SelectorMap
}

// usesBloom is true for strategies that maintain the ancestor bloom filter.
func (s Strategy) usesBloom() bool {
	return s >= BloomFilter
}

// usesSharing is true for strategies that consult the style-sharing cache.
func (s Strategy) usesSharing() bool {
	return s == StyleSharing
}
