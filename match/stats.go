package match

import (
	"time"

	"github.com/selmatch/selmatch/maybe"
)

// Statistics counts the work a traversal performed. Every field is optional:
// a field is Just for strategies that instrument the corresponding phase and
// Nothing for strategies that never enter it. Absence is not zero; a naive
// traversal performs no fast rejects rather than zero of them.
type Statistics struct {
	// SelectorMapHits counts candidate selectors produced by rule map
	// narrowing, i.e. selectors that survived indexing and had to be
	// examined further.
	SelectorMapHits maybe.Maybe[int64]
	// FastRejects counts candidates dismissed by the ancestor bloom filter
	// without running the full match predicate.
	FastRejects maybe.Maybe[int64]
	// SlowRejects counts candidates that ran the full match predicate and
	// did not match.
	SlowRejects maybe.Maybe[int64]
	// SharingInstances counts elements whose outcome was shared from a
	// cached sibling instead of being matched.
	SharingInstances maybe.Maybe[int64]

	// BloomMaintenance is the time spent synchronizing the ancestor bloom
	// filter with the traversal position.
	BloomMaintenance maybe.Maybe[time.Duration]
	// SharingCheck is the time spent probing the style-sharing cache.
	SharingCheck maybe.Maybe[time.Duration]
	// RuleMapQuery is the time spent querying the rule map and testing the
	// surviving candidates.
	RuleMapQuery maybe.Maybe[time.Duration]
	// SlowRejecting is the portion of RuleMapQuery spent on candidates that
	// turned out not to match.
	SlowRejecting maybe.Maybe[time.Duration]
}

func addCount(a, b int64) int64 { return a + b }

func addDuration(a, b time.Duration) time.Duration { return a + b }

// Combine merges two Statistics field-wise. Present fields add; a field that
// is Nothing on either side is Nothing in the result, so an unmeasured phase
// never masquerades as a measured zero. Combine is associative and commutative
// with zeroStats of the same strategy as neutral element.
func (s Statistics) Combine(other Statistics) Statistics {
	return Statistics{
		SelectorMapHits:  maybe.Map2(addCount, s.SelectorMapHits, other.SelectorMapHits),
		FastRejects:      maybe.Map2(addCount, s.FastRejects, other.FastRejects),
		SlowRejects:      maybe.Map2(addCount, s.SlowRejects, other.SlowRejects),
		SharingInstances: maybe.Map2(addCount, s.SharingInstances, other.SharingInstances),
		BloomMaintenance: maybe.Map2(addDuration, s.BloomMaintenance, other.BloomMaintenance),
		SharingCheck:     maybe.Map2(addDuration, s.SharingCheck, other.SharingCheck),
		RuleMapQuery:     maybe.Map2(addDuration, s.RuleMapQuery, other.RuleMapQuery),
		SlowRejecting:    maybe.Map2(addDuration, s.SlowRejecting, other.SlowRejecting),
	}
}

// EqualCounts compares the count fields of two Statistics, including their
// presence. Durations are excluded; they vary from run to run.
func (s Statistics) EqualCounts(other Statistics) bool {
	return s.SelectorMapHits == other.SelectorMapHits &&
		s.FastRejects == other.FastRejects &&
		s.SlowRejects == other.SlowRejects &&
		s.SharingInstances == other.SharingInstances
}

// zeroStats returns the neutral Statistics for a strategy: Just(0) for every
// field the strategy instruments, Nothing for the rest. Accumulating per-node
// statistics onto this template keeps field presence uniform across a run.
func (s Strategy) zeroStats() Statistics {
	var stats Statistics
	if s.usesRuleMap() {
		stats.SelectorMapHits = maybe.Just[int64](0)
		stats.SlowRejects = maybe.Just[int64](0)
		stats.RuleMapQuery = maybe.Just[time.Duration](0)
		stats.SlowRejecting = maybe.Just[time.Duration](0)
	}
	if s.usesBloom() {
		stats.FastRejects = maybe.Just[int64](0)
		stats.BloomMaintenance = maybe.Just[time.Duration](0)
	}
	if s.usesSharing() {
		stats.SharingInstances = maybe.Just[int64](0)
		stats.SharingCheck = maybe.Just[time.Duration](0)
	}
	return stats
}
