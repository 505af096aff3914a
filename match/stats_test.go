package match

import (
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/selmatch/selmatch/maybe"
)

func TestZeroStatsPresenceByStrategy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "selmatch.match")
	defer teardown()
	//
	if s := Naive.zeroStats(); s.SelectorMapHits.IsJust() || s.FastRejects.IsJust() ||
		s.SharingInstances.IsJust() || s.SlowRejects.IsJust() {
		t.Error("naive runs measure nothing, all fields must be absent")
	}
	s := SelectorMap.zeroStats()
	if !s.SelectorMapHits.IsJust() || !s.SlowRejects.IsJust() {
		t.Error("selector-map runs must measure map hits and slow rejects")
	}
	if s.FastRejects.IsJust() || s.SharingInstances.IsJust() {
		t.Error("selector-map runs must not report bloom or sharing fields")
	}
	s = BloomFilter.zeroStats()
	if !s.FastRejects.IsJust() || !s.BloomMaintenance.IsJust() {
		t.Error("bloom runs must measure fast rejects and filter maintenance")
	}
	if s.SharingInstances.IsJust() {
		t.Error("bloom runs must not report sharing instances")
	}
	s = StyleSharing.zeroStats()
	if !s.SharingInstances.IsJust() || !s.SharingCheck.IsJust() || !s.FastRejects.IsJust() {
		t.Error("sharing runs must measure all phases")
	}
}

func TestCombineAddsPresentFields(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "selmatch.match")
	defer teardown()
	//
	a := Statistics{
		SlowRejects:   maybe.Just[int64](3),
		SlowRejecting: maybe.Just(2 * time.Millisecond),
	}
	b := Statistics{
		SlowRejects:   maybe.Just[int64](4),
		SlowRejecting: maybe.Just(5 * time.Millisecond),
	}
	c := a.Combine(b)
	if n, ok := c.SlowRejects.Get(); !ok || n != 7 {
		t.Errorf("expected Just(7) slow rejects, have %v ok=%v", n, ok)
	}
	if d, ok := c.SlowRejecting.Get(); !ok || d != 7*time.Millisecond {
		t.Errorf("expected Just(7ms), have %v ok=%v", d, ok)
	}
}

func TestCombinePropagatesAbsence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "selmatch.match")
	defer teardown()
	//
	measured := Statistics{FastRejects: maybe.Just[int64](10)}
	unmeasured := Statistics{}
	c := measured.Combine(unmeasured)
	if c.FastRejects.IsJust() {
		t.Error("combining a measurement with an absent value must stay absent")
	}
	if !unmeasured.Combine(unmeasured).EqualCounts(Statistics{}) {
		t.Error("combining absent values must stay the zero Statistics")
	}
}

func TestCombineIsGroupingInsensitive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "selmatch.match")
	defer teardown()
	//
	// Per-element contributions of a sharing run over a five-element tree:
	// a root with two subtrees of two elements each. Folding the whole list
	// must equal the root's contribution combined with the per-subtree
	// aggregates, i.e. the aggregate is independent of traversal grouping.
	contribution := func(hits, slow, fast, shared int64) Statistics {
		s := StyleSharing.zeroStats()
		s.SelectorMapHits = maybe.Just(hits)
		s.SlowRejects = maybe.Just(slow)
		s.FastRejects = maybe.Just(fast)
		s.SharingInstances = maybe.Just(shared)
		return s
	}
	root := contribution(4, 2, 1, 0)
	elements := []Statistics{
		root,
		contribution(3, 1, 0, 0), // left subtree
		contribution(0, 0, 0, 1),
		contribution(5, 2, 3, 0), // right subtree
		contribution(0, 0, 0, 1),
	}
	whole := StyleSharing.zeroStats()
	for _, e := range elements {
		whole = whole.Combine(e)
	}
	left := elements[1].Combine(elements[2])
	right := elements[3].Combine(elements[4])
	regrouped := root.Combine(left).Combine(right)
	if !whole.EqualCounts(regrouped) {
		t.Errorf("sequential fold %+v differs from subtree grouping %+v", whole, regrouped)
	}
	if n, ok := regrouped.SharingInstances.Get(); !ok || n != 2 {
		t.Errorf("expected Just(2) sharing instances, have %v ok=%v", n, ok)
	}
	if n, ok := regrouped.SelectorMapHits.Get(); !ok || n != 12 {
		t.Errorf("expected Just(12) map hits, have %v ok=%v", n, ok)
	}
}

func TestSubtreeAggregatesSumToDocumentStatistics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "selmatch.match")
	defer teardown()
	//
	// The driver folds one contribution per element; the whole-document
	// counters therefore equal the sum over any partition of the elements.
	// Cross-check against real runs: a document traversed twice yields
	// exactly twice the counters of a single traversal.
	doc, set := fixture(t, articlePage, articleSelectors)
	for _, strat := range []Strategy{SelectorMap, BloomFilter, StyleSharing} {
		_, once := Run(doc, set, strat)
		_, again := Run(doc, set, strat)
		doubled := once.Combine(again)
		twice := once.Combine(once)
		if !doubled.EqualCounts(twice) {
			t.Errorf("%s: repeated traversals contribute unequal counters", strat)
		}
	}
}

func TestZeroStatsIsNeutralUnderCombine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "selmatch.match")
	defer teardown()
	//
	for _, strat := range AllStrategies() {
		node := strat.zeroStats()
		if !node.Combine(strat.zeroStats()).EqualCounts(node) {
			t.Errorf("%s: zeroStats is not neutral under Combine", strat)
		}
	}
}
