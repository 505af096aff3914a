package match

import (
	"fmt"
	"time"

	"github.com/selmatch/selmatch/bloom"
	"github.com/selmatch/selmatch/dom"
	"github.com/selmatch/selmatch/maybe"
	"github.com/selmatch/selmatch/selector"
)

// Run traverses doc in preorder and computes the matching selectors from set
// for every element, using the given strategy. It returns one outcome per
// element together with the accumulated work statistics of the run.
//
// Run panics when the document violates traversal invariants (a child
// reporting a different parent, or a bloom filter depth desync); these are
// structural corruption, not recoverable conditions.
func Run(doc *dom.Document, set *selector.Set, strategy Strategy) (*DocumentMatches, Statistics) {
	tv := &traversal{
		strategy: strategy,
		set:      set,
		out: &DocumentMatches{
			doc:      doc,
			strategy: strategy,
			entries:  make([]ElementMatches, 0, doc.NumElements()),
		},
		stats: strategy.zeroStats(),
	}
	if strategy.usesBloom() {
		tv.bloom = bloom.NewStyleBloom(selector.ElementFingerprints)
	}
	if strategy.usesSharing() {
		tv.cache = newSharingCache(set)
	}
	tracer().Debugf("matching %d selectors over %d elements, strategy %s",
		set.Len(), doc.NumElements(), strategy)
	tv.visit(doc.Root(), 0)
	return tv.out, tv.stats
}

// traversal is the single-run state of one strategy over one document. It is
// never shared between goroutines.
type traversal struct {
	strategy Strategy
	set      *selector.Set
	bloom    *bloom.StyleBloom
	cache    *sharingCache
	out      *DocumentMatches
	stats    Statistics
}

func (tv *traversal) visit(el dom.ElementRef, depth int) {
	node := tv.strategy.zeroStats()
	if tv.bloom != nil {
		start := time.Now()
		tv.bloom.InsertParents(el, depth)
		node.BloomMaintenance = maybe.Just(time.Since(start))
	}
	outcome := tv.decide(el, &node)
	tv.out.entries = append(tv.out.entries, ElementMatches{
		Key:     el.Key(),
		Element: el,
		Outcome: outcome,
	})
	tv.stats = tv.stats.Combine(node)
	for _, child := range el.ChildElements() {
		if parent, ok := child.ParentElement(); !ok || !parent.Equal(el) {
			reported := "<none>"
			if ok {
				reported = parent.StartTag()
			}
			panic(fmt.Sprintf("traversal parent mismatch:\n  me: %s\n  my child: %s\n  child's reported parent: %s",
				el.StartTag(), child.StartTag(), reported))
		}
		tv.visit(child, depth+1)
	}
}

// decide produces the outcome for one element and records the work performed
// into node. The fields written here mirror the presence template of
// zeroStats so that Combine never erases a measured field.
func (tv *traversal) decide(el dom.ElementRef, node *Statistics) MatchOutcome {
	if tv.cache != nil {
		start := time.Now()
		source, hit := tv.cache.lookup(el)
		node.SharingCheck = maybe.Just(time.Since(start))
		if hit {
			node.SharingInstances = maybe.Just[int64](1)
			return SharedWith(source.Key())
		}
	}
	if !tv.strategy.usesRuleMap() {
		var matched []*selector.Selector
		for _, s := range tv.set.Selectors() {
			if s.Matches(el) {
				matched = append(matched, s)
			}
		}
		return Direct(matched)
	}
	var filter *bloom.Filter
	if tv.bloom != nil {
		filter = tv.bloom.Filter()
	}
	var qs selector.QueryStats
	start := time.Now()
	matched := tv.set.Rules().MatchingSelectors(el, filter, &qs)
	node.RuleMapQuery = maybe.Just(time.Since(start))
	node.SelectorMapHits = maybe.Just(qs.Candidates)
	node.SlowRejects = maybe.Just(qs.SlowRejects)
	node.SlowRejecting = maybe.Just(qs.SlowRejecting)
	if tv.bloom != nil {
		node.FastRejects = maybe.Just(qs.FastRejects)
	}
	if tv.cache != nil {
		tv.cache.insert(el)
	}
	return Direct(matched)
}
