package match

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/selmatch/selmatch/dom"
	"github.com/selmatch/selmatch/selector"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>t</title></head>
<body>
  <nav class="top"><a href="/">home</a><a href="/a">a</a></nav>
  <div id="content" class="wide">
    <h1>Title</h1>
    <p class="lead">first</p>
    <p>second</p>
    <ul class="items">
      <li class="item">1</li>
      <li class="item">2</li>
      <li class="item hot">3</li>
    </ul>
  </div>
  <footer><p>fin</p></footer>
</body>
</html>`

var articleSelectors = []string{
	"#content",
	".wide",
	".item",
	".items .hot",
	"p",
	"div p",
	"nav a",
	"h1 + p",
	"li + li",
	"ul > li",
	"*",
	"footer p",
}

func fixture(t *testing.T, page string, sources []string) (*dom.Document, *selector.Set) {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parsing document: %v", err)
	}
	var selectors []*selector.Selector
	for _, src := range sources {
		s, ok := selector.Parse(src)
		if !ok {
			t.Fatalf("cannot parse %q", src)
		}
		selectors = append(selectors, s)
	}
	return doc, selector.NewSet(selectors)
}

func TestRunCoversEveryElementOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "selmatch.match")
	defer teardown()
	//
	doc, set := fixture(t, articlePage, articleSelectors)
	for _, strat := range AllStrategies() {
		matches, _ := Run(doc, set, strat)
		if err := matches.CheckCoverage(); err != nil {
			t.Errorf("%s: %v", strat, err)
		}
	}
}

func TestAllStrategiesAgreeWithNaive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "selmatch.match")
	defer teardown()
	//
	doc, set := fixture(t, articlePage, articleSelectors)
	naive, _ := Run(doc, set, Naive)
	baseline := naive.Canonicalize()
	for _, strat := range []Strategy{SelectorMap, BloomFilter, StyleSharing} {
		matches, _ := Run(doc, set, strat)
		canonical := matches.Canonicalize()
		if !baseline.Equal(canonical) {
			diff := baseline.Diff(canonical)
			for _, key := range diff {
				t.Logf("%s %s: naive=%v, %s=%v", key, baseline.StartTag(key),
					baseline.SelectorTexts(key), strat, canonical.SelectorTexts(key))
			}
			t.Errorf("%s diverges from naive on %d element(s)", strat, len(diff))
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "selmatch.match")
	defer teardown()
	//
	doc, set := fixture(t, articlePage, articleSelectors)
	for _, strat := range AllStrategies() {
		first, firstStats := Run(doc, set, strat)
		second, secondStats := Run(doc, set, strat)
		if !first.Canonicalize().Equal(second.Canonicalize()) {
			t.Errorf("%s: two runs over the same inputs disagree", strat)
		}
		if !firstStats.EqualCounts(secondStats) {
			t.Errorf("%s: two runs over the same inputs count different work", strat)
		}
	}
}

func TestNaiveMeasuresNothing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "selmatch.match")
	defer teardown()
	//
	doc, set := fixture(t, articlePage, articleSelectors)
	_, stats := Run(doc, set, Naive)
	if stats.SelectorMapHits.IsJust() || stats.FastRejects.IsJust() ||
		stats.SlowRejects.IsJust() || stats.SharingInstances.IsJust() {
		t.Errorf("naive run reported optional counters: %+v", stats)
	}
	if stats.BloomMaintenance.IsJust() || stats.SharingCheck.IsJust() ||
		stats.RuleMapQuery.IsJust() || stats.SlowRejecting.IsJust() {
		t.Errorf("naive run reported optional timings: %+v", stats)
	}
}

func TestSharingAmongIdenticalSiblings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "selmatch.match")
	defer teardown()
	//
	var sb strings.Builder
	sb.WriteString(`<html><body><div class="grid">`)
	for i := 0; i < 10; i++ {
		sb.WriteString(`<div class="tile">x</div>`)
	}
	sb.WriteString(`</div></body></html>`)
	doc, set := fixture(t, sb.String(), []string{".tile", ".grid div", "div"})

	matches, stats := Run(doc, set, StyleSharing)
	shared, ok := stats.SharingInstances.Get()
	if !ok {
		t.Fatal("sharing run must report sharing instances")
	}
	// The first tile is matched directly, the other nine share its outcome.
	if shared != 9 {
		t.Errorf("expected 9 sharing instances, have %d", shared)
	}
	var backRefs int
	for _, e := range matches.Entries() {
		if _, isShared := e.Outcome.Shared(); isShared {
			backRefs++
		}
	}
	if backRefs != 9 {
		t.Errorf("expected 9 shared outcomes, have %d", backRefs)
	}

	// The naive baseline still agrees, and reports no sharing field at all.
	naive, naiveStats := Run(doc, set, Naive)
	if naiveStats.SharingInstances.IsJust() {
		t.Error("naive run must not report sharing instances")
	}
	if !naive.Canonicalize().Equal(matches.Canonicalize()) {
		t.Error("sharing run diverges from naive")
	}
}

func TestEscapedSelectorsAgreeAcrossStrategies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "selmatch.match")
	defer teardown()
	//
	// `.a\.b` names the class "a.b". The indexed strategies must neither
	// drop it at the bucket lookup nor fast-reject `.a\.b p` through the
	// ancestor filter.
	doc, set := fixture(t,
		`<html><body><div class="a.b"><p>x</p><p>y</p></div></body></html>`,
		[]string{`.a\.b`, `.a\.b p`, "p"})
	naive, _ := Run(doc, set, Naive)
	baseline := naive.Canonicalize()
	if baseline.MatchingPairs() != 5 {
		t.Fatalf("expected 5 matching pairs from the naive baseline, have %d", baseline.MatchingPairs())
	}
	for _, strat := range []Strategy{SelectorMap, BloomFilter, StyleSharing} {
		matches, _ := Run(doc, set, strat)
		canonical := matches.Canonicalize()
		if !baseline.Equal(canonical) {
			for _, key := range baseline.Diff(canonical) {
				t.Logf("%s %s: naive=%v, %s=%v", key, baseline.StartTag(key),
					baseline.SelectorTexts(key), strat, canonical.SelectorTexts(key))
			}
			t.Errorf("%s diverges from naive on escaped selectors", strat)
		}
	}
}

func TestSharedOutcomesPointBackwards(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "selmatch.match")
	defer teardown()
	//
	doc, set := fixture(t, articlePage, articleSelectors)
	matches, _ := Run(doc, set, StyleSharing)
	seen := make(map[dom.NodeKey]bool)
	for _, e := range matches.Entries() {
		if source, shared := e.Outcome.Shared(); shared {
			if !seen[source] {
				t.Errorf("%s shares with %s, which was not visited before it", e.Key, source)
			}
		}
		seen[e.Key] = true
	}
}

func TestCanonicalizeResolvesSharingChains(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "selmatch.match")
	defer teardown()
	//
	doc, set := fixture(t,
		`<html><body><ul><li class="x">a</li><li class="x">b</li><li class="x">c</li></ul></body></html>`,
		[]string{".x", "ul li"})
	matches, _ := Run(doc, set, StyleSharing)
	canonical := matches.Canonicalize()
	for _, e := range matches.Entries() {
		if e.Element.TagName() != "li" {
			continue
		}
		texts := canonical.SelectorTexts(e.Key)
		if len(texts) != 2 {
			t.Errorf("li %s: expected 2 canonical selectors, have %v", e.Key, texts)
		}
	}
}

func TestMatchingPairsAgreeAcrossStrategies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "selmatch.match")
	defer teardown()
	//
	doc, set := fixture(t, articlePage, articleSelectors)
	naive, _ := Run(doc, set, Naive)
	want := naive.Canonicalize().MatchingPairs()
	if want == 0 {
		t.Fatal("fixture produces no matching pairs at all")
	}
	for _, strat := range []Strategy{SelectorMap, BloomFilter, StyleSharing} {
		matches, _ := Run(doc, set, strat)
		if got := matches.Canonicalize().MatchingPairs(); got != want {
			t.Errorf("%s: expected %d matching pairs, have %d", strat, want, got)
		}
	}
}

func TestParseStrategyRoundTrip(t *testing.T) {
	for _, strat := range AllStrategies() {
		parsed, err := ParseStrategy(strat.String())
		if err != nil || parsed != strat {
			t.Errorf("round trip of %q failed: %v", strat, err)
		}
	}
	if _, err := ParseStrategy("quantum"); err == nil {
		t.Error("expected an error for an unknown strategy name")
	}
}

func BenchmarkStrategies(b *testing.B) {
	var sb strings.Builder
	sb.WriteString(`<html><body>`)
	for i := 0; i < 40; i++ {
		sb.WriteString(fmt.Sprintf(`<div class="row r%d"><span class="cell">a</span><span class="cell">b</span><span class="cell">c</span></div>`, i%4))
	}
	sb.WriteString(`</body></html>`)
	doc, err := dom.Parse(strings.NewReader(sb.String()))
	if err != nil {
		b.Fatalf("parsing document: %v", err)
	}
	var selectors []*selector.Selector
	for _, src := range []string{".cell", ".row .cell", "div span", ".r1 span", ".r2 .cell", "span", "*", "body div"} {
		s, ok := selector.Parse(src)
		if !ok {
			b.Fatalf("cannot parse %q", src)
		}
		selectors = append(selectors, s)
	}
	set := selector.NewSet(selectors)
	for _, strat := range AllStrategies() {
		b.Run(strat.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				Run(doc, set, strat)
			}
		})
	}
}
