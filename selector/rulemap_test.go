package selector

import (
	"sort"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/selmatch/selmatch/bloom"
	"github.com/selmatch/selmatch/dom"
)

const shopPage = `<!DOCTYPE html>
<html>
<body>
  <div id="main" class="wide">
    <ul class="items">
      <li class="item">a</li>
      <li class="item hot">b</li>
      <li class="item">c</li>
    </ul>
    <p>footer</p>
  </div>
</body>
</html>`

var shopSelectors = []string{
	"#main",
	".item",
	".items .hot",
	"li",
	"*",
	"div p",
	"ul > li",
	"li + li",
	"body div",
}

func parseAll(t *testing.T, sources []string) []*Selector {
	t.Helper()
	var selectors []*Selector
	for _, src := range sources {
		s, ok := Parse(src)
		if !ok {
			t.Fatalf("cannot parse %q", src)
		}
		selectors = append(selectors, s)
	}
	return selectors
}

func matchedTexts(selectors []*Selector, el dom.ElementRef) []string {
	var texts []string
	for _, s := range selectors {
		if s.Matches(el) {
			texts = append(texts, s.Text())
		}
	}
	sort.Strings(texts)
	return texts
}

func TestRuleMapAgreesWithFullScan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "selmatch.selector")
	defer teardown()
	//
	doc := parseDoc(t, shopPage)
	selectors := parseAll(t, shopSelectors)
	rules := NewRuleMap(selectors)
	for _, el := range elementsOf(doc) {
		want := matchedTexts(selectors, el)
		got := matchedTexts(rules.MatchingSelectors(el, nil, nil), el)
		if len(want) != len(got) {
			t.Fatalf("%s: full scan found %v, rule map %v", el.StartTag(), want, got)
		}
		for i := range want {
			if want[i] != got[i] {
				t.Fatalf("%s: full scan found %v, rule map %v", el.StartTag(), want, got)
			}
		}
	}
}

func TestRuleMapNarrowsCandidates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "selmatch.selector")
	defer teardown()
	//
	doc := parseDoc(t, shopPage)
	selectors := parseAll(t, shopSelectors)
	rules := NewRuleMap(selectors)
	var p dom.ElementRef
	for _, el := range elementsOf(doc) {
		if el.TagName() == "p" {
			p = el
		}
	}
	var stats QueryStats
	rules.MatchingSelectors(p, nil, &stats)
	// The <p> must never see the li- or item-specific selectors.
	if stats.Candidates >= int64(len(selectors)) {
		t.Errorf("expected narrowing below %d candidates, have %d", len(selectors), stats.Candidates)
	}
	if stats.Candidates < 2 { // at least '*' and 'div p'
		t.Errorf("narrowing dropped candidates it must keep, have %d", stats.Candidates)
	}
	if stats.FastRejects != 0 {
		t.Errorf("no filter given, but %d fast rejects recorded", stats.FastRejects)
	}
}

func TestRuleMapFastRejectsThroughFilter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "selmatch.selector")
	defer teardown()
	//
	doc := parseDoc(t, shopPage)
	selectors := parseAll(t, shopSelectors)
	rules := NewRuleMap(selectors)
	var li dom.ElementRef
	for _, el := range elementsOf(doc) {
		if el.TagName() == "li" {
			li = el
			break
		}
	}
	// An empty ancestor filter rejects every selector with ancestor
	// requirements, among them '.items .hot' and 'body div'.
	var empty bloom.Filter
	var stats QueryStats
	matched := rules.MatchingSelectors(li, &empty, &stats)
	if stats.FastRejects == 0 {
		t.Error("expected fast rejects against an empty ancestor filter")
	}
	// Correctness is preserved for selectors without ancestor requirements.
	for _, s := range matched {
		if !s.Matches(li) {
			t.Errorf("filtered query returned non-matching selector %q", s.Text())
		}
	}

	// A filter fed with the true ancestor fingerprints must not reject
	// anything the full scan finds.
	var full bloom.Filter
	for a, ok := li.ParentElement(); ok; a, ok = a.ParentElement() {
		for _, f := range ElementFingerprints(a) {
			full.Insert(f)
		}
	}
	stats = QueryStats{}
	got := matchedTexts(rules.MatchingSelectors(li, &full, &stats), li)
	want := matchedTexts(selectors, li)
	if len(got) != len(want) {
		t.Fatalf("with true ancestors: full scan found %v, filtered query %v", want, got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("with true ancestors: full scan found %v, filtered query %v", want, got)
		}
	}
}
