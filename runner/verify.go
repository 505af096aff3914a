package runner

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/selmatch/selmatch/dom"
	"github.com/selmatch/selmatch/match"
)

// Divergence reports a strategy disagreeing with the naive baseline on a
// site: the elements whose canonical selector sets differ, together with
// both sides' sets for dumping.
type Divergence struct {
	Site     string
	Strategy match.Strategy
	Keys     []dom.NodeKey

	baseline *match.CanonicalMatches
	got      *match.CanonicalMatches
}

// Dump renders the divergence as an indented tree, one branch per differing
// element, for log output.
func (d *Divergence) Dump() string {
	tree := treeprint.NewWithRoot(fmt.Sprintf("site %q, strategy %s: %d element(s) diverge",
		d.Site, d.Strategy, len(d.Keys)))
	for _, key := range d.Keys {
		branch := tree.AddBranch(fmt.Sprintf("%s %s", key, d.baseline.StartTag(key)))
		branch.AddNode(fmt.Sprintf("baseline: [%s]", strings.Join(d.baseline.SelectorTexts(key), ", ")))
		branch.AddNode(fmt.Sprintf("%s: [%s]", d.Strategy, strings.Join(d.got.SelectorTexts(key), ", ")))
	}
	return tree.String()
}

// Verify checks every non-naive result against the naive result of the same
// site. It returns one Divergence per disagreeing (site, strategy) pair, and
// an error when a site lacks a naive baseline to compare against.
func Verify(results []Result) ([]Divergence, error) {
	baselines := make(map[string]*match.CanonicalMatches)
	for _, r := range results {
		if r.Strategy == match.Naive {
			baselines[r.Site] = r.Canonical
		}
	}
	var divergences []Divergence
	for _, r := range results {
		if r.Strategy == match.Naive {
			continue
		}
		baseline, ok := baselines[r.Site]
		if !ok {
			return nil, fmt.Errorf("site %q has no naive baseline to verify %s against", r.Site, r.Strategy)
		}
		if diff := baseline.Diff(r.Canonical); len(diff) > 0 {
			d := Divergence{
				Site:     r.Site,
				Strategy: r.Strategy,
				Keys:     diff,
				baseline: baseline,
				got:      r.Canonical,
			}
			tracer().Errorf("%s", d.Dump())
			divergences = append(divergences, d)
		}
	}
	return divergences, nil
}
