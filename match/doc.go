/*
Package match is the traversal-and-matching core: a preorder walk over a
document that, per strategy, decides how the matching selectors for each
element are obtained, records one outcome per element, and accumulates
statistics about the work performed.

Four strategies share one driver:

  - Naive: every selector in the list is tested directly (ground truth).
  - SelectorMap: candidates are narrowed through an indexed rule map.
  - BloomFilter: as SelectorMap, plus a depth-synchronized ancestor bloom
    filter for fast rejection of ancestor-combinator selectors.
  - StyleSharing: a bounded cache of recently matched elements is consulted
    first; on a hit the element records a back-reference instead of a
    selector set.

Outcomes from different strategies are made comparable by canonicalization:
sharing back-references are resolved to the terminal selector set and
selector objects are reduced to their serialized text. Canonical equality
against the naive baseline is the single correctness oracle of the module.

Every traversal exclusively owns its bloom filter, sharing cache and
statistics; traversals of different (document, strategy) pairs may run
concurrently without locking.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package match

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'selmatch.match'.
func tracer() tracing.Trace {
	return tracing.Select("selmatch.match")
}
