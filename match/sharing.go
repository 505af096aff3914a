package match

import (
	"github.com/selmatch/selmatch/dom"
	"github.com/selmatch/selmatch/selector"
)

// sharingCacheCapacity bounds the number of candidate elements the
// style-sharing cache retains. Small on purpose: sharing partners are almost
// always nearby siblings, and a short scan keeps the probe cheap.
const sharingCacheCapacity = 31

// sharingCache remembers recently visited elements whose selectors were
// matched directly, as candidates for outcome sharing. It is owned by a
// single traversal.
type sharingCache struct {
	set     *selector.Set
	entries []dom.ElementRef // oldest first, newest last
}

func newSharingCache(set *selector.Set) *sharingCache {
	return &sharingCache{
		set:     set,
		entries: make([]dom.ElementRef, 0, sharingCacheCapacity),
	}
}

// lookup scans the cache, newest entry first, for an element el may share
// its outcome with. Cached entries were inserted at an earlier traversal
// step, so a hit always refers backwards.
func (c *sharingCache) lookup(el dom.ElementRef) (dom.ElementRef, bool) {
	for i := len(c.entries) - 1; i >= 0; i-- {
		if c.set.CanShare(el, c.entries[i]) {
			return c.entries[i], true
		}
	}
	return dom.ElementRef{}, false
}

// insert offers a directly matched element as a future sharing candidate,
// evicting the oldest entry when the cache is full. Elements ineligible for
// sharing are not cached; they could never be returned by lookup.
func (c *sharingCache) insert(el dom.ElementRef) {
	if !c.set.EligibleForSharing(el) {
		return
	}
	if len(c.entries) == sharingCacheCapacity {
		copy(c.entries, c.entries[1:])
		c.entries = c.entries[:sharingCacheCapacity-1]
	}
	c.entries = append(c.entries, el)
}
