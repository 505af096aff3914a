package bloom

import (
	"fmt"

	"github.com/selmatch/selmatch/dom"
)

// Fingerprinter produces the ancestor fingerprints an element contributes to
// the filter (typically hashes of its tag name, id and classes). It is
// supplied by the selector engine so that both sides of the fast-reject test
// agree on the hashing scheme.
type Fingerprinter func(dom.ElementRef) []uint64

// StyleBloom keeps a Filter synchronized with the ancestor chain of the
// element currently visited by a preorder walk. It is depth-aware: a stack
// records which fingerprints each ancestor pushed, so stale branches can be
// popped when the walk moves to a sibling or cousin.
//
// A StyleBloom is exclusively owned by a single traversal; no locking.
type StyleBloom struct {
	filter      Filter
	fingerprint Fingerprinter
	stack       []pushedElement
}

type pushedElement struct {
	el           dom.ElementRef
	fingerprints []uint64
}

// NewStyleBloom creates an empty ancestor filter using the given fingerprint
// scheme.
func NewStyleBloom(fp Fingerprinter) *StyleBloom {
	return &StyleBloom{fingerprint: fp}
}

// Filter exposes the underlying bloom filter for fast-reject queries.
// Callers must not mutate it.
func (b *StyleBloom) Filter() *Filter {
	return &b.filter
}

// Depth returns the number of ancestors currently represented.
func (b *StyleBloom) Depth() int {
	return len(b.stack)
}

// InsertParents synchronizes the filter so that it contains the fingerprints
// of exactly the ancestor chain of el (excluding el itself). depth is el's
// 0-based distance from the root element. Entries pushed for branches no
// longer on the current path are removed; newly entered ancestors are pushed.
//
// Calling InsertParents with a depth inconsistent with the real tree is a
// programming error and panics: continuing would leave the filter incoherent
// for every later fast-reject test.
func (b *StyleBloom) InsertParents(el dom.ElementRef, depth int) {
	// The target stack has exactly `depth` entries: el's ancestors, root
	// first. Trim anything deeper, then walk up from el's parent until the
	// retained prefix and the real chain agree.
	for len(b.stack) > depth {
		b.pop()
	}
	var missing []dom.ElementRef
	a, ok := el.ParentElement()
	d := depth - 1
	for ok {
		if d < 0 {
			panic(fmt.Sprintf("bloom filter depth desync: %s has more ancestors than depth %d admits",
				el.StartTag(), depth))
		}
		if len(b.stack) == d+1 {
			if b.stack[d].el.Equal(a) {
				break // common prefix reached; stack[0..d] is already correct
			}
			b.pop() // stale cousin branch
			continue
		}
		missing = append(missing, a)
		a, ok = a.ParentElement()
		d--
	}
	if !ok && d != -1 {
		panic(fmt.Sprintf("bloom filter depth desync: %s claims depth %d but has only %d ancestors",
			el.StartTag(), depth, depth-1-d))
	}
	for i := len(missing) - 1; i >= 0; i-- {
		b.push(missing[i])
	}
	if len(b.stack) != depth {
		panic(fmt.Sprintf("bloom filter depth desync: stack has %d entries after sync to depth %d",
			len(b.stack), depth))
	}
	tracer().Debugf("bloom filter synced to %d ancestors of %s", depth, el.TagName())
}

func (b *StyleBloom) push(el dom.ElementRef) {
	fps := b.fingerprint(el)
	for _, fp := range fps {
		b.filter.Insert(fp)
	}
	b.stack = append(b.stack, pushedElement{el: el, fingerprints: fps})
}

func (b *StyleBloom) pop() {
	top := b.stack[len(b.stack)-1]
	for _, fp := range top.fingerprints {
		b.filter.Remove(fp)
	}
	b.stack = b.stack[:len(b.stack)-1]
}
