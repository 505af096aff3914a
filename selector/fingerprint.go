package selector

import (
	"hash/fnv"

	"github.com/selmatch/selmatch/dom"
)

// Fingerprints are 64-bit hashes over an element's cheap discriminators.
// An element contributes its tag name, its id and each of its classes; a
// selector requires the corresponding hashes for every compound that sits
// left of a descendant or child combinator. Both sides use the same hashing
// scheme, so a required fingerprint genuinely present in the ancestor chain
// is always found (no false negatives).

const (
	fpTag   = 't'
	fpID    = 'i'
	fpClass = 'c'
)

func fingerprint(kind byte, ident string) uint64 {
	h := fnv.New64a()
	h.Write([]byte{kind})
	h.Write([]byte(ident))
	return h.Sum64()
}

// ElementFingerprints returns the fingerprints el contributes to the
// ancestor filter. The slice is freshly allocated per call.
func ElementFingerprints(el dom.ElementRef) []uint64 {
	fps := make([]uint64, 0, 4)
	fps = append(fps, fingerprint(fpTag, el.TagName()))
	if id := el.ID(); id != "" {
		fps = append(fps, fingerprint(fpID, id))
	}
	for _, class := range el.Classes() {
		fps = append(fps, fingerprint(fpClass, class))
	}
	return fps
}

// ancestorFingerprints derives the fingerprints a selector requires of the
// ancestor chain of any element it matches. A compound contributes iff the
// combinator to its right is a descendant or child combinator: siblings
// share their ancestor chain, so everything left of such a combinator is an
// ancestor of the subject regardless of intervening sibling combinators.
// Opaque compounds contribute nothing (conservative).
func ancestorFingerprints(compounds []compound) []uint64 {
	var fps []uint64
	for i := 0; i < len(compounds)-1; i++ {
		if compounds[i].combinator != ' ' && compounds[i].combinator != '>' {
			continue
		}
		f := scanCompound(compounds[i].text)
		if f.opaque {
			continue
		}
		if f.tag != "" && f.tag != "*" {
			fps = append(fps, fingerprint(fpTag, f.tag))
		}
		if f.id != "" {
			fps = append(fps, fingerprint(fpID, f.id))
		}
		for _, class := range f.classes {
			fps = append(fps, fingerprint(fpClass, class))
		}
	}
	return fps
}
