package bloom

// Filter is a counting bloom filter keyed by 64-bit fingerprints. Each
// fingerprint probes two buckets; a fingerprint may be present when both
// counters are non-zero. Counters saturate at 255 and a saturated counter is
// never decremented, which can only cause false positives, never false
// negatives.
type Filter struct {
	counters [arraySize]uint8
}

const (
	keyBits   = 12
	arraySize = 1 << keyBits
	keyMask   = arraySize - 1
)

func hash1(fingerprint uint64) uint32 {
	return uint32(fingerprint) & keyMask
}

func hash2(fingerprint uint64) uint32 {
	return uint32(fingerprint>>32) & keyMask
}

// Insert adds a fingerprint to the filter.
func (f *Filter) Insert(fingerprint uint64) {
	f.bump(hash1(fingerprint))
	f.bump(hash2(fingerprint))
}

// Remove takes one previously inserted fingerprint out of the filter.
func (f *Filter) Remove(fingerprint uint64) {
	f.drop(hash1(fingerprint))
	f.drop(hash2(fingerprint))
}

// MayContain reports whether the fingerprint may have been inserted. False
// positives are possible; false negatives are not.
func (f *Filter) MayContain(fingerprint uint64) bool {
	return f.counters[hash1(fingerprint)] != 0 && f.counters[hash2(fingerprint)] != 0
}

// MayContainAll reports whether every given fingerprint may be present.
// An empty slice trivially holds.
func (f *Filter) MayContainAll(fingerprints []uint64) bool {
	for _, fp := range fingerprints {
		if !f.MayContain(fp) {
			return false
		}
	}
	return true
}

// Clear resets the filter to empty.
func (f *Filter) Clear() {
	f.counters = [arraySize]uint8{}
}

func (f *Filter) bump(slot uint32) {
	if f.counters[slot] != 0xff {
		f.counters[slot]++
	}
}

func (f *Filter) drop(slot uint32) {
	if f.counters[slot] != 0xff && f.counters[slot] != 0 {
		f.counters[slot]--
	}
}
