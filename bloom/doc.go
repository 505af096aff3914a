/*
Package bloom provides the ancestor filter used for fast selector rejection:
a counting bloom filter over ancestor fingerprints, plus a depth-aware stack
that keeps the filter synchronized with the current path of a preorder tree
walk.

A plain bloom filter cannot remove entries by value, so the stack remembers,
per ancestor, exactly which fingerprints were inserted; leaving a branch
decrements those counters again.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package bloom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'selmatch.bloom'.
func tracer() tracing.Trace {
	return tracing.Select("selmatch.bloom")
}
