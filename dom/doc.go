/*
Package dom adapts an HTML parse tree (golang.org/x/net/html) for selector
matching. It hands out lightweight element handles with parent/child/sibling
access, assigns every element a stable 64-bit identity key, and owns a
per-document interning table for class lists.

Handles are plain values and may be copied freely; they carry no ownership.
Two handles are equal iff they reference the same parse-tree node.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'selmatch.dom'.
func tracer() tracing.Trace {
	return tracing.Select("selmatch.dom")
}
