/*
Package report serializes evaluation results.

Three output forms are supported: a YAML or JSON statistics report, one entry
per (site, strategy) pair with absent measurements rendered as null, and a
self-contained HTML dashboard built from the same entries. Canonical match
sets can be serialized separately for snapshotting and offline comparison.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package report

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'selmatch.report'.
func tracer() tracing.Trace {
	return tracing.Select("selmatch.report")
}
