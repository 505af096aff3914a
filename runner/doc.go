/*
Package runner evaluates matching strategies over a corpus of websites.

Every (website, strategy) pair is an independent job; jobs run on a bounded
worker pool and deposit their results into pre-assigned slots, so the result
order is deterministic regardless of scheduling. Verification compares each
strategy's canonicalized matches against the naive baseline of the same site
and reports any divergence.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package runner

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'selmatch.runner'.
func tracer() tracing.Trace {
	return tracing.Select("selmatch.runner")
}
