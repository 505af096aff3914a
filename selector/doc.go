/*
Package selector wraps the external selector engine (cascadia) behind the
narrow contracts the traversal core needs: parsing selector lists with
pseudo-class filtering, boolean matching of one selector against one element,
an indexed rule map for candidate narrowing, ancestor fingerprints for
bloom-filter rejection, and the style-sharing predicate.

The structural decision "does this selector match this element" is cascadia's
alone; this package only derives cheap discriminators (buckets, required
ancestor fingerprints, sibling dependence) from the selector source text.
Derivation is conservative: when the scanner cannot classify a piece of a
selector it contributes nothing, which can only make rejection less
aggressive, never unsound.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package selector

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'selmatch.selector'.
func tracer() tracing.Trace {
	return tracing.Select("selmatch.selector")
}
