/*
Package corpus loads evaluation inputs from a websites directory on disk.

Each immediate sub-directory is one website: exactly one HTML file, plus any
number of CSS files it references through <link rel="stylesheet"> elements
with local hrefs. Inline <style> elements contribute as well. The stylesheets
of a site are flattened into a single selector list; declarations are parsed
but ignored, since only selector matching is evaluated.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package corpus

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'selmatch.corpus'.
func tracer() tracing.Trace {
	return tracing.Select("selmatch.corpus")
}
