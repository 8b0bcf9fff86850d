/*
Package resources resolves assets of a document: fonts and images.

Assets are referenced by keys, which are slash-separated paths relative to
an asset directory (configuration key "assets"). Font keys which cannot be
found in the asset directory are looked up as system fonts.

As image loading may be a time-consuming task, images may be resolved in an
async/await fashion. Functions named

   Resolve…(…)

will return a resource-specific promise type, which the client will call later
to receive the loaded resource. The call to the promise-function will then block
until loading has completed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'belle.resources'.
func tracer() tracing.Trace {
	return tracing.Select("belle.resources")
}
