/*
Package fontregistry manages a registry for loaded fonts.

Font files are parsed once and then shared between all glyphs referencing
the same face. Typecases, which carry scratch buffers, are created freshly
for every request.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'belle.font'
func tracer() tracing.Trace {
	return tracing.Select("belle.font")
}
