/*
Package glyphing renders single characters onto a canvas, following either
horizontal (yokogaki) or vertical (tategaki) Japanese typesetting
conventions.

A Character is one glyph's complete rendering request. Rendering happens in
four steps:

  - a writing-direction policy decides, from Unicode properties of the
    code-point, whether a glyph is rotated, transposed or realigned to the
    center of a vertical line,
  - the glyph is rasterized for fill and outline (package raster),
  - fill and outline are composited and rotated (package composite),
  - a mapping strategy computes the paste position relative to the
    character's anchor, depending on its pivot.

Type Writer orchestrates these steps. Rendering a character is synchronous;
errors are not recovered but propagate to the client, which decides whether
to skip the character or to abort the render.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphing

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'belle.glyph'.
func tracer() tracing.Trace {
	return tracing.Select("belle.glyph")
}
