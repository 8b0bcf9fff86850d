/*
Package monospace sets short runs of text on a monospace grid.

Text is split into graphemes (github.com/npillmayer/uax). In horizontal
writing mode every grapheme advances by its East Asian cell width, where a
wide cell is one em. In vertical writing mode every grapheme occupies a
full em. The result is a sequence of glyphing.Characters, ready to be
rendered with a glyphing.Writer.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package monospace

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'belle.glyph'.
func tracer() tracing.Trace {
	return tracing.Select("belle.glyph")
}
