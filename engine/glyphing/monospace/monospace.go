package monospace

import (
	"io"
	"unicode/utf8"

	"github.com/npillmayer/belle/engine/glyphing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
)

// Setter sets text on a monospace grid.
type Setter struct {
	em               float64
	tate             bool
	graphemeSplitter *segment.Segmenter
	context          *uax11.Context
}

// NewSetter creates a setter for monospace typesetting.
// An em-dimension in pixels may be given which will then be used for setting
// text. If it is zero, it will be set to 16 pixels. If context is nil, Latin
// context is assumed for ambiguous widths.
func NewSetter(em float64, context *uax11.Context) *Setter {
	if em <= 0 {
		em = 16
	}
	if context == nil {
		context = uax11.LatinContext
	}
	grapheme.SetupGraphemeClasses()
	return &Setter{
		em:               em,
		context:          context,
		graphemeSplitter: segment.NewSegmenter(grapheme.NewBreaker(1)),
	}
}

// SetTate switches between vertical (true) and horizontal writing mode.
func (s *Setter) SetTate(tate bool) {
	s.tate = tate
}

// Em returns the em-dimension of s in pixels.
func (s *Setter) Em() float64 {
	return s.em
}

// Set places the graphemes of text in a line starting at the top-left
// corner (x, y). Every character is centered in its cell and inherits face,
// colors and outline from style. Set returns the characters and the total
// advance of the line.
//
// A grapheme is rendered by its first code-point.
func (s *Setter) Set(text io.RuneReader, x, y float64, style glyphing.CharSpec) ([]*glyphing.Character, float64) {
	if text == nil {
		return nil, 0
	}
	var chars []*glyphing.Character
	advance := 0.0
	s.graphemeSplitter.Init(text)
	for s.graphemeSplitter.Next() {
		grphm := s.graphemeSplitter.Bytes()
		codepoint, _ := utf8.DecodeRune(grphm)
		spec := style
		spec.Char = codepoint
		spec.Width, spec.Height = s.em, s.em
		spec.Tate = s.tate
		spec.Pivot = glyphing.PivotCenter
		if s.tate {
			spec.X, spec.Y = x+s.em/2, y+advance+s.em/2
			advance += s.em
		} else {
			w := float64(uax11.Width(grphm, s.context)) * s.em / 2
			spec.X, spec.Y = x+advance+w/2, y+s.em/2
			advance += w
		}
		chars = append(chars, glyphing.NewCharacter(spec))
	}
	tracer().Debugf("set %d graphemes, advance %.1f", len(chars), advance)
	return chars, advance
}
