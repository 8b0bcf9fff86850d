/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".
A font file may hold a collection of fonts (*.ttc), which are selected by
an index.

* A "typecase" is a scaled font, i.e. a font at a certain size in pixels
per em. The name is reminiscend on the wooden boxes of typesetters in the
aera of metal type.

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner. Documents reference
fonts by a face reference, which is a file path plus a collection index.

Parsing of font files is delegated to golang.org/x/image/font/sfnt.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package font

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/npillmayer/belle/core"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'belle.font'.
func tracer() tracing.Trace {
	return tracing.Select("belle.font")
}

// FaceRef references a font face: a font resource on local storage and the
// index of the face within a font collection (0 for plain font files).
type FaceRef struct {
	Path  string
	Index int
}

func (ref FaceRef) String() string {
	if ref.Index == 0 {
		return ref.Path
	}
	return fmt.Sprintf("%s#%d", ref.Path, ref.Index)
}

// FaceLoadError is returned if a font resource cannot be read or parsed, or
// if the face index is out of range for the font collection.
type FaceLoadError struct {
	Ref FaceRef
	Err error
}

func (e *FaceLoadError) Error() string {
	return fmt.Sprintf("cannot load font face %s: %v", e.Ref, e.Err)
}

func (e *FaceLoadError) Unwrap() error { return e.Err }

// ErrorCode implements core.AppError.
func (e *FaceLoadError) ErrorCode() int {
	if errors.Is(e.Err, os.ErrNotExist) {
		return core.EMISSING
	}
	if errors.Is(e.Err, ErrFaceIndex) {
		return core.EINVALID
	}
	return core.EIO
}

// UserMessage implements core.AppError.
func (e *FaceLoadError) UserMessage() string {
	return fmt.Sprintf("font not usable: %s", e.Ref)
}

var _ core.AppError = &FaceLoadError{}

// ErrFaceIndex flags a face index outside of a font collection.
var ErrFaceIndex = errors.New("face index out of range")

// ScalableFont is a font face parsed from a font file or collection.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Index    int        // index within collection
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container; safe for concurrent use
}

// LoadOpenTypeFont loads a face from a font file (TTF, OTF, TTC, OTC).
func LoadOpenTypeFont(ref FaceRef) (*ScalableFont, error) {
	bytez, err := os.ReadFile(ref.Path)
	if err != nil {
		return nil, &FaceLoadError{Ref: ref, Err: err}
	}
	f, err := ParseOpenTypeFont(bytez, ref.Index)
	if err != nil {
		return nil, &FaceLoadError{Ref: ref, Err: err}
	}
	f.Filepath = ref.Path
	tracer().Debugf("loaded font %s from %s", f.Fontname, ref)
	return f, nil
}

// ParseOpenTypeFont parses face number index from font data. Plain font
// files are treated as collections with a single face.
func ParseOpenTypeFont(fbytes []byte, index int) (f *ScalableFont, err error) {
	coll, err := sfnt.ParseCollection(fbytes)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= coll.NumFonts() {
		return nil, fmt.Errorf("%w: %d not in [0…%d]", ErrFaceIndex, index, coll.NumFonts()-1)
	}
	f = &ScalableFont{Binary: fbytes, Index: index}
	if f.SFNT, err = coll.Font(index); err != nil {
		return nil, err
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return f, nil
}

// PrepareCase creates a typecase for a given size in pixels per em.
func (sf *ScalableFont) PrepareCase(size float64) (*TypeCase, error) {
	if size <= 0 {
		return nil, core.Error(core.EINVALID, "font size must be positive, is %g", size)
	}
	return &TypeCase{
		scalableFontParent: sf,
		size:               size,
		ppem:               fixed.Int26_6(size * 64),
	}, nil
}

// --- Typecase --------------------------------------------------------------

// TypeCase is a font at a given size. Glyph outlines and metrics produced by
// a typecase are unhinted, in 26.6 fixed point pixel units, with y growing
// downwards.
//
// A TypeCase holds a scratch buffer and must not be shared between
// goroutines.
type TypeCase struct {
	scalableFontParent *ScalableFont
	size               float64
	ppem               fixed.Int26_6
	buf                sfnt.Buffer
}

func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// PtSize returns the size of the typecase (pixels per em at 72 DPI).
func (tc *TypeCase) PtSize() float64 {
	return tc.size
}

// PPEm returns the size of the typecase in 26.6 fixed point pixels per em.
func (tc *TypeCase) PPEm() fixed.Int26_6 {
	return tc.ppem
}

// GlyphIndex returns the glyph for a code-point. Code-points not covered by
// the font's cmap map to the notdef glyph 0.
func (tc *TypeCase) GlyphIndex(r rune) (sfnt.GlyphIndex, error) {
	return tc.scalableFontParent.SFNT.GlyphIndex(&tc.buf, r)
}

// Outline returns the vector outline of a glyph, scaled to the size of the
// typecase. The returned segments are valid until the next call to a method
// of tc.
func (tc *TypeCase) Outline(gid sfnt.GlyphIndex) (sfnt.Segments, error) {
	return tc.scalableFontParent.SFNT.LoadGlyph(&tc.buf, gid, tc.ppem, nil)
}

// GlyphBounds returns the ink bounds of a glyph relative to its origin on
// the baseline.
func (tc *TypeCase) GlyphBounds(gid sfnt.GlyphIndex) (fixed.Rectangle26_6, error) {
	b, _, err := tc.scalableFontParent.SFNT.GlyphBounds(&tc.buf, gid, tc.ppem, xfont.HintingNone)
	return b, err
}

// Metrics returns the face-wide metrics at the size of the typecase.
func (tc *TypeCase) Metrics() (xfont.Metrics, error) {
	return tc.scalableFontParent.SFNT.Metrics(&tc.buf, tc.ppem, xfont.HintingNone)
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	gofont, err := ParseOpenTypeFont(goregular.TTF, 0)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	gofont.Fontname = "Go Sans"
	gofont.Filepath = "internal"
	return gofont
}

// ---------------------------------------------------------------------------

// NormalizeFontname creates a lookup key from a font name or file name:
// blanks are replaced by underscores, a file suffix is stripped and the
// result is lower case.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	return fname
}
