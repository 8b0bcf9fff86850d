/*
Package raster rasterizes single glyphs into 8-bit coverage masks.

Glyph outlines are taken unhinted from a font face (golang.org/x/image/font/sfnt)
and are scan-converted with anti-aliasing by github.com/golang/freetype/raster.
For outlined characters, a second pass rasterizes the outline widened by a
stroke with round caps and round joins.

Coordinates follow the destination canvas convention: x grows to the right,
y grows downwards, and the origin is the glyph's origin on the baseline.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package raster

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/golang/freetype/raster"
	"github.com/npillmayer/belle/core"
	"github.com/npillmayer/belle/core/font"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'belle.glyph'.
func tracer() tracing.Trace {
	return tracing.Select("belle.glyph")
}

// FaceLoader resolves a face reference to a parsed font.
// A font registry is the usual implementation.
type FaceLoader interface {
	LoadFace(font.FaceRef) (*font.ScalableFont, error)
}

// Geometry is the placement of a coverage mask relative to the glyph origin.
// Top is negative for masks reaching above the baseline.
type Geometry struct {
	Left, Top     int
	Width, Height int
}

func (g Geometry) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", g.Left, g.Top, g.Width, g.Height)
}

// FaceMetrics are glyph and face metrics in 26.6 fixed point pixel units,
// with FreeType sign conventions: HoriBearingY is positive for glyphs
// reaching above the baseline, Descender is negative.
type FaceMetrics struct {
	Height       fixed.Int26_6 // height of the glyph's ink box
	HoriBearingY fixed.Int26_6 // baseline to top of ink box
	Ascender     fixed.Int26_6 // face-wide, scaled to the current size
	Descender    fixed.Int26_6 // face-wide, scaled to the current size
}

// GlyphMissingError is returned if no outline can be loaded for a code-point.
type GlyphMissingError struct {
	Rune rune
	Err  error
}

func (e *GlyphMissingError) Error() string {
	return fmt.Sprintf("no outline for glyph %q (%U): %v", e.Rune, e.Rune, e.Err)
}

func (e *GlyphMissingError) Unwrap() error { return e.Err }

// ErrorCode implements core.AppError.
func (e *GlyphMissingError) ErrorCode() int { return core.EMISSING }

// UserMessage implements core.AppError.
func (e *GlyphMissingError) UserMessage() string {
	return fmt.Sprintf("glyph not available: %U", e.Rune)
}

var _ core.AppError = &GlyphMissingError{}

// Rasterizer produces coverage masks for glyphs.
type Rasterizer struct {
	faces FaceLoader
}

// New creates a rasterizer loading font faces with faces.
func New(faces FaceLoader) *Rasterizer {
	return &Rasterizer{faces: faces}
}

// Rasterize creates a coverage mask for code-point r of a face at a given
// size (pixels per em).
//
// If stroke is positive, the outline of the glyph is stroked with half-width
// stroke (outline pass); otherwise the glyph is filled (fill pass).
// If withMetrics is set, glyph and face metrics are returned as well.
//
// Glyphs without ink (e.g., spaces) produce an empty mask.
func (rz *Rasterizer) Rasterize(ref font.FaceRef, size float64, r rune, stroke float64,
	withMetrics bool) (*image.Alpha, Geometry, *FaceMetrics, error) {
	//
	f, err := rz.faces.LoadFace(ref)
	if err != nil {
		var fle *font.FaceLoadError
		if !errors.As(err, &fle) {
			err = &font.FaceLoadError{Ref: ref, Err: err}
		}
		return nil, Geometry{}, nil, err
	}
	tc, err := f.PrepareCase(size)
	if err != nil {
		return nil, Geometry{}, nil, err
	}
	gid, err := tc.GlyphIndex(r)
	if err != nil {
		return nil, Geometry{}, nil, &GlyphMissingError{Rune: r, Err: err}
	}
	if gid == 0 {
		tracer().Debugf("font %s has no glyph for %U, using notdef", f.Fontname, r)
	}
	segs, err := tc.Outline(gid)
	if err != nil {
		return nil, Geometry{}, nil, &GlyphMissingError{Rune: r, Err: err}
	}
	var halfwidth fixed.Int26_6
	if stroke > 0 {
		halfwidth = fixed.Int26_6(math.Round(stroke * 64))
	}
	geom, ok := maskGeometry(segs, halfwidth)
	var mask *image.Alpha
	if !ok {
		mask = image.NewAlpha(image.Rectangle{})
	} else {
		mask = image.NewAlpha(image.Rect(0, 0, geom.Width, geom.Height))
		path := outlinePath(segs, fixed.Point26_6{
			X: fixed.I(-geom.Left),
			Y: fixed.I(-geom.Top),
		})
		rasterizer := raster.NewRasterizer(geom.Width, geom.Height)
		rasterizer.UseNonZeroWinding = true
		if halfwidth > 0 {
			rasterizer.AddStroke(path, 2*halfwidth, raster.RoundCapper, raster.RoundJoiner)
		} else {
			rasterizer.AddPath(path)
		}
		rasterizer.Rasterize(raster.NewAlphaSrcPainter(mask))
	}
	if !withMetrics { // segs is not valid any more after querying metrics
		return mask, geom, nil, nil
	}
	metrics, err := faceMetrics(tc, gid)
	if err != nil {
		return nil, Geometry{}, nil, &GlyphMissingError{Rune: r, Err: err}
	}
	return mask, geom, metrics, nil
}

// maskGeometry calculates the pixel bounds of the control box of an outline,
// widened by a stroke half-width. Returns false for empty outlines.
func maskGeometry(segs sfnt.Segments, halfwidth fixed.Int26_6) (Geometry, bool) {
	if len(segs) == 0 {
		return Geometry{}, false
	}
	lo := fixed.Point26_6{X: math.MaxInt32, Y: math.MaxInt32}
	hi := fixed.Point26_6{X: math.MinInt32, Y: math.MinInt32}
	for _, seg := range segs {
		n := 1
		switch seg.Op {
		case sfnt.SegmentOpQuadTo:
			n = 2
		case sfnt.SegmentOpCubeTo:
			n = 3
		}
		for _, p := range seg.Args[:n] {
			if p.X < lo.X {
				lo.X = p.X
			}
			if p.Y < lo.Y {
				lo.Y = p.Y
			}
			if p.X > hi.X {
				hi.X = p.X
			}
			if p.Y > hi.Y {
				hi.Y = p.Y
			}
		}
	}
	lo.X, lo.Y = lo.X-halfwidth, lo.Y-halfwidth
	hi.X, hi.Y = hi.X+halfwidth, hi.Y+halfwidth
	g := Geometry{Left: lo.X.Floor(), Top: lo.Y.Floor()}
	g.Width = hi.X.Ceil() - g.Left
	g.Height = hi.Y.Ceil() - g.Top
	if g.Width <= 0 || g.Height <= 0 {
		return Geometry{}, false
	}
	return g, true
}

// outlinePath converts glyph segments to a rasterizer path, translated by
// delta. Every contour is closed explicitly.
func outlinePath(segs sfnt.Segments, delta fixed.Point26_6) raster.Path {
	var path raster.Path
	var start, last fixed.Point26_6
	open := false
	closeContour := func() {
		if open && last != start {
			path.Add1(start)
		}
	}
	for _, seg := range segs {
		a0, a1, a2 := seg.Args[0].Add(delta), seg.Args[1].Add(delta), seg.Args[2].Add(delta)
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			closeContour()
			path.Start(a0)
			start, last, open = a0, a0, true
		case sfnt.SegmentOpLineTo:
			path.Add1(a0)
			last = a0
		case sfnt.SegmentOpQuadTo:
			path.Add2(a0, a1)
			last = a1
		case sfnt.SegmentOpCubeTo:
			path.Add3(a0, a1, a2)
			last = a2
		}
	}
	closeContour()
	return path
}

func faceMetrics(tc *font.TypeCase, gid sfnt.GlyphIndex) (*FaceMetrics, error) {
	bounds, err := tc.GlyphBounds(gid)
	if err != nil {
		return nil, err
	}
	fm, err := tc.Metrics()
	if err != nil {
		return nil, err
	}
	return &FaceMetrics{
		Height:       bounds.Max.Y - bounds.Min.Y,
		HoriBearingY: -bounds.Min.Y,
		Ascender:     fm.Ascent,
		Descender:    -fm.Descent,
	}, nil
}
