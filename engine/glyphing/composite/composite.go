/*
Package composite combines the fill and outline coverage masks of a glyph
into a colored bitmap and rotates it.

The bitmap is over-rendered: it is allocated 10% larger than the largest mask,
leaving a transparent margin which keeps stroke and fill pixels from being
clipped by a rotation. Rotations by multiples of 90° are lossless pixel
transpositions, all other angles are resampled with a Catmull-Rom filter.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package composite

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// tracer traces with key 'belle.glyph'.
func tracer() tracing.Trace {
	return tracing.Select("belle.glyph")
}

// OverRenderRatio is the factor the compositing canvas exceeds the glyph
// masks by.
const OverRenderRatio = 1.1

// Vec is a displacement in pixels.
type Vec struct {
	X, Y float64
}

func (v Vec) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", v.X, v.Y)
}

// Composite paints an outline mask and a fill mask onto a fresh transparent
// canvas and rotates the result clockwise by rotation degrees.
//
// Either mask may be nil. The outline is stamped at the origin, the fill is
// inset by inset pixels in both directions, so that fill and outline are
// concentric. The returned offset compensates the displacement of the glyph
// caused by rotating the over-rendered canvas; it has to be added to the
// paste position. It is the zero vector for unrotated glyphs.
func Composite(fill, outline *image.Alpha, fillColor, outlineColor color.Color,
	inset, rotation float64) (*image.NRGBA, Vec) {
	//
	size := image.Pt(1, 1)
	for _, m := range []*image.Alpha{fill, outline} {
		if m == nil {
			continue
		}
		s := m.Bounds().Size()
		size.X, size.Y = max(size.X, s.X), max(size.Y, s.Y)
	}
	canvas := image.NewNRGBA(image.Rect(0, 0, overRender(size.X), overRender(size.Y)))
	if outline != nil && outlineColor != nil {
		stamp(canvas, outline, outlineColor, image.Point{})
	}
	if fill != nil && fillColor != nil {
		d := int(math.Round(inset))
		stamp(canvas, fill, fillColor, image.Pt(d, d))
	}
	if rotation == 0 {
		return canvas, Vec{}
	}
	offset := RotationOffset(canvas.Bounds().Size(), rotation)
	tracer().Debugf("rotating glyph canvas %v by %.1f°, offset = %s", canvas.Bounds().Size(),
		rotation, offset)
	return Rotate(canvas, rotation), offset
}

// overRender returns ceil(n * OverRenderRatio) without floating point
// representation errors.
func overRender(n int) int {
	return (n*11 + 9) / 10
}

func stamp(canvas *image.NRGBA, mask *image.Alpha, c color.Color, at image.Point) {
	r := mask.Bounds().Sub(mask.Bounds().Min).Add(at)
	draw.DrawMask(canvas, r, image.NewUniform(c), image.Point{}, mask, mask.Bounds().Min, draw.Over)
}

// RotationOffset calculates the displacement of a glyph's center on an
// over-rendered canvas of a given size, when the canvas is rotated clockwise
// by rotation degrees.
func RotationOffset(size image.Point, rotation float64) Vec {
	theta := -rotation * math.Pi / 180
	k := 1/OverRenderRatio - 1
	v := Vec{X: float64(size.X) / 2 * k, Y: float64(size.Y) / 2 * k}
	sin, cos := math.Sincos(theta)
	return Vec{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Rotate rotates an image clockwise by a given angle in degrees. The result
// is expanded to hold the complete rotated image; uncovered areas are
// transparent. Angles which are not finite leave the image unrotated.
func Rotate(img *image.NRGBA, degrees float64) *image.NRGBA {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		tracer().Errorf("cannot rotate by %v degrees", degrees)
		return imaging.Clone(img)
	}
	if math.Mod(degrees, 90) == 0 {
		switch quarter := int(math.Mod(degrees/90, 4)+4) % 4; quarter {
		case 1:
			return imaging.Rotate270(img) // imaging rotates counter-clockwise
		case 2:
			return imaging.Rotate180(img)
		case 3:
			return imaging.Rotate90(img)
		default:
			return imaging.Clone(img)
		}
	}
	return rotateSmooth(img, degrees)
}

func rotateSmooth(img *image.NRGBA, degrees float64) *image.NRGBA {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	b := img.Bounds()
	csx, csy := float64(b.Dx())/2, float64(b.Dy())/2
	minx, miny := math.Inf(1), math.Inf(1)
	maxx, maxy := math.Inf(-1), math.Inf(-1)
	for _, p := range [][2]float64{{-csx, -csy}, {csx, -csy}, {-csx, csy}, {csx, csy}} {
		x, y := cos*p[0]-sin*p[1], sin*p[0]+cos*p[1]
		minx, maxx = math.Min(minx, x), math.Max(maxx, x)
		miny, maxy = math.Min(miny, y), math.Max(maxy, y)
	}
	w := int(math.Ceil(maxx-1e-9) - math.Floor(minx+1e-9))
	h := int(math.Ceil(maxy-1e-9) - math.Floor(miny+1e-9))
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	cdx, cdy := float64(w)/2, float64(h)/2
	s2d := f64.Aff3{
		cos, -sin, cdx - cos*(csx+float64(b.Min.X)) + sin*(csy+float64(b.Min.Y)),
		sin, cos, cdy - sin*(csx+float64(b.Min.X)) - cos*(csy+float64(b.Min.Y)),
	}
	draw.CatmullRom.Transform(dst, s2d, img, b, draw.Src, nil)
	return dst
}
