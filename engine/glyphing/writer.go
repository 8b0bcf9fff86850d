package glyphing

import (
	"image"
	"image/color"
	"math"

	"github.com/npillmayer/belle/core"
	"github.com/npillmayer/belle/engine/glyphing/composite"
	"github.com/npillmayer/belle/engine/glyphing/raster"
	"golang.org/x/image/draw"
)

// Writer renders characters onto a destination canvas.
//
// A Writer holds no per-character state. It may be shared between goroutines
// as long as its face loader supports concurrent access, but the destination
// of a Write must not be accessed concurrently.
type Writer struct {
	raster *raster.Rasterizer
}

// NewWriter creates a glyph writer which loads font faces with faces,
// usually a font registry.
func NewWriter(faces raster.FaceLoader) *Writer {
	return &Writer{raster: raster.New(faces)}
}

// Rasterize rasterizes the fill and the outline of a character, in this
// order. The geometry of the last pass is recorded, i.e. the outline's for
// outlined characters.
func (w *Writer) Rasterize(c *Character, withMetrics bool) (RasterizedGlyph, error) {
	var g RasterizedGlyph
	if c.IsFilled() {
		mask, geom, m, err := w.raster.Rasterize(c.Face(), c.GlyphSize(), c.Char(), 0, withMetrics)
		if err != nil {
			return g, err
		}
		g.Fill, g.Geometry, g.Metrics = mask, geom, m
		withMetrics = false
	}
	if c.IsOutlined() {
		mask, geom, m, err := w.raster.Rasterize(c.Face(), c.GlyphSize(), c.Char(),
			c.OutlineWidth(), withMetrics)
		if err != nil {
			return g, err
		}
		g.Outline, g.Geometry = mask, geom
		if m != nil {
			g.Metrics = m
		}
	}
	return g, nil
}

// Write renders character c onto dst. If m is nil, the default mapping for
// the character's pivot is used.
//
// Errors from loading or rasterizing the glyph are returned unchanged;
// dst is not touched in this case.
func (w *Writer) Write(dst draw.Image, c *Character, m Mapper) error {
	if !c.IsFilled() && !c.IsOutlined() {
		tracer().Debugf("%s has neither fill nor outline, skipping", c)
		return nil
	}
	if r := c.Rotation(); math.IsNaN(r) || math.IsInf(r, 0) {
		return core.Error(core.EINVALID, "%s: invalid rotation", c)
	}
	if m == nil {
		m = DefaultMapping(c)
	}
	g, err := w.Rasterize(c, needsMetrics(c, m))
	if err != nil {
		return err
	}
	bitmap, offset := composite.Composite(g.Fill, g.Outline, paint(c.Color()),
		paint(c.OutlineColor()), c.OutlineWidth(), c.Rotation())
	x, y, err := m.Map(c, g, c.Policy())
	if err != nil {
		return err
	}
	at := image.Pt(int(math.Round(x+offset.X)), int(math.Round(y+offset.Y)))
	tracer().Debugf("%s: geometry %s, paste %v at %v", c, g.Geometry, bitmap.Bounds().Size(), at)
	draw.Draw(dst, bitmap.Bounds().Add(at), bitmap, bitmap.Bounds().Min, draw.Over)
	return nil
}

// paint converts an optional color into an optional paint.
func paint(c *color.NRGBA) color.Color {
	if c == nil {
		return nil
	}
	return *c
}
