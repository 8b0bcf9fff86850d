package glyphing

import (
	"image"

	"github.com/npillmayer/belle/core"
	"github.com/npillmayer/belle/engine/glyphing/raster"
)

// RasterizedGlyph is the outcome of rasterizing a character: the coverage
// masks of the fill and outline passes, the placement of the last pass's
// mask relative to the glyph origin, and optional metrics.
type RasterizedGlyph struct {
	Fill     *image.Alpha // nil if not filled
	Outline  *image.Alpha // nil if not outlined
	Geometry raster.Geometry
	Metrics  *raster.FaceMetrics // present only if requested
}

// Mapper computes the paste position of a composited glyph bitmap relative to
// a character's anchor. p is the effective writing-direction policy of c.
type Mapper interface {
	Map(c *Character, g RasterizedGlyph, p Policy) (x, y float64, err error)
}

// TateNakaYokoBaselineAdj blends a rotated glyph in a vertical line from
// its baseline towards the center line.
const TateNakaYokoBaselineAdj = 0.5

// ErrMissingMetrics is returned if the baseline adjustment of a rotated glyph
// in vertical mode is requested without face metrics.
var ErrMissingMetrics = core.Error(core.EINTERNAL, "face metrics required for vertical baseline adjustment")

// TopLeftMapping places the origin of a glyph's cell on the anchor. In
// horizontal mode the anchor is the top-left corner of an em box; in vertical
// mode glyphs are aligned to the column.
type TopLeftMapping struct {
	GlyphSize float64 // pixels per em
}

// Map implements Mapper.
func (m TopLeftMapping) Map(c *Character, g RasterizedGlyph, p Policy) (float64, float64, error) {
	x, y := float64(g.Geometry.Left), float64(g.Geometry.Top)
	w, h := float64(g.Geometry.Width), float64(g.Geometry.Height)
	if !p.Transpose {
		y += m.GlyphSize
	} else {
		x, y = y, x
		if p.Rotate {
			if p.RealignToCenter {
				x = -h/2 + m.GlyphSize/2
			} else {
				if g.Metrics == nil {
					return 0, 0, ErrMissingMetrics
				}
				gap := float64(g.Metrics.Height-g.Metrics.HoriBearingY) / 64
				dsc := float64(g.Metrics.Descender) / 64
				adj := -(dsc + gap)
				x = adj + dsc*TateNakaYokoBaselineAdj
			}
		} else {
			x = m.GlyphSize - w
		}
	}
	ax, ay := c.Anchor()
	return ax + x, ay + y, nil
}

// CenterMapping centers the glyph's bitmap on the anchor, regardless of
// writing mode.
type CenterMapping struct {
	GlyphSize float64 // pixels per em
}

// Map implements Mapper.
func (m CenterMapping) Map(c *Character, g RasterizedGlyph, p Policy) (float64, float64, error) {
	w, h := float64(g.Geometry.Width), float64(g.Geometry.Height)
	if p.Rotate {
		w, h = h, w
	}
	ax, ay := c.Anchor()
	return ax - w/2, ay - h/2, nil
}

// DefaultMapping returns the mapping for a character's pivot.
func DefaultMapping(c *Character) Mapper {
	if c.Pivot() == PivotTopLeft {
		return TopLeftMapping{GlyphSize: c.GlyphSize()}
	}
	return CenterMapping{GlyphSize: c.GlyphSize()}
}

// needsMetrics is true if mapping m may depend on face metrics for c.
func needsMetrics(c *Character, m Mapper) bool {
	if !c.Tate() {
		return false
	}
	switch m.(type) {
	case TopLeftMapping, *TopLeftMapping:
		return true
	}
	return false
}
