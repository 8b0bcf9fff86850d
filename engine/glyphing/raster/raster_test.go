package raster

import (
	"errors"
	"image"
	"testing"

	"github.com/npillmayer/belle/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fallbackFaces struct{}

func (fallbackFaces) LoadFace(font.FaceRef) (*font.ScalableFont, error) {
	return font.FallbackFont(), nil
}

type brokenFaces struct{}

func (brokenFaces) LoadFace(ref font.FaceRef) (*font.ScalableFont, error) {
	return nil, errors.New("disk on fire")
}

func coverage(mask *image.Alpha) (inked, partial int) {
	for _, a := range mask.Pix {
		if a > 0 {
			inked++
		}
		if a > 0 && a < 255 {
			partial++
		}
	}
	return
}

func TestRasterizeFill(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.glyph")
	defer teardown()
	//
	rz := New(fallbackFaces{})
	mask, geom, metrics, err := rz.Rasterize(font.FaceRef{}, 16, 'A', 0, false)
	require.NoError(t, err)
	assert.Nil(t, metrics)
	t.Logf("geometry of 'A' = %s", geom)
	assert.Equal(t, image.Rect(0, 0, geom.Width, geom.Height), mask.Bounds())
	assert.Less(t, geom.Top, 0, "capital letter reaches above baseline")
	assert.GreaterOrEqual(t, geom.Top+geom.Height, -1, "capital letter sits on baseline")
	assert.InDelta(t, 12, geom.Height, 3)
	inked, partial := coverage(mask)
	assert.Greater(t, inked, 20)
	assert.Greater(t, partial, 0, "rendering is anti-aliased")
}

func TestRasterizeStrokeWidensGeometry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.glyph")
	defer teardown()
	//
	rz := New(fallbackFaces{})
	_, fill, _, err := rz.Rasterize(font.FaceRef{}, 32, 'O', 0, false)
	require.NoError(t, err)
	outline, stroked, _, err := rz.Rasterize(font.FaceRef{}, 32, 'O', 2, false)
	require.NoError(t, err)
	assert.InDelta(t, fill.Left-2, stroked.Left, 1)
	assert.InDelta(t, fill.Top-2, stroked.Top, 1)
	assert.InDelta(t, fill.Width+4, stroked.Width, 1)
	assert.InDelta(t, fill.Height+4, stroked.Height, 1)
	// the counter of the 'O' is not covered by the stroke
	center := outline.AlphaAt(stroked.Width/2, stroked.Height/2)
	assert.Equal(t, uint8(0), center.A)
}

func TestRasterizeSpaceIsEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.glyph")
	defer teardown()
	//
	rz := New(fallbackFaces{})
	mask, geom, _, err := rz.Rasterize(font.FaceRef{}, 16, ' ', 0, false)
	require.NoError(t, err)
	assert.True(t, mask.Bounds().Empty())
	assert.Equal(t, Geometry{}, geom)
}

func TestRasterizeMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.glyph")
	defer teardown()
	//
	rz := New(fallbackFaces{})
	_, geom, m, err := rz.Rasterize(font.FaceRef{}, 20, 'g', 0, true)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Greater(t, int(m.Ascender), 0)
	assert.Less(t, int(m.Descender), 0)
	assert.Greater(t, int(m.HoriBearingY), 0)
	assert.Greater(t, int(m.Height), int(m.HoriBearingY), "'g' has a descender")
	assert.InDelta(t, geom.Height, m.Height.Ceil(), 1)
}

func TestRasterizeFaceLoadError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.glyph")
	defer teardown()
	//
	rz := New(brokenFaces{})
	_, _, _, err := rz.Rasterize(font.FaceRef{Path: "x.ttf"}, 16, 'A', 0, false)
	var fle *font.FaceLoadError
	require.True(t, errors.As(err, &fle))
	assert.Equal(t, "x.ttf", fle.Ref.Path)
}
