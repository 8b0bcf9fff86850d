package composite

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

// solid creates a fully covered mask.
func solid(w, h int) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, w, h))
	for i := range m.Pix {
		m.Pix[i] = 255
	}
	return m
}

// pattern creates a mask without symmetries.
func pattern(w, h int) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetAlpha(x, y, color.Alpha{A: uint8((x*37 + y*101 + x*y) % 256)})
		}
	}
	return m
}

func TestCanvasHeadroom(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.glyph")
	defer teardown()
	//
	for _, sz := range [][2]int{{10, 10}, {7, 23}, {1, 1}, {100, 3}} {
		img, off := Composite(solid(sz[0], sz[1]), nil, red, nil, 0, 0)
		b := img.Bounds()
		assert.Equal(t, int(math.Ceil(float64(sz[0])*11/10-1e-9)), b.Dx(), "width for %v", sz)
		assert.Equal(t, int(math.Ceil(float64(sz[1])*11/10-1e-9)), b.Dy(), "height for %v", sz)
		assert.GreaterOrEqual(t, float64(b.Dx()), 1.1*float64(sz[0])-1e-9)
		assert.Equal(t, Vec{}, off)
	}
	img, _ := Composite(solid(10, 4), solid(6, 12), red, blue, 0, 0)
	assert.Equal(t, image.Rect(0, 0, 11, 14), img.Bounds(), "componentwise maximum of masks")
	img, _ = Composite(nil, nil, red, blue, 0, 0)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds(), "at least 1×1 before over-rendering")
}

func TestFillIsInsetByOutlineWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.glyph")
	defer teardown()
	//
	img, _ := Composite(solid(6, 6), solid(10, 10), red, blue, 2, 0)
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(1, 9))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(2, 2))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(7, 7))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(8, 8))
	assert.Equal(t, uint8(0), img.NRGBAAt(10, 10).A, "over-render margin is transparent")
}

func TestQuarterRotationsAreTranspositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.glyph")
	defer teardown()
	//
	mask := pattern(9, 5)
	upright, _ := Composite(mask, nil, red, nil, 0, 0)
	w, h := upright.Bounds().Dx(), upright.Bounds().Dy()
	turned, _ := Composite(mask, nil, red, nil, 0, 90)
	require.Equal(t, image.Rect(0, 0, h, w), turned.Bounds())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// clockwise: (x,y) moves to (h-1-y, x)
			if upright.NRGBAAt(x, y) != turned.NRGBAAt(h-1-y, x) {
				t.Fatalf("pixel (%d,%d) not transposed", x, y)
			}
		}
	}
	half, _ := Composite(mask, nil, red, nil, 0, 180)
	assert.Equal(t, upright.NRGBAAt(0, 0), half.NRGBAAt(w-1, h-1))
	full, _ := Composite(mask, nil, red, nil, 0, 360)
	assert.Equal(t, upright.Pix, full.Pix)
	back, _ := Composite(mask, nil, red, nil, 0, -90)
	assert.Equal(t, upright.NRGBAAt(0, 0), back.NRGBAAt(0, w-1))
}

func TestOddAnglesAreResampledSmoothly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.glyph")
	defer teardown()
	//
	img, off := Composite(solid(20, 20), nil, red, nil, 0, 45)
	b := img.Bounds()
	// diagonal of the 22×22 canvas
	assert.InDelta(t, 22*math.Sqrt2, float64(b.Dx()), 1.5)
	assert.Equal(t, b.Dx(), b.Dy())
	opaque, partial := 0, 0
	for i := 3; i < len(img.Pix); i += 4 {
		switch a := img.Pix[i]; {
		case a == 255:
			opaque++
		case a > 0:
			partial++
		}
	}
	assert.Greater(t, opaque, 300)
	assert.Greater(t, partial, 20, "edges of a diagonal square are anti-aliased")
	assert.NotEqual(t, Vec{}, off)
}

func TestRotationOffset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.glyph")
	defer teardown()
	//
	size := image.Pt(22, 11)
	k := 1/OverRenderRatio - 1
	off := RotationOffset(size, 90)
	// v = (11k, 5.5k) rotated by -90°
	assert.InDelta(t, 5.5*k, off.X, 1e-9)
	assert.InDelta(t, -11*k, off.Y, 1e-9)
	off = RotationOffset(size, 360)
	assert.InDelta(t, 11*k, off.X, 1e-9)
	assert.InDelta(t, 5.5*k, off.Y, 1e-9)
}

func TestNonFiniteRotationKeepsImage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.glyph")
	defer teardown()
	//
	img := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	img.SetNRGBA(1, 1, red)
	for _, deg := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		rot := Rotate(img, deg)
		require.Equal(t, img.Bounds(), rot.Bounds())
		assert.Equal(t, red, rot.NRGBAAt(1, 1))
	}
}
