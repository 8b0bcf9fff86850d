package picture

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/npillmayer/belle/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// opaqueBox returns the bounding box of fully opaque pixels.
func opaqueBox(img *image.NRGBA) image.Rectangle {
	var box image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y).A == 255 {
				box = box.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return box
}

func TestPlaceCentered(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.picture")
	defer teardown()
	//
	red := color.NRGBA{R: 255, A: 255}
	dst := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	require.NoError(t, Write(dst, Img{Src: filled(4, 2, red), X: 10, Y: 10, Width: 4, Height: 2}))
	assert.Equal(t, image.Rect(8, 9, 12, 11), opaqueBox(dst))
	assert.Equal(t, red, dst.NRGBAAt(8, 9))
}

func TestResizeAndRotate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.picture")
	defer teardown()
	//
	blue := color.NRGBA{B: 255, A: 255}
	dst := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	require.NoError(t, Write(dst, Img{Src: filled(4, 2, blue), X: 10, Y: 10, Width: 8, Height: 4}))
	assert.Equal(t, image.Rect(6, 8, 14, 12), opaqueBox(dst))
	//
	dst = image.NewNRGBA(image.Rect(0, 0, 20, 20))
	require.NoError(t, Write(dst, Img{Src: filled(4, 2, blue), X: 10, Y: 10, Width: 8, Height: 4,
		Rotation: 90}))
	assert.Equal(t, image.Rect(8, 6, 12, 14), opaqueBox(dst))
	//
	pic, err := Img{Src: filled(4, 2, blue), Width: 8}.Prepare()
	require.NoError(t, err)
	assert.Equal(t, image.Pt(8, 4), pic.Bounds().Size(), "aspect ratio preserved")
}

func TestSemiTransparentImageBlends(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.picture")
	defer teardown()
	//
	dst := filled(10, 10, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	require.NoError(t, Write(dst, Img{Src: filled(2, 2, color.NRGBA{A: 128}), X: 5, Y: 5}))
	p := dst.NRGBAAt(5, 5)
	assert.InDelta(t, 127, int(p.R), 2)
	assert.Equal(t, uint8(255), p.A)
	assert.Equal(t, uint8(255), dst.NRGBAAt(0, 0).R)
}

func TestInvalidImages(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	assert.Equal(t, core.EINVALID, core.Code(Write(dst, Img{})))
	assert.Equal(t, core.EINVALID, core.Code(Write(dst, Img{Src: filled(1, 1, color.NRGBA{}), Width: -1})))
}

func TestNonFiniteRotationIsInvalid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.picture")
	defer teardown()
	//
	dst := filled(10, 10, color.NRGBA{A: 255})
	err := Write(dst, Img{Src: filled(4, 4, color.NRGBA{R: 255, A: 255}), X: 5, Y: 5,
		Rotation: math.NaN()})
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Equal(t, color.NRGBA{A: 255}, dst.NRGBAAt(5, 5))
}
