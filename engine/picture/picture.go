/*
Package picture places raster images onto a canvas.

Images are scaled to a requested size with a bicubic (Catmull-Rom) filter,
rotated clockwise around their center and pasted centered on a position,
blending them over the canvas with their own alpha channel.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package picture

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/npillmayer/belle/core"
	"github.com/npillmayer/belle/engine/glyphing/composite"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/draw"
)

// tracer traces with key 'belle.picture'.
func tracer() tracing.Trace {
	return tracing.Select("belle.picture")
}

// Img is an image to be placed on a canvas.
type Img struct {
	Src           image.Image
	X, Y          int     // center position in destination pixel space
	Width, Height int     // target size; 0 for either preserves the aspect ratio
	Rotation      float64 // in degrees, clockwise
}

func (img Img) String() string {
	return fmt.Sprintf("img(@%d,%d %dx%d r=%.1f)", img.X, img.Y, img.Width, img.Height, img.Rotation)
}

// Prepare scales and rotates the source image of img.
func (img Img) Prepare() (*image.NRGBA, error) {
	if img.Src == nil {
		return nil, core.Error(core.EINVALID, "image has no source")
	}
	if img.Width < 0 || img.Height < 0 {
		return nil, core.Error(core.EINVALID, "negative image size %dx%d", img.Width, img.Height)
	}
	if math.IsNaN(img.Rotation) || math.IsInf(img.Rotation, 0) {
		return nil, core.Error(core.EINVALID, "invalid image rotation %v", img.Rotation)
	}
	size := img.Src.Bounds().Size()
	var pic *image.NRGBA
	if (img.Width == 0 && img.Height == 0) || (img.Width == size.X && img.Height == size.Y) {
		pic = imaging.Clone(img.Src)
	} else {
		tracer().Debugf("resizing image from %v to %dx%d", size, img.Width, img.Height)
		pic = imaging.Resize(img.Src, img.Width, img.Height, imaging.CatmullRom)
	}
	if img.Rotation != 0 {
		pic = composite.Rotate(pic, img.Rotation)
	}
	return pic, nil
}

// Write places img onto dst, centered on the image's position.
func Write(dst draw.Image, img Img) error {
	pic, err := img.Prepare()
	if err != nil {
		return err
	}
	size := pic.Bounds().Size()
	at := image.Pt(img.X-size.X/2, img.Y-size.Y/2)
	tracer().Debugf("%s: paste %v at %v", img, size, at)
	draw.Draw(dst, pic.Bounds().Sub(pic.Bounds().Min).Add(at), pic, pic.Bounds().Min, draw.Over)
	return nil
}
