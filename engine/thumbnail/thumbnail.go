/*
Package thumbnail creates preview images for assets.

Image assets are scaled to the thumbnail size. Images which cannot be decoded
are replaced by a gray placeholder. Font assets are previewed by typesetting
a short sample text (configuration key "thumbnail-text", default "テスト")
at 16 pixels per em onto a white canvas.

Thumbnails are delivered as JPEG, either to a writer or into the user's cache
directory, grouped by a label (usually the thumbnail size class).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package thumbnail

import (
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/npillmayer/belle/core"
	"github.com/npillmayer/belle/core/locate/resources"
	"github.com/npillmayer/belle/engine/glyphing"
	"github.com/npillmayer/belle/engine/glyphing/monospace"
	"github.com/npillmayer/belle/engine/glyphing/raster"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'belle.thumbnail'.
func tracer() tracing.Trace {
	return tracing.Select("belle.thumbnail")
}

// DefaultText is typeset for font previews if no text is configured.
const DefaultText = "テスト"

// SampleSize is the font size for font previews, in pixels per em.
const SampleSize = 16.0

// DefaultQuality is the JPEG quality used if none is configured.
const DefaultQuality = 75

var placeholderGray = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

// Thumbnailer creates thumbnails for assets of an asset store.
type Thumbnailer struct {
	assets  *resources.DirStore
	writer  *glyphing.Writer
	text    string
	quality int
}

// New creates a thumbnailer for assets, loading font faces with faces.
// Sample text and JPEG quality are taken from the global configuration.
func New(assets *resources.DirStore, faces raster.FaceLoader) *Thumbnailer {
	t := &Thumbnailer{
		assets:  assets,
		writer:  glyphing.NewWriter(faces),
		text:    gconf.GetString("thumbnail-text"),
		quality: gconf.GetInt("jpeg-quality"),
	}
	if t.text == "" {
		t.text = DefaultText
	}
	if t.quality <= 0 || t.quality > 100 {
		t.quality = DefaultQuality
	}
	return t
}

// SetText sets the sample text for font previews.
func (t *Thumbnailer) SetText(text string) {
	if text == "" {
		text = DefaultText
	}
	t.text = text
}

// Generate creates a thumbnail of the given size for an asset. Fonts are
// recognized by their file extension.
func (t *Thumbnailer) Generate(key string, size image.Point) (*image.NRGBA, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, core.Error(core.EINVALID, "invalid thumbnail size %dx%d", size.X, size.Y)
	}
	if resources.IsFont(key) {
		return t.FontThumbnail(key, size)
	}
	return t.ImageThumbnail(key, size)
}

// ImageThumbnail scales an image asset to size. If the asset file exists but
// cannot be decoded, a gray placeholder is returned. Invalid or missing keys
// are an error.
func (t *Thumbnailer) ImageThumbnail(key string, size image.Point) (*image.NRGBA, error) {
	img, err := t.assets.Image(key)
	if err != nil {
		if _, perr := t.assets.Path(key); perr != nil { // invalid or missing key
			return nil, err
		}
		tracer().Infof("using placeholder for %s: %v", key, err)
		return imaging.New(size.X, size.Y, placeholderGray), nil
	}
	thumb := imaging.Resize(img, size.X, size.Y, imaging.Lanczos)
	paper := imaging.New(size.X, size.Y, color.White)
	return imaging.Overlay(paper, thumb, image.Point{}, 1.0), nil
}

// FontThumbnail typesets the sample text with a font asset, starting at the
// top-left corner of a white canvas of the given size.
func (t *Thumbnailer) FontThumbnail(key string, size image.Point) (*image.NRGBA, error) {
	face, err := t.assets.Font(key, 0)
	if err != nil {
		return nil, err
	}
	canvas := imaging.New(size.X, size.Y, color.White)
	setter := monospace.NewSetter(SampleSize, nil)
	chars, _ := setter.Set(strings.NewReader(t.text), 0, 0, glyphing.CharSpec{
		Face:  face,
		Color: &color.NRGBA{A: 255},
	})
	for _, c := range chars {
		if err := t.writer.Write(canvas, c, nil); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("typeset %d characters for %s", len(chars), key)
	return canvas, nil
}

// Encode writes a thumbnail as JPEG.
func (t *Thumbnailer) Encode(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(t.quality)); err != nil {
		return core.WrapError(err, core.EIO, "cannot encode thumbnail")
	}
	return nil
}

// Store saves a thumbnail for an asset key as JPEG into the cache folder
// "thumbnails/<label>" and returns the file path.
func (t *Thumbnailer) Store(label, key string, img image.Image) (string, error) {
	dir, err := resources.CacheDirPath("thumbnails", label)
	if err != nil {
		return "", err
	}
	name := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(key) + ".jpg"
	p := filepath.Join(dir, name)
	if err := imaging.Save(img, p, imaging.JPEGQuality(t.quality)); err != nil {
		return "", core.WrapError(err, core.EIO, "cannot store thumbnail %s", p)
	}
	tracer().Infof("stored thumbnail for %s in %s", key, p)
	return p, nil
}
