package document

import (
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/npillmayer/belle/core"
	"github.com/npillmayer/belle/core/dimen"
	"github.com/npillmayer/belle/core/locate/resources"
	"github.com/npillmayer/belle/engine/glyphing"
	"github.com/npillmayer/belle/engine/glyphing/raster"
	"github.com/npillmayer/belle/engine/picture"
)

// Renderer paints documents onto canvases.
type Renderer struct {
	assets *resources.DirStore
	writer *glyphing.Writer
}

// NewRenderer creates a renderer resolving assets from a store and loading
// font faces with faces (usually a font registry).
func NewRenderer(assets *resources.DirStore, faces raster.FaceLoader) *Renderer {
	return &Renderer{
		assets: assets,
		writer: glyphing.NewWriter(faces),
	}
}

// Render paints a document onto a fresh white canvas of the document's paper
// size.
//
// Elements which fail to render (e.g., because of a missing font) are
// reported to the trace and skipped. The number of skipped elements is
// returned along with the canvas.
func (r *Renderer) Render(doc *Document) (*image.NRGBA, int, error) {
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, 0, core.Error(core.EINVALID, "invalid paper size %dx%d", doc.Width, doc.Height)
	}
	canvas := imaging.New(doc.Width, doc.Height, color.White)
	promises := make([][]resources.ImagePromise, len(doc.Layers))
	for i, layer := range doc.Layers { // start loading all images
		for _, img := range layer.Images {
			promises[i] = append(promises[i], r.assets.ResolveImage(img.Src))
		}
	}
	skipped := 0
	pc := dimen.PixelCoords{Width: doc.Width, Height: doc.Height}
	for i, layer := range doc.Layers {
		for j, img := range layer.Images {
			src, err := promises[i][j].Image()
			if err == nil {
				err = picture.Write(canvas, picture.Img{
					Src:      src,
					X:        pc.Coord(img.X, doc.Width),
					Y:        pc.Coord(img.Y, doc.Height),
					Width:    pc.Coord(img.Width, doc.Width),
					Height:   pc.Coord(img.Height, doc.Height),
					Rotation: img.Rotation,
				})
			}
			if err != nil {
				tracer().Errorf("layer %d: skipping image %s: %v", i, img.Src, err)
				skipped++
			}
		}
		for _, ch := range layer.Chars {
			if err := r.renderChar(canvas, doc, ch); err != nil {
				tracer().Errorf("layer %d: skipping character %q: %v", i, ch.Text, err)
				skipped++
			}
		}
	}
	return canvas, skipped, nil
}

func (r *Renderer) renderChar(canvas *image.NRGBA, doc *Document, ch Char) error {
	if ch.Text == "" {
		return core.Error(core.EINVALID, "empty character")
	}
	face, err := r.assets.Font(ch.Face, ch.Index)
	if err != nil {
		return err
	}
	spec := CharSpec(ch, doc)
	spec.Face = face
	return r.writer.Write(canvas, glyphing.NewCharacter(spec), nil)
}

// CharSpec converts a character element to a rendering specification in the
// pixel space of doc. The font face is left unresolved.
func CharSpec(ch Char, doc *Document) glyphing.CharSpec {
	pc := dimen.PixelCoords{Width: doc.Width, Height: doc.Height}
	spec := glyphing.CharSpec{
		Char:     ch.Rune(),
		X:        float64(pc.Coord(ch.X, doc.Width)),
		Y:        float64(pc.Coord(ch.Y, doc.Height)),
		Width:    float64(pc.Coord(ch.Width, doc.Width)),
		Height:   float64(pc.Coord(ch.Height, doc.Height)),
		Rotation: ch.Rotation,
		Color:    ch.Color,
		Tate:     ch.Tate,
		Pivot:    ch.Pivot,
	}
	if ch.OutlineColor != nil {
		stroke := dimen.PixelCoords{Width: doc.Width, Height: doc.Height, Minimum: 1}
		spec.OutlineColor = ch.OutlineColor
		spec.OutlineWidth = float64(stroke.Coord(ch.OutlineEdge, doc.Width))
	}
	return spec
}

// EncodeJPEG writes a rendered canvas as JPEG. A quality of 0 selects the
// default quality.
func EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = 75
	}
	if err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return core.WrapError(err, core.EIO, "cannot write JPEG output")
	}
	return nil
}
