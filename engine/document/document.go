/*
Package document reads and renders typeset documents.

A document is an XML description of layers of images and characters:

    <document width="600" height="800">
      <layer>
        <image src="bg.png" x="0.5" y="0.5" width="1" height="1"/>
        <char x="0.9" y="0.1" width="0.05" height="0.05" face="fonts/mincho.ttc"
              index="1" color="#000000" outline-color="#ffffff" outline-edge="0.002"
              tate="tate">字</char>
      </layer>
    </document>

Paper width and height are given in pixels. All other coordinates and sizes
are relative to the paper extent, unless given as percentages ("50%") or
pixels ("120px"). Layers are painted in document order, and within a layer
all images are painted before all characters.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package document

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/antchfx/xpath"
	"github.com/npillmayer/belle/core"
	"github.com/npillmayer/belle/core/colors"
	"github.com/npillmayer/belle/core/dimen"
	"github.com/npillmayer/belle/engine/glyphing"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
)

// tracer traces with key 'belle.document'.
func tracer() tracing.Trace {
	return tracing.Select("belle.document")
}

// Document is a parsed document.
type Document struct {
	Width, Height int // paper size in pixels
	Layers        []Layer
}

// Layer is a group of images and characters.
type Layer struct {
	Images []Image
	Chars  []Char
}

// Image is an image element of a layer.
type Image struct {
	Src           string // asset key
	X, Y          dimen.Coordinate
	Width, Height dimen.Coordinate
	Rotation      float64
}

// Char is a character element of a layer.
type Char struct {
	Text          string // one grapheme
	X, Y          dimen.Coordinate
	Width, Height dimen.Coordinate
	Rotation      float64
	Face          string // asset key of a font; empty for the fallback font
	Index         int    // face index within a font collection
	Color         *color.NRGBA
	OutlineColor  *color.NRGBA
	OutlineEdge   dimen.Coordinate
	Tate          bool
	Pivot         glyphing.Pivot
}

// Rune returns the code-point to render for a character element.
func (c Char) Rune() rune {
	r, _ := utf8.DecodeRuneInString(c.Text)
	return r
}

var (
	documentPath = xpath.MustCompile("/document")
	layerPath    = xpath.MustCompile("layer")
	imagePath    = xpath.MustCompile("image")
	charPath     = xpath.MustCompile("char")
)

// Parse reads a document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := parseTree(r)
	if err != nil {
		return nil, err
	}
	docs := selectNodes(root, documentPath)
	if len(docs) != 1 {
		return nil, core.Error(core.EINVALID, "document element missing")
	}
	p := &parser{graphemes: newGraphemeSplitter()}
	doc := &Document{}
	doc.Width = p.pixels(docs[0], "width")
	doc.Height = p.pixels(docs[0], "height")
	for _, l := range selectNodes(docs[0], layerPath) {
		layer := Layer{}
		for _, n := range selectNodes(l, imagePath) {
			layer.Images = append(layer.Images, p.image(n))
		}
		for _, n := range selectNodes(l, charPath) {
			layer.Chars = append(layer.Chars, p.char(n))
		}
		doc.Layers = append(doc.Layers, layer)
	}
	if p.err != nil {
		return nil, p.err
	}
	tracer().Debugf("document %dx%d with %d layers", doc.Width, doc.Height, len(doc.Layers))
	return doc, nil
}

// parser keeps the first error encountered.
type parser struct {
	graphemes *segment.Segmenter
	err       error
}

func (p *parser) fail(n *node, attr string, format string, args ...interface{}) {
	if p.err == nil {
		msg := fmt.Sprintf(format, args...)
		p.err = core.Error(core.EINVALID, "<%s %s=…>: %s", n.name, attr, msg)
	}
}

func (p *parser) pixels(n *node, attr string) int {
	v, ok := n.attr(attr)
	if !ok {
		p.fail(n, attr, "attribute required")
		return 0
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || i <= 0 {
		p.fail(n, attr, "positive number of pixels expected, have %q", v)
		return 0
	}
	return i
}

func (p *parser) coordinate(n *node, attr string) dimen.Coordinate {
	v, _ := n.attr(attr)
	c, err := dimen.ParseCoordinate(strings.TrimSpace(v))
	if err != nil {
		p.fail(n, attr, "%v: %q", err, v)
	}
	return c
}

func (p *parser) number(n *node, attr string) float64 {
	v, ok := n.attr(attr)
	if !ok || strings.TrimSpace(v) == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		p.fail(n, attr, "number expected, have %q", v)
		return 0
	}
	return f
}

func (p *parser) color(n *node, attr string) *color.NRGBA {
	v, _ := n.attr(attr)
	c, err := colors.ParseHTML(v)
	if err != nil {
		p.fail(n, attr, "%v", err)
	}
	return c
}

func (p *parser) image(n *node) Image {
	src, _ := n.attr("src")
	if src == "" {
		p.fail(n, "src", "attribute required")
	}
	return Image{
		Src:      src,
		X:        p.coordinate(n, "x"),
		Y:        p.coordinate(n, "y"),
		Width:    p.coordinate(n, "width"),
		Height:   p.coordinate(n, "height"),
		Rotation: p.number(n, "rotation"),
	}
}

func (p *parser) char(n *node) Char {
	c := Char{
		X:            p.coordinate(n, "x"),
		Y:            p.coordinate(n, "y"),
		Width:        p.coordinate(n, "width"),
		Height:       p.coordinate(n, "height"),
		Rotation:     p.number(n, "rotation"),
		Index:        int(p.number(n, "index")),
		Color:        p.color(n, "color"),
		OutlineColor: p.color(n, "outline-color"),
		OutlineEdge:  p.coordinate(n, "outline-edge"),
	}
	c.Face, _ = n.attr("face")
	if v, ok := n.attr("tate"); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "false", "no", "0":
		default:
			c.Tate = true
		}
	}
	pivot, _ := n.attr("pivot")
	var err error
	if c.Pivot, err = glyphing.ParsePivot(pivot); err != nil {
		p.fail(n, "pivot", "%v", core.UserMessage(err))
	}
	text := strings.TrimSpace(n.innerText())
	var count int
	c.Text, count = firstGrapheme(p.graphemes, text)
	if count > 1 {
		tracer().Infof("<char> holds %d graphemes, using %q only", count, c.Text)
	}
	return c
}

// --- Graphemes -------------------------------------------------------------

func newGraphemeSplitter() *segment.Segmenter {
	grapheme.SetupGraphemeClasses()
	return segment.NewSegmenter(grapheme.NewBreaker(1))
}

// firstGrapheme returns the first grapheme of text and the number of
// graphemes in text.
func firstGrapheme(seg *segment.Segmenter, text string) (string, int) {
	seg.Init(strings.NewReader(text))
	first, count := "", 0
	for seg.Next() {
		if count == 0 {
			first = string(seg.Bytes())
		}
		count++
	}
	return first, count
}
