package glyphing

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/npillmayer/belle/core"
	"github.com/npillmayer/belle/core/font"
)

// Pivot determines which point of a glyph is placed on a character's anchor.
type Pivot int

// Pivots. The zero value is PivotCenter.
const (
	PivotCenter  Pivot = iota // center of the glyph's bounding box
	PivotTopLeft              // top-left, baseline-relative origin of the glyph cell
)

func (p Pivot) String() string {
	if p == PivotTopLeft {
		return "top-left"
	}
	return "center"
}

// ParsePivot parses a pivot attribute. An empty string yields PivotCenter.
func ParsePivot(s string) (Pivot, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "center":
		return PivotCenter, nil
	case "top-left", "lefttop", "left-top":
		return PivotTopLeft, nil
	}
	return PivotCenter, core.Error(core.EINVALID, "unknown pivot %q", s)
}

// CharSpec collects everything a client specifies for rendering a character.
type CharSpec struct {
	Char          rune
	X, Y          float64      // anchor in destination pixel space
	Width, Height float64      // nominal box size; Height is the font size in pixels per em
	Rotation      float64      // in degrees, clockwise
	Face          font.FaceRef // font resource
	Color         *color.NRGBA // fill color; nil means "not filled"
	OutlineColor  *color.NRGBA // stroke color; nil means "not outlined"
	OutlineWidth  float64      // stroke half-width in pixels
	Tate          bool         // vertical writing mode
	Pivot         Pivot        // anchor semantics, defaults to PivotCenter
	Unicode       UnicodeDB    // character properties; nil for DefaultUnicodeDB
}

// Character is a single glyph's rendering request. It is created with
// NewCharacter and immutable thereafter.
type Character struct {
	spec CharSpec
}

// NewCharacter creates a character from a specification.
//
// Non-positive outline widths switch outlining off. If the writing-direction
// policy for the character asks for rotation, the rotation is incremented by
// 90 degrees; all further geometry is based on this final rotation.
func NewCharacter(spec CharSpec) *Character {
	if !(spec.OutlineWidth > 0) {
		spec.OutlineWidth = 0
	}
	if spec.Unicode == nil {
		spec.Unicode = DefaultUnicodeDB
	}
	c := &Character{spec: spec}
	if c.Policy().Rotate {
		c.spec.Rotation += 90
	}
	return c
}

// Char returns the code-point of c.
func (c *Character) Char() rune { return c.spec.Char }

// Anchor returns the anchor position of c in destination pixel space.
func (c *Character) Anchor() (float64, float64) { return c.spec.X, c.spec.Y }

// Size returns the nominal box size of c.
func (c *Character) Size() (float64, float64) { return c.spec.Width, c.spec.Height }

// GlyphSize is the font size in pixels per em, i.e. the nominal height.
func (c *Character) GlyphSize() float64 { return c.spec.Height }

// Rotation returns the final rotation of c in degrees, including a policy
// induced rotation.
func (c *Character) Rotation() float64 { return c.spec.Rotation }

// Face returns the font face reference of c.
func (c *Character) Face() font.FaceRef { return c.spec.Face }

// Color returns the fill color, or nil.
func (c *Character) Color() *color.NRGBA { return c.spec.Color }

// OutlineColor returns the stroke color, or nil.
func (c *Character) OutlineColor() *color.NRGBA { return c.spec.OutlineColor }

// OutlineWidth returns the stroke half-width; it is 0 if outlining is off.
func (c *Character) OutlineWidth() float64 { return c.spec.OutlineWidth }

// Tate is true for characters in vertical writing mode.
func (c *Character) Tate() bool { return c.spec.Tate }

// Pivot returns the anchor semantics of c.
func (c *Character) Pivot() Pivot { return c.spec.Pivot }

// Mode returns the writing mode of c.
func (c *Character) Mode() WritingMode {
	if c.spec.Tate {
		return Vertical
	}
	return Horizontal
}

// IsFilled is true if c has a fill color.
func (c *Character) IsFilled() bool {
	return c.spec.Color != nil
}

// IsOutlined is true if c has an outline color and a positive outline width.
func (c *Character) IsOutlined() bool {
	return c.spec.OutlineColor != nil && c.spec.OutlineWidth > 0
}

// Policy evaluates the writing-direction rules for c. It is computed from the
// original code-point and the writing mode only.
func (c *Character) Policy() Policy {
	return PolicyFor(c.Mode(), c.spec.Char, c.spec.Unicode)
}

func (c *Character) String() string {
	return fmt.Sprintf("char(%q@%.1f,%.1f %s r=%.1f)", c.spec.Char, c.spec.X, c.spec.Y,
		c.Mode(), c.spec.Rotation)
}
