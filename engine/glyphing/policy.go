package glyphing

import (
	"regexp"
	"strings"
)

// WritingMode is the direction to typeset text in.
type WritingMode int

// Writing modes
const (
	Horizontal WritingMode = iota // yokogaki
	Vertical                      // tategaki
)

func (m WritingMode) String() string {
	if m == Vertical {
		return "tategaki"
	}
	return "yokogaki"
}

// Policy is the outcome of the writing-direction rules for a code-point.
type Policy struct {
	Rotate          bool // turn the glyph by 90° clockwise
	Transpose       bool // place the glyph with x and y swapped
	RealignToCenter bool // center a rotated glyph within the vertical line
}

// Code-points which are always rotated and centered in vertical mode.
const tateAlwaysRotate = "＝ー…‥"

var (
	keepUprightPattern = regexp.MustCompile(`BRACKET|PARENTHESIS|TILDA|DASH`)
	smallKanaPattern   = regexp.MustCompile(`(KATAKANA|HIRAGANA) LETTER SMALL`)
	realignPattern     = regexp.MustCompile(`TILDA|DASH`)
)

// PolicyFor evaluates the writing-direction rules for code-point r.
// If db is nil, DefaultUnicodeDB is used.
//
// In horizontal mode no glyph is ever rotated, transposed or realigned.
// The result depends on r and mode only.
func PolicyFor(mode WritingMode, r rune, db UnicodeDB) Policy {
	if mode != Vertical {
		return Policy{}
	}
	if db == nil {
		db = DefaultUnicodeDB
	}
	name := db.Name(r)
	p := Policy{Rotate: tateRotate(r, name, db.EastAsianWidth(r))}
	p.Transpose = p.Rotate || tateTranspose(name, db.Category(r))
	p.RealignToCenter = isAlwaysRotated(r) || realignPattern.MatchString(name)
	return p
}

func isAlwaysRotated(r rune) bool {
	return strings.ContainsRune(tateAlwaysRotate, r)
}

func tateRotate(r rune, name, eaw string) bool {
	if isAlwaysRotated(r) {
		return true
	}
	switch eaw {
	case "W", "F", "A":
		return !keepUprightPattern.MatchString(name)
	}
	return true
}

func tateTranspose(name, category string) bool {
	if smallKanaPattern.MatchString(name) {
		return true
	}
	return strings.Contains(name, "IDEOGRAPHIC") && strings.HasPrefix(category, "P")
}
