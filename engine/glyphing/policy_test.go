package glyphing

import (
	"testing"
	"unicode"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

// props are synthetic Unicode properties for a code-point.
type props struct {
	name, category, eaw string
}

// stubDB serves synthetic Unicode properties.
type stubDB map[rune]props

func (db stubDB) Name(r rune) string           { return db[r].name }
func (db stubDB) Category(r rune) string       { return db[r].category }
func (db stubDB) EastAsianWidth(r rune) string { return db[r].eaw }

func TestHorizontalPolicyIsNeutral(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.glyph")
	defer teardown()
	//
	for _, r := range "Aa1＝ー…‥「（〜—ぁ漢。" {
		assert.Equal(t, Policy{}, PolicyFor(Horizontal, r, nil), "for %q", r)
	}
}

func TestVerticalPolicy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.glyph")
	defer teardown()
	//
	for _, tc := range []struct {
		r    rune
		want Policy
	}{
		{'＝', Policy{Rotate: true, Transpose: true, RealignToCenter: true}},
		{'ー', Policy{Rotate: true, Transpose: true, RealignToCenter: true}},
		{'…', Policy{Rotate: true, Transpose: true, RealignToCenter: true}},
		{'‥', Policy{Rotate: true, Transpose: true, RealignToCenter: true}},
		{'「', Policy{}},                      // LEFT CORNER BRACKET, W
		{'（', Policy{}},                      // FULLWIDTH LEFT PARENTHESIS, F
		{'〜', Policy{RealignToCenter: true}}, // WAVE DASH, W
		{'—', Policy{RealignToCenter: true}}, // EM DASH, A
		{'a', Policy{Rotate: true, Transpose: true}},
		{'-', Policy{Rotate: true, Transpose: true}}, // HYPHEN-MINUS, Na
		{'ｱ', Policy{Rotate: true, Transpose: true}}, // halfwidth katakana
	} {
		assert.Equal(t, tc.want, PolicyFor(Vertical, tc.r, nil), "for %q (%U)", tc.r, tc.r)
	}
}

func TestVerticalPolicyWithSyntheticCodepoints(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.glyph")
	defer teardown()
	//
	db := stubDB{
		0xE000: {"IDEOGRAPHIC LEFT BRACKET", "Ps", "W"},
		0xE001: {"KATAKANA LETTER SMALL TILDA", "Lo", "A"},
		0xE002: {"IDEOGRAPHIC NUMBER ZERO", "Nd", "F"},
		0xE003: {"FANCY DOT", "Po", "N"},
		0xE004: {"WIDE DASH OF IDEOGRAPHIC", "Pd", "W"},
		'＝':    {"NOT EVEN AN EQUALS SIGN", "Lu", "Na"},
	}
	assert.Equal(t, Policy{Transpose: true}, PolicyFor(Vertical, 0xE000, db),
		"ideographic punctuation is transposed without rotation")
	assert.Equal(t, Policy{Transpose: true, RealignToCenter: true}, PolicyFor(Vertical, 0xE001, db),
		"small kana are transposed without rotation")
	assert.Equal(t, Policy{Rotate: true, Transpose: true}, PolicyFor(Vertical, 0xE002, db))
	assert.Equal(t, Policy{Rotate: true, Transpose: true}, PolicyFor(Vertical, 0xE003, db),
		"neutral width always rotates")
	assert.Equal(t, Policy{Transpose: true, RealignToCenter: true}, PolicyFor(Vertical, 0xE004, db))
	assert.Equal(t, Policy{Rotate: true, Transpose: true, RealignToCenter: true},
		PolicyFor(Vertical, '＝', db), "override set wins over properties")
}

func TestPolicyProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.glyph")
	defer teardown()
	//
	for r := rune(0x20); r < 0x3100; r++ {
		p := PolicyFor(Vertical, r, nil)
		if p.Rotate && !p.Transpose {
			t.Fatalf("%U rotates without transposing", r)
		}
		if p != PolicyFor(Vertical, r, nil) {
			t.Fatalf("policy for %U not idempotent", r)
		}
	}
}

func TestDefaultUnicodeDB(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "belle.glyph")
	defer teardown()
	//
	db := DefaultUnicodeDB
	assert.Equal(t, "LEFT CORNER BRACKET", db.Name('「'))
	assert.Equal(t, "CJK UNIFIED IDEOGRAPH-6F22", db.Name('漢'))
	assert.Equal(t, "", db.Name(0x0007), "control characters have no name")
	assert.Equal(t, "Po", db.Category('。'))
	assert.Equal(t, "Ll", db.Category('a'))
	assert.Equal(t, "Lu", db.Category('A'))
	assert.Equal(t, "Lt", db.Category('\u01c5'))
	assert.Equal(t, "Lo", db.Category('漢'))
	assert.Equal(t, "Nd", db.Category('7'))
	for _, c := range generalCategories {
		assert.NotNil(t, unicode.Categories[c], c)
	}
	assert.Equal(t, "Ps", db.Category('「'))
	assert.Equal(t, "Cn", db.Category(0x0378))
	assert.Equal(t, "W", db.EastAsianWidth('漢'))
	assert.Equal(t, "F", db.EastAsianWidth('Ａ'))
	assert.Equal(t, "A", db.EastAsianWidth('…'))
	assert.Equal(t, "Na", db.EastAsianWidth('a'))
	assert.Equal(t, "H", db.EastAsianWidth('ｱ'))
	assert.Equal(t, "N", db.EastAsianWidth('©'))
}
