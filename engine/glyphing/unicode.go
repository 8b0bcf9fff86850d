package glyphing

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/runenames"
	"golang.org/x/text/width"
)

// UnicodeDB provides the Unicode character properties the writing-direction
// policy is based on. Clients may substitute their own implementation, e.g.
// for synthetic code-points in tests.
type UnicodeDB interface {
	Name(r rune) string           // Unicode character name, e.g. "LEFT CORNER BRACKET"
	Category(r rune) string       // two-letter general category, e.g. "Ps"
	EastAsianWidth(r rune) string // one of "W", "F", "A", "Na", "H", "N"
}

// DefaultUnicodeDB is backed by golang.org/x/text and the standard library's
// range tables.
var DefaultUnicodeDB UnicodeDB = stdUnicodeDB{}

type stdUnicodeDB struct{}

func (stdUnicodeDB) Name(r rune) string {
	name := runenames.Name(r)
	if strings.HasPrefix(name, "<") {
		if strings.HasPrefix(name, "<CJK Ideograph") {
			return fmt.Sprintf("CJK UNIFIED IDEOGRAPH-%04X", r)
		}
		return ""
	}
	return name
}

// generalCategories lists the normative two-letter general categories.
var generalCategories = []string{
	"Cc", "Cf", "Co", "Cs",
	"Ll", "Lm", "Lo", "Lt", "Lu",
	"Mc", "Me", "Mn",
	"Nd", "Nl", "No",
	"Pc", "Pd", "Pe", "Pf", "Pi", "Po", "Ps",
	"Sc", "Sk", "Sm", "So",
	"Zl", "Zp", "Zs",
}

func (stdUnicodeDB) Category(r rune) string {
	for _, c := range generalCategories {
		if unicode.Is(unicode.Categories[c], r) {
			return c
		}
	}
	return "Cn"
}

func (stdUnicodeDB) EastAsianWidth(r rune) string {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide:
		return "W"
	case width.EastAsianFullwidth:
		return "F"
	case width.EastAsianAmbiguous:
		return "A"
	case width.EastAsianNarrow:
		return "Na"
	case width.EastAsianHalfwidth:
		return "H"
	}
	return "N"
}
