/*
Package colors parses the color notations used in document attributes.

Colors are plain straight-alpha RGBA values; there is no color management.
An empty attribute means "no color", which the glyph engine interprets as
"do not fill" resp. "do not outline".

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package colors

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/npillmayer/belle/core"
	"golang.org/x/image/colornames"
)

// InvalidColorError is returned for color input which is neither a hex
// notation nor a known color name.
type InvalidColorError struct {
	Input string
	Err   error
}

func (e *InvalidColorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid color %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("invalid color %q", e.Input)
}

func (e *InvalidColorError) Unwrap() error { return e.Err }

// ErrorCode implements core.AppError.
func (e *InvalidColorError) ErrorCode() int { return core.EINVALID }

// UserMessage implements core.AppError.
func (e *InvalidColorError) UserMessage() string {
	return fmt.Sprintf("input does not look like an HTML color code (%s)", e.Input)
}

var _ core.AppError = &InvalidColorError{}

// ParseHTML parses an HTML color code.
//
// Accepted are #RRGGBB (alpha 255), #RGB, #RRGGBBAA and the SVG/CSS color
// names. An empty or blank string yields nil without an error.
func ParseHTML(s string) (*color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return &color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
		}
		return nil, &InvalidColorError{Input: s}
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return nil, &InvalidColorError{Input: s}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, &InvalidColorError{Input: s, Err: err}
	}
	return &color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// MustParseHTML is like ParseHTML but panics on malformed input.
// Intended for constants in tests and defaults.
func MustParseHTML(s string) *color.NRGBA {
	c, err := ParseHTML(s)
	if err != nil {
		panic(err)
	}
	return c
}
