package colors

import (
	"errors"
	"image/color"
	"testing"

	"github.com/npillmayer/belle/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	for in, expected := range map[string]color.NRGBA{
		"#ff0000":   {R: 255, A: 255},
		"#00Ff7f":   {G: 255, B: 127, A: 255},
		"#abc":      {R: 0xaa, G: 0xbb, B: 0xcc, A: 255},
		"#10203040": {R: 0x10, G: 0x20, B: 0x30, A: 0x40},
		" #000000 ": {A: 255},
	} {
		c, err := ParseHTML(in)
		require.NoError(t, err, in)
		require.NotNil(t, c, in)
		assert.Equal(t, expected, *c, in)
	}
}

func TestParseName(t *testing.T) {
	c, err := ParseHTML("Crimson")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 220, G: 20, B: 60, A: 255}, *c)
}

func TestParseEmpty(t *testing.T) {
	c, err := ParseHTML("  ")
	assert.NoError(t, err)
	assert.Nil(t, c)
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"#12", "#gg0000", "red-ish", "#1234567"} {
		c, err := ParseHTML(in)
		assert.Nil(t, c, in)
		var ice *InvalidColorError
		if assert.True(t, errors.As(err, &ice), in) {
			assert.Equal(t, core.EINVALID, core.Code(err))
		}
	}
}

func TestMustParse(t *testing.T) {
	assert.Equal(t, &color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}, MustParseHTML("#369"))
	assert.Panics(t, func() { MustParseHTML("#12") })
}
