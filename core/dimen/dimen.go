// Package dimen converts document coordinates to pixel space.
//
// Documents give positions and sizes relative to the paper size (0.0 … 1.0).
// Renderers need integer pixel values on a canvas of a concrete size.
//
/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer (norbert@pillmayer.com)

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package dimen

import (
	"errors"
	"regexp"
	"strconv"
)

// PixelCoords maps relative document coordinates onto a canvas of
// Width × Height pixels.
//
// If Minimum is non-zero, every converted value is clipped to be at least
// Minimum. This is used for stroke widths, which must not vanish on small
// canvases.
type PixelCoords struct {
	Width, Height int
	Minimum       int
}

// U converts a relative horizontal coordinate to pixels, truncating toward zero.
func (pc PixelCoords) U(u float64) int {
	return pc.clip(int(float64(pc.Width) * u))
}

// V converts a relative vertical coordinate to pixels, truncating toward zero.
func (pc PixelCoords) V(v float64) int {
	return pc.clip(int(float64(pc.Height) * v))
}

// Coord converts a parsed coordinate along an axis of the given extent.
// Absolute coordinates are passed through unchanged (but clipped).
func (pc PixelCoords) Coord(c Coordinate, extent int) int {
	if c.Absolute {
		return pc.clip(int(c.Value))
	}
	return pc.clip(int(float64(extent) * c.Value))
}

func (pc PixelCoords) clip(v int) int {
	if pc.Minimum != 0 && v < pc.Minimum {
		return pc.Minimum
	}
	return v
}

// ---------------------------------------------------------------------------

// Coordinate is a position or extent as given in a document attribute.
type Coordinate struct {
	Value    float64 // fraction of the paper extent, or pixels if Absolute
	Absolute bool
}

var coordPattern = regexp.MustCompile(`^([+\-]?[0-9]*\.?[0-9]+(?:[eE][+\-]?[0-9]+)?)(%|px)?$`)

// ParseCoordinate parses a document coordinate.
//
// A bare number is a fraction of the paper extent ("0.25"), a percentage is
// converted to such a fraction ("25%"), and a "px" suffix denotes absolute
// pixels ("120px"). An empty string yields the zero coordinate.
func ParseCoordinate(s string) (Coordinate, error) {
	if s == "" {
		return Coordinate{}, nil
	}
	d := coordPattern.FindStringSubmatch(s)
	if len(d) < 2 {
		return Coordinate{}, errors.New("format error parsing coordinate")
	}
	n, err := strconv.ParseFloat(d[1], 64)
	if err != nil {
		return Coordinate{}, errors.New("format error parsing coordinate")
	}
	switch d[2] {
	case "%":
		return Coordinate{Value: n / 100}, nil
	case "px":
		return Coordinate{Value: n, Absolute: true}, nil
	}
	return Coordinate{Value: n}, nil
}
