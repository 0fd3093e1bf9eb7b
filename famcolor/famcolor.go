// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package famcolor derives deterministic display colors for point
// families that have no explicitly configured color, so a family is
// rendered in the same pseudo-random color on every run and machine.
package famcolor

import (
	"hash/crc32"
	"image/color"
)

// Per-digit shifts applied before reinterpreting the octal digits as
// hexadecimal. Light mode keeps every digit in the dark half of the hex
// range (0..7); dark mode moves them into the bright half (8..f).
const (
	LightShift = 0
	DarkShift  = 8
)

// Derive returns the color for the given family name. A CRC-32 (IEEE)
// checksum of the name is reduced to six base-8 digits (18 bits), each
// digit is shifted by the mode's fixed amount, and the result is read
// back as six hexadecimal digits forming a 24-bit RGB value. Alpha is
// always opaque.
func Derive(family string, dark bool) color.RGBA {
	sum := crc32.ChecksumIEEE([]byte(family))
	oct := sum % 0o1000000 // six octal digits
	shift := uint32(LightShift)
	if dark {
		shift = DarkShift
	}
	var rgb uint32
	for i := 0; i < 6; i++ {
		digit := (oct>>(3*i))&0o7 + shift
		rgb |= digit << (4 * i)
	}
	return color.RGBA{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
		A: 255,
	}
}
