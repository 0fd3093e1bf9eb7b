// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

import (
	"image/color"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"

	"github.com/asishallab-group/Tensor-Space-Vis/famcolor"
)

// DefaultDiameter is the rendered point diameter when no per-family
// diameter is configured.
const DefaultDiameter = 0.25

// Styles resolves per-family display parameters from a store, in the
// form the chunk geometry loader packs into instance buffers. Lookup
// precedence is mode-specific over general: the outlier key first for
// outliers, then the family's normal key, then the fallback (default
// diameter, or the deterministically derived family color).
type Styles struct {
	Store *Store
}

// Diameter returns the rendered diameter for a member of the family.
func (s *Styles) Diameter(family string, outlier bool) float32 {
	if outlier {
		if d := s.Store.GetFloat(OutlierDiameterKey(family)); d > 0 {
			return float32(d)
		}
	}
	if d := s.Store.GetFloat(DiameterKey(family)); d > 0 {
		return float32(d)
	}
	return DefaultDiameter
}

// Color returns the RGBA render color (channels in 0..1) for a member
// of the family. An outlier with no configured outlier color falls
// back to the family's normal color; a family with no configured color
// gets a deterministic derived one appropriate for the current scheme.
func (s *Styles) Color(family string, outlier bool) math32.Vector4 {
	if outlier {
		if c, ok := s.hex(OutlierColorKey(family)); ok {
			return rgbaToVec4(c)
		}
	}
	if c, ok := s.hex(ColorKey(family)); ok {
		return rgbaToVec4(c)
	}
	return rgbaToVec4(famcolor.Derive(family, s.Store.GetBool(DarkMode)))
}

// hex reads a configured hex color, reporting whether one is set.
func (s *Styles) hex(key string) (color.RGBA, bool) {
	str := s.Store.GetString(key)
	if str == "" {
		return color.RGBA{}, false
	}
	c, err := colors.FromHex(str)
	if err != nil {
		return color.RGBA{}, false
	}
	return c, true
}

func rgbaToVec4(c color.RGBA) math32.Vector4 {
	return math32.Vec4(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
}
