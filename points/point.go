// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package points defines the multi-omics data model for the viewer:
// individual observations with a 3D position, a categorical family,
// an outlier flag, and opaque source metadata, plus the tabular point
// sources (CSV / TSV / SQLite) they are loaded from.
package points

import (
	"cogentcore.org/core/math32"
)

// Point is one data observation. It is immutable once constructed from
// source data and is owned by exactly one chunk.
type Point struct {

	// Pos is the world-space position of the point. The viewer scale
	// factor is applied during chunk building, so positions inside a
	// chunk are already scaled.
	Pos math32.Vector3

	// Family is the categorical group this point belongs to,
	// driving its color and diameter.
	Family string

	// Outlier marks the point for distinct outlier geometry and styling.
	Outlier bool

	// Meta holds all remaining source columns for this point,
	// opaque to the streaming core (displayed in tooltips only).
	Meta map[string]string
}

// Families selects a subset of family names. A nil Families selects
// every family ("all" in the configuration store).
type Families map[string]bool

// Has reports whether the given family is selected.
// The nil set selects everything.
func (f Families) Has(family string) bool {
	return f == nil || f[family]
}

// MakeFamilies returns the selection corresponding to the given names,
// with the single name "all" (or an empty list) meaning all families.
func MakeFamilies(names []string) Families {
	if len(names) == 0 || (len(names) == 1 && names[0] == "all") {
		return nil
	}
	f := make(Families, len(names))
	for _, nm := range names {
		f[nm] = true
	}
	return f
}
