// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package points

import (
	"gonum.org/v1/gonum/stat"
)

// MarkOutliers flags points whose coordinate deviates by more than zmax
// standard deviations from the mean on any axis, returning the number
// flagged. It is used for datasets without an explicit outlier column.
// Already-set outlier flags are preserved.
func MarkOutliers(pts []Point, zmax float64) int {
	if len(pts) < 2 {
		return 0
	}
	coords := func(pt *Point) [3]float64 {
		return [3]float64{float64(pt.Pos.X), float64(pt.Pos.Y), float64(pt.Pos.Z)}
	}
	axis := make([]float64, len(pts))
	var mean, sd [3]float64
	for a := 0; a < 3; a++ {
		for i := range pts {
			axis[i] = coords(&pts[i])[a]
		}
		mean[a], sd[a] = stat.MeanStdDev(axis, nil)
	}
	n := 0
	for i := range pts {
		pt := &pts[i]
		if pt.Outlier {
			continue
		}
		c := coords(pt)
		for a := 0; a < 3; a++ {
			if sd[a] == 0 {
				continue
			}
			z := (c[a] - mean[a]) / sd[a]
			if z > zmax || z < -zmax {
				pt.Outlier = true
				n++
				break
			}
		}
	}
	return n
}
