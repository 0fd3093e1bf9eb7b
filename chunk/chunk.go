// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chunk implements spatial chunk streaming for the point-cloud
// viewer: the full point set is partitioned into a uniform 3D grid of
// cubic chunks, and only the chunks within sight range of the moving
// viewpoint hold live instanced geometry. Per-frame updates sweep just
// the grid face perpendicular to the direction of travel, so a frame
// costs O(range²) per axis crossed instead of O(range³) for a rescan.
package chunk

import (
	"cogentcore.org/core/math32"

	"github.com/asishallab-group/Tensor-Space-Vis/points"
)

// Key identifies a chunk by the centroid of its grid cell. Each
// coordinate is a multiple of the chunk diameter, and two keys are the
// same chunk iff all three coordinates are numerically equal.
type Key struct {
	X, Y, Z float32
}

// CentroidOf returns the key of the cubic cell of the given edge length
// (diameter) containing pos. Cells are aligned so boundaries fall at
// half-diameter offsets from the origin, making each output coordinate
// floor((a + diameter/2) / diameter) * diameter.
func CentroidOf(pos math32.Vector3, diameter float32) Key {
	return Key{
		X: snap(pos.X, diameter),
		Y: snap(pos.Y, diameter),
		Z: snap(pos.Z, diameter),
	}
}

func snap(a, diameter float32) float32 {
	return math32.Floor((a+diameter/2)/diameter) * diameter
}

// Vector3 returns the key's centroid as a vector.
func (k Key) Vector3() math32.Vector3 {
	return math32.Vec3(k.X, k.Y, k.Z)
}

// axis returns the coordinate on the given axis (0 = X, 1 = Y, 2 = Z).
func (k Key) axis(a int) float32 {
	switch a {
	case 0:
		return k.X
	case 1:
		return k.Y
	}
	return k.Z
}

// withAxis returns a copy of the key with the given axis coordinate
// replaced.
func (k Key) withAxis(a int, v float32) Key {
	switch a {
	case 0:
		k.X = v
	case 1:
		k.Y = v
	default:
		k.Z = v
	}
	return k
}

// Chunk is one occupied grid cell: the points that fall into it, their
// per-family and outlier tallies, and the live geometry handles while
// the chunk is in sight range. Chunks are created lazily when the first
// point lands in their cell and are kept in the chunk map for the
// lifetime of the partition; going out of range only releases geometry.
type Chunk struct {

	// Points are the member points, in source order. Order matters:
	// instance buffer slots are assigned positionally.
	Points []points.Point

	// FamilyCounts is the number of member points per family.
	FamilyCounts map[string]int

	// Outliers is the number of member points flagged as outliers.
	Outliers int

	// normal and outlier are the live geometry handles for the two point
	// categories; both are nil while the chunk is out of sight range,
	// and a category with no members never allocates one.
	normal, outlier Handle
}

// NewChunk returns an empty chunk.
func NewChunk() *Chunk {
	return &Chunk{FamilyCounts: make(map[string]int)}
}

// Add appends a point to the chunk, updating the family and outlier
// tallies.
func (ch *Chunk) Add(pt points.Point) {
	ch.Points = append(ch.Points, pt)
	ch.FamilyCounts[pt.Family]++
	if pt.Outlier {
		ch.Outliers++
	}
}

// Loaded reports whether the chunk currently holds live geometry.
func (ch *Chunk) Loaded() bool {
	return ch.normal != nil || ch.outlier != nil
}

// dispose releases both geometry handles. Nil handles are a no-op, so
// dispose is idempotent.
func (ch *Chunk) dispose() {
	if ch.normal != nil {
		ch.normal.Dispose()
		ch.normal = nil
	}
	if ch.outlier != nil {
		ch.outlier.Dispose()
		ch.outlier = nil
	}
}
