// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunk

import (
	"math/rand"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"

	"github.com/asishallab-group/Tensor-Space-Vis/points"
)

// fakeGeo records allocations so tests can inspect packed buffers and
// verify that live geometry matches the active set.
type fakeGeo struct {
	allocs []*fakeHandle
	live   int
}

type fakeHandle struct {
	geo        *fakeGeo
	transforms math32.ArrayF32
	colors     math32.ArrayF32
	disposed   int
}

func (g *fakeGeo) Alloc(transforms, colors math32.ArrayF32) Handle {
	h := &fakeHandle{geo: g, transforms: transforms, colors: colors}
	g.allocs = append(g.allocs, h)
	g.live++
	return h
}

func (h *fakeHandle) Dispose() {
	h.disposed++
	h.geo.live--
}

type fakeStyles struct{}

func (fakeStyles) Diameter(family string, outlier bool) float32 {
	if outlier {
		return 0.5
	}
	return 0.25
}

func (fakeStyles) Color(family string, outlier bool) math32.Vector4 {
	if outlier {
		return math32.Vec4(1, 0, 0, 1)
	}
	return math32.Vec4(0, 1, 0, 1)
}

func newTestWorld(p Params) (*World, *fakeGeo) {
	geo := &fakeGeo{}
	return NewWorld(p, geo, fakeStyles{}), geo
}

func pt(x, y, z float32, family string, outlier bool) points.Point {
	return points.Point{Pos: math32.Vec3(x, y, z), Family: family, Outlier: outlier}
}

func TestCentroidOf(t *testing.T) {
	assert.Equal(t, Key{0, 0, 0}, CentroidOf(math32.Vec3(4, 4, 4), 10))
	assert.Equal(t, Key{10, 0, -10}, CentroidOf(math32.Vec3(11, -4.9, -5.1), 10))
	assert.Equal(t, Key{0, 0, 0}, CentroidOf(math32.Vec3(-4.9, 4.9, 0), 10))

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		pos := math32.Vec3(rng.Float32()*200-100, rng.Float32()*200-100, rng.Float32()*200-100)
		d := float32(1 + rng.Intn(20))
		c := CentroidOf(pos, d)
		// idempotent: the centroid of a centroid is itself
		assert.Equal(t, c, CentroidOf(c.Vector3(), d))
		// each coordinate is an integer multiple of d
		for a := 0; a < 3; a++ {
			m := c.axis(a) / d
			assert.Equal(t, math32.Floor(m), m)
		}
	}
}

func TestBuildPartition(t *testing.T) {
	w, _ := newTestWorld(Params{Diameter: 10, LoadRange: 1})
	pts := []points.Point{
		pt(4, 4, 4, "a", false),
		pt(-4, 0, 0, "a", false),
		pt(11, 0, 0, "b", true),
		pt(26, 0, 0, "b", false),
		pt(4, 4, 4.5, "c", false),
	}
	w.Build(pts, 1, math32.Vec3(0, 0, 0))

	total := 0
	for key, ch := range w.Chunks {
		for _, p := range ch.Points {
			assert.Equal(t, key, CentroidOf(p.Pos, w.Diameter))
			total++
		}
	}
	assert.Equal(t, len(pts), total)

	origin := w.Chunks[Key{0, 0, 0}]
	if assert.NotNil(t, origin) {
		assert.Equal(t, 3, len(origin.Points))
		assert.Equal(t, 2, origin.FamilyCounts["a"])
		assert.Equal(t, 1, origin.FamilyCounts["c"])
		assert.Equal(t, 0, origin.Outliers)
		// source order is preserved within the chunk
		assert.Equal(t, "a", origin.Points[0].Family)
		assert.Equal(t, "a", origin.Points[1].Family)
		assert.Equal(t, "c", origin.Points[2].Family)
	}

	// sight = 15: (0,0,0) and (10,0,0) are in range, (30,0,0) is not
	assert.Contains(t, w.Active, Key{0, 0, 0})
	assert.Contains(t, w.Active, Key{10, 0, 0})
	assert.NotContains(t, w.Active, Key{30, 0, 0})
	assert.True(t, w.Chunks[Key{0, 0, 0}].Loaded())
	assert.False(t, w.Chunks[Key{30, 0, 0}].Loaded())
}

func TestBuildScale(t *testing.T) {
	w, _ := newTestWorld(Params{Diameter: 10, LoadRange: 1})
	w.Build([]points.Point{pt(2, 2, 2, "a", false)}, 10, math32.Vec3(0, 0, 0))
	// scaled to (20,20,20), bucketed into chunk (20,20,20)
	assert.Contains(t, w.Chunks, Key{20, 20, 20})
	assert.Equal(t, math32.Vec3(20, 20, 20), w.Chunks[Key{20, 20, 20}].Points[0].Pos)
}

func TestBufferPacking(t *testing.T) {
	w, geo := newTestWorld(Params{Diameter: 10, LoadRange: 1})
	pts := []points.Point{
		pt(1, 0, 0, "a", false),
		pt(2, 0, 0, "a", true),
		pt(3, 0, 0, "b", false),
		pt(4, 0, 0, "a", false),
	}
	w.Build(pts, 1, math32.Vec3(0, 0, 0))

	// one chunk, 3 normal + 1 outlier: two allocations
	assert.Equal(t, 2, len(geo.allocs))
	normal, outlier := geo.allocs[0], geo.allocs[1]
	assert.Equal(t, 16*3, len(normal.transforms))
	assert.Equal(t, 4*3, len(normal.colors))
	assert.Equal(t, 16*1, len(outlier.transforms))
	assert.Equal(t, 4*1, len(outlier.colors))

	// first normal instance: diagonal scale, translation in last row, 1 at the end
	tf := normal.transforms
	assert.Equal(t, float32(0.25), tf[0])
	assert.Equal(t, float32(0.25), tf[5])
	assert.Equal(t, float32(0.25), tf[10])
	assert.Equal(t, float32(1), tf[12])
	assert.Equal(t, float32(0), tf[13])
	assert.Equal(t, float32(0), tf[14])
	assert.Equal(t, float32(1), tf[15])
	for _, off := range []int{1, 2, 3, 4, 6, 7, 8, 9, 11} {
		assert.Equal(t, float32(0), tf[off])
	}
	// densely packed: second normal slot is the point at x=3
	assert.Equal(t, float32(3), tf[16+12])
	// third normal slot is the point at x=4
	assert.Equal(t, float32(4), tf[32+12])

	// outlier instance uses the outlier diameter and translation
	assert.Equal(t, float32(0.5), outlier.transforms[0])
	assert.Equal(t, float32(2), outlier.transforms[12])

	// colors per category
	assert.Equal(t, math32.ArrayF32{0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1}, normal.colors)
	assert.Equal(t, math32.ArrayF32{1, 0, 0, 1}, outlier.colors)
}

func TestSetChunkStateIdempotent(t *testing.T) {
	w, geo := newTestWorld(Params{Diameter: 10, LoadRange: 1})
	w.Build([]points.Point{
		pt(1, 0, 0, "a", false),
		pt(2, 0, 0, "a", true),
	}, 1, math32.Vec3(0, 0, 0))
	ch := w.Chunks[Key{0, 0, 0}]
	assert.True(t, ch.Loaded())
	assert.Equal(t, 2, geo.live)

	// re-activating disposes the old handles before allocating new ones
	w.SetChunkState(ch, true)
	assert.True(t, ch.Loaded())
	assert.Equal(t, 2, geo.live)
	assert.Equal(t, 1, geo.allocs[0].disposed)
	assert.Equal(t, 1, geo.allocs[1].disposed)

	// deactivating twice leaves both handles nil both times
	w.SetChunkState(ch, false)
	assert.False(t, ch.Loaded())
	assert.Equal(t, 0, geo.live)
	w.SetChunkState(ch, false)
	assert.False(t, ch.Loaded())
	assert.Equal(t, 0, geo.live)
	for _, h := range geo.allocs {
		assert.Equal(t, 1, h.disposed)
	}
}

func TestZeroCountCategory(t *testing.T) {
	w, geo := newTestWorld(Params{Diameter: 10, LoadRange: 1})
	w.Build([]points.Point{pt(1, 0, 0, "a", false)}, 1, math32.Vec3(0, 0, 0))
	// no outliers: only the normal-category handle is allocated
	assert.Equal(t, 1, len(geo.allocs))
	assert.Equal(t, 1, geo.live)

	ch := w.Chunks[Key{0, 0, 0}]
	assert.NotNil(t, ch.normal)
	assert.Nil(t, ch.outlier)
}
