// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunk

import (
	"cogentcore.org/core/math32"

	"github.com/asishallab-group/Tensor-Space-Vis/points"
)

// Params are the streaming parameters. Changing either value
// invalidates the entire partition and requires a Reload.
type Params struct {

	// Diameter is the edge length of a chunk cube. Integer values keep
	// stepped centroid arithmetic exact in float32, so the incremental
	// streaming in [World.Tick] matches a brute-force recomputation;
	// fractional values still terminate but can misplace cells near
	// rounding boundaries. The settings layer only admits integers.
	Diameter float32

	// LoadRange is the number of chunks of margin kept loaded around
	// the viewpoint's own chunk on each axis.
	LoadRange int
}

// SightDistance is the maximum per-axis distance from the viewpoint's
// chunk centroid at which a chunk is kept active:
// (LoadRange + 0.5) * Diameter.
func (p Params) SightDistance() float32 {
	return (float32(p.LoadRange) + 0.5) * p.Diameter
}

// World owns the chunk partition of the point set and the set of
// chunks currently holding live geometry. All mutation happens
// synchronously on the render thread: Build or Reload for structural
// changes, Tick once per frame for incremental streaming.
type World struct {
	Params

	// Chunks maps cell centroids to their chunks. Chunks are created
	// lazily and kept for the lifetime of the partition even while
	// unloaded; only Reload discards the map.
	Chunks map[Key]*Chunk

	// Active is the set of keys currently holding live geometry.
	Active map[Key]struct{}

	// Geo allocates and releases the instanced geometry.
	Geo Geometry

	// Styles resolves per-family diameters and colors.
	Styles Styler

	// centroid is the viewpoint's grid cell as of the previous Tick.
	centroid Key
}

// NewWorld returns a world streaming through the given geometry engine
// with the given per-family styles.
func NewWorld(p Params, geo Geometry, styles Styler) *World {
	return &World{Params: p, Geo: geo, Styles: styles}
}

// Build partitions pts into chunks and loads the chunks initially
// within sight range of the viewpoint. Each point's coordinates are
// multiplied by scale before bucketing. Point order is preserved within
// each chunk. Runs in O(P) for P points.
func (w *World) Build(pts []points.Point, scale float32, viewpoint math32.Vector3) {
	w.Chunks = make(map[Key]*Chunk)
	w.Active = make(map[Key]struct{})
	w.centroid = CentroidOf(viewpoint, w.Diameter)
	sight := w.SightDistance()
	for _, pt := range pts {
		pt.Pos = pt.Pos.MulScalar(scale)
		key := CentroidOf(pt.Pos, w.Diameter)
		ch := w.Chunks[key]
		if ch == nil {
			ch = NewChunk()
			w.Chunks[key] = ch
			if math32.Abs(key.X-viewpoint.X) < sight &&
				math32.Abs(key.Y-viewpoint.Y) < sight &&
				math32.Abs(key.Z-viewpoint.Z) < sight {
				w.Active[key] = struct{}{}
			}
		}
		ch.Add(pt)
	}
	for key := range w.Active {
		w.SetChunkState(w.Chunks[key], true)
	}
}

// Reload discards the entire partition and rebuilds it from scratch
// with freshly supplied parameters, points, scale, and viewpoint.
// Every active chunk is unloaded first, so no geometry leaks across
// the rebuild. The rebuild is synchronous and atomic from the caller's
// perspective; redundant reloads are tolerated.
func (w *World) Reload(p Params, pts []points.Point, scale float32, viewpoint math32.Vector3) {
	for key := range w.Active {
		w.SetChunkState(w.Chunks[key], false)
	}
	w.Params = p
	w.Build(pts, scale, viewpoint)
}

// activate loads the chunk at the given key and adds it to the active
// set. A key with no chunk (an empty grid cell) is a no-op.
func (w *World) activate(key Key) {
	ch := w.Chunks[key]
	if ch == nil {
		return
	}
	w.SetChunkState(ch, true)
	w.Active[key] = struct{}{}
}

// deactivate unloads the chunk at the given key and removes it from
// the active set. A key with no chunk is a no-op.
func (w *World) deactivate(key Key) {
	ch := w.Chunks[key]
	if ch == nil {
		return
	}
	w.SetChunkState(ch, false)
	delete(w.Active, key)
}
