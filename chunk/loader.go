// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunk

import "cogentcore.org/core/math32"

// Per-instance buffer strides: a full 4x4 transform and an RGBA color.
const (
	TransformStride = 16
	ColorStride     = 4
)

// SetChunkState loads or unloads the geometry for the given chunk.
// When activating, any existing handles are disposed first, so
// re-activating an already-active chunk does not leak; then one handle
// is allocated per non-empty point category (normal, outlier). When
// deactivating, both handles are disposed. After the call returns the
// chunk's live GPU footprint exactly matches active.
func (w *World) SetChunkState(ch *Chunk, active bool) {
	if ch == nil {
		return
	}
	ch.dispose()
	if !active {
		return
	}
	if n := len(ch.Points) - ch.Outliers; n > 0 {
		ch.normal = w.alloc(ch, false, n)
	}
	if ch.Outliers > 0 {
		ch.outlier = w.alloc(ch, true, ch.Outliers)
	}
}

// alloc packs the instance buffers for one point category of a chunk
// and hands them to the geometry engine. Instances are written in
// point-sequence order with an independently incrementing slot index,
// so each category's buffers are densely packed.
func (w *World) alloc(ch *Chunk, outlier bool, count int) Handle {
	tf := make(math32.ArrayF32, TransformStride*count)
	cl := make(math32.ArrayF32, ColorStride*count)
	idx := 0
	for i := range ch.Points {
		pt := &ch.Points[i]
		if pt.Outlier != outlier {
			continue
		}
		d := w.Styles.Diameter(pt.Family, outlier)
		ti := idx * TransformStride
		tf[ti+0] = d
		tf[ti+5] = d
		tf[ti+10] = d
		tf[ti+12] = pt.Pos.X
		tf[ti+13] = pt.Pos.Y
		tf[ti+14] = pt.Pos.Z
		tf[ti+15] = 1
		clr := w.Styles.Color(pt.Family, outlier)
		clr.ToSlice(cl, idx*ColorStride)
		idx++
	}
	return w.Geo.Alloc(tf, cl)
}
