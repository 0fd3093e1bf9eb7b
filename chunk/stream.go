// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunk

import "cogentcore.org/core/math32"

// Tick runs one frame of streaming. It compares the viewpoint's grid
// cell with the cell recorded on the previous frame and, for each axis
// that changed, sweeps the 2D face of cells entering sight range on the
// leading edge and the face leaving it on the trailing edge. Cells the
// viewpoint crossed are stepped one at a time per axis, keeping the
// active set exactly equal to a brute-force in-range recomputation even
// for multi-cell and multi-axis moves. Cost is O(LoadRange²) per cell
// crossed; a tick with no cell transition does nothing.
//
// Tick is called from the host render loop, once per frame, on the
// render thread; nothing here is safe for concurrent use.
func (w *World) Tick(viewpoint math32.Vector3) {
	if w.Diameter <= 0 {
		return
	}
	cur := CentroidOf(viewpoint, w.Diameter)
	prev := w.centroid
	for axis := 0; axis < 3; axis++ {
		steps := int(math32.Round((cur.axis(axis) - prev.axis(axis)) / w.Diameter))
		dir := float32(1)
		if steps < 0 {
			dir, steps = -1, -steps
		}
		for s := 0; s < steps; s++ {
			next := prev.withAxis(axis, prev.axis(axis)+dir*w.Diameter)
			w.sweepFace(prev, next, axis, dir)
			prev = next
		}
		// land on the exact destination coordinate so stepped arithmetic
		// cannot drift away from centroid-derived keys
		prev = prev.withAxis(axis, cur.axis(axis))
	}
	w.centroid = cur
}

// sweepFace handles a single one-cell viewpoint step on the given axis:
// it activates the face of cells at the leading edge of the new sight
// range and deactivates the face at the trailing edge of the old one.
// Face offsets on the two non-changing axes range over the full load
// range, measured from the stepped centroid (on those axes prev and
// next agree, so the reference is unambiguous).
func (w *World) sweepFace(prev, next Key, axis int, dir float32) {
	reach := float32(w.LoadRange) * w.Diameter
	u, v := (axis+1)%3, (axis+2)%3
	enterBase := next.withAxis(axis, next.axis(axis)+dir*reach)
	leaveBase := prev.withAxis(axis, prev.axis(axis)-dir*reach)
	for iu := -w.LoadRange; iu <= w.LoadRange; iu++ {
		du := float32(iu) * w.Diameter
		for iv := -w.LoadRange; iv <= w.LoadRange; iv++ {
			dv := float32(iv) * w.Diameter
			w.activate(enterBase.withAxis(u, next.axis(u)+du).withAxis(v, next.axis(v)+dv))
			w.deactivate(leaveBase.withAxis(u, prev.axis(u)+du).withAxis(v, prev.axis(v)+dv))
		}
	}
}
