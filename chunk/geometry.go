// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunk

import "cogentcore.org/core/math32"

// Handle is live GPU geometry for one chunk point category, owned by
// its chunk. Dispose releases the underlying resources and is called
// exactly once per handle.
type Handle interface {
	Dispose()
}

// Geometry is the rendering-engine side of chunk streaming: it turns
// packed per-instance buffers into live geometry sharing one base point
// shape. The streaming core never touches GPU state directly, so tests
// run against a recording fake.
type Geometry interface {

	// Alloc creates instanced geometry from packed per-instance buffers.
	// transforms holds one 4x4 transform per instance, 16 floats each:
	// the per-axis scale on the diagonal at offsets 0, 5 and 10, the
	// translation at 12..14, 1 at 15, and all rotation entries zero
	// (instances are axis-aligned). colors holds one RGBA per instance,
	// 4 floats each, channels in 0..1.
	Alloc(transforms, colors math32.ArrayF32) Handle
}

// Styler resolves the per-family display parameters the geometry loader
// packs into instance buffers. Outlier and non-outlier members of a
// family may differ in both diameter and color.
type Styler interface {

	// Diameter returns the rendered point diameter for a member of the
	// given family.
	Diameter(family string, outlier bool) float32

	// Color returns the rendered RGBA color (channels in 0..1) for a
	// member of the given family.
	Color(family string, outlier bool) math32.Vector4
}
