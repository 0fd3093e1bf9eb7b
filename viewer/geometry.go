// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"fmt"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"

	"github.com/asishallab-group/Tensor-Space-Vis/chunk"
)

// pointGeometry implements [chunk.Geometry] on an [xyz.Scene]: each
// allocation becomes one generated mesh plus one solid under a
// dedicated chunks group, with the shared base point shape expanded
// per instance using the packed transform and color buffers.
type pointGeometry struct {
	sc    *xyz.Scene
	group *xyz.Group

	// next numbers generated meshes; mesh names must be unique per scene.
	next int

	// changed is set whenever scene content was touched, so the viewer
	// can refresh once per frame instead of once per chunk.
	changed bool
}

func newPointGeometry(sc *xyz.Scene) *pointGeometry {
	return &pointGeometry{sc: sc, group: xyz.NewGroup(sc)}
}

func (pg *pointGeometry) Alloc(transforms, colors math32.ArrayF32) chunk.Handle {
	name := fmt.Sprintf("chunk%06d", pg.next)
	pg.next++
	mesh := buildInstanceMesh(name, transforms, colors)
	pg.sc.SetMesh(mesh)
	sld := xyz.NewSolid(pg.group)
	sld.SetMesh(mesh)
	pg.changed = true
	return &meshHandle{geo: pg, solid: sld, name: name}
}

// meshHandle is the live geometry for one chunk category: a solid and
// its generated mesh.
type meshHandle struct {
	geo   *pointGeometry
	solid *xyz.Solid
	name  string
}

func (h *meshHandle) Dispose() {
	h.solid.Delete()
	h.geo.sc.Meshes.DeleteKey(h.name)
	h.geo.changed = true
}

// Base point shape: a unit-diameter octahedron centered on the origin.
// Cheap enough to expand per instance while still reading as a round
// point at typical diameters.
var (
	baseVertex = [18]float32{
		0.5, 0, 0,
		-0.5, 0, 0,
		0, 0.5, 0,
		0, -0.5, 0,
		0, 0, 0.5,
		0, 0, -0.5,
	}
	baseNormal = [18]float32{
		1, 0, 0,
		-1, 0, 0,
		0, 1, 0,
		0, -1, 0,
		0, 0, 1,
		0, 0, -1,
	}
	baseIndex = [24]uint32{
		0, 2, 4,
		2, 1, 4,
		1, 3, 4,
		3, 0, 4,
		2, 0, 5,
		1, 2, 5,
		3, 1, 5,
		0, 3, 5,
	}
)

const baseVertexN = 6

// buildInstanceMesh expands the packed per-instance buffers into one
// [xyz.GenMesh]: base shape vertices scaled by the instance's diagonal
// scale and moved by its translation, vertex colors from the instance
// color.
func buildInstanceMesh(name string, transforms, colors math32.ArrayF32) *xyz.GenMesh {
	n := len(transforms) / chunk.TransformStride
	m := &xyz.GenMesh{}
	m.Name = name
	m.Vertex = make(math32.ArrayF32, 0, n*len(baseVertex))
	m.Normal = make(math32.ArrayF32, 0, n*len(baseNormal))
	m.TexCoord = make(math32.ArrayF32, 0, n*baseVertexN*2)
	m.Color = make(math32.ArrayF32, 0, n*baseVertexN*4)
	m.Index = make(math32.ArrayU32, 0, n*len(baseIndex))
	for i := 0; i < n; i++ {
		ti := i * chunk.TransformStride
		sx, sy, sz := transforms[ti], transforms[ti+5], transforms[ti+10]
		tx, ty, tz := transforms[ti+12], transforms[ti+13], transforms[ti+14]
		ci := i * chunk.ColorStride
		r, g, b, a := colors[ci], colors[ci+1], colors[ci+2], colors[ci+3]
		for v := 0; v < baseVertexN; v++ {
			m.Vertex = append(m.Vertex,
				baseVertex[3*v]*sx+tx,
				baseVertex[3*v+1]*sy+ty,
				baseVertex[3*v+2]*sz+tz)
			m.Normal = append(m.Normal, baseNormal[3*v], baseNormal[3*v+1], baseNormal[3*v+2])
			m.TexCoord = append(m.TexCoord, 0, 0)
			m.Color = append(m.Color, r, g, b, a)
		}
		off := uint32(i * baseVertexN)
		for _, ix := range baseIndex {
			m.Index = append(m.Index, off+ix)
		}
	}
	return m
}
