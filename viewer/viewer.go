// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viewer ties the point source, configuration store, chunk
// streaming world, and xyz scene together into a running multi-omics
// point-cloud visualization.
package viewer

import (
	"cogentcore.org/core/base/keylist"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"

	"github.com/asishallab-group/Tensor-Space-Vis/chunk"
	"github.com/asishallab-group/Tensor-Space-Vis/points"
	"github.com/asishallab-group/Tensor-Space-Vis/settings"
)

// zmax is the z-score threshold used to derive outlier flags for
// datasets without an explicit outlier column.
const zmax = 3

// Viewer owns the streaming world for one dataset and keeps it in sync
// with the configuration store and the camera. Everything runs on the
// render thread: Reload on (possibly redundant) store broadcasts,
// TickFrame once per render tick.
type Viewer struct {

	// Store is the configuration service driving selection, streaming
	// parameters, and per-family styling.
	Store *settings.Store

	// Manifest describes the dataset; Table is its loaded contents.
	Manifest *points.Manifest
	Table    *points.Table

	// World is the chunk streaming core.
	World *chunk.World

	// Viewpoint returns the current camera position, read once per frame.
	Viewpoint func() math32.Vector3

	// refresh flushes pending scene changes after a reload or tick.
	refresh func()
}

// New returns a viewer rendering into the given scene. The dataset
// manifest's data file is loaded immediately; the initial partition is
// built on the first [Viewer.Reload], which New performs.
func New(sc *xyz.Scene, st *settings.Store, mf *points.Manifest) (*Viewer, error) {
	geo := newPointGeometry(sc)
	v, err := newViewer(st, mf, geo, func() {
		if geo.changed {
			geo.changed = false
			sc.SetNeedsUpdate()
		}
	})
	if err != nil {
		return nil, err
	}
	v.Viewpoint = func() math32.Vector3 {
		return sc.Camera.Pose.Pos
	}
	v.Reload()
	return v, nil
}

// newViewer wires a viewer around any geometry engine; tests use a
// recording fake. The caller is responsible for the initial Reload
// after setting Viewpoint.
func newViewer(st *settings.Store, mf *points.Manifest, geo chunk.Geometry, refresh func()) (*Viewer, error) {
	tb, err := mf.Open()
	if err != nil {
		return nil, err
	}
	v := &Viewer{
		Store:    st,
		Manifest: mf,
		Table:    tb,
		refresh:  refresh,
	}
	v.World = chunk.NewWorld(v.params(), geo, &settings.Styles{Store: st})
	st.OnReload(func(key string) {
		v.Reload()
	})
	return v, nil
}

// Families returns the dataset's families with their row counts, in
// first-seen order, for family selection UIs.
func (v *Viewer) Families() *keylist.List[string, int] {
	return v.Table.FamilyTally(v.Manifest.Family)
}

// params reads the streaming parameters from the store.
func (v *Viewer) params() chunk.Params {
	return chunk.Params{
		Diameter:  float32(v.Store.GetInt(settings.ChunkDiameter)),
		LoadRange: v.Store.GetInt(settings.ChunkLoadRange),
	}
}

// selectPoints re-reads the selection settings and produces the point
// set: shown families only, tissue axis columns mapped to coordinates,
// and derived outlier flags when the dataset has no outlier column.
func (v *Viewer) selectPoints() []points.Point {
	fams := points.MakeFamilies(v.Store.GetStrings(settings.ShownFamilies))
	sel := v.Manifest.Selector(
		v.Store.GetString(settings.TissueX),
		v.Store.GetString(settings.TissueY),
		v.Store.GetString(settings.TissueZ))
	pts := v.Table.Select(fams, sel)
	if sel.Outlier == "" {
		points.MarkOutliers(pts, zmax)
	}
	return pts
}

// Reload tears down every active chunk and rebuilds the partition from
// scratch, re-reading all parameters fresh from the store rather than
// trusting anything captured earlier. This is the handler for the
// store's reload broadcast; it also serves as the initial build.
func (v *Viewer) Reload() {
	v.World.Reload(v.params(), v.selectPoints(), float32(v.Store.GetFloat(settings.Scale)), v.viewpoint())
	if v.refresh != nil {
		v.refresh()
	}
}

// TickFrame runs one frame of chunk streaming from the current
// viewpoint. Call once per render tick.
func (v *Viewer) TickFrame() {
	v.World.Tick(v.viewpoint())
	if v.refresh != nil {
		v.refresh()
	}
}

func (v *Viewer) viewpoint() math32.Vector3 {
	if v.Viewpoint == nil {
		return math32.Vector3{}
	}
	return v.Viewpoint()
}
