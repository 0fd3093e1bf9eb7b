// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tsvis renders a multi-omics dataset as a chunk-streamed 3D
// point cloud.
package main

import (
	"flag"
	"fmt"
	"os"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/core"
	"cogentcore.org/core/xyz"
	"cogentcore.org/core/xyz/xyzcore"

	"github.com/asishallab-group/Tensor-Space-Vis/points"
	"github.com/asishallab-group/Tensor-Space-Vis/settings"
	"github.com/asishallab-group/Tensor-Space-Vis/viewer"
)

func main() {
	dataset := flag.String("dataset", "dataset.yaml", "dataset manifest file")
	config := flag.String("settings", "tsvis.toml", "settings file (TOML)")
	blob := flag.String("share", "", "base64 settings blob from a shared link")
	printShare := flag.Bool("print-share", false, "print the current settings as a shareable blob and exit")
	flag.Parse()

	st := settings.NewStore()
	errors.Log(st.Open(*config))
	if *blob != "" {
		errors.Log(st.ApplyBlob(*blob))
	}
	if *printShare {
		out, err := st.EncodeBlob()
		if err != nil {
			errors.Log(err)
			os.Exit(1)
		}
		fmt.Println(out)
		return
	}

	mf, err := points.OpenManifest(*dataset)
	if err != nil {
		errors.Log(err)
		os.Exit(1)
	}

	b := core.NewBody("Tensor Space Vis")
	se := xyzcore.NewSceneEditor(b)
	sc := se.SceneXYZ()
	xyz.NewAmbient(sc, "ambient", 0.3, xyz.DirectSun)
	xyz.NewDirectional(sc, "directional", 1, xyz.DirectSun)

	vw, err := viewer.New(sc, st, mf)
	if err != nil {
		errors.Log(err)
		os.Exit(1)
	}

	// settings changes already trigger a viewer reload; persist them too
	st.OnReload(func(key string) {
		errors.Log(st.Save(*config))
	})

	se.SceneWidget().Animate(func(a *core.Animation) {
		vw.TickFrame()
	})
	b.RunMainWindow()
}
