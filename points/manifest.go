// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package points

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest describes a dataset: the data file and which columns carry
// the family, outlier flag, and candidate tissue axes. It is stored as
// a dataset.yaml file next to the data.
type Manifest struct {

	// File is the data file (CSV / TSV, optionally .gz, or a .db / .sqlite
	// database), relative to the manifest's directory.
	File string `yaml:"file"`

	// Query is the SQL query producing the point rows, for database files.
	Query string `yaml:"query,omitempty"`

	// Family is the name of the family column.
	Family string `yaml:"family"`

	// Outlier is the name of the outlier flag column, if the dataset has
	// one. If empty, outliers are derived statistically after selection.
	Outlier string `yaml:"outlier,omitempty"`

	// Axes are the coordinate columns that may be mapped to the three
	// tissue axes. The first three are the defaults for x, y, z.
	Axes []string `yaml:"axes"`

	dir string
}

// OpenManifest reads a dataset manifest from the given YAML file.
func OpenManifest(filename string) (*Manifest, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	mf := &Manifest{}
	if err := yaml.Unmarshal(b, mf); err != nil {
		return nil, fmt.Errorf("points.OpenManifest: %s: %w", filename, err)
	}
	if mf.File == "" || mf.Family == "" || len(mf.Axes) < 3 {
		return nil, fmt.Errorf("points.OpenManifest: %s: file, family, and at least 3 axes are required", filename)
	}
	mf.dir = filepath.Dir(filename)
	return mf, nil
}

// Open loads the manifest's data file as a table, dispatching on the
// file extension between tabular and SQLite sources.
func (mf *Manifest) Open() (*Table, error) {
	path := mf.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(mf.dir, path)
	}
	switch filepath.Ext(mf.File) {
	case ".db", ".sqlite":
		query := mf.Query
		if query == "" {
			return nil, fmt.Errorf("points.Manifest: %s: query is required for database files", mf.File)
		}
		return OpenSQLite(path, query)
	}
	return OpenCSV(path)
}

// Selector returns the column selector for the given tissue axis
// columns, defaulting to the manifest's first three axes when a name
// is empty.
func (mf *Manifest) Selector(x, y, z string) Selector {
	if x == "" {
		x = mf.Axes[0]
	}
	if y == "" {
		y = mf.Axes[1]
	}
	if z == "" {
		z = mf.Axes[2]
	}
	return Selector{Family: mf.Family, Outlier: mf.Outlier, X: x, Y: y, Z: z}
}
