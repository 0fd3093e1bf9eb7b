// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package points

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite(t *testing.T) {
	fnm := filepath.Join(t.TempDir(), "data.db")
	db, err := sql.Open("sqlite", fnm)
	require.NoError(t, err)
	_, err = db.Exec(`create table pts (fam text, x real, y real, z real)`)
	require.NoError(t, err)
	_, err = db.Exec(`insert into pts values ('geneA', 1, 2, 3), ('geneB', 4, 5, 6), ('geneB', 7, 8, null)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	tb, err := OpenSQLite(fnm, "select fam, x, y, z from pts")
	require.NoError(t, err)
	assert.Equal(t, []string{"fam", "x", "y", "z"}, tb.Headers)
	require.Equal(t, 3, len(tb.Rows))
	assert.Equal(t, "geneA", tb.Rows[0][0])

	sel := Selector{Family: "fam", X: "x", Y: "y", Z: "z"}
	pts := tb.Select(nil, sel)
	assert.Equal(t, 2, len(pts)) // null coordinate row is skipped

	_, err = OpenSQLite(fnm, "select * from nope")
	assert.Error(t, err)
}

func TestManifestSQLite(t *testing.T) {
	dir := t.TempDir()
	fnm := filepath.Join(dir, "data.sqlite")
	db, err := sql.Open("sqlite", fnm)
	require.NoError(t, err)
	_, err = db.Exec(`create table pts (fam text, x real, y real, z real)`)
	require.NoError(t, err)
	_, err = db.Exec(`insert into pts values ('geneA', 1, 2, 3)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	mf := &Manifest{File: "data.sqlite", Family: "fam", Axes: []string{"x", "y", "z"}, dir: dir}
	_, err = mf.Open()
	assert.Error(t, err) // query is required for database files

	mf.Query = "select fam, x, y, z from pts"
	tb, err := mf.Open()
	require.NoError(t, err)
	assert.Equal(t, 1, len(tb.Rows))
}
