// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package points

import (
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `id,fam,out,x,y,z,score
s1,geneA,0,1,2,3,0.9
s2,geneA,1,4,5,6,0.1
s3,geneB,0,7,8,bad,0.5
s4,geneB,0,7,8,,0.5
s5,geneC,true,-1,-2,-3,0.2
`

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	fnm := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fnm, []byte(data), 0o666))
	return fnm
}

func TestOpenCSV(t *testing.T) {
	tb, err := OpenCSV(writeFile(t, "data.csv", testCSV))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "fam", "out", "x", "y", "z", "score"}, tb.Headers)
	assert.Equal(t, 5, len(tb.Rows))
	assert.Equal(t, 1, tb.Column("fam"))
	assert.Equal(t, -1, tb.Column("missing"))
}

func TestOpenTSVGzip(t *testing.T) {
	tsv := "fam\tx\ty\tz\ngeneA\t1\t2\t3\n"
	fnm := filepath.Join(t.TempDir(), "data.tsv.gz")
	fp, err := os.Create(fnm)
	require.NoError(t, err)
	gz := gzip.NewWriter(fp)
	_, err = gz.Write([]byte(tsv))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, fp.Close())

	tb, err := OpenCSV(fnm)
	require.NoError(t, err)
	assert.Equal(t, []string{"fam", "x", "y", "z"}, tb.Headers)
	assert.Equal(t, 1, len(tb.Rows))
}

func TestSelect(t *testing.T) {
	tb, err := OpenCSV(writeFile(t, "data.csv", testCSV))
	require.NoError(t, err)
	sel := Selector{Family: "fam", Outlier: "out", X: "x", Y: "y", Z: "z"}

	// rows with malformed or missing coordinates are skipped
	pts := tb.Select(nil, sel)
	require.Equal(t, 3, len(pts))
	assert.Equal(t, math32.Vec3(1, 2, 3), pts[0].Pos)
	assert.Equal(t, "geneA", pts[0].Family)
	assert.False(t, pts[0].Outlier)
	assert.True(t, pts[1].Outlier)
	assert.True(t, pts[2].Outlier) // "true" is truthy
	// metadata keeps the non-coordinate columns
	assert.Equal(t, "s1", pts[0].Meta["id"])
	assert.Equal(t, "0.9", pts[0].Meta["score"])
	_, hasX := pts[0].Meta["x"]
	assert.False(t, hasX)

	// family selection
	pts = tb.Select(MakeFamilies([]string{"geneC"}), sel)
	require.Equal(t, 1, len(pts))
	assert.Equal(t, "geneC", pts[0].Family)

	// "all" selects everything
	assert.Equal(t, 3, len(tb.Select(MakeFamilies([]string{"all"}), sel)))

	// no outlier column: flags default to false
	pts = tb.Select(nil, Selector{Family: "fam", X: "x", Y: "y", Z: "z"})
	for _, pt := range pts {
		assert.False(t, pt.Outlier)
	}
}

func TestManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.csv"), []byte(testCSV), 0o666))
	mfn := filepath.Join(dir, "dataset.yaml")
	manifest := "file: data.csv\nfamily: fam\noutlier: out\naxes: [x, y, z, score]\n"
	require.NoError(t, os.WriteFile(mfn, []byte(manifest), 0o666))

	mf, err := OpenManifest(mfn)
	require.NoError(t, err)
	tb, err := mf.Open()
	require.NoError(t, err)
	assert.Equal(t, 5, len(tb.Rows))

	// empty axis selectors fall back to the manifest's first three axes
	sel := mf.Selector("", "", "")
	assert.Equal(t, Selector{Family: "fam", Outlier: "out", X: "x", Y: "y", Z: "z"}, sel)
	sel = mf.Selector("score", "", "")
	assert.Equal(t, "score", sel.X)
	assert.Equal(t, "y", sel.Y)

	// incomplete manifests are rejected
	bad := writeFile(t, "bad.yaml", "file: data.csv\nfamily: fam\naxes: [x]\n")
	_, err = OpenManifest(bad)
	assert.Error(t, err)
}

func TestMarkOutliers(t *testing.T) {
	pts := []Point{
		{Pos: math32.Vec3(1, 0, 0)},
		{Pos: math32.Vec3(2, 0, 0)},
		{Pos: math32.Vec3(1.5, 0, 0)},
		{Pos: math32.Vec3(1.2, 0, 0)},
		{Pos: math32.Vec3(0.8, 0, 0)},
		{Pos: math32.Vec3(1.4, 0, 0)},
		{Pos: math32.Vec3(1.1, 0, 0)},
		{Pos: math32.Vec3(100, 0, 0)},
	}
	n := MarkOutliers(pts, 2)
	assert.Equal(t, 1, n)
	assert.True(t, pts[7].Outlier)
	for _, pt := range pts[:7] {
		assert.False(t, pt.Outlier)
	}

	// existing flags are preserved and not double-counted
	n = MarkOutliers(pts, 2)
	assert.Equal(t, 0, n)
}

func TestFamilyTally(t *testing.T) {
	tb, err := OpenCSV(writeFile(t, "data.csv", testCSV))
	require.NoError(t, err)
	kl := tb.FamilyTally("fam")
	assert.Equal(t, []string{"geneA", "geneB", "geneC"}, kl.Keys)
	assert.Equal(t, 2, kl.At("geneA"))
	assert.Equal(t, 2, kl.At("geneB"))
	assert.Equal(t, 1, kl.At("geneC"))
}

func TestMakeFamilies(t *testing.T) {
	assert.True(t, MakeFamilies(nil).Has("anything"))
	assert.True(t, MakeFamilies([]string{"all"}).Has("x"))
	f := MakeFamilies([]string{"a", "b"})
	assert.True(t, f.Has("a"))
	assert.False(t, f.Has("c"))
}
