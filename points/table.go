// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package points

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cogentcore.org/core/base/keylist"
	"cogentcore.org/core/math32"
	"github.com/klauspost/compress/gzip"
)

// Table is an in-memory columnar dataset loaded from a tabular point
// source. Row order is preserved from the source, which matters because
// instance buffer indexes are derived from point order downstream.
type Table struct {

	// Headers are the column names, in source order.
	Headers []string

	// Rows are the data rows, each with one string cell per header.
	Rows [][]string

	cols map[string]int
}

// NewTable returns a table with the given headers and no rows.
func NewTable(headers []string) *Table {
	tb := &Table{Headers: headers}
	tb.indexColumns()
	return tb
}

func (tb *Table) indexColumns() {
	tb.cols = make(map[string]int, len(tb.Headers))
	for i, h := range tb.Headers {
		tb.cols[h] = i
	}
}

// Column returns the index of the named column, or -1 if not present.
func (tb *Table) Column(name string) int {
	idx, ok := tb.cols[name]
	if !ok {
		return -1
	}
	return idx
}

// OpenCSV loads a table from a CSV or TSV file. Files ending in .tsv or
// .tsv.gz are tab-separated; a .gz suffix selects gzip decompression.
// The first row is the header.
func OpenCSV(filename string) (*Table, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	var rd io.Reader = fp
	name := filename
	if filepath.Ext(name) == ".gz" {
		gz, err := gzip.NewReader(fp)
		if err != nil {
			return nil, fmt.Errorf("points.OpenCSV: %s: %w", filename, err)
		}
		defer gz.Close()
		rd = gz
		name = strings.TrimSuffix(name, ".gz")
	}
	cr := csv.NewReader(rd)
	if filepath.Ext(name) == ".tsv" {
		cr.Comma = '\t'
	}
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("points.OpenCSV: %s: %w", filename, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("points.OpenCSV: %s: no header row", filename)
	}
	tb := NewTable(recs[0])
	tb.Rows = recs[1:]
	return tb, nil
}

// Selector names the columns that give a table row its viewer semantics:
// the family column, an optional outlier flag column, and the three
// tissue axis columns mapped to x, y, z.
type Selector struct {

	// Family is the name of the categorical family column.
	Family string

	// Outlier is the name of the boolean outlier flag column.
	// Empty means no outlier column; see [MarkOutliers] for deriving one.
	Outlier string

	// X, Y, Z are the names of the coordinate columns.
	X, Y, Z string
}

// Select produces the points for the selected families from the table,
// mapping the selector's axis columns to coordinates. Rows with a
// missing or unparsable coordinate are skipped; the number skipped is
// logged at the end. Row order is preserved.
func (tb *Table) Select(families Families, sel Selector) []Point {
	fi := tb.Column(sel.Family)
	oi := -1
	if sel.Outlier != "" {
		oi = tb.Column(sel.Outlier)
	}
	xi, yi, zi := tb.Column(sel.X), tb.Column(sel.Y), tb.Column(sel.Z)
	pts := make([]Point, 0, len(tb.Rows))
	skipped := 0
	for _, row := range tb.Rows {
		fam := cell(row, fi)
		if !families.Has(fam) {
			continue
		}
		x, xok := coord(row, xi)
		y, yok := coord(row, yi)
		z, zok := coord(row, zi)
		if !xok || !yok || !zok {
			skipped++
			continue
		}
		pt := Point{
			Pos:     math32.Vec3(x, y, z),
			Family:  fam,
			Outlier: truthy(cell(row, oi)),
			Meta:    make(map[string]string, len(tb.Headers)),
		}
		for ci, h := range tb.Headers {
			if ci == xi || ci == yi || ci == zi {
				continue
			}
			pt.Meta[h] = cell(row, ci)
		}
		pts = append(pts, pt)
	}
	if skipped > 0 {
		slog.Info("points: skipped rows with missing coordinates", "skipped", skipped, "kept", len(pts))
	}
	return pts
}

// FamilyTally returns every family in the given column with its row
// count, in first-seen order. This is the list offered for family
// selection.
func (tb *Table) FamilyTally(family string) *keylist.List[string, int] {
	fi := tb.Column(family)
	kl := keylist.New[string, int]()
	for _, row := range tb.Rows {
		fam := cell(row, fi)
		if fam == "" {
			continue
		}
		kl.Set(fam, kl.At(fam)+1)
	}
	return kl
}

// cell returns the cell at the given column, or "" if the column or
// cell is absent.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// coord parses the cell at the given column as a float32 coordinate.
func coord(row []string, idx int) (float32, bool) {
	c := cell(row, idx)
	if c == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(c, 32)
	if err != nil {
		return 0, false
	}
	f := float32(v)
	if math32.IsNaN(f) || math32.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// truthy interprets a source cell as a boolean flag.
func truthy(c string) bool {
	switch strings.ToLower(strings.TrimSpace(c)) {
	case "1", "true", "t", "yes", "y":
		return true
	}
	return false
}
