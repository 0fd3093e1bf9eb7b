// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package points

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// OpenSQLite loads a table of points from an SQLite database by running
// the given query. Column names come from the query result; all values
// are read back as strings, matching the CSV path.
func OpenSQLite(path, query string) (*Table, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("points.OpenSQLite: %s: %w", path, err)
	}
	defer db.Close()
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("points.OpenSQLite: %s: %w", path, err)
	}
	defer rows.Close()
	headers, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	tb := NewTable(headers)
	vals := make([]sql.NullString, len(headers))
	scan := make([]any, len(headers))
	for i := range vals {
		scan[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return nil, err
		}
		row := make([]string, len(headers))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			}
		}
		tb.Rows = append(tb.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tb, nil
}
