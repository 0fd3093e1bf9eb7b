// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Save writes the explicitly set values (not defaults) to the given
// TOML file.
func (st *Store) Save(filename string) error {
	b, err := toml.Marshal(st.values)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0o666)
}

// Open loads values from the given TOML file, applying each through
// [Store.Set] so normal validation and notification run. A missing
// file is not an error: the store just keeps its defaults.
func (st *Store) Open(filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	vals := map[string]any{}
	if err := toml.Unmarshal(b, &vals); err != nil {
		return err
	}
	st.setAll(vals)
	return nil
}

// EncodeBlob returns the explicitly set values as base64-encoded JSON,
// the opaque form embedded in shareable URLs.
func (st *Store) EncodeBlob() (string, error) {
	b, err := json.Marshal(st.values)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// ApplyBlob decodes a shareable blob and applies each contained key
// through [Store.Set]; invalid entries are dropped individually.
func (st *Store) ApplyBlob(blob string) error {
	b, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return err
	}
	vals := map[string]any{}
	if err := json.Unmarshal(b, &vals); err != nil {
		return err
	}
	st.setAll(vals)
	return nil
}

func (st *Store) setAll(vals map[string]any) {
	for key, val := range vals {
		st.Set(key, val)
	}
}
