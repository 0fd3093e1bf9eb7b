// Copyright (c) 2026, The Tensor-Space-Vis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package settings implements the viewer's configuration service: a
// typed key-value store with per-key defaults and validation, per-key
// change subscriptions, and a reload broadcast fired for the structural
// keys that invalidate the chunk partition.
package settings

import (
	"fmt"
	"log/slog"
	"strings"

	"cogentcore.org/core/colors"
)

// Recognized configuration keys. Per-family keys are formed by
// appending a suffix to the family name; see [ColorKey] and friends.
const (
	// ChunkDiameter is the chunk cube edge length (positive integer).
	ChunkDiameter = "chunkDiameter"

	// ChunkLoadRange is the number of chunks of margin kept loaded
	// around the viewpoint's chunk (positive integer).
	ChunkLoadRange = "chunkLoadRange"

	// Scale is the factor applied to source coordinates (positive).
	Scale = "scale"

	// ShownFamilies is the list of family names to display, or the
	// single name "all".
	ShownFamilies = "shownFamilies"

	// TissueX, TissueY, TissueZ select the source columns mapped to
	// the three spatial axes.
	TissueX = "tissueX"
	TissueY = "tissueY"
	TissueZ = "tissueZ"

	// DarkMode selects the dark color scheme, which also changes the
	// derived family colors.
	DarkMode = "darkMode"
)

// Per-family key suffixes.
const (
	colorSuffix           = "_Color"
	outlierColorSuffix    = "_OutlierColor"
	diameterSuffix        = "_Diameter"
	outlierDiameterSuffix = "_OutlierDiameter"
)

// ColorKey returns the per-family normal point color key.
func ColorKey(family string) string { return family + colorSuffix }

// OutlierColorKey returns the per-family outlier color key.
func OutlierColorKey(family string) string { return family + outlierColorSuffix }

// DiameterKey returns the per-family normal point diameter key.
func DiameterKey(family string) string { return family + diameterSuffix }

// OutlierDiameterKey returns the per-family outlier diameter key.
func OutlierDiameterKey(family string) string { return family + outlierDiameterSuffix }

// defaults are the values returned for unset fixed keys. Per-family
// keys have no defaults; unset ones fall back in [Styles].
var defaults = map[string]any{
	ChunkDiameter:  10,
	ChunkLoadRange: 2,
	Scale:          1.0,
	ShownFamilies:  []string{"all"},
	TissueX:        "",
	TissueY:        "",
	TissueZ:        "",
	DarkMode:       false,
}

// structural are the fixed keys whose change invalidates the chunk
// partition or the instance buffers baked from it. Any change to a
// per-family key fires the reload broadcast as well, since per-family
// display parameters are baked into the buffers. DarkMode is included
// because derived family colors depend on it.
var structural = map[string]bool{
	ChunkDiameter:  true,
	ChunkLoadRange: true,
	Scale:          true,
	ShownFamilies:  true,
	TissueX:        true,
	TissueY:        true,
	TissueZ:        true,
	DarkMode:       true,
}

// Store is the configuration service. The zero value is not usable;
// call [NewStore]. Stores are confined to the render thread along with
// everything else in the viewer, so there is no locking.
type Store struct {
	values map[string]any
	subs   map[string]func(any)
	reload []func(key string)
}

// NewStore returns an empty store with all defaults in effect.
func NewStore() *Store {
	return &Store{
		values: make(map[string]any),
		subs:   make(map[string]func(any)),
	}
}

// Get returns the current value for key: the last valid value set, the
// key's default if unset, or nil for an unset per-family key.
func (st *Store) Get(key string) any {
	if v, ok := st.values[key]; ok {
		return v
	}
	return defaults[key]
}

// GetInt returns the value for key as an int, or 0 if it is not one.
func (st *Store) GetInt(key string) int {
	v, _ := st.Get(key).(int)
	return v
}

// GetFloat returns the value for key as a float64, converting integer
// values, or 0 if it is not numeric.
func (st *Store) GetFloat(key string) float64 {
	switch v := st.Get(key).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// GetBool returns the value for key as a bool, or false if it is not one.
func (st *Store) GetBool(key string) bool {
	v, _ := st.Get(key).(bool)
	return v
}

// GetString returns the value for key as a string, or "" if it is not one.
func (st *Store) GetString(key string) string {
	v, _ := st.Get(key).(string)
	return v
}

// GetStrings returns the value for key as a string list, or nil.
func (st *Store) GetStrings(key string) []string {
	v, _ := st.Get(key).([]string)
	return v
}

// Set validates and stores a new value for key, then notifies the
// key's subscriber and, for structural and per-family keys, fires the
// reload broadcast. An unknown key or a value failing validation is
// logged and dropped, retaining the prior value.
func (st *Store) Set(key string, val any) {
	v, err := validate(key, val)
	if err != nil {
		slog.Error("settings: dropping invalid update", "key", key, "value", val, "err", err)
		return
	}
	st.values[key] = v
	if fn := st.subs[key]; fn != nil {
		fn(v)
	}
	if structural[key] || isFamilyKey(key) {
		for _, fn := range st.reload {
			fn(key)
		}
	}
}

// OnChange registers the subscriber for key, invoking it immediately
// with the current value and again on every future change. A key has
// at most one subscriber; registering a second one is an error.
func (st *Store) OnChange(key string, fn func(any)) error {
	if _, ok := st.subs[key]; ok {
		return fmt.Errorf("settings: key %q already has a subscriber", key)
	}
	st.subs[key] = fn
	fn(st.Get(key))
	return nil
}

// OnReload registers a reload-broadcast listener, invoked with the
// changed key whenever a structural or per-family key changes. Several
// changed keys in quick succession deliver one broadcast each;
// listeners must tolerate redundant deliveries.
func (st *Store) OnReload(fn func(key string)) {
	st.reload = append(st.reload, fn)
}

// isFamilyKey reports whether key is a per-family display key.
func isFamilyKey(key string) bool {
	for _, suffix := range []string{outlierColorSuffix, colorSuffix, outlierDiameterSuffix, diameterSuffix} {
		if f, ok := strings.CutSuffix(key, suffix); ok && f != "" {
			return true
		}
	}
	return false
}

// validate checks and normalizes a value for key, so that numbers
// arriving from JSON (float64) or TOML (int64) land in canonical form.
func validate(key string, val any) (any, error) {
	switch key {
	case ChunkDiameter, ChunkLoadRange:
		n, ok := asInt(val)
		if !ok || n <= 0 {
			return nil, fmt.Errorf("positive integer required")
		}
		return n, nil
	case Scale:
		f, ok := asFloat(val)
		if !ok || f <= 0 {
			return nil, fmt.Errorf("positive number required")
		}
		return f, nil
	case ShownFamilies:
		return asStrings(val)
	case TissueX, TissueY, TissueZ:
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("string required")
		}
		return s, nil
	case DarkMode:
		b, ok := val.(bool)
		if !ok {
			return nil, fmt.Errorf("bool required")
		}
		return b, nil
	}
	switch {
	case strings.HasSuffix(key, outlierColorSuffix), strings.HasSuffix(key, colorSuffix):
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("hex color string required")
		}
		if _, err := colors.FromHex(s); err != nil {
			return nil, err
		}
		return s, nil
	case strings.HasSuffix(key, outlierDiameterSuffix), strings.HasSuffix(key, diameterSuffix):
		f, ok := asFloat(val)
		if !ok || f <= 0 {
			return nil, fmt.Errorf("positive number required")
		}
		return f, nil
	}
	return nil, fmt.Errorf("unknown key")
}

func asInt(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	}
	return 0, false
}

func asFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func asStrings(val any) ([]string, error) {
	switch v := val.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("string list required")
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("string list required")
}
