// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package models

import (
	"bytes"

	"github.com/tidwall/gjson"
)

// Report is an opaque aggregate payload (dashboard, inventory, export,
// revenue, expense report). The client only reads display values out of it.
type Report struct {
	raw []byte
}

// NewReport wraps a raw JSON payload.
func NewReport(raw []byte) Report {
	return Report{raw: bytes.Clone(raw)}
}

// MarshalJSON emits the payload unchanged.
func (r Report) MarshalJSON() ([]byte, error) {
	if len(r.raw) == 0 {
		return []byte("null"), nil
	}
	return r.raw, nil
}

// UnmarshalJSON keeps a copy of the payload.
func (r *Report) UnmarshalJSON(data []byte) error {
	r.raw = bytes.Clone(data)
	return nil
}

// Raw returns the payload bytes.
func (r Report) Raw() []byte { return r.raw }

// Empty reports whether no payload (or JSON null) has been received.
func (r Report) Empty() bool {
	trimmed := bytes.TrimSpace(r.raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Get returns the value at a gjson path, e.g. "summary.totalRevenue" or "items.#".
func (r Report) Get(path string) gjson.Result {
	return gjson.GetBytes(r.raw, path)
}

// Float returns the number at path, or 0.
func (r Report) Float(path string) float64 { return r.Get(path).Float() }

// Int returns the integer at path, or 0.
func (r Report) Int(path string) int64 { return r.Get(path).Int() }

// String returns the string at path, or "".
func (r Report) String(path string) string { return r.Get(path).String() }

// FirstFloat returns the first of paths that exists, as a number. Report
// payloads are not versioned and field names differ between endpoints.
func (r Report) FirstFloat(paths ...string) float64 {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() {
			return v.Float()
		}
	}
	return 0
}

// Rows returns the array at path, or nil.
func (r Report) Rows(path string) []gjson.Result {
	v := r.Get(path)
	if !v.IsArray() {
		return nil
	}
	return v.Array()
}
