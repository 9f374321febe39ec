// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package models

import (
	"net/url"
	"strconv"
)

// Common list query keys. The API accepts others; Query passes anything through.
const (
	QueryCategory  = "category"
	QuerySearch    = "search"
	QuerySort      = "sortBy"
	QueryOrder     = "sortOrder"
	QueryStartDate = "startDate"
	QueryEndDate   = "endDate"
	QueryPage      = "page"
	QueryLimit     = "limit"
	QueryPeriod    = "period"
)

// Query is an open-ended list parameter bag assembled by the caller.
// It is neither validated nor normalized; the server owns that.
type Query map[string]string

// Set stores key=value and returns q for chaining. A nil Query is allocated.
func (q Query) Set(key, value string) Query {
	if q == nil {
		q = Query{}
	}
	q[key] = value
	return q
}

// SetInt stores an integer value.
func (q Query) SetInt(key string, value int) Query {
	return q.Set(key, strconv.Itoa(value))
}

// Clone returns an independent copy.
func (q Query) Clone() Query {
	out := make(Query, len(q))
	for k, v := range q {
		out[k] = v
	}
	return out
}

// Values converts to url.Values.
func (q Query) Values() url.Values {
	v := make(url.Values, len(q))
	for k, val := range q {
		v.Set(k, val)
	}
	return v
}

// Encode returns the URL-encoded form, sorted by key.
func (q Query) Encode() string {
	return q.Values().Encode()
}
