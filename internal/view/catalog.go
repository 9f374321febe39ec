// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package view

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/pawshop/internal/models"
)

// Sort keys accepted by CatalogFilter.
const (
	SortName      = "name"
	SortPrice     = "price"
	SortStock     = "stock"
	SortCreatedAt = "createdAt"

	SortAsc  = "asc"
	SortDesc = "desc"

	// DefaultPageSize is used when a filter leaves PageSize unset.
	DefaultPageSize = 12

	// MaxPageSize caps PageSize.
	MaxPageSize = 100
)

// CatalogFilter is the local UI state of a product list screen.
type CatalogFilter struct {
	Search   string          `json:"search,omitempty"`
	Category models.Category `json:"category,omitempty"`
	Sort     string          `json:"sort,omitempty"`
	Order    string          `json:"order,omitempty"`
	Page     int             `json:"page,omitempty"`
	PageSize int             `json:"pageSize,omitempty"`
}

// CatalogPage is the visible slice of a product list.
type CatalogPage struct {
	Items      []models.Product `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

// Normalize fills defaults and clamps out-of-range values.
func (f CatalogFilter) Normalize() CatalogFilter {
	f.Search = strings.TrimSpace(f.Search)
	switch f.Sort {
	case SortName, SortPrice, SortStock, SortCreatedAt:
	default:
		f.Sort = ""
	}
	if f.Order != SortDesc {
		f.Order = SortAsc
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	return f
}

// FilterFromQuery reads a filter from navigation query parameters.
func FilterFromQuery(q models.Query) CatalogFilter {
	f := CatalogFilter{
		Search:   q[models.QuerySearch],
		Category: models.Category(q[models.QueryCategory]),
		Sort:     q[models.QuerySort],
		Order:    q[models.QueryOrder],
		Page:     atoi(q[models.QueryPage]),
		PageSize: atoi(q[models.QueryLimit]),
	}
	return f.Normalize()
}

// Query is the server-side form of the filter, sent when a screen
// re-dispatches its fetch.
func (f CatalogFilter) Query() models.Query {
	f = f.Normalize()
	q := models.Query{}
	if f.Search != "" {
		q.Set(models.QuerySearch, f.Search)
	}
	if f.Category != "" {
		q.Set(models.QueryCategory, string(f.Category))
	}
	if f.Sort != "" {
		q.Set(models.QuerySort, f.Sort)
		q.Set(models.QueryOrder, f.Order)
	}
	q.SetInt(models.QueryPage, f.Page)
	q.SetInt(models.QueryLimit, f.PageSize)
	return q
}

// Apply derives the visible page from products already in memory. The
// input slice is not modified.
func (f CatalogFilter) Apply(products []models.Product) CatalogPage {
	f = f.Normalize()
	matched := f.match(products)

	total := len(matched)
	pages := total / f.PageSize
	if total%f.PageSize != 0 || pages == 0 {
		pages++
	}
	page := min(f.Page, pages)
	start := (page - 1) * f.PageSize
	end := min(start+f.PageSize, total)
	return CatalogPage{
		Items:      matched[start:end],
		Total:      total,
		Page:       page,
		TotalPages: pages,
	}
}

// match filters and sorts products into a new slice, without paging.
func (f CatalogFilter) match(products []models.Product) []models.Product {
	needle := strings.ToLower(f.Search)

	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		matched = append(matched, p)
	}

	if less := productLess(f.Sort); less != nil {
		desc := f.Order == SortDesc
		sort.SliceStable(matched, func(i, j int) bool {
			if desc {
				return less(matched[j], matched[i])
			}
			return less(matched[i], matched[j])
		})
	}

	return matched
}

func productLess(key string) func(a, b models.Product) bool {
	switch key {
	case SortName:
		return func(a, b models.Product) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortPrice:
		return func(a, b models.Product) bool { return a.Price < b.Price }
	case SortStock:
		return func(a, b models.Product) bool { return a.Stock < b.Stock }
	case SortCreatedAt:
		return func(a, b models.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return nil
	}
}

// maxQueryInt bounds numeric query values; anything larger is junk.
const maxQueryInt = 1_000_000

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > maxQueryInt {
		return 0
	}
	return n
}
