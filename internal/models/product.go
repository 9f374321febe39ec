// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package models

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Category is an open enumeration: the server may return categories the
// client has no configuration for.
type Category string

const (
	CategoryDog     Category = "dog"
	CategoryCat     Category = "cat"
	CategorySpa     Category = "spa"
	CategoryGift    Category = "gift"
	CategoryUnknown Category = "unknown"
)

// Known reports whether c is one of the categories the client names.
func (c Category) Known() bool {
	switch c {
	case CategoryDog, CategoryCat, CategorySpa, CategoryGift:
		return true
	}
	return false
}

// Product is a catalog entry. Server-owned.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	ImportPrice float64   `json:"importPrice"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	Weight      float64   `json:"weight,omitempty"`
	Stock       int       `json:"stock"`
	Featured    bool      `json:"featured"`
	Image       string    `json:"image,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsService reports whether the product is a service, for which stock is not meaningful.
func (p Product) IsService() bool {
	return p.Category == CategorySpa
}

// InStock reports whether at least one unit can be ordered.
func (p Product) InStock() bool {
	return p.IsService() || p.Stock > 0
}

// ErrInvalidProduct is returned by Product.Validate.
var ErrInvalidProduct = errors.New("invalid product")

// Validate checks the non-negativity invariants on prices and stock.
func (p Product) Validate() error {
	if p.Price < 0 {
		return fmt.Errorf("%w: negative price", ErrInvalidProduct)
	}
	if p.ImportPrice < 0 {
		return fmt.Errorf("%w: negative import price", ErrInvalidProduct)
	}
	if !p.IsService() && p.Stock < 0 {
		return fmt.Errorf("%w: negative stock", ErrInvalidProduct)
	}
	return nil
}

// ProductPage is the paginated body of the product list endpoint.
type ProductPage struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
}

// UnmarshalJSON accepts the paginated object or, from older API builds, a bare array.
func (p *ProductPage) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var products []Product
		if err := json.Unmarshal(data, &products); err != nil {
			return err
		}
		*p = ProductPage{Products: products, Total: len(products), Page: 1, TotalPages: 1}
		return nil
	}
	type plain ProductPage
	var page plain
	if err := json.Unmarshal(data, &page); err != nil {
		return err
	}
	*p = ProductPage(page)
	return nil
}

// IndexProduct returns the position of the product with id, or -1.
func IndexProduct(products []Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}
