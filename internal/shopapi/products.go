// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package shopapi

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/tomtom215/pawshop/internal/gateway"
	"github.com/tomtom215/pawshop/internal/models"
)

const productsPath = "/api/products"

// Upload is an image attached to a product form.
type Upload struct {
	Filename string
	Content  io.Reader
}

// ProductInput is the add/edit product form. It is sent as multipart.
type ProductInput struct {
	Name        string          `json:"name" validate:"required,min=2,max=200"`
	Category    models.Category `json:"category" validate:"required,category"`
	ImportPrice float64         `json:"importPrice" validate:"gte=0"`
	Price       float64         `json:"price" validate:"gte=0"`
	Description string          `json:"description,omitempty" validate:"max=5000"`
	Weight      float64         `json:"weight,omitempty" validate:"gte=0"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Featured    bool            `json:"featured"`
	IsActive    bool            `json:"isActive"`
	Image       *Upload         `json:"-"`
}

// Form renders the input as multipart fields (and the image part, if any).
func (in ProductInput) Form() *gateway.Form {
	f := gateway.NewForm().
		Field("name", in.Name).
		Field("category", string(in.Category)).
		Field("importPrice", strconv.FormatFloat(in.ImportPrice, 'f', -1, 64)).
		Field("price", strconv.FormatFloat(in.Price, 'f', -1, 64)).
		Field("description", in.Description).
		Field("weight", strconv.FormatFloat(in.Weight, 'f', -1, 64)).
		Field("stock", strconv.Itoa(in.Stock)).
		Field("featured", strconv.FormatBool(in.Featured)).
		Field("isActive", strconv.FormatBool(in.IsActive))
	if in.Image != nil && in.Image.Content != nil {
		f.File("image", in.Image.Filename, in.Image.Content)
	}
	return f
}

// ProductInputFrom pre-fills an edit form from a cached product.
func ProductInputFrom(p models.Product) ProductInput {
	return ProductInput{
		Name:        p.Name,
		Category:    p.Category,
		ImportPrice: p.ImportPrice,
		Price:       p.Price,
		Description: p.Description,
		Weight:      p.Weight,
		Stock:       p.Stock,
		Featured:    p.Featured,
		IsActive:    p.IsActive,
	}
}

// ProductsClient wraps /api/products*.
type ProductsClient struct {
	gw Doer
}

// List returns one page of active products filtered by q.
func (c *ProductsClient) List(ctx context.Context, q models.Query) (models.ProductPage, error) {
	return get[models.ProductPage](ctx, c.gw, productsPath, q)
}

// Featured returns the home page selection.
func (c *ProductsClient) Featured(ctx context.Context) ([]models.Product, error) {
	return get[[]models.Product](ctx, c.gw, productsPath+"/featured", nil)
}

// Get returns one product.
func (c *ProductsClient) Get(ctx context.Context, id string) (models.Product, error) {
	return get[models.Product](ctx, c.gw, idPath(productsPath, id), nil)
}

// Create adds a product (multipart).
func (c *ProductsClient) Create(ctx context.Context, in ProductInput) (models.Product, error) {
	var out models.Product
	err := c.gw.Do(ctx, gateway.Request{Method: http.MethodPost, Path: productsPath, Form: in.Form()}, &out)
	return out, err
}

// Update replaces a product (multipart).
func (c *ProductsClient) Update(ctx context.Context, id string, in ProductInput) (models.Product, error) {
	var out models.Product
	err := c.gw.Do(ctx, gateway.Request{Method: http.MethodPut, Path: idPath(productsPath, id), Form: in.Form()}, &out)
	return out, err
}

// Delete removes a product permanently.
func (c *ProductsClient) Delete(ctx context.Context, id string) error {
	return c.gw.Do(ctx, gateway.Request{Method: http.MethodDelete, Path: idPath(productsPath, id)}, nil)
}

// Hidden returns soft-hidden products.
func (c *ProductsClient) Hidden(ctx context.Context) ([]models.Product, error) {
	return get[[]models.Product](ctx, c.gw, productsPath+"/hidden", nil)
}

// Hide soft-hides a product.
func (c *ProductsClient) Hide(ctx context.Context, id string) (models.Product, error) {
	return send[models.Product](ctx, c.gw, http.MethodPatch, idPath(productsPath, id, "hide"), nil)
}

// Restore reinstates a hidden product.
func (c *ProductsClient) Restore(ctx context.Context, id string) (models.Product, error) {
	return send[models.Product](ctx, c.gw, http.MethodPatch, idPath(productsPath, id, "restore"), nil)
}
