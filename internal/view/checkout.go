// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/pawshop/internal/models"
	"github.com/tomtom215/pawshop/internal/validation"
)

var (
	// ErrOutOfStock is returned for a buy-now on a product with no stock.
	ErrOutOfStock = errors.New("product is out of stock")
	// ErrInsufficientStock is returned when the requested quantity exceeds stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidQuantity is returned for a quantity below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// BuyNow is the state of a product's buy-now control.
type BuyNow struct {
	Enabled     bool   `json:"enabled"`
	Reason      string `json:"reason,omitempty"`
	MaxQuantity int    `json:"maxQuantity,omitempty"`
}

// BuyNowFor reports whether p can be ordered. Services have no stock
// limit; MaxQuantity is zero for them.
func BuyNowFor(p models.Product) BuyNow {
	if p.IsService() {
		return BuyNow{Enabled: true}
	}
	if p.Stock <= 0 {
		return BuyNow{Reason: ErrOutOfStock.Error()}
	}
	return BuyNow{Enabled: true, MaxQuantity: p.Stock}
}

// CheckoutForm is the buy-now dialog.
type CheckoutForm struct {
	Quantity        int                  `json:"quantity"`
	PaymentMethod   models.PaymentMethod `json:"paymentMethod"`
	IsGiftOrder     bool                 `json:"isGiftOrder"`
	ShippingAddress string               `json:"shippingAddress"`
	Phone           string               `json:"phone"`
	Note            string               `json:"note,omitempty"`
}

// PrepareCheckout checks the form against the product and builds the
// request. Every failure here happens before any network call.
func PrepareCheckout(p models.Product, form CheckoutForm) (models.CheckoutRequest, error) {
	if form.Quantity < 1 {
		return models.CheckoutRequest{}, ErrInvalidQuantity
	}
	if !p.IsService() {
		if p.Stock <= 0 {
			return models.CheckoutRequest{}, ErrOutOfStock
		}
		if form.Quantity > p.Stock {
			return models.CheckoutRequest{}, fmt.Errorf("%w: only %d left of %s, %d requested",
				ErrInsufficientStock, p.Stock, p.Name, form.Quantity)
		}
	}

	method := form.PaymentMethod
	if method == "" {
		method = models.PaymentCash
	}
	req := models.CheckoutRequest{
		Products:        []models.CheckoutLine{{ProductID: p.ID, Quantity: form.Quantity}},
		PaymentMethod:   method,
		IsGiftOrder:     form.IsGiftOrder,
		ShippingAddress: strings.TrimSpace(form.ShippingAddress),
		Phone:           strings.TrimSpace(form.Phone),
		Note:            strings.TrimSpace(form.Note),
	}
	if err := validation.Check(req); err != nil {
		return models.CheckoutRequest{}, err
	}
	return req, nil
}

// OrderTotal is the client-side estimate shown in the dialog.
func OrderTotal(p models.Product, quantity int) string {
	return FormatVND(LineTotal(p.Price, quantity))
}
