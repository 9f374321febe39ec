// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package models

import (
	"bytes"
	"time"

	"github.com/goccy/go-json"
)

// PaymentMethod is how a customer pays for an order.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

// Valid reports whether m is a supported payment method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentTransfer
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPlaced     OrderStatus = "placed"
	OrderProcessing OrderStatus = "processing"
	OrderShipping   OrderStatus = "shipping"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every status in lifecycle order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPlaced, OrderProcessing, OrderShipping, OrderDelivered, OrderCancelled}
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPlaced, OrderProcessing, OrderShipping, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status change is expected.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// ProductRef is an order line's product. The API returns either the full
// product or only its id, depending on whether the reference was populated.
type ProductRef struct {
	Product
}

// UnmarshalJSON accepts a bare id string or a product object.
func (r *ProductRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		r.Product = Product{ID: id}
		return nil
	}
	return json.Unmarshal(data, &r.Product)
}

// OrderLine is one product and quantity within an order.
type OrderLine struct {
	Product  ProductRef `json:"product"`
	Quantity int        `json:"quantity"`
}

// Order is a placed order. Only Status changes after creation.
type Order struct {
	ID              string        `json:"id"`
	Products        []OrderLine   `json:"products"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	IsGiftOrder     bool          `json:"isGiftOrder"`
	TotalAmount     float64       `json:"totalAmount"`
	Status          OrderStatus   `json:"status"`
	ShippingAddress string        `json:"shippingAddress,omitempty"`
	Phone           string        `json:"phone,omitempty"`
	Note            string        `json:"note,omitempty"`
	Customer        *Principal    `json:"user,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// IndexOrder returns the position of the order with id, or -1.
func IndexOrder(orders []Order, id string) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}

// CheckoutLine is one requested product in a checkout.
type CheckoutLine struct {
	ProductID string `json:"product" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CheckoutRequest is the body of a direct (cart-less) checkout.
type CheckoutRequest struct {
	Products        []CheckoutLine `json:"products" validate:"required,min=1,dive"`
	PaymentMethod   PaymentMethod  `json:"paymentMethod" validate:"required,oneof=cash transfer"`
	IsGiftOrder     bool           `json:"isGiftOrder"`
	ShippingAddress string         `json:"shippingAddress" validate:"required,min=5,max=300"`
	Phone           string         `json:"phone" validate:"required,min=8,max=15"`
	Note            string         `json:"note,omitempty" validate:"max=500"`
}

// StatusUpdate is the body of an order status change.
type StatusUpdate struct {
	Status OrderStatus `json:"status" validate:"required,order_status"`
}
