// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package view

import "github.com/tomtom215/pawshop/internal/models"

// CategoryLabel names a product category. Categories are open: values the
// client has never seen render as "Other".
func CategoryLabel(c models.Category) string {
	switch c {
	case models.CategoryDog:
		return "Dog"
	case models.CategoryCat:
		return "Cat"
	case models.CategorySpa:
		return "Spa & grooming"
	case models.CategoryGift:
		return "Gift"
	default:
		return "Other"
	}
}

// StatusLabel names an order status.
func StatusLabel(s models.OrderStatus) string {
	switch s {
	case models.OrderPlaced:
		return "Placed"
	case models.OrderProcessing:
		return "Processing"
	case models.OrderShipping:
		return "Shipping"
	case models.OrderDelivered:
		return "Delivered"
	case models.OrderCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// PaymentLabel names a payment method.
func PaymentLabel(m models.PaymentMethod) string {
	switch m {
	case models.PaymentCash:
		return "Cash on delivery"
	case models.PaymentTransfer:
		return "Bank transfer"
	default:
		return string(m)
	}
}

// RoleLabel names a role.
func RoleLabel(r models.Role) string {
	switch r {
	case models.RoleCustomer:
		return "Customer"
	case models.RoleStaff:
		return "Staff"
	case models.RoleAdmin:
		return "Administrator"
	default:
		return "Unknown"
	}
}
