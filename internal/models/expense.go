// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package models

import "time"

// Expense is an admin-owned cost entry. Active and hidden expenses are
// served by separate endpoints.
type Expense struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Amount          float64   `json:"amount"`
	Category        string    `json:"category"`
	Date            time.Time `json:"date"`
	IsRecurring     bool      `json:"isRecurring"`
	RecurringPeriod string    `json:"recurringPeriod,omitempty"`
	Attachments     []string  `json:"attachments,omitempty"`
	Hidden          bool      `json:"isHidden,omitempty"`
}

// IndexExpense returns the position of the expense with id, or -1.
func IndexExpense(expenses []Expense, id string) int {
	for i := range expenses {
		if expenses[i].ID == id {
			return i
		}
	}
	return -1
}

// ExpenseInput is the body of an expense create or update.
type ExpenseInput struct {
	Title           string    `json:"title" validate:"required,min=2,max=200"`
	Description     string    `json:"description,omitempty" validate:"max=1000"`
	Amount          float64   `json:"amount" validate:"gt=0"`
	Category        string    `json:"category" validate:"required"`
	Date            time.Time `json:"date" validate:"required"`
	IsRecurring     bool      `json:"isRecurring"`
	RecurringPeriod string    `json:"recurringPeriod,omitempty" validate:"required_if=IsRecurring true"`
	Attachments     []string  `json:"attachments,omitempty" validate:"omitempty,dive,url"`
}
