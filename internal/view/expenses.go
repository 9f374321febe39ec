// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package view

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/pawshop/internal/models"
)

// ExpenseRow is one line of the costs screen.
type ExpenseRow struct {
	models.Expense
	AmountLabel string `json:"amountLabel"`
	DateLabel   string `json:"dateLabel"`
}

// ExpenseBoard is the single read-only list built from the active and
// hidden expense collections.
type ExpenseBoard struct {
	Rows        []ExpenseRow `json:"rows"`
	Active      int          `json:"active"`
	Hidden      int          `json:"hidden"`
	TotalActive string       `json:"totalActive"`
	Categories  []string     `json:"categories"`
}

// ExpenseFilter narrows the board. An empty filter shows active rows only.
type ExpenseFilter struct {
	Search     string `json:"search,omitempty"`
	Category   string `json:"category,omitempty"`
	ShowHidden bool   `json:"showHidden,omitempty"`
	OnlyHidden bool   `json:"onlyHidden,omitempty"`
}

// NewExpenseBoard merges the collections newest first. An expense present in
// both (a hide that raced a refetch) is shown once, as hidden.
func NewExpenseBoard(active, hidden []models.Expense, f ExpenseFilter) ExpenseBoard {
	seen := make(map[string]bool, len(hidden))
	merged := make([]models.Expense, 0, len(active)+len(hidden))
	for _, e := range hidden {
		e.Hidden = true
		seen[e.ID] = true
		merged = append(merged, e)
	}
	for _, e := range active {
		if seen[e.ID] {
			continue
		}
		e.Hidden = false
		merged = append(merged, e)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})

	board := ExpenseBoard{Rows: make([]ExpenseRow, 0, len(merged))}
	total := decimal.Zero
	cats := make(map[string]bool)
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	for _, e := range merged {
		if e.Hidden {
			board.Hidden++
		} else {
			board.Active++
			total = total.Add(decimal.NewFromFloat(e.Amount))
		}
		if e.Category != "" && !cats[e.Category] {
			cats[e.Category] = true
			board.Categories = append(board.Categories, e.Category)
		}

		switch {
		case f.OnlyHidden && !e.Hidden:
			continue
		case !f.OnlyHidden && !f.ShowHidden && e.Hidden:
			continue
		case f.Category != "" && e.Category != f.Category:
			continue
		case needle != "" && !strings.Contains(strings.ToLower(e.Title), needle) &&
			!strings.Contains(strings.ToLower(e.Description), needle):
			continue
		}
		board.Rows = append(board.Rows, ExpenseRow{
			Expense:     e,
			AmountLabel: FormatVND(e.Amount),
			DateLabel:   FormatDate(e.Date),
		})
	}
	sort.Strings(board.Categories)
	board.TotalActive = FormatVND(total.InexactFloat64())
	return board
}
