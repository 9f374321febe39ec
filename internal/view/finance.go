// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package view

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	hundred  = decimal.NewFromInt(100)
	vnd      = message.NewPrinter(language.Vietnamese)
	zeroRate = "0.0"
)

// Profit is revenue minus expense.
func Profit(revenue, expense float64) float64 {
	return decimal.NewFromFloat(revenue).Sub(decimal.NewFromFloat(expense)).InexactFloat64()
}

// Margin is profit / revenue * 100, rounded to one decimal and formatted
// with exactly one fractional digit. Zero revenue yields "0.0".
func Margin(revenue, expense float64) string {
	rev := decimal.NewFromFloat(revenue)
	if rev.IsZero() {
		return zeroRate
	}
	profit := rev.Sub(decimal.NewFromFloat(expense))
	return profit.Div(rev).Mul(hundred).StringFixed(1)
}

// Percent is part / whole * 100 with one decimal. Zero whole yields "0.0".
func Percent(part, whole float64) string {
	w := decimal.NewFromFloat(whole)
	if w.IsZero() {
		return zeroRate
	}
	return decimal.NewFromFloat(part).Div(w).Mul(hundred).StringFixed(1)
}

// LineTotal is price * quantity.
func LineTotal(price float64, quantity int) float64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity))).InexactFloat64()
}

// FormatVND renders an amount in Vietnamese dong: no minor unit, "."
// grouping, trailing symbol ("1.000.000 ₫").
func FormatVND(amount float64) string {
	return vnd.Sprintf("%d ₫", decimal.NewFromFloat(amount).Round(0).IntPart())
}

// FormatDate renders a date day-first. The zero time renders empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// FormatNumber renders an integer with Vietnamese grouping.
func FormatNumber(n int64) string {
	return vnd.Sprintf("%d", n)
}

// Finance is the derived summary shown on the revenue and overview screens.
type Finance struct {
	Revenue   float64 `json:"revenue"`
	Expense   float64 `json:"expense"`
	Profit    float64 `json:"profit"`
	Margin    string  `json:"margin"`
	RevenueFx string  `json:"revenueFormatted"`
	ExpenseFx string  `json:"expenseFormatted"`
	ProfitFx  string  `json:"profitFormatted"`
}

// NewFinance derives the summary from revenue and expense.
func NewFinance(revenue, expense float64) Finance {
	profit := Profit(revenue, expense)
	return Finance{
		Revenue:   revenue,
		Expense:   expense,
		Profit:    profit,
		Margin:    Margin(revenue, expense),
		RevenueFx: FormatVND(revenue),
		ExpenseFx: FormatVND(expense),
		ProfitFx:  FormatVND(profit),
	}
}
