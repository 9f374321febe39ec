// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package view

import (
	"context"

	"github.com/tomtom215/pawshop/internal/models"
	"github.com/tomtom215/pawshop/internal/routes"
	"github.com/tomtom215/pawshop/internal/store"
)

// FormField describes one input of a static form screen.
type FormField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// ProductCard is a product as listed.
type ProductCard struct {
	models.Product
	CategoryLabel string `json:"categoryLabel"`
	PriceLabel    string `json:"priceLabel"`
	BuyNow        BuyNow `json:"buyNow"`
}

// NewProductCard decorates p for display.
func NewProductCard(p models.Product) ProductCard {
	return ProductCard{
		Product:       p,
		CategoryLabel: CategoryLabel(p.Category),
		PriceLabel:    FormatVND(p.Price),
		BuyNow:        BuyNowFor(p),
	}
}

func productCards(products []models.Product) []ProductCard {
	cards := make([]ProductCard, len(products))
	for i, p := range products {
		cards[i] = NewProductCard(p)
	}
	return cards
}

// OrderRow is an order as listed.
type OrderRow struct {
	models.Order
	StatusLabel  string               `json:"statusLabel"`
	PaymentLabel string               `json:"paymentLabel"`
	TotalLabel   string               `json:"totalLabel"`
	DateLabel    string               `json:"dateLabel"`
	Items        int                  `json:"items"`
	NextStatuses []models.OrderStatus `json:"nextStatuses,omitempty"`
}

// NewOrderRow decorates o for display.
func NewOrderRow(o models.Order) OrderRow {
	items := 0
	for _, line := range o.Products {
		items += line.Quantity
	}
	return OrderRow{
		Order:        o,
		StatusLabel:  StatusLabel(o.Status),
		PaymentLabel: PaymentLabel(o.PaymentMethod),
		TotalLabel:   FormatVND(o.TotalAmount),
		DateLabel:    FormatDate(o.CreatedAt),
		Items:        items,
	}
}

// CatalogView is the product list screen model.
type CatalogView struct {
	Filter     CatalogFilter    `json:"filter"`
	Items      []ProductCard    `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	Categories []CategoryOption `json:"categories"`
}

// CategoryOption is one entry of the category filter.
type CategoryOption struct {
	Value    models.Category `json:"value"`
	Label    string          `json:"label"`
	Selected bool            `json:"selected"`
}

func categoryOptions(selected models.Category) []CategoryOption {
	cats := []models.Category{models.CategoryDog, models.CategoryCat, models.CategorySpa, models.CategoryGift}
	out := make([]CategoryOption, len(cats))
	for i, c := range cats {
		out[i] = CategoryOption{Value: c, Label: CategoryLabel(c), Selected: c == selected}
	}
	return out
}

// NewCatalogView derives the visible page. When the server already paged
// the list, its totals are kept and only the received page is re-sorted
// and filtered locally.
func NewCatalogView(page models.ProductPage, f CatalogFilter) CatalogView {
	f = f.Normalize()
	v := CatalogView{Filter: f, Categories: categoryOptions(f.Category)}
	if page.TotalPages > 1 {
		v.Items = productCards(f.match(page.Products))
		v.Total = page.Total
		v.Page = page.Page
		v.TotalPages = page.TotalPages
		return v
	}
	derived := f.Apply(page.Products)
	v.Items = productCards(derived.Items)
	v.Total = derived.Total
	v.Page = derived.Page
	v.TotalPages = derived.TotalPages
	return v
}

func loginForm(p Params) any {
	return map[string]any{
		"fields": []FormField{
			{Name: "email", Label: "Email", Type: "email", Required: true},
			{Name: "password", Label: "Password", Type: "password", Required: true},
		},
		"from": p.Query["from"],
	}
}

func registerForm(Params) any {
	return map[string]any{
		"fields": []FormField{
			{Name: "name", Label: "Full name", Type: "text", Required: true},
			{Name: "email", Label: "Email", Type: "email", Required: true},
			{Name: "phone", Label: "Phone", Type: "tel"},
			{Name: "password", Label: "Password", Type: "password", Required: true},
		},
	}
}

func contactInfo(Params) any {
	return map[string]any{
		"fields": []FormField{
			{Name: "name", Label: "Name", Type: "text", Required: true},
			{Name: "email", Label: "Email", Type: "email", Required: true},
			{Name: "message", Label: "Message", Type: "textarea", Required: true},
		},
	}
}

func homeScreen() Screen {
	return Screen{
		Name: routes.Home,
		Mount: func(ctx context.Context, s *store.Store, _ Params) []*store.Pending {
			return []*store.Pending{s.FetchFeatured(ctx)}
		},
		Render: func(st store.State, _ Params) ScreenView {
			featured := st.Products.Featured
			return settle(
				map[string]any{
					"featured":   productCards(featured.Data),
					"categories": categoryOptions(""),
				},
				probeOf(store.KeyFeatured, featured, len(featured.Data) == 0),
			)
		},
	}
}

func productsScreen() Screen {
	return Screen{
		Name: routes.Products,
		Mount: func(ctx context.Context, s *store.Store, p Params) []*store.Pending {
			return []*store.Pending{s.FetchProducts(ctx, FilterFromQuery(p.Query).Query())}
		},
		Render: func(st store.State, p Params) ScreenView {
			list := st.Products.List
			cv := NewCatalogView(list.Data, FilterFromQuery(p.Query))
			return settle(cv, probeOf(store.KeyProducts, list, len(cv.Items) == 0))
		},
	}
}

// detailProbe treats a detail slice holding another record as not loaded.
func detailProbe[T any](key store.Key, s store.Slice[T], id, got string) probe {
	pr := probeOf(key, s, false)
	if got != id {
		pr.loaded = false
		if s.Loading {
			pr.err = nil
		}
	}
	return pr
}

func productDetailScreen() Screen {
	return Screen{
		Name: routes.ProductDetail,
		Mount: func(ctx context.Context, s *store.Store, p Params) []*store.Pending {
			return []*store.Pending{s.FetchProduct(ctx, p.ID())}
		},
		Render: func(st store.State, p Params) ScreenView {
			d := st.Products.Detail
			return settle(
				map[string]any{
					"product": NewProductCard(d.Data),
					"total":   OrderTotal(d.Data, 1),
				},
				detailProbe(store.KeyProductDetail, d, p.ID(), d.Data.ID),
			)
		},
	}
}

func orderHistoryScreen() Screen {
	return Screen{
		Name: routes.OrderHistory,
		Mount: func(ctx context.Context, s *store.Store, p Params) []*store.Pending {
			return []*store.Pending{s.FetchMyOrders(ctx, statusQuery(p.Query))}
		},
		Render: func(st store.State, p Params) ScreenView {
			mine := st.Orders.Mine
			rows := orderRows(mine.Data, models.OrderStatus(p.Query["status"]))
			data := map[string]any{"orders": rows}
			if st.Orders.LastPlaced != nil {
				data["lastPlaced"] = NewOrderRow(*st.Orders.LastPlaced)
			}
			return settle(data, probeOf(store.KeyMyOrders, mine, len(rows) == 0))
		},
	}
}

func accountScreen() Screen {
	return Screen{
		Name: routes.Account,
		Mount: func(ctx context.Context, s *store.Store, _ Params) []*store.Pending {
			return []*store.Pending{s.FetchProfile(ctx)}
		},
		Render: func(st store.State, p Params) ScreenView {
			prof := st.Account.Profile
			user := prof.Data
			if !prof.Loaded && p.Principal != nil {
				user = *p.Principal
			}
			return settle(
				map[string]any{
					"profile":   user,
					"roleLabel": RoleLabel(user.Role),
				},
				probeOf(store.KeyProfile, prof, false),
			)
		},
	}
}

func statusQuery(q models.Query) models.Query {
	out := models.Query{}
	if s := q["status"]; s != "" {
		out.Set("status", s)
	}
	return out
}

func orderRows(orders []models.Order, status models.OrderStatus) []OrderRow {
	rows := make([]OrderRow, 0, len(orders))
	for _, o := range orders {
		if status != "" && o.Status != status {
			continue
		}
		rows = append(rows, NewOrderRow(o))
	}
	return rows
}
