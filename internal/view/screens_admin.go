// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package view

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/tomtom215/pawshop/internal/models"
	"github.com/tomtom215/pawshop/internal/routes"
	"github.com/tomtom215/pawshop/internal/shopapi"
	"github.com/tomtom215/pawshop/internal/store"
)

// LowStockThreshold marks products that need restocking.
const LowStockThreshold = 5

// Report field paths. Report payloads are not versioned, so each figure is
// looked up under the names the endpoints have used.
var (
	revenuePaths = []string{"totalRevenue", "revenue.total", "summary.totalRevenue", "revenue"}
	expensePaths = []string{"totalExpenses", "totalExpense", "expenses.total", "summary.totalExpenses", "expense"}
)

// NextStatuses lists the statuses an order may move to.
func NextStatuses(s models.OrderStatus) []models.OrderStatus {
	switch s {
	case models.OrderPlaced:
		return []models.OrderStatus{models.OrderProcessing, models.OrderCancelled}
	case models.OrderProcessing:
		return []models.OrderStatus{models.OrderShipping, models.OrderCancelled}
	case models.OrderShipping:
		return []models.OrderStatus{models.OrderDelivered, models.OrderCancelled}
	case models.OrderDelivered, models.OrderCancelled:
		return nil
	default:
		return nil
	}
}

// reportRows returns the first array found under paths, or the payload
// itself when it is an array.
func reportRows(r models.Report, paths ...string) []any {
	var rows []gjson.Result
	if v := gjson.ParseBytes(r.Raw()); v.IsArray() {
		rows = v.Array()
	}
	for _, p := range paths {
		if rows != nil {
			break
		}
		rows = r.Rows(p)
	}
	out := make([]any, len(rows))
	for i, row := range rows {
		out[i] = row.Value()
	}
	return out
}

func adminHomeScreen() Screen {
	return Screen{
		Name: routes.AdminHome,
		Mount: func(ctx context.Context, s *store.Store, p Params) []*store.Pending {
			return []*store.Pending{s.FetchDashboard(ctx, reportQuery(p.Query))}
		},
		Render: func(st store.State, _ Params) ScreenView {
			d := st.Reports.Dashboard
			r := d.Data
			return settle(
				map[string]any{
					"finance":      NewFinance(r.FirstFloat(revenuePaths...), r.FirstFloat(expensePaths...)),
					"orders":       r.Int("totalOrders"),
					"products":     r.Int("totalProducts"),
					"customers":    r.Int("totalCustomers"),
					"recentOrders": reportRows(r, "recentOrders"),
					"topProducts":  reportRows(r, "topProducts"),
				},
				probeOf(store.KeyDashboard, d, r.Empty()),
			)
		},
	}
}

// InventoryRow is a product on the inventory screen.
type InventoryRow struct {
	ProductCard
	LowStock   bool   `json:"lowStock"`
	StockValue string `json:"stockValue"`
}

func inventoryRows(products []models.Product) ([]InventoryRow, int) {
	rows := make([]InventoryRow, len(products))
	low := 0
	for i, p := range products {
		rows[i] = InventoryRow{
			ProductCard: NewProductCard(p),
			LowStock:    !p.IsService() && p.Stock <= LowStockThreshold,
			StockValue:  FormatVND(LineTotal(p.ImportPrice, p.Stock)),
		}
		if rows[i].LowStock {
			low++
		}
	}
	return rows, low
}

func adminInventoryScreen() Screen {
	return Screen{
		Name: routes.AdminInventory,
		Mount: func(ctx context.Context, s *store.Store, p Params) []*store.Pending {
			return []*store.Pending{
				s.FetchProducts(ctx, FilterFromQuery(p.Query).Query()),
				s.FetchHiddenProducts(ctx),
				s.FetchInventory(ctx, reportQuery(p.Query)),
			}
		},
		Render: func(st store.State, _ Params) ScreenView {
			list, hidden, inv := st.Products.List, st.Products.Hidden, st.Reports.Inventory
			rows, low := inventoryRows(list.Data.Products)
			hiddenRows, _ := inventoryRows(hidden.Data)
			return settle(
				map[string]any{
					"products":   rows,
					"hidden":     hiddenRows,
					"lowStock":   low,
					"totalStock": inv.Data.FirstFloat("totalStock", "summary.totalStock"),
					"totalValue": FormatVND(inv.Data.FirstFloat("totalValue", "summary.totalValue")),
				},
				probeOf(store.KeyProducts, list, len(rows) == 0),
				probeOf(store.KeyHiddenProducts, hidden, false),
				probeOf(store.KeyInventory, inv, false),
			)
		},
	}
}

func adminExportScreen() Screen {
	return Screen{
		Name: routes.AdminExport,
		Mount: func(ctx context.Context, s *store.Store, p Params) []*store.Pending {
			return []*store.Pending{s.FetchExport(ctx, reportQuery(p.Query))}
		},
		Render: func(st store.State, _ Params) ScreenView {
			e := st.Reports.Export
			rows := reportRows(e.Data, "exports", "items", "data")
			return settle(
				map[string]any{
					"rows":  rows,
					"total": FormatVND(e.Data.FirstFloat("totalValue", "total")),
				},
				probeOf(store.KeyExport, e, len(rows) == 0),
			)
		},
	}
}

func adminRevenueScreen() Screen {
	return Screen{
		Name: routes.AdminRevenue,
		Mount: func(ctx context.Context, s *store.Store, p Params) []*store.Pending {
			return []*store.Pending{s.FetchRevenue(ctx, reportQuery(p.Query))}
		},
		Render: func(st store.State, _ Params) ScreenView {
			rev := st.Reports.Revenue
			r := rev.Data
			return settle(
				map[string]any{
					"finance": NewFinance(r.FirstFloat(revenuePaths...), r.FirstFloat(expensePaths...)),
					"series":  reportRows(r, "daily", "series", "data"),
				},
				probeOf(store.KeyRevenue, rev, r.Empty()),
			)
		},
	}
}

func adminProductsScreen() Screen {
	return Screen{
		Name: routes.AdminProducts,
		Mount: func(ctx context.Context, s *store.Store, p Params) []*store.Pending {
			return []*store.Pending{
				s.FetchProducts(ctx, FilterFromQuery(p.Query).Query()),
				s.FetchHiddenProducts(ctx),
			}
		},
		Render: func(st store.State, p Params) ScreenView {
			list, hidden := st.Products.List, st.Products.Hidden
			cv := NewCatalogView(list.Data, FilterFromQuery(p.Query))
			return settle(
				map[string]any{
					"catalog": cv,
					"hidden":  productCards(hidden.Data),
				},
				probeOf(store.KeyProducts, list, len(cv.Items) == 0),
				probeOf(store.KeyHiddenProducts, hidden, false),
			)
		},
	}
}

// ProductForm is the add/edit product screen model.
type ProductForm struct {
	ID         string               `json:"id,omitempty"`
	Values     shopapi.ProductInput `json:"values"`
	Categories []CategoryOption     `json:"categories"`
}

func adminAddProductScreen() Screen {
	return Screen{
		Name: routes.AdminAddProd,
		Render: func(store.State, Params) ScreenView {
			return ScreenView{
				Status: StatusReady,
				Data: ProductForm{
					Values:     shopapi.ProductInput{Category: models.CategoryDog, IsActive: true},
					Categories: categoryOptions(models.CategoryDog),
				},
			}
		},
	}
}

func adminEditProductScreen() Screen {
	return Screen{
		Name: routes.AdminEditProd,
		Mount: func(ctx context.Context, s *store.Store, p Params) []*store.Pending {
			return []*store.Pending{s.FetchProduct(ctx, p.ID())}
		},
		Render: func(st store.State, p Params) ScreenView {
			d := st.Products.Detail
			return settle(
				ProductForm{
					ID:         d.Data.ID,
					Values:     shopapi.ProductInputFrom(d.Data),
					Categories: categoryOptions(d.Data.Category),
				},
				detailProbe(store.KeyProductDetail, d, p.ID(), d.Data.ID),
			)
		},
	}
}

func adminProductScreen() Screen {
	return Screen{
		Name: routes.AdminProduct,
		Mount: func(ctx context.Context, s *store.Store, p Params) []*store.Pending {
			return []*store.Pending{s.FetchProduct(ctx, p.ID())}
		},
		Render: func(st store.State, p Params) ScreenView {
			d := st.Products.Detail
			prod := d.Data
			return settle(
				map[string]any{
					"product":    NewProductCard(prod),
					"unitProfit": FormatVND(Profit(prod.Price, prod.ImportPrice)),
					"unitMargin": Margin(prod.Price, prod.ImportPrice),
					"stockValue": FormatVND(LineTotal(prod.ImportPrice, prod.Stock)),
					"created":    FormatDate(prod.CreatedAt),
					"updated":    FormatDate(prod.UpdatedAt),
				},
				detailProbe(store.KeyProductDetail, d, p.ID(), prod.ID),
			)
		},
	}
}

// CategoryShare is one row of the expense report.
type CategoryShare struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Percent  string `json:"percent"`
}

func adminExpenseReportScreen() Screen {
	return Screen{
		Name: routes.AdminExpenses,
		Mount: func(ctx context.Context, s *store.Store, p Params) []*store.Pending {
			return []*store.Pending{s.FetchExpenseReport(ctx, reportQuery(p.Query))}
		},
		Render: func(st store.State, _ Params) ScreenView {
			rep := st.Reports.Expense
			r := rep.Data
			total := r.FirstFloat(append([]string{"total"}, expensePaths...)...)
			var shares []CategoryShare
			for _, row := range r.Rows("byCategory") {
				amount := row.Get("amount").Float()
				name := row.Get("category").String()
				if name == "" {
					name = row.Get("_id").String()
				}
				shares = append(shares, CategoryShare{
					Category: name,
					Amount:   FormatVND(amount),
					Percent:  Percent(amount, total),
				})
			}
			return settle(
				map[string]any{
					"total":      FormatVND(total),
					"byCategory": shares,
					"monthly":    reportRows(r, "byMonth", "monthly"),
				},
				probeOf(store.KeyExpenseReport, rep, r.Empty()),
			)
		},
	}
}

// expenseFilter reads the costs screen's local state from the query.
func expenseFilter(q models.Query) ExpenseFilter {
	f := ExpenseFilter{Search: q[models.QuerySearch], Category: q[models.QueryCategory]}
	switch q["hidden"] {
	case "show":
		f.ShowHidden = true
	case "only":
		f.OnlyHidden = true
	}
	return f
}

func adminCostsScreen() Screen {
	return Screen{
		Name: routes.AdminCosts,
		Mount: func(ctx context.Context, s *store.Store, p Params) []*store.Pending {
			q := reportQuery(p.Query)
			return []*store.Pending{s.FetchExpenses(ctx, q), s.FetchHiddenExpenses(ctx, q)}
		},
		Render: func(st store.State, p Params) ScreenView {
			active, hidden := st.Expenses.Active, st.Expenses.Hidden
			board := NewExpenseBoard(active.Data, hidden.Data, expenseFilter(p.Query))
			return settle(
				board,
				probeOf(store.KeyExpenses, active, len(board.Rows) == 0),
				probeOf(store.KeyHiddenExpenses, hidden, false),
			)
		},
	}
}

func staffScreen() Screen {
	return Screen{
		Name: routes.StaffHome,
		Mount: func(ctx context.Context, s *store.Store, p Params) []*store.Pending {
			return []*store.Pending{s.FetchOrders(ctx, statusQuery(p.Query))}
		},
		Render: func(st store.State, p Params) ScreenView {
			all := st.Orders.All
			rows := orderRows(all.Data, models.OrderStatus(p.Query["status"]))
			for i := range rows {
				rows[i].NextStatuses = NextStatuses(rows[i].Status)
			}
			counts := make(map[models.OrderStatus]int)
			for _, o := range all.Data {
				counts[o.Status]++
			}
			return settle(
				map[string]any{"orders": rows, "counts": counts},
				probeOf(store.KeyAllOrders, all, len(rows) == 0),
			)
		},
	}
}
