// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/pawshop/internal/app"
	"github.com/tomtom215/pawshop/internal/models"
)

// listFlags are the list controls a screen reads from its query.
type listFlags struct {
	search   string
	category string
	sort     string
	order    string
	page     int
}

func newOpenCommand(e *env) *cobra.Command {
	var lf listFlags

	cmd := &cobra.Command{
		Use:   "open <path>",
		Short: "Open a route and print its screen",
		Long: `Open a route the way the browser renderer would: the route guard runs
first, redirects are followed, then the screen's data is fetched and the
rendered screen is printed.`,
		Example: `  pawshop open /products --category dog --sort price --order asc
  pawshop open /admin/revenue -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := lf.apply(args[0])
			if err != nil {
				return err
			}
			return e.withApp(cmd.Context(), func(a *app.App) error {
				page, err := a.Open(cmd.Context(), target)
				if err != nil {
					return fmt.Errorf("open %s: %w", target, err)
				}
				if e.json() {
					return writeJSON(cmd.OutOrStdout(), page)
				}
				return renderPage(cmd.OutOrStdout(), page)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&lf.search, "search", "", "search text")
	f.StringVar(&lf.category, "category", "", "product category")
	f.StringVar(&lf.sort, "sort", "", "sort field")
	f.StringVar(&lf.order, "order", "", "sort order: asc or desc")
	f.IntVar(&lf.page, "page", 0, "page number, from 1")
	return cmd
}

// apply merges the flags into the query of path. Flags win over values
// already in the path.
func (lf listFlags) apply(path string) (string, error) {
	u, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	q := u.Query()
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set(models.QuerySearch, lf.search)
	set(models.QueryCategory, lf.category)
	set(models.QuerySort, lf.sort)
	set(models.QueryOrder, lf.order)
	if lf.page > 0 {
		q.Set(models.QueryPage, strconv.Itoa(lf.page))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
