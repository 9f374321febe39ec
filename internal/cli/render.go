// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/tomtom215/pawshop/internal/app"
	"github.com/tomtom215/pawshop/internal/view"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderPage prints page as text: a header, the navigation, then the
// screen's view model. Lists of objects become tables.
func renderPage(w io.Writer, page app.Page) error {
	for _, hop := range page.Via {
		fmt.Fprintf(w, "-> redirected from %s\n", hop)
	}
	if page.Screen == nil {
		fmt.Fprintf(w, "%s: %s", page.Path, page.Outcome)
		if page.Redirect != "" {
			fmt.Fprintf(w, " -> %s", page.Redirect)
		}
		fmt.Fprintln(w)
		return nil
	}

	s := page.Screen
	fmt.Fprintf(w, "== %s [%s] ==\n", s.Title, s.Status)
	if page.Shell != nil {
		renderShell(w, *page.Shell)
	}
	if s.Error != nil {
		fmt.Fprintf(w, "! %s", s.Error.Message)
		if len(s.Retry) > 0 {
			fmt.Fprintf(w, " (retry: pawshop open %s)", page.Path)
		}
		fmt.Fprintln(w)
	}
	if s.Status == view.StatusEmpty {
		fmt.Fprintln(w, "Nothing here yet.")
	}
	if s.Data == nil {
		return nil
	}

	raw, err := json.Marshal(s.Data)
	if err != nil {
		return fmt.Errorf("encode screen: %w", err)
	}
	fmt.Fprintln(w)
	return renderValue(w, "", gjson.ParseBytes(raw))
}

func renderShell(w io.Writer, sv view.ShellView) {
	links := make([]string, 0, len(sv.Nav.Desktop))
	for _, l := range sv.Nav.Desktop {
		label := l.Label
		if l.Active {
			label = "*" + label
		}
		links = append(links, label)
	}
	fmt.Fprintf(w, "%s | %s", sv.Shell, strings.Join(links, " | "))
	if sv.User != "" {
		fmt.Fprintf(w, " | %s (%s)", sv.User, sv.Role)
	}
	fmt.Fprintln(w)
}

// renderValue prints v under prefix. Objects are flattened to dotted keys.
func renderValue(w io.Writer, prefix string, v gjson.Result) error {
	switch {
	case v.IsObject():
		var err error
		v.ForEach(func(key, value gjson.Result) bool {
			err = renderValue(w, join(prefix, key.String()), value)
			return err == nil
		})
		return err
	case v.IsArray():
		return renderList(w, prefix, v.Array())
	default:
		if prefix == "" {
			_, err := fmt.Fprintln(w, v.String())
			return err
		}
		_, err := fmt.Fprintf(w, "%s: %s\n", prefix, v.String())
		return err
	}
}

// renderList prints a list of objects as a table with the first row's
// scalar fields as columns, and anything else one item per line.
func renderList(w io.Writer, name string, items []gjson.Result) error {
	if len(items) == 0 {
		_, err := fmt.Fprintf(w, "%s: (none)\n", name)
		return err
	}
	if !items[0].IsObject() {
		values := make([]string, len(items))
		for i, it := range items {
			values[i] = it.String()
		}
		_, err := fmt.Fprintf(w, "%s: %s\n", name, strings.Join(values, ", "))
		return err
	}

	var cols []string
	items[0].ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() && !value.IsArray() {
			cols = append(cols, key.String())
		}
		return true
	})

	if name != "" {
		fmt.Fprintf(w, "%s:\n", name)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(cols, "\t")))
	for _, it := range items {
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = it.Get(col).String()
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
