// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

// Package main is the entry point for the pawshop client.
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables prefixed PAWSHOP_ (PAWSHOP_API_URL, ...)
//   - Config file (PAWSHOP_CONFIG or ./config.yaml)
//   - Built-in defaults
//
// Example:
//
//	export PAWSHOP_API_URL=https://api.pawshop.example
//	pawshop login --email admin@pawshop.example
//	pawshop open /admin/inventory
//	pawshop serve --port 8080
package main

import "github.com/tomtom215/pawshop/internal/cli"

func main() {
	cli.Execute()
}
