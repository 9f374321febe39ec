// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

/*
Package config loads Pawshop configuration with Koanf v2.

Sources are layered, later ones winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $PAWSHOP_CONFIG, config.yaml, config.yml,
    /etc/pawshop/config.yaml, /etc/pawshop/config.yml
 3. PAWSHOP_* environment variables, mapped through envMappings

Example file:

	api:
	  base_url: https://api.pawshop.vn
	  timeout: 30s
	session:
	  store_path: /var/lib/pawshop/session
	server:
	  port: 5173
	  cors_origins: [http://localhost:5173]
	catalog:
	  page_size: 12

Common environment variables:

	PAWSHOP_API_URL          api.base_url
	PAWSHOP_SESSION_PATH     session.store_path
	PAWSHOP_SESSION_IN_MEMORY session.in_memory
	PAWSHOP_PORT             server.port
	PAWSHOP_CORS_ORIGINS     server.cors_origins (comma-separated)
	PAWSHOP_AUTHZ_POLICY     authz.policy_path
	PAWSHOP_LOG_LEVEL        logging.level

The API timeout defaults to 30s and is not meant to be tuned per call.
*/
package config
