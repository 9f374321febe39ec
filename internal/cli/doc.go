// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

/*
Package cli is the pawshop command line.

	pawshop serve [--host H] [--port P]
	pawshop login --email E [--password P] [--from PATH]
	pawshop register --name N --email E [--password P] [--phone T] [--from PATH]
	pawshop logout
	pawshop whoami
	pawshop open PATH [--search S] [--category C] [--sort F] [--order asc|desc] [--page N]

Every command shares the --config, --log-level and --output flags. Logs go
to standard error; results go to standard output, as text or, with
-o json, as the same JSON the view host returns.

The session is kept in the durable local store between invocations, so
login once and then open as many routes as needed.
*/
package cli
