// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

/*
Package services adapts the view host's components to suture's
Serve(ctx) error contract.

  - HTTPServerService: ListenAndServe with graceful Shutdown on cancel
  - WebSocketHubService: the hub loop, attached to the state store and
    navigator for as long as it runs
  - SessionRestoreService: restores the stored session once, then asks not
    to be restarted

Every wrapper implements fmt.Stringer so supervisor events name it.
*/
package services
