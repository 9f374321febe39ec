// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package services

import (
	"context"
	"fmt"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/pawshop/internal/logging"
)

// Starter restores the client's session. *app.App satisfies it.
type Starter interface {
	Start(ctx context.Context) error
}

// SessionRestoreService restores the stored session once. Until it has,
// the guard answers every navigation with the loading outcome.
type SessionRestoreService struct {
	client Starter
	name   string
}

// NewSessionRestoreService wraps client.
func NewSessionRestoreService(client Starter) *SessionRestoreService {
	return &SessionRestoreService{client: client, name: "session-restore"}
}

// Serve restores and then returns suture.ErrDoNotRestart. A failure is
// returned as is, so the supervisor retries with backoff.
func (s *SessionRestoreService) Serve(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	logging.Debug().Msg("Session restore complete")
	return suture.ErrDoNotRestart
}

func (s *SessionRestoreService) String() string {
	return s.name
}
