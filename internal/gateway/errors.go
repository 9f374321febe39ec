// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package gateway

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Kind classifies a failed call.
type Kind int

const (
	// KindNetwork means no response was received.
	KindNetwork Kind = iota + 1
	// KindTimeout means the 30s client timeout (or the caller's deadline) elapsed.
	KindTimeout
	// KindAuthExpired means the server rejected the credential (401).
	KindAuthExpired
	// KindRejected is any other 4xx; Message carries the server's explanation.
	KindRejected
	// KindServer is a 5xx or a 2xx body that could not be decoded.
	KindServer
	// KindUnavailable means the circuit breaker refused the call.
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindAuthExpired:
		return "auth_expired"
	case KindRejected:
		return "rejected"
	case KindServer:
		return "server"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// fallbackMessage is shown when the server supplied no usable message.
func (k Kind) fallbackMessage() string {
	switch k {
	case KindNetwork:
		return "Unable to reach the server"
	case KindTimeout:
		return "The request timed out"
	case KindAuthExpired:
		return "Your session has expired, please log in again"
	case KindRejected:
		return "The request was rejected"
	case KindUnavailable:
		return "The service is temporarily unavailable"
	default:
		return "Something went wrong, please try again"
	}
}

// ErrAuthExpired matches any gateway error of KindAuthExpired under errors.Is.
var ErrAuthExpired = errors.New("authentication expired")

// Error is the single failure shape returned by the gateway.
type Error struct {
	Kind    Kind
	Status  int
	Method  string
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrAuthExpired) match on kind.
func (e *Error) Is(target error) bool {
	return target == ErrAuthExpired && e.Kind == KindAuthExpired
}

// KindOf returns the gateway kind of err, or 0 when err is not a gateway error.
func KindOf(err error) Kind {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return 0
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Status
	}
	return 0
}

// MessageOf returns the human-readable message for err.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Message
	}
	return err.Error()
}

// messagePaths are tried in order when reading a server explanation.
var messagePaths = []string{"message", "error.message", "error", "msg", "errors.0.msg", "errors.0.message"}

// serverMessage extracts the server-supplied message from an error body.
func serverMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range messagePaths {
		if v := gjson.GetBytes(body, path); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

func newError(kind Kind, status int, method, path, message string, cause error) *Error {
	if message == "" {
		message = kind.fallbackMessage()
	}
	return &Error{Kind: kind, Status: status, Method: method, Path: path, Message: message, Err: cause}
}

// classifyStatus maps a non-2xx status to a kind.
func classifyStatus(status int) Kind {
	switch {
	case status == 401:
		return KindAuthExpired
	case status >= 400 && status < 500:
		return KindRejected
	default:
		return KindServer
	}
}
