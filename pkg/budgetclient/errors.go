package budgetclient

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned before any request is made when the
	// session has no token.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrUnauthorized is returned when the API rejects the token. The
	// session is cleared when this happens.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource already exists")
	ErrInvalid      = errors.New("invalid request")
	ErrServerError  = errors.New("server error")
)

// Error is a non-2xx response from the API.
type Error struct {
	StatusCode int
	Title      string
	Detail     string
	Err        error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("budget api: %d %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("budget api: %d %s", e.StatusCode, e.Title)
}

func (e *Error) Unwrap() error {
	return e.Err
}
