package api

import "errors"

var (
	// ErrUnauthorized means the backend refused the credentials or token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable means the request could not complete: network failure,
	// timeout, or a 5xx from the backend.
	ErrUnavailable = errors.New("server unavailable")

	// ErrRejected means the request reached the backend and was refused
	// (wrong code, duplicate email, etc). The wrapped message carries the
	// backend's reason when one was provided.
	ErrRejected = errors.New("request rejected")
)
