// Package common contains shared constants and sentinel errors used across
// the VR-Doctor client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrUnauthorized reports a request the server rejected with 401; the
	// transport signs the session out before returning it.
	ErrUnauthorized = errors.New("unauthorized")

	// Sign-in exchange errors.
	ErrNoTokenInResponse = errors.New("response contains no token")
	ErrEmptyResponse     = errors.New("empty response")
)
