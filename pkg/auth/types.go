package auth

import "errors"

// Principal is the verified caller of a request. It is created per request
// by the identity provider and never persisted.
type Principal struct {
	ID              string `json:"id"`
	Email           string `json:"email,omitempty"`
	IsPlatformAdmin bool   `json:"is_platform_admin"`
}

// ErrUnauthenticated indicates a missing, malformed, or rejected credential.
var ErrUnauthenticated = errors.New("unauthenticated")
