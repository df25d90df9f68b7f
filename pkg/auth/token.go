package auth

import (
	"fmt"
	"strings"
)

// ParseBearer extracts the token from an Authorization header value.
// The header must be of the form "Bearer <token>".
func ParseBearer(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("%w: missing authorization header", ErrUnauthenticated)
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", fmt.Errorf("%w: invalid authorization header format", ErrUnauthenticated)
	}

	return parts[1], nil
}
