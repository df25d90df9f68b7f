// Package contextkeys provides centralized context key definitions
//
// All context keys used across the application must be defined here.
// This prevents typos, documents dependencies, and makes key usage discoverable.
package contextkeys

import "context"

// Key is the type for context keys to prevent collisions
type Key string

const (
	// PrincipalKey contains *auth.Principal
	// Set by: middleware.Authenticate (pkg/middleware/auth.go)
	// Required by: all protected endpoints, customer gate
	PrincipalKey Key = "principal"

	// TokenKey contains the raw bearer token string.
	// Retained because downstream identity-provider calls are
	// credential-scoped, not session-scoped.
	TokenKey Key = "bearer_token"

	// AccessKey contains *tenancy.AccessContext
	// Set by: middleware.RequireCustomer (pkg/middleware/customer.go)
	// Required by: every tenant-scoped handler
	AccessKey Key = "access_context"

	// RequestIDKey contains the request ID string (UUID)
	// Set by: middleware.RequestID
	// Used by: logger, error responses
	RequestIDKey Key = "request_id"
)

// WithPrincipal adds the authenticated principal to the context
func WithPrincipal(ctx context.Context, principal interface{}) context.Context {
	return context.WithValue(ctx, PrincipalKey, principal)
}

// WithToken adds the raw bearer token to the context
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

// WithAccess adds the resolved access context to the context
func WithAccess(ctx context.Context, access interface{}) context.Context {
	return context.WithValue(ctx, AccessKey, access)
}

// WithRequestID adds the request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetToken retrieves the raw bearer token from the context
func GetToken(ctx context.Context) string {
	if token, ok := ctx.Value(TokenKey).(string); ok {
		return token
	}
	return ""
}

// GetRequestID retrieves the request ID from the context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
