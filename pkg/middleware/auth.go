package middleware

import (
	"net/http"

	"github.com/platefwd/orderdesk/pkg/auth"
	"github.com/platefwd/orderdesk/pkg/contextkeys"
	"github.com/platefwd/orderdesk/pkg/httputil"
)

// Authenticate turns the Authorization header into a verified principal.
// The raw token is retained on the context because downstream identity
// calls are credential-scoped, not session-scoped.
func Authenticate(provider auth.IdentityProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.ParseBearer(r.Header.Get("Authorization"))
			if err != nil {
				httputil.WriteUnauthorized(w, err.Error())
				return
			}

			principal, err := provider.Verify(r.Context(), token)
			if err != nil {
				httputil.WriteUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := contextkeys.WithPrincipal(r.Context(), principal)
			ctx = contextkeys.WithToken(ctx, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipal extracts the verified principal from the request, or nil
// when the request never passed Authenticate.
func GetPrincipal(r *http.Request) *auth.Principal {
	principal, ok := r.Context().Value(contextkeys.PrincipalKey).(*auth.Principal)
	if !ok {
		return nil
	}
	return principal
}
