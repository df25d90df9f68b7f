// Package auth defines the authenticated principal and the identity
// provider boundary.
//
// Token verification is delegated to an external identity provider; this
// package only parses the Authorization header and maps verified claims
// onto a Principal. It issues nothing and stores nothing.
//
// # Usage
//
// Verify a bearer credential:
//
//	provider, err := auth.NewOIDCProvider(ctx, auth.OIDCConfig{
//		IssuerURL: "https://id.example.com",
//		ClientID:  "orderdesk",
//	})
//	principal, err := provider.Verify(ctx, rawToken)
//
// Tests substitute a StaticProvider so no network identity provider is
// required.
//
// # Related Packages
//
//   - pkg/middleware: Authenticate middleware that drives this package
//   - pkg/tenancy: consumes the Principal for scope resolution
package auth
