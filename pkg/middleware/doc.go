// Package middleware provides the HTTP request pipeline: authentication,
// customer-area gating, request IDs, and rate limiting.
//
// # Pipeline
//
// Tenant-facing routes run the stages in order; each stage depends on the
// previous one's context attachments:
//
//	router.Use(middleware.RequestID)
//	router.Use(middleware.Authenticate(identityProvider))
//	router.Use(middleware.RequireCustomer(membershipStore))
//
// Authenticate parses the Bearer credential, delegates verification to the
// identity provider, and attaches the principal plus the raw token.
// RequireCustomer excludes platform admins from the customer area, loads
// the caller's ACTIVE membership lists, and attaches the AccessContext
// every downstream handler reuses.
//
// DistributedRateLimiter applies a Redis-backed fixed-window limit keyed
// by principal, failing open on Redis errors.
//
// # Related Packages
//
//   - pkg/auth: credential parsing and verification
//   - pkg/tenancy: the access context and membership queries
package middleware
