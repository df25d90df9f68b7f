package middleware

import (
	"net/http"

	"github.com/platefwd/orderdesk/pkg/contextkeys"
	"github.com/platefwd/orderdesk/pkg/httputil"
	"github.com/platefwd/orderdesk/pkg/tenancy"
)

// RequireCustomer gates tenant-facing endpoints. Platform admins are
// rejected outright: the tenant and admin contexts are strictly separated.
// Non-admin callers must hold at least one ACTIVE membership; both
// membership lists are preloaded onto the request's AccessContext so
// downstream handlers never re-query them.
//
// A failed membership query is distinct from "no memberships": it denies
// fail-closed rather than reporting an empty list.
func RequireCustomer(store tenancy.MembershipStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := GetPrincipal(r)
			token := contextkeys.GetToken(r.Context())
			if principal == nil || token == "" {
				httputil.WriteUnauthorized(w, "authentication required")
				return
			}

			if principal.IsPlatformAdmin {
				httputil.WriteForbidden(w, "admins cannot access the customer area")
				return
			}

			// Two independent reads, not a join: either list may be empty
			// while the other admits the caller.
			brandMemberships, err := store.ActiveBrandMemberships(r.Context(), principal.ID)
			if err != nil {
				httputil.WriteForbidden(w, "authorization check failed")
				return
			}
			branchMemberships, err := store.ActiveBranchMemberships(r.Context(), principal.ID)
			if err != nil {
				httputil.WriteForbidden(w, "authorization check failed")
				return
			}

			if len(brandMemberships) == 0 && len(branchMemberships) == 0 {
				httputil.WriteForbidden(w, "no active memberships")
				return
			}

			access := &tenancy.AccessContext{
				Principal:         *principal,
				Token:             token,
				BrandMemberships:  brandMemberships,
				BranchMemberships: branchMemberships,
			}
			ctx := contextkeys.WithAccess(r.Context(), access)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin admits only platform administrators.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := GetPrincipal(r)
		if principal == nil {
			httputil.WriteUnauthorized(w, "authentication required")
			return
		}
		if !principal.IsPlatformAdmin {
			httputil.WriteForbidden(w, "platform administrator required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetAccess extracts the resolved access context from the request, or nil
// when the request never passed RequireCustomer.
func GetAccess(r *http.Request) *tenancy.AccessContext {
	access, ok := r.Context().Value(contextkeys.AccessKey).(*tenancy.AccessContext)
	if !ok {
		return nil
	}
	return access
}
