package tenancy

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// Resolver computes the effective unified role for a request scope.
//
// Tie-break order: explicit branch membership beats brand-membership
// fallback, which beats the coarse unscoped probe. Platform admins
// short-circuit everything. When both brand and branch identifiers are
// supplied, only the brand branch executes and the branch identifier is
// passed through unvalidated.
type Resolver struct {
	store Store
}

// NewResolver creates a resolver backed by the given store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// ResolveScope computes the ScopeResult for the request's scope.
func (r *Resolver) ResolveScope(ctx context.Context, access *AccessContext, scope Scope) (*ScopeResult, error) {
	// Platform admins skip membership validation; identifiers are copied
	// through verbatim.
	if access.Principal.IsPlatformAdmin {
		return &ScopeResult{
			Role:     RoleOwner,
			BrandID:  scope.BrandID,
			BranchID: scope.BranchID,
		}, nil
	}

	if scope.BrandID != "" {
		return r.resolveBrand(ctx, access, scope.BrandID)
	}
	if scope.BranchID != "" {
		return r.resolveBranch(ctx, access, scope.BranchID)
	}

	return r.resolveUnscoped(access), nil
}

// resolveUnscoped derives a coarse role from the preloaded brand
// memberships for listing-style endpoints that aggregate across all of a
// principal's tenants.
func (r *Resolver) resolveUnscoped(access *AccessContext) *ScopeResult {
	role := RoleStaff
	for _, m := range access.BrandMemberships {
		if m.Status != StatusActive {
			continue
		}
		if m.Role == BrandRoleOwner {
			role = RoleOwner
			break
		}
	}
	return &ScopeResult{Role: role}
}

func (r *Resolver) resolveBrand(ctx context.Context, access *AccessContext, brandID string) (*ScopeResult, error) {
	membership, err := r.store.GetBrandMembership(ctx, brandID, access.Principal.ID)
	if err != nil {
		return nil, checkFailed("brand scope resolution", err)
	}
	if membership == nil || membership.Status != StatusActive {
		return nil, Denied("brand membership required")
	}

	return &ScopeResult{
		Role:    membership.Role.Unified(),
		BrandID: brandID,
	}, nil
}

func (r *Resolver) resolveBranch(ctx context.Context, access *AccessContext, branchID string) (*ScopeResult, error) {
	membership, err := r.store.GetBranchMembership(ctx, branchID, access.Principal.ID)
	if err != nil {
		return nil, checkFailed("branch scope resolution", err)
	}
	if membership != nil && membership.Status == StatusActive {
		return &ScopeResult{
			Role:     membership.Role.Unified(),
			BranchID: branchID,
		}, nil
	}

	// No usable branch membership: fall back to the owning brand.
	branch, err := r.store.GetBranch(ctx, branchID)
	if err != nil {
		return nil, checkFailed("branch lookup", err)
	}
	if branch == nil {
		return nil, Denied("branch not found or not permitted")
	}

	brandMembership, err := r.store.GetBrandMembership(ctx, branch.BrandID, access.Principal.ID)
	if err != nil {
		return nil, checkFailed("brand fallback resolution", err)
	}
	if brandMembership == nil || brandMembership.Status != StatusActive {
		return nil, Denied("brand membership required")
	}

	return &ScopeResult{
		Role:     brandMembership.Role.Unified(),
		BrandID:  branch.BrandID,
		BranchID: branchID,
	}, nil
}

// ScopeFromRequest extracts the brand/branch scope from a request. For
// each identifier the precedence is path parameter > query parameter >
// body field; the first non-empty trimmed string wins. Array-valued query
// parameters contribute their first element.
//
// The body, when JSON, is decoded into a shallow map; pass nil when the
// handler has already consumed it and supply the fields via the map
// instead.
func ScopeFromRequest(r *http.Request, body map[string]interface{}) Scope {
	if body == nil && r.Body != nil && r.Method != http.MethodGet {
		// Shallow decode for scope extraction only. Handlers that need
		// the body decode their own DTO and pass the map explicitly.
		var decoded map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&decoded); err == nil {
			body = decoded
		}
	}

	return Scope{
		BrandID:  scopeField(r, body, "brand_id"),
		BranchID: scopeField(r, body, "branch_id"),
	}
}

func scopeField(r *http.Request, body map[string]interface{}, key string) string {
	if v := strings.TrimSpace(mux.Vars(r)[key]); v != "" {
		return v
	}
	if values, ok := r.URL.Query()[key]; ok && len(values) > 0 {
		if v := strings.TrimSpace(values[0]); v != "" {
			return v
		}
	}
	if body != nil {
		if raw, ok := body[key]; ok {
			if s, ok := raw.(string); ok {
				if v := strings.TrimSpace(s); v != "" {
					return v
				}
			}
		}
	}
	return ""
}
