package api

import (
	"net/http"

	"github.com/platefwd/orderdesk/pkg/httputil"
	"github.com/platefwd/orderdesk/pkg/middleware"
	"github.com/platefwd/orderdesk/pkg/tenancy"
)

// handleListBrands lists every brand the caller holds an ACTIVE brand
// membership in, with the coarse unscoped role alongside.
func (s *Server) handleListBrands(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccess(r)
	if access == nil {
		httputil.WriteUnauthorized(w, "authentication required")
		return
	}

	result, err := s.resolver.ResolveScope(r.Context(), access, tenancy.Scope{})
	if err != nil {
		writeAccessError(w, s.metrics, err)
		return
	}

	var brandIDs []string
	for _, m := range access.BrandMemberships {
		if m.Status == tenancy.StatusActive {
			brandIDs = append(brandIDs, m.BrandID)
		}
	}

	brands, err := s.storage.ListBrands(r.Context(), brandIDs)
	if err != nil {
		s.logger.WithError(err).Error("failed to list brands")
		httputil.WriteInternalError(w, err)
		return
	}

	s.metrics.AuthzDecisionsTotal.WithLabelValues("allowed").Inc()
	httputil.WriteSuccess(w, map[string]interface{}{
		"brands": brands,
		"role":   result.Role,
	})
}

// handleGetBrand returns a single brand the caller is scoped into.
func (s *Server) handleGetBrand(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccess(r)
	if access == nil {
		httputil.WriteUnauthorized(w, "authentication required")
		return
	}

	result, err := s.resolver.ResolveScope(r.Context(), access, tenancy.ScopeFromRequest(r, nil))
	if err != nil {
		writeAccessError(w, s.metrics, err)
		return
	}

	brand, err := s.storage.GetBrand(r.Context(), result.BrandID)
	if err != nil {
		s.logger.WithError(err).WithField("brand_id", result.BrandID).Error("failed to get brand")
		httputil.WriteInternalError(w, err)
		return
	}
	if brand == nil {
		httputil.WriteNotFound(w, "brand not found")
		return
	}

	s.metrics.AuthzDecisionsTotal.WithLabelValues("allowed").Inc()
	httputil.WriteSuccess(w, map[string]interface{}{
		"brand": brand,
		"role":  result.Role,
	})
}
