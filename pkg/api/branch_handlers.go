package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/platefwd/orderdesk/pkg/httputil"
	"github.com/platefwd/orderdesk/pkg/middleware"
	"github.com/platefwd/orderdesk/pkg/tenancy"
)

// handleListBranches lists the branches of a brand the caller is scoped
// into.
func (s *Server) handleListBranches(w http.ResponseWriter, r *http.Request) {
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

	branches, err := s.storage.ListBranches(r.Context(), result.BrandID)
	if err != nil {
		s.logger.WithError(err).WithField("brand_id", result.BrandID).Error("failed to list branches")
		httputil.WriteInternalError(w, err)
		return
	}

	s.metrics.AuthzDecisionsTotal.WithLabelValues("allowed").Inc()
	httputil.WriteSuccess(w, map[string]interface{}{
		"branches": branches,
		"role":     result.Role,
	})
}

// handleCreateBranch creates a branch under a brand. Only brand owners may
// add locations.
func (s *Server) handleCreateBranch(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccess(r)
	if access == nil {
		httputil.WriteUnauthorized(w, "authentication required")
		return
	}

	var req CreateBranchRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.BrandID, "brand_id") {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if !httputil.RequireNonEmpty(w, req.Name, "name") {
		return
	}

	// The body was already consumed; feed the scope fields in explicitly.
	scope := tenancy.ScopeFromRequest(r, map[string]interface{}{"brand_id": req.BrandID})
	result, err := s.resolver.ResolveScope(r.Context(), access, scope)
	if err != nil {
		writeAccessError(w, s.metrics, err)
		return
	}
	if result.Role != tenancy.RoleOwner {
		s.metrics.AuthzDecisionsTotal.WithLabelValues("denied").Inc()
		httputil.WriteForbidden(w, "owner role required to create branches")
		return
	}

	branch := &tenancy.Branch{
		ID:      uuid.NewString(),
		BrandID: result.BrandID,
		Name:    req.Name,
	}
	if err := s.storage.CreateBranch(r.Context(), branch); err != nil {
		s.logger.WithError(err).WithField("brand_id", result.BrandID).Error("failed to create branch")
		httputil.WriteInternalError(w, err)
		return
	}

	s.metrics.AuthzDecisionsTotal.WithLabelValues("allowed").Inc()
	httputil.WriteCreated(w, branch)
}

// handleGetBranch returns a branch the caller can access, with the raw
// domain role the check admitted under.
func (s *Server) handleGetBranch(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccess(r)
	if access == nil {
		httputil.WriteUnauthorized(w, "authentication required")
		return
	}

	branchID, ok := httputil.ParsePathStringOrError(w, r, "branch_id")
	if !ok {
		return
	}

	branchAccess, err := s.checker.CheckBranchAccess(r.Context(), access, branchID)
	if err != nil {
		writeAccessError(w, s.metrics, err)
		return
	}

	s.metrics.AuthzDecisionsTotal.WithLabelValues("allowed").Inc()
	httputil.WriteSuccess(w, map[string]interface{}{
		"branch": branchAccess.Branch,
		"role":   branchAccess.Role,
	})
}

// handleRenameBranch renames a branch. Requires catalog-write permission.
func (s *Server) handleRenameBranch(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccess(r)
	if access == nil {
		httputil.WriteUnauthorized(w, "authentication required")
		return
	}

	branchID, ok := httputil.ParsePathStringOrError(w, r, "branch_id")
	if !ok {
		return
	}

	var req UpdateBranchRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if !httputil.RequireNonEmpty(w, req.Name, "name") {
		return
	}

	branchAccess, err := s.checker.CheckBranchAccess(r.Context(), access, branchID)
	if err != nil {
		writeAccessError(w, s.metrics, err)
		return
	}
	if err := tenancy.RequireProductWrite(branchAccess.Role); err != nil {
		writeAccessError(w, s.metrics, err)
		return
	}

	if err := s.storage.RenameBranch(r.Context(), branchID, req.Name); err != nil {
		s.logger.WithError(err).WithField("branch_id", branchID).Error("failed to rename branch")
		httputil.WriteInternalError(w, err)
		return
	}

	s.metrics.AuthzDecisionsTotal.WithLabelValues("allowed").Inc()
	httputil.WriteNoContent(w)
}

// handleGetCategory returns a category the caller can access through its
// owning branch.
func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccess(r)
	if access == nil {
		httputil.WriteUnauthorized(w, "authentication required")
		return
	}

	categoryID, ok := httputil.ParsePathStringOrError(w, r, "category_id")
	if !ok {
		return
	}

	categoryAccess, err := s.checker.CheckCategoryAccess(r.Context(), access, categoryID)
	if err != nil {
		writeAccessError(w, s.metrics, err)
		return
	}

	s.metrics.AuthzDecisionsTotal.WithLabelValues("allowed").Inc()
	httputil.WriteSuccess(w, map[string]interface{}{
		"category": categoryAccess.Category,
		"role":     categoryAccess.Role,
	})
}
