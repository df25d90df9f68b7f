package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/platefwd/orderdesk/pkg/httputil"
	"github.com/platefwd/orderdesk/pkg/members"
	"github.com/platefwd/orderdesk/pkg/middleware"
	"github.com/platefwd/orderdesk/pkg/tenancy"
)

var brandRoles = map[string]tenancy.BrandRole{
	string(tenancy.BrandRoleOwner):   tenancy.BrandRoleOwner,
	string(tenancy.BrandRoleAdmin):   tenancy.BrandRoleAdmin,
	string(tenancy.BrandRoleManager): tenancy.BrandRoleManager,
	string(tenancy.BrandRoleMember):  tenancy.BrandRoleMember,
}

var branchRoles = map[string]tenancy.BranchRole{
	string(tenancy.BranchRoleOwner):  tenancy.BranchRoleOwner,
	string(tenancy.BranchRoleAdmin):  tenancy.BranchRoleAdmin,
	string(tenancy.BranchRoleStaff):  tenancy.BranchRoleStaff,
	string(tenancy.BranchRoleViewer): tenancy.BranchRoleViewer,
}

func (s *Server) handleAddBrandMember(w http.ResponseWriter, r *http.Request) {
	brandID, ok := httputil.ParsePathStringOrError(w, r, "brand_id")
	if !ok {
		return
	}

	var req members.AddMemberRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.UserID, "user_id") {
		return
	}
	role, ok := brandRoles[req.Role]
	if !ok {
		httputil.WriteBadRequest(w, "invalid brand role: "+req.Role)
		return
	}

	if err := s.members.AddBrandMember(r.Context(), brandID, req.UserID, role); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			httputil.WriteConflict(w, err.Error())
			return
		}
		s.logger.WithError(err).WithField("brand_id", brandID).Error("failed to add brand member")
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteCreated(w, map[string]string{
		"brand_id": brandID,
		"user_id":  req.UserID,
		"role":     req.Role,
	})
}

func (s *Server) handleUpdateBrandMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	brandID, userID := vars["brand_id"], vars["user_id"]

	var req members.UpdateStatusRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if err := s.members.UpdateBrandMemberStatus(r.Context(), brandID, userID, req.Status); err != nil {
		writeMemberError(w, s, err, "failed to update brand member")
		return
	}

	httputil.WriteNoContent(w)
}

func (s *Server) handleRemoveBrandMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	brandID, userID := vars["brand_id"], vars["user_id"]

	if err := s.members.RemoveBrandMember(r.Context(), brandID, userID); err != nil {
		writeMemberError(w, s, err, "failed to remove brand member")
		return
	}

	httputil.WriteNoContent(w)
}

func (s *Server) handleAddBranchMember(w http.ResponseWriter, r *http.Request) {
	branchID, ok := httputil.ParsePathStringOrError(w, r, "branch_id")
	if !ok {
		return
	}

	var req members.AddMemberRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.UserID, "user_id") {
		return
	}
	role, ok := branchRoles[req.Role]
	if !ok {
		httputil.WriteBadRequest(w, "invalid branch role: "+req.Role)
		return
	}

	if err := s.members.AddBranchMember(r.Context(), branchID, req.UserID, role); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			httputil.WriteConflict(w, err.Error())
			return
		}
		s.logger.WithError(err).WithField("branch_id", branchID).Error("failed to add branch member")
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteCreated(w, map[string]string{
		"branch_id": branchID,
		"user_id":   req.UserID,
		"role":      req.Role,
	})
}

func (s *Server) handleUpdateBranchMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	branchID, userID := vars["branch_id"], vars["user_id"]

	var req members.UpdateStatusRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if err := s.members.UpdateBranchMemberStatus(r.Context(), branchID, userID, req.Status); err != nil {
		writeMemberError(w, s, err, "failed to update branch member")
		return
	}

	httputil.WriteNoContent(w)
}

func (s *Server) handleRemoveBranchMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	branchID, userID := vars["branch_id"], vars["user_id"]

	if err := s.members.RemoveBranchMember(r.Context(), branchID, userID); err != nil {
		writeMemberError(w, s, err, "failed to remove branch member")
		return
	}

	httputil.WriteNoContent(w)
}

func (s *Server) handleCreateInvitation(w http.ResponseWriter, r *http.Request) {
	brandID, ok := httputil.ParsePathStringOrError(w, r, "brand_id")
	if !ok {
		return
	}
	principal := middleware.GetPrincipal(r)
	if principal == nil {
		httputil.WriteUnauthorized(w, "authentication required")
		return
	}

	var req members.InviteRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Email, "email") {
		return
	}
	if _, ok := brandRoles[string(req.Role)]; !ok {
		httputil.WriteBadRequest(w, "invalid brand role: "+string(req.Role))
		return
	}

	invitation := &members.Invitation{
		BrandID:   brandID,
		Email:     req.Email,
		Role:      req.Role,
		InvitedBy: principal.ID,
	}
	if err := s.members.CreateInvitation(r.Context(), invitation); err != nil {
		s.logger.WithError(err).WithField("brand_id", brandID).Error("failed to create invitation")
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteCreated(w, invitation)
}

func (s *Server) handleRevokeInvitation(w http.ResponseWriter, r *http.Request) {
	idStr, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "invalid invitation id")
		return
	}

	if err := s.members.RevokeInvitation(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			httputil.WriteNotFound(w, err.Error())
			return
		}
		s.logger.WithError(err).Error("failed to revoke invitation")
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

// handleAcceptInvitation lets an authenticated user redeem an invitation
// token. No membership is required yet; the acceptance is what creates it.
func (s *Server) handleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r)
	if principal == nil {
		httputil.WriteUnauthorized(w, "authentication required")
		return
	}

	var req struct {
		Token string `json:"token"`
	}
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Token, "token") {
		return
	}

	if err := s.members.AcceptInvitation(r.Context(), req.Token, principal.ID); err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			httputil.WriteNotFound(w, err.Error())
		case strings.Contains(err.Error(), "expired"),
			strings.Contains(err.Error(), "already accepted"):
			httputil.WriteConflict(w, err.Error())
		default:
			s.logger.WithError(err).Error("failed to accept invitation")
			httputil.WriteInternalError(w, err)
		}
		return
	}

	httputil.WriteNoContent(w)
}

// writeMemberError maps membership-service errors onto HTTP responses.
func writeMemberError(w http.ResponseWriter, s *Server, err error, logMsg string) {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		httputil.WriteNotFound(w, msg)
	case strings.Contains(msg, "invalid status transition"):
		httputil.WriteConflict(w, msg)
	default:
		s.logger.WithError(err).Error(logMsg)
		httputil.WriteInternalError(w, err)
	}
}
