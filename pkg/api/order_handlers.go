package api

import (
	"net/http"

	"github.com/platefwd/orderdesk/pkg/httputil"
	"github.com/platefwd/orderdesk/pkg/middleware"
	"github.com/platefwd/orderdesk/pkg/tenancy"
)

var validOrderStatuses = map[string]bool{
	OrderStatusPending:   true,
	OrderStatusPreparing: true,
	OrderStatusReady:     true,
	OrderStatusCompleted: true,
	OrderStatusCancelled: true,
}

// handleListOrders lists the orders of a branch the caller can access.
func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
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

	orders, err := s.storage.ListOrders(r.Context(), branchID)
	if err != nil {
		s.logger.WithError(err).WithField("branch_id", branchID).Error("failed to list orders")
		httputil.WriteInternalError(w, err)
		return
	}

	s.metrics.AuthzDecisionsTotal.WithLabelValues("allowed").Inc()
	httputil.WriteSuccess(w, map[string]interface{}{
		"orders": orders,
		"role":   branchAccess.Role,
	})
}

// handleUpdateOrder moves an order to a new status. Staff may work orders,
// so the gate is the order-write predicate rather than the catalog one.
func (s *Server) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccess(r)
	if access == nil {
		httputil.WriteUnauthorized(w, "authentication required")
		return
	}

	orderID, ok := httputil.ParsePathStringOrError(w, r, "order_id")
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !validOrderStatuses[req.Status] {
		httputil.WriteBadRequest(w, "invalid order status: "+req.Status)
		return
	}

	branchID, err := s.storage.GetOrderBranch(r.Context(), orderID)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Error("failed to look up order")
		httputil.WriteInternalError(w, err)
		return
	}
	if branchID == "" {
		httputil.WriteNotFound(w, "order not found")
		return
	}

	branchAccess, err := s.checker.CheckBranchAccess(r.Context(), access, branchID)
	if err != nil {
		writeAccessError(w, s.metrics, err)
		return
	}
	if err := tenancy.RequireOrderWrite(branchAccess.Role); err != nil {
		writeAccessError(w, s.metrics, err)
		return
	}

	if err := s.storage.UpdateOrderStatus(r.Context(), orderID, req.Status); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Error("failed to update order")
		httputil.WriteInternalError(w, err)
		return
	}

	s.metrics.AuthzDecisionsTotal.WithLabelValues("allowed").Inc()
	httputil.WriteNoContent(w)
}
