package api

import (
	"net/http"

	"github.com/platefwd/orderdesk/pkg/httputil"
	"github.com/platefwd/orderdesk/pkg/middleware"
	"github.com/platefwd/orderdesk/pkg/tenancy"
)

// handleGetProduct returns a product the caller can access through its
// owning branch.
func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccess(r)
	if access == nil {
		httputil.WriteUnauthorized(w, "authentication required")
		return
	}

	productID, ok := httputil.ParsePathStringOrError(w, r, "product_id")
	if !ok {
		return
	}

	productAccess, err := s.checker.CheckProductAccess(r.Context(), access, productID)
	if err != nil {
		writeAccessError(w, s.metrics, err)
		return
	}

	s.metrics.AuthzDecisionsTotal.WithLabelValues("allowed").Inc()
	httputil.WriteSuccess(w, map[string]interface{}{
		"product": productAccess.Product,
		"role":    productAccess.Role,
	})
}

// handleUpdateProduct updates product fields. Requires catalog-write
// permission; staff can not touch the catalog.
func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccess(r)
	if access == nil {
		httputil.WriteUnauthorized(w, "authentication required")
		return
	}

	productID, ok := httputil.ParsePathStringOrError(w, r, "product_id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if req.Name == nil && req.PriceCents == nil {
		httputil.WriteBadRequest(w, "nothing to update")
		return
	}
	if req.PriceCents != nil && *req.PriceCents < 0 {
		httputil.WriteBadRequest(w, "price_cents must not be negative")
		return
	}

	productAccess, err := s.checker.CheckProductAccess(r.Context(), access, productID)
	if err != nil {
		writeAccessError(w, s.metrics, err)
		return
	}
	if err := tenancy.RequireProductWrite(productAccess.Role); err != nil {
		writeAccessError(w, s.metrics, err)
		return
	}

	if err := s.storage.UpdateProduct(r.Context(), productID, req.Name, req.PriceCents); err != nil {
		s.logger.WithError(err).WithField("product_id", productID).Error("failed to update product")
		httputil.WriteInternalError(w, err)
		return
	}

	s.metrics.AuthzDecisionsTotal.WithLabelValues("allowed").Inc()
	httputil.WriteNoContent(w)
}

// handleSetStock sets a product's inventory level. Same permission gate as
// catalog writes.
func (s *Server) handleSetStock(w http.ResponseWriter, r *http.Request) {
	access := middleware.GetAccess(r)
	if access == nil {
		httputil.WriteUnauthorized(w, "authentication required")
		return
	}

	productID, ok := httputil.ParsePathStringOrError(w, r, "product_id")
	if !ok {
		return
	}

	var req SetStockRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if req.Stock < 0 {
		httputil.WriteBadRequest(w, "stock must not be negative")
		return
	}

	productAccess, err := s.checker.CheckProductAccess(r.Context(), access, productID)
	if err != nil {
		writeAccessError(w, s.metrics, err)
		return
	}
	if err := tenancy.RequireProductWrite(productAccess.Role); err != nil {
		writeAccessError(w, s.metrics, err)
		return
	}

	if err := s.storage.SetStock(r.Context(), productID, req.Stock); err != nil {
		s.logger.WithError(err).WithField("product_id", productID).Error("failed to set stock")
		httputil.WriteInternalError(w, err)
		return
	}

	s.metrics.AuthzDecisionsTotal.WithLabelValues("allowed").Inc()
	httputil.WriteNoContent(w)
}
