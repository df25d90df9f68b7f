package api

import (
	"errors"
	"net/http"

	"github.com/platefwd/orderdesk/pkg/httputil"
	"github.com/platefwd/orderdesk/pkg/observability"
	"github.com/platefwd/orderdesk/pkg/tenancy"
)

// writeAccessError maps the tenancy error taxonomy onto HTTP responses.
// Infrastructure failures during a check deny the request rather than
// surface a 500.
func writeAccessError(w http.ResponseWriter, metrics *observability.Metrics, err error) {
	switch {
	case errors.Is(err, tenancy.ErrUnauthenticated):
		metrics.AuthzDecisionsTotal.WithLabelValues("unauthenticated").Inc()
		httputil.WriteUnauthorized(w, "authentication required")
	case tenancy.IsNotFound(err):
		metrics.AuthzDecisionsTotal.WithLabelValues("not_found").Inc()
		httputil.WriteNotFound(w, err.Error())
	case tenancy.IsCheckFailed(err):
		metrics.AuthzDecisionsTotal.WithLabelValues("check_failed").Inc()
		httputil.WriteForbidden(w, "authorization check failed")
	case tenancy.IsDenied(err):
		metrics.AuthzDecisionsTotal.WithLabelValues("denied").Inc()
		httputil.WriteForbidden(w, err.Error())
	default:
		httputil.WriteInternalError(w, err)
	}
}
