package api

import (
	"github.com/gorilla/mux"

	"github.com/platefwd/orderdesk/pkg/members"
	"github.com/platefwd/orderdesk/pkg/observability"
	"github.com/platefwd/orderdesk/pkg/tenancy"
)

// Server wires the tenancy core, membership management, and data access
// behind the HTTP routes.
type Server struct {
	storage  Storage
	resolver *tenancy.Resolver
	checker  *tenancy.AccessChecker
	members  *members.Service
	logger   *observability.Logger
	metrics  *observability.Metrics
}

// NewServer creates the API server.
func NewServer(
	storage Storage,
	resolver *tenancy.Resolver,
	checker *tenancy.AccessChecker,
	membersSvc *members.Service,
	logger *observability.Logger,
	metrics *observability.Metrics,
) *Server {
	return &Server{
		storage:  storage,
		resolver: resolver,
		checker:  checker,
		members:  membersSvc,
		logger:   logger,
		metrics:  metrics,
	}
}

// RegisterRoutes mounts the tenant-facing routes. The router is expected
// to already carry the authentication and customer-gate middleware.
func (s *Server) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/brands", s.handleListBrands).Methods("GET")
	router.HandleFunc("/brands/{brand_id}", s.handleGetBrand).Methods("GET")
	router.HandleFunc("/brands/{brand_id}/branches", s.handleListBranches).Methods("GET")

	router.HandleFunc("/branches", s.handleCreateBranch).Methods("POST")
	router.HandleFunc("/branches/{branch_id}", s.handleGetBranch).Methods("GET")
	router.HandleFunc("/branches/{branch_id}", s.handleRenameBranch).Methods("PUT")
	router.HandleFunc("/branches/{branch_id}/orders", s.handleListOrders).Methods("GET")

	router.HandleFunc("/categories/{category_id}", s.handleGetCategory).Methods("GET")

	router.HandleFunc("/products/{product_id}", s.handleGetProduct).Methods("GET")
	router.HandleFunc("/products/{product_id}", s.handleUpdateProduct).Methods("PUT")
	router.HandleFunc("/products/{product_id}/stock", s.handleSetStock).Methods("PUT")

	router.HandleFunc("/orders/{order_id}", s.handleUpdateOrder).Methods("PUT")
}

// RegisterAccountRoutes mounts routes that require authentication but no
// existing membership, such as invitation acceptance.
func (s *Server) RegisterAccountRoutes(router *mux.Router) {
	router.HandleFunc("/invitations/accept", s.handleAcceptInvitation).Methods("POST")
}

// RegisterAdminRoutes mounts the membership management routes. The router
// is expected to carry the platform-administrator gate.
func (s *Server) RegisterAdminRoutes(router *mux.Router) {
	router.HandleFunc("/brands/{brand_id}/members", s.handleAddBrandMember).Methods("POST")
	router.HandleFunc("/brands/{brand_id}/members/{user_id}", s.handleUpdateBrandMember).Methods("PUT")
	router.HandleFunc("/brands/{brand_id}/members/{user_id}", s.handleRemoveBrandMember).Methods("DELETE")

	router.HandleFunc("/branches/{branch_id}/members", s.handleAddBranchMember).Methods("POST")
	router.HandleFunc("/branches/{branch_id}/members/{user_id}", s.handleUpdateBranchMember).Methods("PUT")
	router.HandleFunc("/branches/{branch_id}/members/{user_id}", s.handleRemoveBranchMember).Methods("DELETE")

	router.HandleFunc("/brands/{brand_id}/invitations", s.handleCreateInvitation).Methods("POST")
	router.HandleFunc("/invitations/{id}", s.handleRevokeInvitation).Methods("DELETE")
}
