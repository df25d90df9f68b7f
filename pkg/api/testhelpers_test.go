package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/platefwd/orderdesk/pkg/auth"
	"github.com/platefwd/orderdesk/pkg/contextkeys"
	"github.com/platefwd/orderdesk/pkg/members"
	"github.com/platefwd/orderdesk/pkg/observability"
	"github.com/platefwd/orderdesk/pkg/tenancy"
)

// fakeStore serves the directory and membership lookups from maps.
type fakeStore struct {
	branches   map[string]*tenancy.Branch
	products   map[string]*tenancy.Product
	categories map[string]*tenancy.Category
	brandRows  map[string]*tenancy.BrandMembership
	branchRows map[string]*tenancy.BranchMembership
	err        error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		branches:   make(map[string]*tenancy.Branch),
		products:   make(map[string]*tenancy.Product),
		categories: make(map[string]*tenancy.Category),
		brandRows:  make(map[string]*tenancy.BrandMembership),
		branchRows: make(map[string]*tenancy.BranchMembership),
	}
}

func (s *fakeStore) ActiveBrandMemberships(context.Context, string) ([]tenancy.BrandMembership, error) {
	return nil, s.err
}

func (s *fakeStore) ActiveBranchMemberships(context.Context, string) ([]tenancy.BranchMembership, error) {
	return nil, s.err
}

func (s *fakeStore) GetBrandMembership(_ context.Context, brandID, userID string) (*tenancy.BrandMembership, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.brandRows[brandID+"/"+userID], nil
}

func (s *fakeStore) GetBranchMembership(_ context.Context, branchID, userID string) (*tenancy.BranchMembership, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.branchRows[branchID+"/"+userID], nil
}

func (s *fakeStore) GetBranch(_ context.Context, branchID string) (*tenancy.Branch, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.branches[branchID], nil
}

func (s *fakeStore) GetProductWithBranch(_ context.Context, productID string) (*tenancy.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products[productID], nil
}

func (s *fakeStore) GetCategory(_ context.Context, categoryID string) (*tenancy.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.categories[categoryID], nil
}

// fakeStorage records mutations and serves canned rows.
type fakeStorage struct {
	brands      map[string]*tenancy.Brand
	branches    []tenancy.Branch
	orders      map[string][]Order
	orderBranch map[string]string

	createdBranch  *tenancy.Branch
	renamedBranch  string
	renamedTo      string
	updatedProduct string
	stockProduct   string
	stockValue     int64
	updatedOrder   string
	updatedStatus  string

	err error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		brands:      make(map[string]*tenancy.Brand),
		orders:      make(map[string][]Order),
		orderBranch: make(map[string]string),
	}
}

func (s *fakeStorage) ListBrands(_ context.Context, brandIDs []string) ([]tenancy.Brand, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []tenancy.Brand
	for _, id := range brandIDs {
		if b, ok := s.brands[id]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeStorage) GetBrand(_ context.Context, brandID string) (*tenancy.Brand, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.brands[brandID], nil
}

func (s *fakeStorage) ListBranches(context.Context, string) ([]tenancy.Branch, error) {
	return s.branches, s.err
}

func (s *fakeStorage) CreateBranch(_ context.Context, branch *tenancy.Branch) error {
	s.createdBranch = branch
	return s.err
}

func (s *fakeStorage) RenameBranch(_ context.Context, branchID, name string) error {
	s.renamedBranch, s.renamedTo = branchID, name
	return s.err
}

func (s *fakeStorage) UpdateProduct(_ context.Context, productID string, _ *string, _ *int64) error {
	s.updatedProduct = productID
	return s.err
}

func (s *fakeStorage) SetStock(_ context.Context, productID string, stock int64) error {
	s.stockProduct, s.stockValue = productID, stock
	return s.err
}

func (s *fakeStorage) ListOrders(_ context.Context, branchID string) ([]Order, error) {
	return s.orders[branchID], s.err
}

func (s *fakeStorage) UpdateOrderStatus(_ context.Context, orderID, status string) error {
	s.updatedOrder, s.updatedStatus = orderID, status
	return s.err
}

func (s *fakeStorage) GetOrderBranch(_ context.Context, orderID string) (string, error) {
	return s.orderBranch[orderID], s.err
}

var errBoom = errors.New("boom")

type testFixture struct {
	server  *Server
	store   *fakeStore
	storage *fakeStorage
	mock    sqlmock.Sqlmock
	router  *mux.Router
}

// injectAccess attaches the given access context (and its principal) the
// way the production middleware chain would.
func injectAccess(access *tenancy.AccessContext) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if access != nil {
				ctx := contextkeys.WithPrincipal(r.Context(), &access.Principal)
				ctx = contextkeys.WithToken(ctx, access.Token)
				ctx = contextkeys.WithAccess(ctx, access)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newTestFixture(t *testing.T, access *tenancy.AccessContext) *testFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := newFakeStore()
	storage := newFakeStorage()
	logger := observability.NewLogger(observability.ErrorLevel, io.Discard)
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	server := NewServer(storage, tenancy.NewResolver(store), tenancy.NewAccessChecker(store),
		members.NewService(db), logger, metrics)

	router := mux.NewRouter()
	router.Use(injectAccess(access))
	server.RegisterRoutes(router)
	server.RegisterAccountRoutes(router)
	server.RegisterAdminRoutes(router)

	return &testFixture{server: server, store: store, storage: storage, mock: mock, router: router}
}

func customerContext(userID string, brand []tenancy.BrandMembership, branch []tenancy.BranchMembership) *tenancy.AccessContext {
	return &tenancy.AccessContext{
		Principal:         auth.Principal{ID: userID},
		Token:             "tok",
		BrandMemberships:  brand,
		BranchMemberships: branch,
	}
}
