package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefwd/orderdesk/pkg/auth"
	"github.com/platefwd/orderdesk/pkg/contextkeys"
	"github.com/platefwd/orderdesk/pkg/tenancy"
)

// fakeMembershipStore serves canned membership lists per user.
type fakeMembershipStore struct {
	brand  map[string][]tenancy.BrandMembership
	branch map[string][]tenancy.BranchMembership
	err    error
}

func (s *fakeMembershipStore) ActiveBrandMemberships(_ context.Context, userID string) ([]tenancy.BrandMembership, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.brand[userID], nil
}

func (s *fakeMembershipStore) ActiveBranchMemberships(_ context.Context, userID string) ([]tenancy.BranchMembership, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.branch[userID], nil
}

func (s *fakeMembershipStore) GetBrandMembership(context.Context, string, string) (*tenancy.BrandMembership, error) {
	return nil, nil
}

func (s *fakeMembershipStore) GetBranchMembership(context.Context, string, string) (*tenancy.BranchMembership, error) {
	return nil, nil
}

func authenticatedRequest(principal *auth.Principal, token string) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	ctx := contextkeys.WithPrincipal(r.Context(), principal)
	ctx = contextkeys.WithToken(ctx, token)
	return r.WithContext(ctx)
}

func TestRequireCustomer(t *testing.T) {
	store := &fakeMembershipStore{
		brand: map[string][]tenancy.BrandMembership{
			"brand-user": {{BrandID: "brand-1", Role: tenancy.BrandRoleOwner, Status: tenancy.StatusActive}},
		},
		branch: map[string][]tenancy.BranchMembership{
			"branch-user": {{BranchID: "branch-1", Role: tenancy.BranchRoleStaff, Status: tenancy.StatusActive}},
		},
	}

	var captured *tenancy.AccessContext
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetAccess(r)
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireCustomer(store)(next)

	t.Run("brand member admitted with preloaded context", func(t *testing.T) {
		captured = nil
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authenticatedRequest(&auth.Principal{ID: "brand-user"}, "tok"))

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, captured)
		assert.Equal(t, "brand-user", captured.Principal.ID)
		assert.Equal(t, "tok", captured.Token)
		assert.Len(t, captured.BrandMemberships, 1)
		assert.Empty(t, captured.BranchMemberships)
	})

	t.Run("branch-only member admitted", func(t *testing.T) {
		captured = nil
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authenticatedRequest(&auth.Principal{ID: "branch-user"}, "tok"))

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, captured)
		assert.Len(t, captured.BranchMemberships, 1)
	})

	t.Run("unauthenticated request is 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("platform admin is rejected from the customer area", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authenticatedRequest(&auth.Principal{ID: "admin", IsPlatformAdmin: true}, "tok"))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "admins cannot access the customer area")
	})

	t.Run("no memberships is 403", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authenticatedRequest(&auth.Principal{ID: "nobody"}, "tok"))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "no active memberships")
	})

	t.Run("membership query failure denies, not empty-list", func(t *testing.T) {
		broken := RequireCustomer(&fakeMembershipStore{err: errors.New("db down")})(next)
		w := httptest.NewRecorder()
		broken.ServeHTTP(w, authenticatedRequest(&auth.Principal{ID: "brand-user"}, "tok"))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "authorization check failed")
	})
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAdmin(next)

	t.Run("admin admitted", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authenticatedRequest(&auth.Principal{ID: "admin", IsPlatformAdmin: true}, "tok"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non-admin is 403", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authenticatedRequest(&auth.Principal{ID: "user"}, "tok"))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unauthenticated is 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
