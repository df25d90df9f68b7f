package tenancy

import (
	"time"

	"github.com/platefwd/orderdesk/pkg/auth"
)

// BrandRole represents brand-level membership roles
type BrandRole string

const (
	BrandRoleOwner   BrandRole = "OWNER"
	BrandRoleAdmin   BrandRole = "ADMIN"
	BrandRoleManager BrandRole = "MANAGER"
	BrandRoleMember  BrandRole = "MEMBER"
)

// BranchRole represents branch-level membership roles
type BranchRole string

const (
	BranchRoleOwner  BranchRole = "BRANCH_OWNER"
	BranchRoleAdmin  BranchRole = "BRANCH_ADMIN"
	BranchRoleStaff  BranchRole = "STAFF"
	BranchRoleViewer BranchRole = "VIEWER"
)

// MembershipStatus represents the lifecycle state of a membership.
// Transitions are INVITED -> ACTIVE -> {SUSPENDED, LEFT} with no automatic
// reactivation; only ACTIVE is ever consulted by authorization.
type MembershipStatus string

const (
	StatusInvited   MembershipStatus = "INVITED"
	StatusActive    MembershipStatus = "ACTIVE"
	StatusSuspended MembershipStatus = "SUSPENDED"
	StatusLeft      MembershipStatus = "LEFT"
)

// UnifiedRole is the two-tier collapse of the fine-grained membership
// roles, used by scope resolution.
type UnifiedRole string

const (
	RoleOwner UnifiedRole = "OWNER"
	RoleStaff UnifiedRole = "STAFF"
)

// Unified collapses a brand role to the two-tier scheme.
func (r BrandRole) Unified() UnifiedRole {
	if r == BrandRoleOwner {
		return RoleOwner
	}
	return RoleStaff
}

// Unified collapses a branch role to the two-tier scheme.
func (r BranchRole) Unified() UnifiedRole {
	if r == BranchRoleOwner {
		return RoleOwner
	}
	return RoleStaff
}

// BrandMembership associates a user with a brand
type BrandMembership struct {
	ID        int64            `json:"id"`
	BrandID   string           `json:"brand_id"`
	UserID    string           `json:"user_id"`
	Role      BrandRole        `json:"role"`
	Status    MembershipStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// BranchMembership associates a user with a branch
type BranchMembership struct {
	ID        int64            `json:"id"`
	BranchID  string           `json:"branch_id"`
	UserID    string           `json:"user_id"`
	Role      BranchRole       `json:"role"`
	Status    MembershipStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Brand is the top-level tenant entity
type Brand struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Branch is a single storefront belonging to exactly one brand
type Branch struct {
	ID        string    `json:"id"`
	BrandID   string    `json:"brand_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Product carries its owning branch and brand so a single query yields
// everything an access check needs.
type Product struct {
	ID         string `json:"id"`
	BranchID   string `json:"branch_id"`
	BrandID    string `json:"brand_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Stock      int64  `json:"stock"`
}

// Category groups products within a branch
type Category struct {
	ID       string `json:"id"`
	BranchID string `json:"branch_id"`
	Name     string `json:"name"`
}

// AccessContext is the per-request authorization context. It is built once
// by the customer gate and never mutated afterwards; handlers read the
// preloaded membership lists instead of re-querying them.
type AccessContext struct {
	Principal         auth.Principal
	Token             string
	BrandMemberships  []BrandMembership
	BranchMemberships []BranchMembership
}

// ActiveBrandMembership returns the ACTIVE brand membership for brandID,
// or nil when none is held.
func (ac *AccessContext) ActiveBrandMembership(brandID string) *BrandMembership {
	for i := range ac.BrandMemberships {
		m := &ac.BrandMemberships[i]
		if m.BrandID == brandID && m.Status == StatusActive {
			return m
		}
	}
	return nil
}

// ActiveBranchMembership returns the ACTIVE branch membership for branchID,
// or nil when none is held.
func (ac *AccessContext) ActiveBranchMembership(branchID string) *BranchMembership {
	for i := range ac.BranchMemberships {
		m := &ac.BranchMemberships[i]
		if m.BranchID == branchID && m.Status == StatusActive {
			return m
		}
	}
	return nil
}

// Scope carries the optional brand/branch identifiers a request supplied.
type Scope struct {
	BrandID  string `json:"brand_id,omitempty"`
	BranchID string `json:"branch_id,omitempty"`
}

// ScopeResult is the resolved effective role for a request scope.
type ScopeResult struct {
	Role     UnifiedRole `json:"role"`
	BrandID  string      `json:"brand_id,omitempty"`
	BranchID string      `json:"branch_id,omitempty"`
}
