package members

import (
	"fmt"
	"time"

	"github.com/platefwd/orderdesk/pkg/tenancy"
)

// Invitation represents a pending invitation to join a brand
type Invitation struct {
	ID        int64             `json:"id"`
	BrandID   string            `json:"brand_id"`
	Email     string            `json:"email"`
	Role      tenancy.BrandRole `json:"role"`
	Token     string            `json:"token,omitempty"`
	InvitedBy string            `json:"invited_by"`
	InvitedAt time.Time         `json:"invited_at"`
	ExpiresAt time.Time         `json:"expires_at"`
	AcceptedAt *time.Time       `json:"accepted_at,omitempty"`
	AcceptedBy *string          `json:"accepted_by,omitempty"`
}

// AddMemberRequest represents a request to add a member directly
type AddMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// UpdateStatusRequest represents a request to move a membership to a new
// lifecycle status
type UpdateStatusRequest struct {
	Status tenancy.MembershipStatus `json:"status"`
}

// InviteRequest represents a request to invite a member by email
type InviteRequest struct {
	Email string            `json:"email"`
	Role  tenancy.BrandRole `json:"role"`
}

// validTransitions is the membership lifecycle: no automatic reactivation,
// terminal states stay terminal.
var validTransitions = map[tenancy.MembershipStatus][]tenancy.MembershipStatus{
	tenancy.StatusInvited: {tenancy.StatusActive, tenancy.StatusLeft},
	tenancy.StatusActive:  {tenancy.StatusSuspended, tenancy.StatusLeft},
}

// ValidateTransition returns an error unless from -> to is an allowed
// lifecycle transition.
func ValidateTransition(from, to tenancy.MembershipStatus) error {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("invalid status transition %s -> %s", from, to)
}
