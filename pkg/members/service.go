package members

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/platefwd/orderdesk/pkg/tenancy"
)

// Service manages membership rows. It is the only writer of the tables
// pkg/tenancy reads.
type Service struct {
	db *sql.DB
}

// NewService creates a membership management service
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// AddBrandMember adds a user to a brand with the given role, already
// ACTIVE (used by admins; invited members go through invitations).
func (s *Service) AddBrandMember(ctx context.Context, brandID, userID string, role tenancy.BrandRole) error {
	query := `
		INSERT INTO brand_memberships (brand_id, user_id, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, 'ACTIVE', NOW(), NOW())
		ON CONFLICT (brand_id, user_id) DO NOTHING
	`
	result, err := s.db.ExecContext(ctx, query, brandID, userID, role)
	if err != nil {
		return fmt.Errorf("failed to add brand member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("member already exists")
	}

	return nil
}

// AddBranchMember adds a user to a branch with the given role.
func (s *Service) AddBranchMember(ctx context.Context, branchID, userID string, role tenancy.BranchRole) error {
	query := `
		INSERT INTO branch_memberships (branch_id, user_id, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, 'ACTIVE', NOW(), NOW())
		ON CONFLICT (branch_id, user_id) DO NOTHING
	`
	result, err := s.db.ExecContext(ctx, query, branchID, userID, role)
	if err != nil {
		return fmt.Errorf("failed to add branch member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("member already exists")
	}

	return nil
}

// UpdateBrandMemberStatus moves a brand membership to a new lifecycle
// status, validating the transition first.
func (s *Service) UpdateBrandMemberStatus(ctx context.Context, brandID, userID string, status tenancy.MembershipStatus) error {
	current, err := s.currentStatus(ctx, "brand_memberships", "brand_id", brandID, userID)
	if err != nil {
		return err
	}
	if err := ValidateTransition(current, status); err != nil {
		return err
	}

	query := `UPDATE brand_memberships SET status = $1, updated_at = NOW() WHERE brand_id = $2 AND user_id = $3`
	if _, err := s.db.ExecContext(ctx, query, status, brandID, userID); err != nil {
		return fmt.Errorf("failed to update brand member status: %w", err)
	}

	return nil
}

// UpdateBranchMemberStatus moves a branch membership to a new lifecycle
// status, validating the transition first.
func (s *Service) UpdateBranchMemberStatus(ctx context.Context, branchID, userID string, status tenancy.MembershipStatus) error {
	current, err := s.currentStatus(ctx, "branch_memberships", "branch_id", branchID, userID)
	if err != nil {
		return err
	}
	if err := ValidateTransition(current, status); err != nil {
		return err
	}

	query := `UPDATE branch_memberships SET status = $1, updated_at = NOW() WHERE branch_id = $2 AND user_id = $3`
	if _, err := s.db.ExecContext(ctx, query, status, branchID, userID); err != nil {
		return fmt.Errorf("failed to update branch member status: %w", err)
	}

	return nil
}

// RemoveBrandMember deletes a brand membership row.
func (s *Service) RemoveBrandMember(ctx context.Context, brandID, userID string) error {
	query := `DELETE FROM brand_memberships WHERE brand_id = $1 AND user_id = $2`
	result, err := s.db.ExecContext(ctx, query, brandID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove brand member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("member not found")
	}

	return nil
}

// RemoveBranchMember deletes a branch membership row.
func (s *Service) RemoveBranchMember(ctx context.Context, branchID, userID string) error {
	query := `DELETE FROM branch_memberships WHERE branch_id = $1 AND user_id = $2`
	result, err := s.db.ExecContext(ctx, query, branchID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove branch member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("member not found")
	}

	return nil
}

func (s *Service) currentStatus(ctx context.Context, table, scopeCol, scopeID, userID string) (tenancy.MembershipStatus, error) {
	query := fmt.Sprintf(`SELECT status FROM %s WHERE %s = $1 AND user_id = $2`, table, scopeCol)

	var status tenancy.MembershipStatus
	err := s.db.QueryRowContext(ctx, query, scopeID, userID).Scan(&status)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("member not found")
	}
	if err != nil {
		return "", fmt.Errorf("failed to get member status: %w", err)
	}

	return status, nil
}
