package members

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"
)

const invitationTTL = 7 * 24 * time.Hour

// CreateInvitation creates (or refreshes) an invitation for the email.
func (s *Service) CreateInvitation(ctx context.Context, invitation *Invitation) error {
	token, err := generateToken()
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}
	invitation.Token = token

	if invitation.InvitedAt.IsZero() {
		invitation.InvitedAt = time.Now()
	}
	if invitation.ExpiresAt.IsZero() {
		invitation.ExpiresAt = invitation.InvitedAt.Add(invitationTTL)
	}

	query := `
		INSERT INTO brand_invitations (brand_id, email, role, token, invited_by, invited_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (brand_id, email) DO UPDATE
		SET token = EXCLUDED.token, invited_at = EXCLUDED.invited_at, expires_at = EXCLUDED.expires_at
		RETURNING id
	`
	err = s.db.QueryRowContext(ctx, query, invitation.BrandID, invitation.Email, invitation.Role,
		invitation.Token, invitation.InvitedBy, invitation.InvitedAt, invitation.ExpiresAt).
		Scan(&invitation.ID)
	if err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}

	return nil
}

// GetInvitation retrieves an invitation by token.
func (s *Service) GetInvitation(ctx context.Context, token string) (*Invitation, error) {
	query := `
		SELECT id, brand_id, email, role, token, invited_by, invited_at, expires_at, accepted_at, accepted_by
		FROM brand_invitations
		WHERE token = $1
	`
	invitation := &Invitation{}
	err := s.db.QueryRowContext(ctx, query, token).Scan(
		&invitation.ID, &invitation.BrandID, &invitation.Email, &invitation.Role,
		&invitation.Token, &invitation.InvitedBy, &invitation.InvitedAt, &invitation.ExpiresAt,
		&invitation.AcceptedAt, &invitation.AcceptedBy,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("invitation not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	return invitation, nil
}

// AcceptInvitation accepts an invitation and creates the brand membership
// in a single transaction. The membership starts ACTIVE.
func (s *Service) AcceptInvitation(ctx context.Context, token, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT id, brand_id, role, expires_at, accepted_at
		FROM brand_invitations
		WHERE token = $1
		FOR UPDATE
	`
	var id int64
	var brandID, role string
	var expiresAt time.Time
	var acceptedAt sql.NullTime

	err = tx.QueryRowContext(ctx, query, token).Scan(&id, &brandID, &role, &expiresAt, &acceptedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("invitation not found")
	}
	if err != nil {
		return fmt.Errorf("failed to get invitation: %w", err)
	}

	if acceptedAt.Valid {
		return fmt.Errorf("invitation already accepted")
	}
	if time.Now().After(expiresAt) {
		return fmt.Errorf("invitation expired")
	}

	query = `
		INSERT INTO brand_memberships (brand_id, user_id, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, 'ACTIVE', NOW(), NOW())
		ON CONFLICT (brand_id, user_id) DO NOTHING
	`
	if _, err = tx.ExecContext(ctx, query, brandID, userID, role); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	query = `UPDATE brand_invitations SET accepted_at = NOW(), accepted_by = $1 WHERE id = $2`
	if _, err = tx.ExecContext(ctx, query, userID, id); err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}

	return tx.Commit()
}

// RevokeInvitation deletes an unaccepted invitation.
func (s *Service) RevokeInvitation(ctx context.Context, id int64) error {
	query := `DELETE FROM brand_invitations WHERE id = $1 AND accepted_at IS NULL`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to revoke invitation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("invitation not found or already accepted")
	}

	return nil
}

// CleanupExpiredInvitations removes expired, unaccepted invitations.
func (s *Service) CleanupExpiredInvitations(ctx context.Context) error {
	query := `DELETE FROM brand_invitations WHERE expires_at < NOW() AND accepted_at IS NULL`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to cleanup expired invitations: %w", err)
	}
	return nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
