package tenancy

import (
	"context"
	"database/sql"
	"fmt"
)

// MembershipStore provides the read-only membership queries the resolver
// and gates consume. Rows are written by pkg/members, never by this
// package.
type MembershipStore interface {
	// ActiveBrandMemberships returns every ACTIVE brand membership held
	// by the user.
	ActiveBrandMemberships(ctx context.Context, userID string) ([]BrandMembership, error)

	// ActiveBranchMemberships returns every ACTIVE branch membership held
	// by the user.
	ActiveBranchMemberships(ctx context.Context, userID string) ([]BranchMembership, error)

	// GetBrandMembership returns the membership row for (brandID, userID)
	// regardless of status, or nil when none exists.
	GetBrandMembership(ctx context.Context, brandID, userID string) (*BrandMembership, error)

	// GetBranchMembership returns the membership row for (branchID, userID)
	// regardless of status, or nil when none exists.
	GetBranchMembership(ctx context.Context, branchID, userID string) (*BranchMembership, error)
}

// DirectoryStore resolves resource rows to their owning branch and brand.
type DirectoryStore interface {
	// GetBranch returns the branch row, or nil when it does not exist.
	GetBranch(ctx context.Context, branchID string) (*Branch, error)

	// GetProductWithBranch returns the product joined with its owning
	// branch so branch and brand identifiers arrive in one query, or nil
	// when the product does not exist.
	GetProductWithBranch(ctx context.Context, productID string) (*Product, error)

	// GetCategory returns the category row, or nil when it does not exist.
	GetCategory(ctx context.Context, categoryID string) (*Category, error)
}

// Store combines the membership and directory queries.
type Store interface {
	MembershipStore
	DirectoryStore
}

// PostgresStore implements Store against the shared platform tables.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a store backed by the given database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// ActiveBrandMemberships returns the user's ACTIVE brand memberships.
func (s *PostgresStore) ActiveBrandMemberships(ctx context.Context, userID string) ([]BrandMembership, error) {
	query := `
		SELECT id, brand_id, user_id, role, status, created_at, updated_at
		FROM brand_memberships
		WHERE user_id = $1 AND status = 'ACTIVE'
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query brand memberships: %w", err)
	}
	defer rows.Close()

	var memberships []BrandMembership
	for rows.Next() {
		var m BrandMembership
		if err := rows.Scan(&m.ID, &m.BrandID, &m.UserID, &m.Role, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan brand membership: %w", err)
		}
		memberships = append(memberships, m)
	}

	return memberships, rows.Err()
}

// ActiveBranchMemberships returns the user's ACTIVE branch memberships.
func (s *PostgresStore) ActiveBranchMemberships(ctx context.Context, userID string) ([]BranchMembership, error) {
	query := `
		SELECT id, branch_id, user_id, role, status, created_at, updated_at
		FROM branch_memberships
		WHERE user_id = $1 AND status = 'ACTIVE'
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query branch memberships: %w", err)
	}
	defer rows.Close()

	var memberships []BranchMembership
	for rows.Next() {
		var m BranchMembership
		if err := rows.Scan(&m.ID, &m.BranchID, &m.UserID, &m.Role, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan branch membership: %w", err)
		}
		memberships = append(memberships, m)
	}

	return memberships, rows.Err()
}

// GetBrandMembership returns the (brandID, userID) row or nil.
func (s *PostgresStore) GetBrandMembership(ctx context.Context, brandID, userID string) (*BrandMembership, error) {
	query := `
		SELECT id, brand_id, user_id, role, status, created_at, updated_at
		FROM brand_memberships
		WHERE brand_id = $1 AND user_id = $2
	`
	m := &BrandMembership{}
	err := s.db.QueryRowContext(ctx, query, brandID, userID).Scan(
		&m.ID, &m.BrandID, &m.UserID, &m.Role, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get brand membership: %w", err)
	}

	return m, nil
}

// GetBranchMembership returns the (branchID, userID) row or nil.
func (s *PostgresStore) GetBranchMembership(ctx context.Context, branchID, userID string) (*BranchMembership, error) {
	query := `
		SELECT id, branch_id, user_id, role, status, created_at, updated_at
		FROM branch_memberships
		WHERE branch_id = $1 AND user_id = $2
	`
	m := &BranchMembership{}
	err := s.db.QueryRowContext(ctx, query, branchID, userID).Scan(
		&m.ID, &m.BranchID, &m.UserID, &m.Role, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get branch membership: %w", err)
	}

	return m, nil
}

// GetBranch returns the branch row or nil.
func (s *PostgresStore) GetBranch(ctx context.Context, branchID string) (*Branch, error) {
	query := `SELECT id, brand_id, name, created_at FROM branches WHERE id = $1`
	b := &Branch{}
	err := s.db.QueryRowContext(ctx, query, branchID).Scan(&b.ID, &b.BrandID, &b.Name, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get branch: %w", err)
	}

	return b, nil
}

// GetProductWithBranch returns the product joined with its owning branch,
// or nil when the product does not exist.
func (s *PostgresStore) GetProductWithBranch(ctx context.Context, productID string) (*Product, error) {
	query := `
		SELECT p.id, p.branch_id, b.brand_id, p.name, p.price_cents, p.stock
		FROM products p
		JOIN branches b ON b.id = p.branch_id
		WHERE p.id = $1
	`
	p := &Product{}
	err := s.db.QueryRowContext(ctx, query, productID).Scan(
		&p.ID, &p.BranchID, &p.BrandID, &p.Name, &p.PriceCents, &p.Stock,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}

// GetCategory returns the category row or nil.
func (s *PostgresStore) GetCategory(ctx context.Context, categoryID string) (*Category, error) {
	query := `SELECT id, branch_id, name FROM categories WHERE id = $1`
	c := &Category{}
	err := s.db.QueryRowContext(ctx, query, categoryID).Scan(&c.ID, &c.BranchID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return c, nil
}
