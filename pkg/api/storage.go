package api

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/platefwd/orderdesk/pkg/tenancy"
)

// Storage is the pass-through data access the handlers perform once a
// request has been admitted. Access decisions never live here.
type Storage interface {
	ListBrands(ctx context.Context, brandIDs []string) ([]tenancy.Brand, error)
	GetBrand(ctx context.Context, brandID string) (*tenancy.Brand, error)
	ListBranches(ctx context.Context, brandID string) ([]tenancy.Branch, error)
	CreateBranch(ctx context.Context, branch *tenancy.Branch) error
	RenameBranch(ctx context.Context, branchID, name string) error
	UpdateProduct(ctx context.Context, productID string, name *string, priceCents *int64) error
	SetStock(ctx context.Context, productID string, stock int64) error
	ListOrders(ctx context.Context, branchID string) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
	GetOrderBranch(ctx context.Context, orderID string) (string, error)
}

// PostgresStorage implements Storage against the platform tables.
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage creates the Postgres-backed data access layer.
func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// ListBrands returns the brands with the given ids.
func (s *PostgresStorage) ListBrands(ctx context.Context, brandIDs []string) ([]tenancy.Brand, error) {
	if len(brandIDs) == 0 {
		return nil, nil
	}

	query := `SELECT id, name, created_at FROM brands WHERE id = ANY($1) ORDER BY name ASC`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(brandIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	var brands []tenancy.Brand
	for rows.Next() {
		var b tenancy.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, b)
	}

	return brands, rows.Err()
}

// GetBrand returns a brand row or nil.
func (s *PostgresStorage) GetBrand(ctx context.Context, brandID string) (*tenancy.Brand, error) {
	query := `SELECT id, name, created_at FROM brands WHERE id = $1`
	b := &tenancy.Brand{}
	err := s.db.QueryRowContext(ctx, query, brandID).Scan(&b.ID, &b.Name, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	return b, nil
}

// ListBranches returns every branch of a brand.
func (s *PostgresStorage) ListBranches(ctx context.Context, brandID string) ([]tenancy.Branch, error) {
	query := `SELECT id, brand_id, name, created_at FROM branches WHERE brand_id = $1 ORDER BY name ASC`
	rows, err := s.db.QueryContext(ctx, query, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer rows.Close()

	var branches []tenancy.Branch
	for rows.Next() {
		var b tenancy.Branch
		if err := rows.Scan(&b.ID, &b.BrandID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		branches = append(branches, b)
	}

	return branches, rows.Err()
}

// CreateBranch inserts a branch row.
func (s *PostgresStorage) CreateBranch(ctx context.Context, branch *tenancy.Branch) error {
	query := `
		INSERT INTO branches (id, brand_id, name, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`
	err := s.db.QueryRowContext(ctx, query, branch.ID, branch.BrandID, branch.Name).Scan(&branch.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create branch: %w", err)
	}
	return nil
}

// RenameBranch updates a branch name.
func (s *PostgresStorage) RenameBranch(ctx context.Context, branchID, name string) error {
	query := `UPDATE branches SET name = $1 WHERE id = $2`
	result, err := s.db.ExecContext(ctx, query, name, branchID)
	if err != nil {
		return fmt.Errorf("failed to rename branch: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("branch not found")
	}

	return nil
}

// UpdateProduct applies the non-nil fields to the product row.
func (s *PostgresStorage) UpdateProduct(ctx context.Context, productID string, name *string, priceCents *int64) error {
	query := `
		UPDATE products
		SET name = COALESCE($1, name), price_cents = COALESCE($2, price_cents)
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, name, priceCents, productID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product not found")
	}

	return nil
}

// SetStock sets the inventory level of a product.
func (s *PostgresStorage) SetStock(ctx context.Context, productID string, stock int64) error {
	query := `UPDATE products SET stock = $1 WHERE id = $2`
	result, err := s.db.ExecContext(ctx, query, stock, productID)
	if err != nil {
		return fmt.Errorf("failed to set stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product not found")
	}

	return nil
}

// ListOrders returns every order placed at a branch, newest first.
func (s *PostgresStorage) ListOrders(ctx context.Context, branchID string) ([]Order, error) {
	query := `
		SELECT id, branch_id, status, total_cents, created_at, updated_at
		FROM orders
		WHERE branch_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.BranchID, &o.Status, &o.TotalCents, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

// UpdateOrderStatus moves an order to a new status.
func (s *PostgresStorage) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := s.db.ExecContext(ctx, query, status, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("order not found")
	}

	return nil
}

// GetOrderBranch returns the branch an order belongs to, or empty when
// the order does not exist.
func (s *PostgresStorage) GetOrderBranch(ctx context.Context, orderID string) (string, error) {
	query := `SELECT branch_id FROM orders WHERE id = $1`
	var branchID string
	err := s.db.QueryRowContext(ctx, query, orderID).Scan(&branchID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get order: %w", err)
	}
	return branchID, nil
}
