package tenancy

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE brand_memberships (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			brand_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			role TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(brand_id, user_id)
		);

		CREATE TABLE branch_memberships (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			branch_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			role TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(branch_id, user_id)
		);

		CREATE TABLE branches (
			id TEXT PRIMARY KEY,
			brand_id TEXT NOT NULL,
			name TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE products (
			id TEXT PRIMARY KEY,
			branch_id TEXT NOT NULL,
			name TEXT NOT NULL,
			price_cents INTEGER NOT NULL DEFAULT 0,
			stock INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE categories (
			id TEXT PRIMARY KEY,
			branch_id TEXT NOT NULL,
			name TEXT NOT NULL
		);
	`)
	if err != nil {
		t.Fatalf("Failed to create test tables: %v", err)
	}

	return db
}

func seedBrandMembership(t *testing.T, db *sql.DB, brandID, userID string, role BrandRole, status MembershipStatus) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO brand_memberships (brand_id, user_id, role, status) VALUES (?, ?, ?, ?)`,
		brandID, userID, string(role), string(status),
	)
	if err != nil {
		t.Fatalf("Failed to seed brand membership: %v", err)
	}
}

func seedBranchMembership(t *testing.T, db *sql.DB, branchID, userID string, role BranchRole, status MembershipStatus) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO branch_memberships (branch_id, user_id, role, status) VALUES (?, ?, ?, ?)`,
		branchID, userID, string(role), string(status),
	)
	if err != nil {
		t.Fatalf("Failed to seed branch membership: %v", err)
	}
}

func seedBranch(t *testing.T, db *sql.DB, branchID, brandID, name string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO branches (id, brand_id, name) VALUES (?, ?, ?)`, branchID, brandID, name)
	if err != nil {
		t.Fatalf("Failed to seed branch: %v", err)
	}
}

func seedProduct(t *testing.T, db *sql.DB, productID, branchID, name string, priceCents, stock int64) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO products (id, branch_id, name, price_cents, stock) VALUES (?, ?, ?, ?, ?)`,
		productID, branchID, name, priceCents, stock,
	)
	if err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
}

func seedCategory(t *testing.T, db *sql.DB, categoryID, branchID, name string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO categories (id, branch_id, name) VALUES (?, ?, ?)`, categoryID, branchID, name)
	if err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}
}
