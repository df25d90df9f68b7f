package api

import "time"

// Order is a customer order placed at a branch
type Order struct {
	ID         string    `json:"id"`
	BranchID   string    `json:"branch_id"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Order statuses
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPreparing = "PREPARING"
	OrderStatusReady     = "READY"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// CreateBranchRequest represents a request to create a branch
type CreateBranchRequest struct {
	BrandID string `json:"brand_id"`
	Name    string `json:"name"`
}

// UpdateBranchRequest represents a request to rename a branch
type UpdateBranchRequest struct {
	Name string `json:"name"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name       *string `json:"name,omitempty"`
	PriceCents *int64  `json:"price_cents,omitempty"`
}

// SetStockRequest represents a request to set an inventory level
type SetStockRequest struct {
	Stock int64 `json:"stock"`
}

// UpdateOrderRequest represents a request to move an order to a new status
type UpdateOrderRequest struct {
	Status string `json:"status"`
}
