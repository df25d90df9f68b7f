package tenancy

import "context"

// AccessChecker performs per-resource access checks inside leaf services.
// Unlike the resolver it returns the raw domain role string (for example
// BRANCH_ADMIN) because the permission predicates discriminate more finely
// than the two-tier unified scheme.
//
// Precedence for every resource kind is the same: an ACTIVE branch
// membership on the owning branch wins, then an ACTIVE brand membership on
// the owning brand, then denial. The rule lives in roleForBranch so the
// six leaf services share one implementation.
type AccessChecker struct {
	store Store
}

// NewAccessChecker creates a checker backed by the given store.
func NewAccessChecker(store Store) *AccessChecker {
	return &AccessChecker{store: store}
}

// BranchAccess is the outcome of a branch-level check.
type BranchAccess struct {
	Role   string
	Branch *Branch
}

// ProductAccess is the outcome of a product-level check.
type ProductAccess struct {
	Role    string
	Product *Product
}

// CategoryAccess is the outcome of a category-level check.
type CategoryAccess struct {
	Role     string
	Category *Category
}

// CheckBranchAccess admits the caller to the branch or fails with
// NotFoundError (unknown branch) or DeniedError (no qualifying
// membership).
func (c *AccessChecker) CheckBranchAccess(ctx context.Context, access *AccessContext, branchID string) (*BranchAccess, error) {
	branch, err := c.store.GetBranch(ctx, branchID)
	if err != nil {
		return nil, checkFailed("branch access check", err)
	}
	if branch == nil {
		return nil, &NotFoundError{Resource: "branch", ID: branchID}
	}

	role, ok := roleForBranch(access, branch.ID, branch.BrandID)
	if !ok {
		return nil, Denied("no membership for branch " + branchID)
	}

	return &BranchAccess{Role: role, Branch: branch}, nil
}

// CheckProductAccess admits the caller to the product's owning branch. The
// product row arrives joined with its branch, so no second directory query
// is needed.
func (c *AccessChecker) CheckProductAccess(ctx context.Context, access *AccessContext, productID string) (*ProductAccess, error) {
	product, err := c.store.GetProductWithBranch(ctx, productID)
	if err != nil {
		return nil, checkFailed("product access check", err)
	}
	if product == nil {
		return nil, &NotFoundError{Resource: "product", ID: productID}
	}

	role, ok := roleForBranch(access, product.BranchID, product.BrandID)
	if !ok {
		return nil, Denied("no membership for product " + productID)
	}

	return &ProductAccess{Role: role, Product: product}, nil
}

// CheckCategoryAccess discovers the category's owning branch and delegates
// to the branch check.
func (c *AccessChecker) CheckCategoryAccess(ctx context.Context, access *AccessContext, categoryID string) (*CategoryAccess, error) {
	category, err := c.store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, checkFailed("category access check", err)
	}
	if category == nil {
		return nil, &NotFoundError{Resource: "category", ID: categoryID}
	}

	branchAccess, err := c.CheckBranchAccess(ctx, access, category.BranchID)
	if err != nil {
		return nil, err
	}

	return &CategoryAccess{Role: branchAccess.Role, Category: category}, nil
}

// roleForBranch applies the membership precedence rule for a resource
// owned by (branchID, brandID) using the preloaded lists.
func roleForBranch(access *AccessContext, branchID, brandID string) (string, bool) {
	if m := access.ActiveBranchMembership(branchID); m != nil {
		return string(m.Role), true
	}
	if m := access.ActiveBrandMembership(brandID); m != nil {
		return string(m.Role), true
	}
	return "", false
}
