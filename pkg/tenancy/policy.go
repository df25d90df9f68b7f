package tenancy

// Permission predicates over the raw domain role strings returned by
// AccessChecker. Evaluated before any mutating operation; a violation
// aborts the request before state changes.

// CanModifyProductOrInventory reports whether the role may create, update,
// or delete products and adjust inventory levels.
func CanModifyProductOrInventory(role string) bool {
	switch role {
	case string(BrandRoleOwner), string(BrandRoleAdmin),
		string(BranchRoleOwner), string(BranchRoleAdmin):
		return true
	}
	return false
}

// CanModifyOrder reports whether the role may mutate orders. Staff can
// work orders but not the catalog.
func CanModifyOrder(role string) bool {
	if CanModifyProductOrInventory(role) {
		return true
	}
	return role == string(BranchRoleStaff)
}

// RequireProductWrite returns a PolicyError unless the role may modify
// products or inventory.
func RequireProductWrite(role string) error {
	if !CanModifyProductOrInventory(role) {
		return &PolicyError{Action: "modify products or inventory", Role: role}
	}
	return nil
}

// RequireOrderWrite returns a PolicyError unless the role may modify
// orders.
func RequireOrderWrite(role string) error {
	if !CanModifyOrder(role) {
		return &PolicyError{Action: "modify orders", Role: role}
	}
	return nil
}
