// Package tenancy implements the hierarchical multi-tenant authorization
// resolver that guards every CRUD module in the platform.
//
// # Overview
//
// Tenants form a two-level hierarchy: a brand owns one or more branches.
// Users hold memberships at either level, each with a role and a lifecycle
// status; only ACTIVE memberships ever participate in a decision. The
// package turns a verified principal plus an optional request-supplied
// brand/branch scope into an effective role, applying a fixed precedence:
//
//	explicit branch membership > brand-membership fallback > unscoped probe
//
// Platform administrators bypass membership checks entirely and never hold
// tenant memberships.
//
// # Components
//
//   - Resolver: computes the effective UnifiedRole for a request scope
//   - AccessChecker: per-resource checks (branch/product/category) used by
//     leaf services before reads and writes
//   - permission predicates: CanModifyProductOrInventory, CanModifyOrder
//   - PostgresStore: the read-only membership/directory queries
//
// Every failure is fail-closed: a query error surfaces as a denial
// (CheckFailedError), never as an implicit allowance. Lookups are never
// cached across requests, and repeated checks within one request re-query
// the store so a permission change is visible on the very next call.
//
// # Related Packages
//
//   - pkg/middleware: authentication and customer-area gating
//   - pkg/members: the membership lifecycle collaborator that writes the
//     rows this package reads
package tenancy
