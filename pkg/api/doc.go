// Package api provides the HTTP surface for the ordering platform.
//
// Every tenant-facing handler follows the same admission sequence: the
// router's middleware has already authenticated the caller and preloaded
// the AccessContext; the handler then resolves or checks the relevant
// scope through pkg/tenancy, applies the permission predicates before any
// mutation, and only then touches the data store. Handlers themselves are
// pass-through data access once admitted.
//
// Admin routes (membership management) are mounted separately behind the
// platform-administrator gate.
package api
