// Package members manages brand and branch membership lifecycles: adding
// members, status transitions, removals, and email invitations with
// expiring tokens.
//
// The authorization core (pkg/tenancy) only ever reads membership rows;
// this package is the sole writer. Status transitions follow
// INVITED -> ACTIVE -> {SUSPENDED, LEFT} with no automatic reactivation,
// and the transition table is enforced here so invalid states never reach
// the tables the resolver trusts.
//
// A cron-driven sweeper removes expired, unaccepted invitations.
package members
