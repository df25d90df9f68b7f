package tenancy

import (
	"errors"
	"fmt"

	"github.com/platefwd/orderdesk/pkg/auth"
)

// ErrUnauthenticated is re-exported so callers can gate on one package.
var ErrUnauthenticated = auth.ErrUnauthenticated

// DeniedError indicates the caller was checked and holds no qualifying
// membership for the requested scope or resource.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string {
	return "access denied: " + e.Reason
}

// Denied builds a DeniedError with the given reason.
func Denied(reason string) error {
	return &DeniedError{Reason: reason}
}

// IsDenied reports whether err is an authorization denial, including
// policy violations.
func IsDenied(err error) bool {
	var de *DeniedError
	var pe *PolicyError
	return errors.As(err, &de) || errors.As(err, &pe)
}

// NotFoundError indicates the referenced resource does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// IsNotFound reports whether err is a missing-resource error.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// CheckFailedError indicates the underlying membership or resource query
// itself errored, which is distinct from "checked and denied". It is
// fail-closed: callers must treat it as a denial, never a retryable
// condition.
type CheckFailedError struct {
	Op  string
	Err error
}

func (e *CheckFailedError) Error() string {
	return fmt.Sprintf("authorization check failed during %s: %v", e.Op, e.Err)
}

func (e *CheckFailedError) Unwrap() error {
	return e.Err
}

func checkFailed(op string, err error) error {
	return &CheckFailedError{Op: op, Err: err}
}

// IsCheckFailed reports whether err is an errored (rather than denied)
// authorization check.
func IsCheckFailed(err error) bool {
	var cfe *CheckFailedError
	return errors.As(err, &cfe)
}

// PolicyError indicates the caller's role does not permit the attempted
// mutation. It carries the action so responses stay action-specific.
type PolicyError struct {
	Action string
	Role   string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("role %q may not %s", e.Role, e.Action)
}

// IsPolicyViolation reports whether err is a permission-policy violation.
func IsPolicyViolation(err error) bool {
	var pe *PolicyError
	return errors.As(err, &pe)
}
