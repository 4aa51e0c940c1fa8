package grantkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for GrantKit operations.
var (
	// ErrDuplicateRole is returned when adding a role whose ID already exists.
	ErrDuplicateRole = errors.New("grantkit: duplicate role")

	// ErrUnknownRole is returned when a role referenced in a check or grant
	// does not exist in the hierarchy.
	ErrUnknownRole = errors.New("grantkit: unknown role")

	// ErrCyclicHierarchy is returned when ancestor traversal revisits a role.
	// This is a data-integrity fault in the role graph, not a deny.
	ErrCyclicHierarchy = errors.New("grantkit: cyclic hierarchy")

	// ErrHierarchyTooDeep is returned when an ancestor chain exceeds the
	// configured depth bound.
	ErrHierarchyTooDeep = errors.New("grantkit: hierarchy too deep")

	// ErrForbidden is returned when a permission check completes with a "no".
	// This is a normal control-flow outcome, not a fault.
	ErrForbidden = errors.New("grantkit: forbidden")

	// ErrNotFound is returned by the persistence collaborator when the
	// referenced resource does not exist.
	ErrNotFound = errors.New("grantkit: not found")

	// ErrNoActingRole is returned when no acting role is available in context.
	ErrNoActingRole = errors.New("grantkit: no acting role in context")

	// ErrDatabaseError is returned when a database operation fails.
	ErrDatabaseError = errors.New("grantkit: database error")
)

// Error wraps a sentinel error with additional context.
type Error struct {
	Err      error  // Underlying sentinel error
	Message  string // Additional context
	Role     string // Role involved (if applicable)
	Action   string // Action involved (if applicable)
	Resource string // Resource ID involved (if applicable)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a target error.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewError creates a new Error with context.
func NewError(err error, message string) *Error {
	return &Error{
		Err:     err,
		Message: message,
	}
}

// WithRole adds role information to the error.
func (e *Error) WithRole(roleID string) *Error {
	e.Role = roleID
	return e
}

// WithAction adds action information to the error.
func (e *Error) WithAction(action string) *Error {
	e.Action = action
	return e
}

// WithResource adds resource information to the error.
func (e *Error) WithResource(resourceID string) *Error {
	e.Resource = resourceID
	return e
}

// IsForbidden checks if an error is a denied permission check.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsUnknownRole checks if an error references a role that does not exist.
func IsUnknownRole(err error) bool {
	return errors.Is(err, ErrUnknownRole)
}

// IsCyclicHierarchy checks if an error is a cycle in the role graph.
func IsCyclicHierarchy(err error) bool {
	return errors.Is(err, ErrCyclicHierarchy)
}

// IsHierarchyTooDeep checks if an error is a depth-bound violation.
func IsHierarchyTooDeep(err error) bool {
	return errors.Is(err, ErrHierarchyTooDeep)
}

// IsNotFound checks if an error is a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsStructuralFault reports whether an error is a role-graph fault
// (unknown role, cycle, depth bound) as opposed to a normal deny.
// Callers should surface structural faults as internal errors and never
// present them as access denials.
func IsStructuralFault(err error) bool {
	return errors.Is(err, ErrUnknownRole) ||
		errors.Is(err, ErrCyclicHierarchy) ||
		errors.Is(err, ErrHierarchyTooDeep)
}
