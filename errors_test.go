package grantkit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrorWrapping tests the Error wrapper against errors.Is/As
func TestErrorWrapping(t *testing.T) {
	err := NewError(ErrForbidden, "action not granted").
		WithRole("guest").
		WithAction(ActionCreateTask).
		WithResource("task-1")

	assert.True(t, errors.Is(err, ErrForbidden))
	assert.False(t, errors.Is(err, ErrUnknownRole))

	var gkErr *Error
	assert.True(t, errors.As(err, &gkErr))
	assert.Equal(t, "guest", gkErr.Role)
	assert.Equal(t, ActionCreateTask, gkErr.Action)
	assert.Equal(t, "task-1", gkErr.Resource)
}

// TestErrorMessage tests the rendered message
func TestErrorMessage(t *testing.T) {
	err := NewError(ErrUnknownRole, "role not defined")
	assert.Equal(t, "grantkit: unknown role: role not defined", err.Error())

	bare := &Error{Err: ErrUnknownRole}
	assert.Equal(t, "grantkit: unknown role", bare.Error())
}

// TestErrorWrappedFurther tests classification through additional wrapping
func TestErrorWrappedFurther(t *testing.T) {
	inner := NewError(ErrCyclicHierarchy, "role is its own ancestor").WithRole("a")
	outer := fmt.Errorf("bootstrap failed: %w", inner)

	assert.True(t, IsCyclicHierarchy(outer))
	assert.True(t, IsStructuralFault(outer))
	assert.False(t, IsForbidden(outer))
}

// TestErrorClassificationHelpers tests the Is* helpers
func TestErrorClassificationHelpers(t *testing.T) {
	assert.True(t, IsForbidden(NewError(ErrForbidden, "")))
	assert.True(t, IsUnknownRole(NewError(ErrUnknownRole, "")))
	assert.True(t, IsCyclicHierarchy(NewError(ErrCyclicHierarchy, "")))
	assert.True(t, IsHierarchyTooDeep(NewError(ErrHierarchyTooDeep, "")))
	assert.True(t, IsNotFound(NewError(ErrNotFound, "")))

	assert.False(t, IsForbidden(nil))
	assert.False(t, IsNotFound(errors.New("unrelated")))
}

// TestStructuralFaultsAreNotForbidden tests the taxonomy boundary that
// matters most: a broken graph is never a deny
func TestStructuralFaultsAreNotForbidden(t *testing.T) {
	for _, sentinel := range []error{ErrUnknownRole, ErrCyclicHierarchy, ErrHierarchyTooDeep} {
		assert.True(t, IsStructuralFault(sentinel))
		assert.False(t, IsForbidden(sentinel))
	}
	assert.False(t, IsStructuralFault(ErrForbidden))
	assert.False(t, IsStructuralFault(ErrNotFound))
}
