package grantkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBootstrapBuild tests the fluent definition API
func TestBootstrapBuild(t *testing.T) {
	boot := NewBootstrap()
	boot.Role("admin", "Administrator").
		Grants(ActionCreateTask, ActionDeleteTask).
		Role("editor", "Editor").Parent("admin").
		Grants(ActionCreateTask).
		Role("viewer", "Viewer").Parent("editor")

	hierarchy, grants, err := boot.Build()
	require.NoError(t, err)

	chain, err := hierarchy.AncestorChain("viewer")
	require.NoError(t, err)
	assert.Equal(t, []string{"viewer", "editor", "admin"}, chain)

	assert.True(t, grants.IsGrantedDirectly("admin", ActionDeleteTask))
	assert.True(t, grants.IsGrantedDirectly("editor", ActionCreateTask))
	assert.False(t, grants.IsGrantedDirectly("viewer", ActionCreateTask))
}

// TestBootstrapForwardParentReference tests that definition order does not matter
func TestBootstrapForwardParentReference(t *testing.T) {
	boot := NewBootstrap()
	boot.Role("viewer", "Viewer").Parent("editor").
		Role("editor", "Editor").Parent("admin").
		Role("admin", "Administrator")

	hierarchy, _, err := boot.Build()
	require.NoError(t, err)

	chain, err := hierarchy.AncestorChain("viewer")
	require.NoError(t, err)
	assert.Equal(t, []string{"viewer", "editor", "admin"}, chain)
}

// TestBootstrapBuildRejectsCycle tests that Build surfaces cycles at startup
func TestBootstrapBuildRejectsCycle(t *testing.T) {
	boot := NewBootstrap()
	boot.Role("a", "Role A").Parent("b").
		Role("b", "Role B").Parent("a")

	_, _, err := boot.Build()
	assert.ErrorIs(t, err, ErrCyclicHierarchy)
}

// TestBootstrapBuildRejectsDuplicate tests duplicate role IDs
func TestBootstrapBuildRejectsDuplicate(t *testing.T) {
	boot := NewBootstrap()
	boot.Role("admin", "Administrator").
		Role("admin", "Impostor")

	_, _, err := boot.Build()
	assert.ErrorIs(t, err, ErrDuplicateRole)
}

// TestBootstrapBuildRejectsDanglingParent tests that a parent that never
// materializes fails at Build, not at first check
func TestBootstrapBuildRejectsDanglingParent(t *testing.T) {
	boot := NewBootstrap()
	boot.Role("editor", "Editor").Parent("admin")

	_, _, err := boot.Build()
	assert.ErrorIs(t, err, ErrUnknownRole)
}

// TestBootstrapMaxDepthOption tests that hierarchy options flow through
func TestBootstrapMaxDepthOption(t *testing.T) {
	boot := NewBootstrap(WithMaxDepth(2))
	boot.Role("r0", "Root").
		Role("r1", "Level 1").Parent("r0").
		Role("r2", "Level 2").Parent("r1")

	_, _, err := boot.Build()
	assert.ErrorIs(t, err, ErrHierarchyTooDeep)
}

// TestSnapshotBuild tests deterministic reconstruction from tuples
func TestSnapshotBuild(t *testing.T) {
	snap := Snapshot{
		Roles: []SnapshotRole{
			{ID: "admin", Name: "Administrator"},
			{ID: "editor", Name: "Editor", ParentID: "admin"},
		},
		Grants: []SnapshotGrant{
			{RoleID: "admin", Action: ActionDeleteTask},
		},
	}

	hierarchy, grants, err := snap.Build()
	require.NoError(t, err)

	checker := NewChecker(hierarchy, grants)
	ok, err := checker.IsPermitted("editor", ActionDeleteTask)
	require.NoError(t, err)
	assert.True(t, ok)

	// Rebuilding from the same snapshot yields the same decisions
	hierarchy2, grants2, err := snap.Build()
	require.NoError(t, err)
	checker2 := NewChecker(hierarchy2, grants2)
	ok2, err := checker2.IsPermitted("editor", ActionDeleteTask)
	require.NoError(t, err)
	assert.Equal(t, ok, ok2)
}

// TestSnapshotBuildRejectsOrphanGrant tests grants referencing undefined roles
func TestSnapshotBuildRejectsOrphanGrant(t *testing.T) {
	snap := Snapshot{
		Roles: []SnapshotRole{
			{ID: "admin", Name: "Administrator"},
		},
		Grants: []SnapshotGrant{
			{RoleID: "ghost", Action: ActionDeleteTask},
		},
	}

	_, _, err := snap.Build()
	assert.ErrorIs(t, err, ErrUnknownRole)
}
