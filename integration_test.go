package grantkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegrationSnapshotRoundTrip persists a hierarchy and grants, reloads
// them through Snapshot and verifies the reconstructed checker answers the
// same way an in-memory one would.
func TestIntegrationSnapshotRoundTrip(t *testing.T) {
	if !RequireDatabase(t) {
		return
	}

	ctx := context.Background()
	service, db, err := SetupTestDatabase(ctx)
	require.NoError(t, err)
	defer db.Close()

	admin, editor, viewer, err := seedTestHierarchy(ctx, service)
	require.NoError(t, err)
	require.NoError(t, service.GrantAction(ctx, admin, ActionDeleteTask))
	require.NoError(t, service.GrantAction(ctx, editor, ActionCreateTask))

	snap, err := service.Snapshot(ctx)
	require.NoError(t, err)

	hierarchy, grants, err := snap.Build()
	require.NoError(t, err)
	checker := NewChecker(hierarchy, grants)

	ok, err := checker.IsPermitted(viewer, ActionDeleteTask)
	require.NoError(t, err)
	assert.True(t, ok, "viewer should inherit delete_task from admin")

	ok, err = checker.IsPermitted(viewer, "publish")
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestIntegrationGrantIdempotency tests that persisting the same grant twice
// leaves a single row
func TestIntegrationGrantIdempotency(t *testing.T) {
	if !RequireDatabase(t) {
		return
	}

	ctx := context.Background()
	service, db, err := SetupTestDatabase(ctx)
	require.NoError(t, err)
	defer db.Close()

	admin, _, _, err := seedTestHierarchy(ctx, service)
	require.NoError(t, err)

	require.NoError(t, service.GrantAction(ctx, admin, ActionEditTask))
	require.NoError(t, service.GrantAction(ctx, admin, ActionEditTask))

	snap, err := service.Snapshot(ctx)
	require.NoError(t, err)

	count := 0
	for _, g := range snap.Grants {
		if g.RoleID == admin && g.Action == ActionEditTask {
			count++
		}
	}
	assert.Equal(t, 1, count)

	// Revoking twice is also a no-op
	require.NoError(t, service.RevokeAction(ctx, admin, ActionEditTask))
	require.NoError(t, service.RevokeAction(ctx, admin, ActionEditTask))
}

// TestIntegrationDuplicateRolePersistence tests the duplicate-role error
// from the database path
func TestIntegrationDuplicateRolePersistence(t *testing.T) {
	if !RequireDatabase(t) {
		return
	}

	ctx := context.Background()
	service, db, err := SetupTestDatabase(ctx)
	require.NoError(t, err)
	defer db.Close()

	roleID := uniqueTestID("dup")
	require.NoError(t, service.CreateRole(ctx, roleID, "Original", ""))

	err = service.CreateRole(ctx, roleID, "Impostor", "")
	assert.ErrorIs(t, err, ErrDuplicateRole)
}

// TestIntegrationTaskLifecycle drives the Enforcer against the real
// DBKit-backed task store.
func TestIntegrationTaskLifecycle(t *testing.T) {
	if !RequireDatabase(t) {
		return
	}

	ctx := context.Background()
	service, db, err := SetupTestDatabase(ctx)
	require.NoError(t, err)
	defer db.Close()

	admin, editor, _, err := seedTestHierarchy(ctx, service)
	require.NoError(t, err)
	require.NoError(t, service.GrantAction(ctx, admin, ActionEditTask))
	require.NoError(t, service.GrantAction(ctx, admin, ActionDeleteTask))
	require.NoError(t, service.GrantAction(ctx, editor, ActionCreateTask))

	snap, err := service.Snapshot(ctx)
	require.NoError(t, err)
	hierarchy, grants, err := snap.Build()
	require.NoError(t, err)

	enforcer := NewEnforcer(NewChecker(hierarchy, grants), service)

	// Create
	task, err := enforcer.CreateTask(ctx, editor, TaskDraft{
		Title:       "Integration task",
		Description: "Round trip through PostgreSQL",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, editor, task.Owner)

	// Update (editor inherits edit_task from admin)
	updated, err := enforcer.UpdateTask(ctx, editor, task.ID, TaskDraft{
		Title:       "Integration task (edited)",
		Description: "Updated",
	})
	require.NoError(t, err)
	assert.Equal(t, "Integration task (edited)", updated.Title)

	// Read back through the filter API
	tasks, err := service.ListTasks(ctx, NewTaskFilter().WithOwner(editor))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, updated.ID, tasks[0].ID)

	// Delete
	require.NoError(t, enforcer.DeleteTask(ctx, editor, task.ID))

	_, err = service.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestIntegrationTaskNotFound tests the store's NotFound mapping
func TestIntegrationTaskNotFound(t *testing.T) {
	if !RequireDatabase(t) {
		return
	}

	ctx := context.Background()
	service, db, err := SetupTestDatabase(ctx)
	require.NoError(t, err)
	defer db.Close()

	missingID := "00000000-0000-0000-0000-000000000000"

	_, err = service.ReplaceTask(ctx, missingID, TaskDraft{Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = service.RemoveTask(ctx, missingID)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestIntegrationTransactionRollback tests that a failed bootstrap
// transaction leaves no partial role data behind
func TestIntegrationTransactionRollback(t *testing.T) {
	if !RequireDatabase(t) {
		return
	}

	ctx := context.Background()
	service, db, err := SetupTestDatabase(ctx)
	require.NoError(t, err)
	defer db.Close()

	roleID := uniqueTestID("rollback")
	err = service.Transaction(ctx, func(txService *Service) error {
		if err := txService.CreateRole(ctx, roleID, "Ephemeral", ""); err != nil {
			return err
		}
		// Duplicate insert forces the whole transaction to roll back
		return txService.CreateRole(ctx, roleID, "Ephemeral again", "")
	})
	require.Error(t, err)

	snap, err := service.Snapshot(ctx)
	require.NoError(t, err)
	for _, role := range snap.Roles {
		assert.NotEqual(t, roleID, role.ID, "rolled back role should not be persisted")
	}
}

// TestIntegrationPoolConfiguration tests connection pool tuning against a
// live database
func TestIntegrationPoolConfiguration(t *testing.T) {
	if !RequireDatabase(t) {
		return
	}

	ctx := context.Background()
	service, db, err := SetupTestDatabase(ctx)
	require.NoError(t, err)
	defer db.Close()

	ps := NewPoolService(service)

	config := DefaultPoolConfig()
	config.MaxOpenConnections = 10
	config.MaxIdleConnections = 5
	require.NoError(t, ps.ConfigureConnectionPool(config))

	applied, err := ps.GetConnectionPoolConfig()
	require.NoError(t, err)
	assert.Equal(t, 10, applied.MaxOpenConnections)

	require.NoError(t, ps.ResetConnectionPool())
}

// TestIntegrationHealth tests the health extension against a live database
func TestIntegrationHealth(t *testing.T) {
	if !RequireDatabase(t) {
		return
	}

	ctx := context.Background()
	service, db, err := SetupTestDatabase(ctx)
	require.NoError(t, err)
	defer db.Close()

	hs := NewHealthService(service)
	assert.True(t, hs.IsHealthy(ctx))
	assert.NoError(t, hs.Ping(ctx))

	status := hs.Health(ctx)
	assert.True(t, status.Healthy)
}
