package grantkit

import (
	"context"
	"time"

	"github.com/fernandezvara/dbkit"
)

// Service is the PostgreSQL persistence collaborator. It loads bootstrap
// data (roles and grants) at process start, persists administrative
// mutations, and implements TaskStore for the Enforcer.
//
// The in-memory Hierarchy and GrantIndex stay authoritative for checks; the
// Service never answers permission questions itself. Callers that mutate
// roles or grants at runtime persist through the Service and apply the same
// mutation to the in-memory structures.
//
// Error Handling:
// All database operations use dbkit's chainable error wrapping, so failures
// carry the operation name and preserve the original error for
// classification with dbkit.IsDuplicate / dbkit.IsNotFound.
type Service struct {
	db dbkit.IDB
}

// NewService creates a new GrantKit persistence service.
//
// Example:
//
//	db, _ := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	service := grantkit.NewService(db)
func NewService(db dbkit.IDB) *Service {
	return &Service{db: db}
}

// ============================================================================
// BOOTSTRAP
// ============================================================================

// Snapshot loads the persisted role graph and grant set. Rows are ordered by
// creation time so reconstruction is deterministic.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	var roles []RoleRecord
	err := dbkit.WithErr1(
		s.db.NewSelect().Model(&roles).Order("created_at ASC", "id ASC").Scan(ctx),
		"SnapshotRoles").Err()
	if err != nil {
		return Snapshot{}, NewError(ErrDatabaseError, "failed to load roles")
	}

	var grants []GrantRecord
	err = dbkit.WithErr1(
		s.db.NewSelect().Model(&grants).Order("created_at ASC", "role_id ASC", "action ASC").Scan(ctx),
		"SnapshotGrants").Err()
	if err != nil {
		return Snapshot{}, NewError(ErrDatabaseError, "failed to load grants")
	}

	snap := Snapshot{
		Roles:  make([]SnapshotRole, 0, len(roles)),
		Grants: make([]SnapshotGrant, 0, len(grants)),
	}
	for _, role := range roles {
		snap.Roles = append(snap.Roles, SnapshotRole{
			ID:       role.ID,
			Name:     role.Name,
			ParentID: role.ParentID,
		})
	}
	for _, grant := range grants {
		snap.Grants = append(snap.Grants, SnapshotGrant{
			RoleID: grant.RoleID,
			Action: grant.Action,
		})
	}
	return snap, nil
}

// ============================================================================
// ROLE AND GRANT ADMINISTRATION
// ============================================================================

// CreateRole persists a new role. The hierarchy is append-only: there is no
// re-parenting operation, only fresh roles.
func (s *Service) CreateRole(ctx context.Context, id, name, parentID string) error {
	record := &RoleRecord{ID: id, Name: name, ParentID: parentID}
	result, err := s.db.NewInsert().Model(record).Exec(ctx)
	err = dbkit.WithErr(result, err, "CreateRole").Err()
	if err != nil {
		if dbkit.IsDuplicate(err) {
			return NewError(ErrDuplicateRole, "role already persisted").WithRole(id)
		}
		return NewError(ErrDatabaseError, "failed to create role").WithRole(id)
	}
	return nil
}

// GrantAction persists a direct grant. Granting an already persisted pair is
// a no-op, mirroring GrantIndex.Grant.
func (s *Service) GrantAction(ctx context.Context, roleID, action string) error {
	record := &GrantRecord{RoleID: roleID, Action: action}
	result, err := s.db.NewInsert().
		Model(record).
		On("CONFLICT (role_id, action) DO NOTHING").
		Exec(ctx)
	err = dbkit.WithErr(result, err, "GrantAction").Err()
	if err != nil {
		return NewError(ErrDatabaseError, "failed to persist grant").
			WithRole(roleID).
			WithAction(action)
	}
	return nil
}

// RevokeAction removes a persisted grant. Revoking a pair that was never
// granted is a no-op, mirroring GrantIndex.Revoke.
func (s *Service) RevokeAction(ctx context.Context, roleID, action string) error {
	result, err := s.db.NewDelete().
		Table("role_grants").
		Where("role_id = ? AND action = ?", roleID, action).
		Exec(ctx)
	err = dbkit.WithErr(result, err, "RevokeAction").Err()
	if err != nil {
		return NewError(ErrDatabaseError, "failed to remove grant").
			WithRole(roleID).
			WithAction(action)
	}
	return nil
}

// ============================================================================
// TASK STORE
// ============================================================================

// InsertTask persists a new task. The store assigns the ID and timestamps.
func (s *Service) InsertTask(ctx context.Context, task Task) (Task, error) {
	result, err := s.db.NewInsert().Model(&task).Returning("*").Exec(ctx)
	err = dbkit.WithErr(result, err, "InsertTask").Err()
	if err != nil {
		return Task{}, NewError(ErrDatabaseError, "failed to insert task")
	}
	return task, nil
}

// ReplaceTask updates the title and description of an existing task.
func (s *Service) ReplaceTask(ctx context.Context, taskID string, draft TaskDraft) (Task, error) {
	result, err := s.db.NewUpdate().
		Table("tasks").
		Set("title = ?", draft.Title).
		Set("description = ?", draft.Description).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", taskID).
		Exec(ctx)
	err = dbkit.WithErr(result, err, "ReplaceTask").Err()
	if err != nil {
		return Task{}, NewError(ErrDatabaseError, "failed to update task").WithResource(taskID)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return Task{}, NewError(ErrNotFound, "task does not exist").WithResource(taskID)
	}
	return s.GetTask(ctx, taskID)
}

// RemoveTask deletes a task.
func (s *Service) RemoveTask(ctx context.Context, taskID string) error {
	result, err := s.db.NewDelete().
		Table("tasks").
		Where("id = ?", taskID).
		Exec(ctx)
	err = dbkit.WithErr(result, err, "RemoveTask").Err()
	if err != nil {
		return NewError(ErrDatabaseError, "failed to delete task").WithResource(taskID)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return NewError(ErrNotFound, "task does not exist").WithResource(taskID)
	}
	return nil
}

// GetTask fetches a task by ID.
func (s *Service) GetTask(ctx context.Context, taskID string) (Task, error) {
	var task Task
	err := dbkit.WithErr1(
		s.db.NewSelect().Model(&task).Where("t.id = ?", taskID).Limit(1).Scan(ctx),
		"GetTask").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return Task{}, NewError(ErrNotFound, "task does not exist").WithResource(taskID)
		}
		return Task{}, NewError(ErrDatabaseError, "failed to load task").WithResource(taskID)
	}
	return task, nil
}

// ListTasks retrieves tasks matching the filter, newest first.
func (s *Service) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	var tasks []Task
	q := s.db.NewSelect().Model(&tasks)
	if filter.Owner != "" {
		q = q.Where("owner = ?", filter.Owner)
	}
	if filter.TitleContains != "" {
		q = q.Where("title ILIKE ?", "%"+filter.TitleContains+"%")
	}
	if !filter.Since.IsZero() {
		q = q.Where("created_at >= ?", filter.Since)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 100 // Default limit
	}
	q = q.Limit(limit)
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	q = q.Order("created_at DESC")

	err := dbkit.WithErr1(q.Scan(ctx), "ListTasks").Err()
	if err != nil {
		return nil, NewError(ErrDatabaseError, "failed to list tasks")
	}
	return tasks, nil
}

// ============================================================================
// TRANSACTIONS
// ============================================================================

// Transaction executes a function within a database transaction with
// automatic commit/rollback. The callback receives a transaction-scoped
// Service; operations on the outer Service are not part of the transaction.
// If the function returns an error the transaction is rolled back, otherwise
// it is committed. Nested calls use savepoints.
//
// Example:
//
//	err := service.Transaction(ctx, func(txService *grantkit.Service) error {
//	    if err := txService.CreateRole(ctx, "editor", "Editor", "admin"); err != nil {
//	        return err // rollback
//	    }
//	    return txService.GrantAction(ctx, "editor", grantkit.ActionCreateTask)
//	})
func (s *Service) Transaction(ctx context.Context, fn func(txService *Service) error) error {
	if tx, ok := s.db.(*dbkit.Tx); ok {
		return tx.Transaction(ctx, func(tx *dbkit.Tx) error {
			return fn(&Service{db: tx})
		})
	}
	if db, ok := s.db.(*dbkit.DBKit); ok {
		return db.Transaction(ctx, func(tx *dbkit.Tx) error {
			return fn(&Service{db: tx})
		})
	}
	return NewError(ErrDatabaseError, "transaction support requires a dbkit.DBKit or dbkit.Tx instance")
}
