package grantkit

import "context"

// TaskStore is the persistence collaborator the Enforcer delegates to after
// a check passes. Implementations own storage entirely; the Enforcer only
// gates the call. Service provides a DBKit-backed implementation.
type TaskStore interface {
	// InsertTask persists a new task and returns it with store-assigned
	// fields (ID, timestamps) populated.
	InsertTask(ctx context.Context, task Task) (Task, error)

	// ReplaceTask updates the title and description of an existing task.
	// Returns ErrNotFound if the task does not exist.
	ReplaceTask(ctx context.Context, taskID string, draft TaskDraft) (Task, error)

	// RemoveTask deletes a task. Returns ErrNotFound if the task does not
	// exist.
	RemoveTask(ctx context.Context, taskID string) error
}

// Enforcer wraps task mutations with a permission check. The check runs
// unconditionally before the store is touched: a denied or structurally
// failed check produces zero observable side effect on the store.
//
// The Enforcer owns no state beyond references to the Checker and the store.
type Enforcer struct {
	checker        *Checker
	store          TaskStore
	createAction   string
	editAction     string
	deleteAction   string
	ownerFromDraft bool
}

// EnforcerOption configures an Enforcer.
type EnforcerOption func(*Enforcer)

// WithActions overrides the action names checked for create, edit and delete.
// Empty strings keep the defaults.
func WithActions(create, edit, del string) EnforcerOption {
	return func(e *Enforcer) {
		if create != "" {
			e.createAction = create
		}
		if edit != "" {
			e.editAction = edit
		}
		if del != "" {
			e.deleteAction = del
		}
	}
}

// WithOwnerFromDraft makes CreateTask honor a non-empty Owner supplied in the
// draft. Without this option the acting role always becomes the owner, so the
// authorization subject and the recorded owner cannot silently diverge.
func WithOwnerFromDraft() EnforcerOption {
	return func(e *Enforcer) {
		e.ownerFromDraft = true
	}
}

// NewEnforcer creates an Enforcer over the given checker and store.
//
// Example:
//
//	enforcer := grantkit.NewEnforcer(checker, service)
//	task, err := enforcer.CreateTask(ctx, "editor", draft)
func NewEnforcer(checker *Checker, store TaskStore, opts ...EnforcerOption) *Enforcer {
	e := &Enforcer{
		checker:      checker,
		store:        store,
		createAction: ActionCreateTask,
		editAction:   ActionEditTask,
		deleteAction: ActionDeleteTask,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateTask creates a task after checking the create action for actingRole.
// The acting role is recorded as the owner unless WithOwnerFromDraft was set
// and the draft names one.
func (e *Enforcer) CreateTask(ctx context.Context, actingRole string, draft TaskDraft) (Task, error) {
	if err := e.authorize(actingRole, e.createAction); err != nil {
		return Task{}, err
	}

	owner := actingRole
	if e.ownerFromDraft && draft.Owner != "" {
		owner = draft.Owner
	}
	return e.store.InsertTask(ctx, Task{
		Title:       draft.Title,
		Description: draft.Description,
		Owner:       owner,
	})
}

// UpdateTask replaces the title and description of a task after checking the
// edit action for actingRole. A missing task surfaces as ErrNotFound from the
// store; the check still runs first.
func (e *Enforcer) UpdateTask(ctx context.Context, actingRole, taskID string, draft TaskDraft) (Task, error) {
	if err := e.authorize(actingRole, e.editAction); err != nil {
		return Task{}, err
	}
	return e.store.ReplaceTask(ctx, taskID, draft)
}

// DeleteTask removes a task after checking the delete action for actingRole.
// actingRole authorizes the call; taskID identifies the resource. The two are
// never interchangeable.
func (e *Enforcer) DeleteTask(ctx context.Context, actingRole, taskID string) error {
	if err := e.authorize(actingRole, e.deleteAction); err != nil {
		return err
	}
	return e.store.RemoveTask(ctx, taskID)
}

// authorize runs the check and maps a "no" to ErrForbidden. Structural
// faults pass through unchanged so callers can tell a broken graph apart
// from a legitimate denial.
func (e *Enforcer) authorize(actingRole, action string) error {
	permitted, err := e.checker.IsPermitted(actingRole, action)
	if err != nil {
		return err
	}
	if !permitted {
		return NewError(ErrForbidden, "action not granted anywhere in ancestor chain").
			WithRole(actingRole).
			WithAction(action)
	}
	return nil
}
