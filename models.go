package grantkit

import (
	"time"

	"github.com/uptrace/bun"
)

// Default action names for task enforcement. Actions are open strings;
// these are the names the original task vocabulary uses.
const (
	ActionCreateTask = "create_task"
	ActionEditTask   = "edit_task"
	ActionDeleteTask = "delete_task"
)

// RoleRecord is the persisted form of a role in the hierarchy.
// ParentID is empty for root roles.
type RoleRecord struct {
	bun.BaseModel `bun:"table:roles,alias:r"`

	ID        string    `bun:"id,pk"`
	Name      string    `bun:"name,notnull"`
	ParentID  string    `bun:"parent_id"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// GrantRecord is the persisted form of a direct (role, action) grant.
type GrantRecord struct {
	bun.BaseModel `bun:"table:role_grants,alias:rg"`

	RoleID    string    `bun:"role_id,pk"`
	Action    string    `bun:"action,pk"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// Task is the protected resource gated by the Enforcer. The engine does not
// interpret Title or Description; Owner is the authorization subject recorded
// at creation time.
type Task struct {
	bun.BaseModel `bun:"table:tasks,alias:t"`

	ID          string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Title       string    `bun:"title,notnull"`
	Description string    `bun:"description"`
	Owner       string    `bun:"owner,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// TaskDraft carries the caller-supplied fields of a task mutation.
// Owner is only honored on creation, and only when the Enforcer was built
// with WithOwnerFromDraft; otherwise the acting role becomes the owner.
type TaskDraft struct {
	Title       string
	Description string
	Owner       string
}
