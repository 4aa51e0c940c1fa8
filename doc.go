// Package grantkit provides a hierarchical role-based access control engine.
//
// GrantKit decides allow/deny for (role, action) pairs by resolving a role's
// full ancestry chain and checking whether the role itself, or any of its
// ancestors, has been granted the action. Roles form a single-parent forest;
// permissions granted to a parent are inherited by every descendant.
//
// # Core Concepts
//
// Role: a named node in a single-parent hierarchy. A role has a unique ID, a
// human-readable name and an optional parent. The parent relation must form a
// forest: a role that is (transitively) its own ancestor is a data-integrity
// fault, reported as ErrCyclicHierarchy, never silently truncated.
//
// Action: an opaque string such as "create_task" or "delete_task". GrantKit
// enforces no vocabulary; comparison is exact and case-sensitive.
//
// Grant: a direct (role, action) pair meaning "this role grants this action."
// There is no explicit-deny concept: authorization is grant-or-silence, a
// logical OR over the ancestor chain.
//
// # Basic Usage
//
//	// 1. Define the role hierarchy and its grants (at application startup)
//	boot := grantkit.NewBootstrap()
//
//	boot.Role("admin", "Administrator").
//	    Grants("create_task", "edit_task", "delete_task").
//	    Role("editor", "Editor").Parent("admin").
//	    Grants("create_task").
//	    Role("viewer", "Viewer").Parent("editor")
//
//	hierarchy, grants, err := boot.Build()
//
//	// 2. Create the checker
//	checker := grantkit.NewChecker(hierarchy, grants)
//
//	// 3. Check permissions
//	ok, err := checker.IsPermitted("viewer", "delete_task")
//	// ok == true: "viewer" inherits delete_task from "admin"
//
// # Enforcing Resource Mutations
//
// The Enforcer gates task mutations behind a permission check. The check runs
// unconditionally before the store is touched: a denied call produces zero
// observable side effect on the store.
//
//	service := grantkit.NewService(db) // dbkit-backed TaskStore
//	enforcer := grantkit.NewEnforcer(checker, service)
//
//	task, err := enforcer.CreateTask(ctx, "editor", grantkit.TaskDraft{
//	    Title:       "Ship release",
//	    Description: "Cut the v1.2 tag",
//	})
//	if grantkit.IsForbidden(err) {
//	    // acting role lacks create_task anywhere in its chain
//	}
//
// # Persistence
//
// The engine operates purely on in-memory structures. Persistence is a
// collaborator concern: Service loads bootstrap data (roles, grants) from
// PostgreSQL through DBKit, persists administrative mutations, and implements
// TaskStore for the Enforcer. Any other TaskStore implementation works.
//
//	db, _ := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	service := grantkit.NewService(db)
//	db.Migrate(ctx, grantkit.NewMigrationService(service).Migrations())
//
//	snap, _ := service.Snapshot(ctx)
//	hierarchy, grants, _ := snap.Build()
//
// # Middleware Usage
//
//	mw := grantkit.NewMiddleware(checker)
//
//	router.With(mw.RequirePermission("create_task", grantkit.RoleFromHeader("X-Acting-Role"))).
//	    Post("/tasks", createTaskHandler)
//
// The default error handler maps ErrForbidden to 403 and structural faults
// (ErrUnknownRole, ErrCyclicHierarchy, ErrHierarchyTooDeep) to 500, so "this
// role lacks the permission" is never conflated with "the role graph is
// broken".
//
// # Error Taxonomy
//
//   - ErrDuplicateRole: AddRole called with an ID that already exists
//   - ErrUnknownRole: a role referenced in a check or grant does not exist
//   - ErrCyclicHierarchy: ancestor traversal revisited a role
//   - ErrHierarchyTooDeep: ancestor chain exceeded the configured bound
//   - ErrForbidden: the check completed and the answer is "no" (a normal
//     outcome, not a fault)
//   - ErrNotFound: the persistence collaborator has no such resource
//
// # Concurrency
//
// Hierarchy and GrantIndex are read-mostly shared structures guarded by
// RWMutexes. Concurrent IsPermitted checks run in parallel; Grant, Revoke and
// AddRole are infrequent administrative writes and are atomic from a reader's
// perspective. The checker itself never blocks on I/O.
package grantkit
