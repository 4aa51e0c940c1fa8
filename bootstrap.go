package grantkit

// Bootstrap builds a Hierarchy and GrantIndex from fluent role definitions.
// It is meant for application startup, where the role graph is declared in
// code. Build validates the whole forest, so cycle and depth faults surface
// immediately instead of on the first permission check.
type Bootstrap struct {
	roles []*RoleBuilder
	opts  []HierarchyOption
}

// RoleBuilder accumulates a single role definition.
type RoleBuilder struct {
	id       string
	name     string
	parentID string
	actions  []string
	boot     *Bootstrap
}

// NewBootstrap creates an empty bootstrap definition.
func NewBootstrap(opts ...HierarchyOption) *Bootstrap {
	return &Bootstrap{opts: opts}
}

// Role starts defining a role. Returns a RoleBuilder for fluent
// configuration.
//
// Example:
//
//	boot.Role("admin", "Administrator").
//	    Grants("create_task", "delete_task").
//	    Role("editor", "Editor").Parent("admin").
//	    Grants("create_task")
func (b *Bootstrap) Role(id, name string) *RoleBuilder {
	rb := &RoleBuilder{id: id, name: name, boot: b}
	b.roles = append(b.roles, rb)
	return rb
}

// Parent sets the parent role. Roles may reference parents defined later.
func (rb *RoleBuilder) Parent(parentID string) *RoleBuilder {
	rb.parentID = parentID
	return rb
}

// Grants adds direct action grants to this role.
func (rb *RoleBuilder) Grants(actions ...string) *RoleBuilder {
	rb.actions = append(rb.actions, actions...)
	return rb
}

// Role continues defining roles on the parent bootstrap (fluent API).
func (rb *RoleBuilder) Role(id, name string) *RoleBuilder {
	return rb.boot.Role(id, name)
}

// Build constructs the hierarchy and grant index. Every role's ancestor
// chain is walked once, so a cyclic or overly deep graph fails here.
func (b *Bootstrap) Build() (*Hierarchy, *GrantIndex, error) {
	snap := Snapshot{}
	for _, rb := range b.roles {
		snap.Roles = append(snap.Roles, SnapshotRole{
			ID:       rb.id,
			Name:     rb.name,
			ParentID: rb.parentID,
		})
		for _, action := range rb.actions {
			snap.Grants = append(snap.Grants, SnapshotGrant{
				RoleID: rb.id,
				Action: action,
			})
		}
	}
	return snap.Build(b.opts...)
}

// SnapshotRole is one (roleID, parentID) tuple of a snapshot.
type SnapshotRole struct {
	ID       string
	Name     string
	ParentID string
}

// SnapshotGrant is one (roleID, action) tuple of a snapshot.
type SnapshotGrant struct {
	RoleID string
	Action string
}

// Snapshot is the ordered, storage-agnostic form of a role graph and grant
// set: a role list plus a grant list, sufficient to reconstruct both indices
// deterministically. Service.Snapshot loads one from PostgreSQL; tests can
// declare them inline.
type Snapshot struct {
	Roles  []SnapshotRole
	Grants []SnapshotGrant
}

// Build reconstructs a Hierarchy and GrantIndex from the snapshot. Duplicate
// role IDs fail with ErrDuplicateRole; grants referencing undefined roles
// fail with ErrUnknownRole; a cyclic or overly deep forest fails with the
// corresponding structural error.
func (s Snapshot) Build(opts ...HierarchyOption) (*Hierarchy, *GrantIndex, error) {
	hierarchy := NewHierarchy(opts...)
	for _, role := range s.Roles {
		if err := hierarchy.AddRole(role.ID, role.Name, role.ParentID); err != nil {
			return nil, nil, err
		}
	}

	// Validate the forest up front: every chain must terminate.
	for _, role := range s.Roles {
		if err := hierarchy.WalkAncestors(role.ID, func(string) bool { return true }); err != nil {
			return nil, nil, err
		}
	}

	grants := NewGrantIndex()
	for _, grant := range s.Grants {
		if !hierarchy.HasRole(grant.RoleID) {
			return nil, nil, NewError(ErrUnknownRole, "grant references undefined role").
				WithRole(grant.RoleID).
				WithAction(grant.Action)
		}
		grants.Grant(grant.RoleID, grant.Action)
	}
	return hierarchy, grants, nil
}
