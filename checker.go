package grantkit

// Checker resolves permission checks against a role hierarchy and a grant
// index. For a fixed hierarchy and index snapshot the result is a pure
// function of (roleID, action).
type Checker struct {
	hierarchy *Hierarchy
	grants    *GrantIndex
	metrics   *Metrics
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithMetrics records decision and fault metrics on every check.
func WithMetrics(m *Metrics) CheckerOption {
	return func(c *Checker) {
		c.metrics = m
	}
}

// NewChecker creates a Checker over the given hierarchy and grant index.
//
// Example:
//
//	hierarchy, grants, _ := boot.Build()
//	checker := grantkit.NewChecker(hierarchy, grants)
func NewChecker(hierarchy *Hierarchy, grants *GrantIndex, opts ...CheckerOption) *Checker {
	c := &Checker{
		hierarchy: hierarchy,
		grants:    grants,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Hierarchy returns the role hierarchy this checker resolves against.
func (c *Checker) Hierarchy() *Hierarchy {
	return c.hierarchy
}

// Grants returns the grant index this checker resolves against.
func (c *Checker) Grants() *GrantIndex {
	return c.grants
}

// IsPermitted reports whether roleID, or any of its ancestors, grants action.
// The walk starts at roleID itself and short-circuits on the first grant; the
// full chain is scanned before answering "no", since a grant anywhere in the
// ancestry authorizes the descendant.
//
// Structural faults from the hierarchy (ErrUnknownRole, ErrCyclicHierarchy,
// ErrHierarchyTooDeep) propagate unchanged; no new error kinds are added.
func (c *Checker) IsPermitted(roleID, action string) (bool, error) {
	permitted := false
	depth := 0
	err := c.hierarchy.WalkAncestors(roleID, func(ancestor string) bool {
		depth++
		if c.grants.IsGrantedDirectly(ancestor, action) {
			permitted = true
			return false
		}
		return true
	})
	if err != nil {
		c.metrics.observeFault(err)
		return false, err
	}
	c.metrics.observeDecision(action, permitted, depth)
	return permitted, nil
}

// IsAnyPermitted reports whether any of the actions is permitted for roleID.
func (c *Checker) IsAnyPermitted(roleID string, actions ...string) (bool, error) {
	for _, action := range actions {
		ok, err := c.IsPermitted(roleID, action)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// AreAllPermitted reports whether every action is permitted for roleID.
// An empty action list is vacuously true.
func (c *Checker) AreAllPermitted(roleID string, actions ...string) (bool, error) {
	for _, action := range actions {
		ok, err := c.IsPermitted(roleID, action)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Grant records a direct grant after validating that the role exists.
func (c *Checker) Grant(roleID, action string) error {
	if !c.hierarchy.HasRole(roleID) {
		return NewError(ErrUnknownRole, "cannot grant to undefined role").
			WithRole(roleID).
			WithAction(action)
	}
	c.grants.Grant(roleID, action)
	return nil
}

// Revoke removes a direct grant after validating that the role exists.
// Revoking an action the role never had is a no-op.
func (c *Checker) Revoke(roleID, action string) error {
	if !c.hierarchy.HasRole(roleID) {
		return NewError(ErrUnknownRole, "cannot revoke from undefined role").
			WithRole(roleID).
			WithAction(action)
	}
	c.grants.Revoke(roleID, action)
	return nil
}

// PermittedActions returns the union of direct grants along the ancestor
// chain of roleID. Useful for displaying what a role can do.
func (c *Checker) PermittedActions(roleID string) ([]string, error) {
	union := make(map[string]struct{})
	err := c.hierarchy.WalkAncestors(roleID, func(ancestor string) bool {
		for _, action := range c.grants.Actions(ancestor) {
			union[action] = struct{}{}
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	actions := make([]string, 0, len(union))
	for action := range union {
		actions = append(actions, action)
	}
	return actions, nil
}
