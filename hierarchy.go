package grantkit

import "sync"

// DefaultMaxDepth bounds ancestor traversal when no explicit limit is set.
// A chain longer than this is treated as a misconfigured graph, not a deny.
const DefaultMaxDepth = 64

// Hierarchy holds roles and their single-parent links. It is append-only:
// once a role is added its parent never changes, which keeps ancestry stable
// during concurrent resolution. Re-parenting means rebuilding the hierarchy
// from a fresh snapshot.
type Hierarchy struct {
	mu       sync.RWMutex
	maxDepth int
	roles    map[string]roleNode
}

type roleNode struct {
	name     string
	parentID string
}

// HierarchyOption configures a Hierarchy.
type HierarchyOption func(*Hierarchy)

// WithMaxDepth sets the maximum ancestor chain length. Values below 1 are
// ignored and the default is kept.
func WithMaxDepth(depth int) HierarchyOption {
	return func(h *Hierarchy) {
		if depth >= 1 {
			h.maxDepth = depth
		}
	}
}

// NewHierarchy creates an empty role hierarchy.
func NewHierarchy(opts ...HierarchyOption) *Hierarchy {
	h := &Hierarchy{
		maxDepth: DefaultMaxDepth,
		roles:    make(map[string]roleNode),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AddRole adds a role to the hierarchy. An empty parentID marks a root role.
// The parent does not have to exist yet: snapshots may list roles in any
// order. A parent that never materializes surfaces as ErrUnknownRole during
// traversal.
func (h *Hierarchy) AddRole(id, name, parentID string) error {
	if id == "" {
		return NewError(ErrUnknownRole, "role ID cannot be empty")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.roles[id]; exists {
		return NewError(ErrDuplicateRole, "role already defined").WithRole(id)
	}
	h.roles[id] = roleNode{name: name, parentID: parentID}
	return nil
}

// HasRole reports whether a role exists in the hierarchy.
func (h *Hierarchy) HasRole(id string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, exists := h.roles[id]
	return exists
}

// RoleName returns the human-readable name of a role.
func (h *Hierarchy) RoleName(id string) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	node, exists := h.roles[id]
	if !exists {
		return "", NewError(ErrUnknownRole, "role not defined").WithRole(id)
	}
	return node.name, nil
}

// Parent returns the parent role ID, or an empty string for a root role.
func (h *Hierarchy) Parent(id string) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	node, exists := h.roles[id]
	if !exists {
		return "", NewError(ErrUnknownRole, "role not defined").WithRole(id)
	}
	return node.parentID, nil
}

// Len returns the number of roles in the hierarchy.
func (h *Hierarchy) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.roles)
}

// WalkAncestors walks from id up through its parents to the root, calling fn
// for each role starting with id itself. The walk stops early when fn returns
// false. A revisited role fails with ErrCyclicHierarchy and a chain longer
// than the depth bound fails with ErrHierarchyTooDeep; neither is ever
// silently truncated, since truncation could mask a bypass or a false denial.
func (h *Hierarchy) WalkAncestors(id string, fn func(roleID string) bool) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[string]struct{})
	current := id
	for depth := 0; ; depth++ {
		node, exists := h.roles[current]
		if !exists {
			return NewError(ErrUnknownRole, "role not defined").WithRole(current)
		}
		if _, revisited := seen[current]; revisited {
			return NewError(ErrCyclicHierarchy, "role is its own ancestor").WithRole(current)
		}
		if depth >= h.maxDepth {
			return NewError(ErrHierarchyTooDeep, "ancestor chain exceeds depth bound").WithRole(id)
		}
		seen[current] = struct{}{}

		if !fn(current) {
			return nil
		}
		if node.parentID == "" {
			return nil
		}
		current = node.parentID
	}
}

// AncestorChain returns the ordered chain of role IDs starting at id itself
// and walking up through parents to the root.
func (h *Hierarchy) AncestorChain(id string) ([]string, error) {
	var chain []string
	err := h.WalkAncestors(id, func(roleID string) bool {
		chain = append(chain, roleID)
		return true
	})
	if err != nil {
		return nil, err
	}
	return chain, nil
}
