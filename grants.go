package grantkit

import "sync"

// GrantIndex maps (role, action) pairs to direct grants. Lookups never
// consult the hierarchy; inheritance is the Checker's concern.
type GrantIndex struct {
	mu     sync.RWMutex
	grants map[string]map[string]struct{} // roleID -> set of actions
}

// NewGrantIndex creates an empty grant index.
func NewGrantIndex() *GrantIndex {
	return &GrantIndex{
		grants: make(map[string]map[string]struct{}),
	}
}

// Grant records a direct grant of action to roleID. Granting an already
// granted pair is a no-op.
func (g *GrantIndex) Grant(roleID, action string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	actions, exists := g.grants[roleID]
	if !exists {
		actions = make(map[string]struct{})
		g.grants[roleID] = actions
	}
	actions[action] = struct{}{}
}

// Revoke removes a direct grant. Revoking a pair that was never granted is
// a no-op.
func (g *GrantIndex) Revoke(roleID, action string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	actions, exists := g.grants[roleID]
	if !exists {
		return
	}
	delete(actions, action)
	if len(actions) == 0 {
		delete(g.grants, roleID)
	}
}

// IsGrantedDirectly reports whether roleID itself grants action. Comparison
// is exact and case-sensitive.
func (g *GrantIndex) IsGrantedDirectly(roleID, action string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	actions, exists := g.grants[roleID]
	if !exists {
		return false
	}
	_, granted := actions[action]
	return granted
}

// Actions returns the actions directly granted to roleID. The result is a
// copy; mutating it does not affect the index.
func (g *GrantIndex) Actions(roleID string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	actions, exists := g.grants[roleID]
	if !exists {
		return nil
	}
	out := make([]string, 0, len(actions))
	for action := range actions {
		out = append(out, action)
	}
	return out
}

// Len returns the total number of direct grants in the index.
func (g *GrantIndex) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	total := 0
	for _, actions := range g.grants {
		total += len(actions)
	}
	return total
}
