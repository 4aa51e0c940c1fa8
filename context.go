package grantkit

import (
	"context"
)

// Context keys for GrantKit values.
type contextKey string

const (
	contextKeyActingRole contextKey = "grantkit:acting_role"
	contextKeyRequestID  contextKey = "grantkit:request_id"
	contextKeyChecker    contextKey = "grantkit:checker"
)

// WithActingRole adds the acting role ID to the context. This is the
// caller-asserted role being checked; establishing that it genuinely belongs
// to the caller is the transport layer's responsibility.
func WithActingRole(ctx context.Context, roleID string) context.Context {
	return context.WithValue(ctx, contextKeyActingRole, roleID)
}

// GetActingRole retrieves the acting role ID from context.
// Returns empty string if not set.
func GetActingRole(ctx context.Context) string {
	if v := ctx.Value(contextKeyActingRole); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// MustGetActingRole retrieves the acting role ID from context.
// Panics if not set.
func MustGetActingRole(ctx context.Context) string {
	roleID := GetActingRole(ctx)
	if roleID == "" {
		panic("grantkit: acting role not in context")
	}
	return roleID
}

// WithRequestID adds a request ID to the context (for correlation).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}

// GetRequestID retrieves the request ID from context.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(contextKeyRequestID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// WithChecker adds a Checker to the context.
// This is set by middleware and can be retrieved in handlers.
func WithChecker(ctx context.Context, checker *Checker) context.Context {
	return context.WithValue(ctx, contextKeyChecker, checker)
}

// GetChecker retrieves the Checker from context.
// Returns nil if not set.
func GetChecker(ctx context.Context) *Checker {
	if v := ctx.Value(contextKeyChecker); v != nil {
		if c, ok := v.(*Checker); ok {
			return c
		}
	}
	return nil
}

// FromContext retrieves the Checker from context.
// Alias for GetChecker for convenience.
func FromContext(ctx context.Context) *Checker {
	return GetChecker(ctx)
}
