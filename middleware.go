package grantkit

import (
	"net/http"
)

// Middleware provides HTTP middleware for permission checking. It is thin
// transport glue: the caller-asserted acting role is extracted from the
// request and checked, nothing more. Authenticating that the role genuinely
// belongs to the caller is the surrounding stack's job.
type Middleware struct {
	authorizer   Authorizer
	getRole      RoleExtractor
	errorHandler func(http.ResponseWriter, *http.Request, error)
}

// MiddlewareOption configures the Middleware.
type MiddlewareOption func(*Middleware)

// NewMiddleware creates a new Middleware instance.
//
// Example:
//
//	mw := grantkit.NewMiddleware(checker,
//	    grantkit.WithRoleExtractor(grantkit.RoleFromHeader("X-Acting-Role")),
//	)
func NewMiddleware(authorizer Authorizer, opts ...MiddlewareOption) *Middleware {
	m := &Middleware{
		authorizer:   authorizer,
		getRole:      RoleFromContext(),
		errorHandler: defaultErrorHandler,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// WithRoleExtractor sets a custom function to extract the acting role from a request.
func WithRoleExtractor(fn RoleExtractor) MiddlewareOption {
	return func(m *Middleware) {
		m.getRole = fn
	}
}

// WithErrorHandler sets a custom error handler for middleware.
func WithErrorHandler(fn func(http.ResponseWriter, *http.Request, error)) MiddlewareOption {
	return func(m *Middleware) {
		m.errorHandler = fn
	}
}

// defaultErrorHandler keeps denials and structural faults apart: a deny is a
// 403, a broken role graph is a 500. Conflating the two would hide graph
// misconfiguration behind access-denied responses.
func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case IsForbidden(err):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case IsStructuralFault(err):
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	default:
		http.Error(w, "Bad Request", http.StatusBadRequest)
	}
}

// RoleExtractor extracts the acting role ID from an HTTP request.
type RoleExtractor func(*http.Request) (string, error)

// RoleFromHeader creates a RoleExtractor that reads the acting role from a header.
//
// Example:
//
//	mw.RequirePermission("create_task", grantkit.RoleFromHeader("X-Acting-Role"))
func RoleFromHeader(headerName string) RoleExtractor {
	return func(r *http.Request) (string, error) {
		roleID := r.Header.Get(headerName)
		if roleID == "" {
			return "", NewError(ErrNoActingRole, "acting role not found in header")
		}
		return roleID, nil
	}
}

// RoleFromQuery creates a RoleExtractor that reads the acting role from a query parameter.
func RoleFromQuery(queryParam string) RoleExtractor {
	return func(r *http.Request) (string, error) {
		roleID := r.URL.Query().Get(queryParam)
		if roleID == "" {
			return "", NewError(ErrNoActingRole, "acting role not found in query")
		}
		return roleID, nil
	}
}

// RoleFromContext creates a RoleExtractor that reads the acting role from the
// request context (set by an upstream authentication layer via WithActingRole).
func RoleFromContext() RoleExtractor {
	return func(r *http.Request) (string, error) {
		roleID := GetActingRole(r.Context())
		if roleID == "" {
			return "", NewError(ErrNoActingRole, "acting role not found in context")
		}
		return roleID, nil
	}
}

// StaticRole creates a RoleExtractor that always returns the same role.
// Useful for internal endpoints running under a fixed service role.
func StaticRole(roleID string) RoleExtractor {
	return func(r *http.Request) (string, error) {
		return roleID, nil
	}
}

// RequirePermission creates middleware that requires an action to be
// permitted for the acting role.
//
// Example:
//
//	router.With(mw.RequirePermission("delete_task", grantkit.RoleFromHeader("X-Acting-Role"))).
//	    Delete("/tasks/{taskID}", deleteTaskHandler)
func (m *Middleware) RequirePermission(action string, extractor RoleExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, err := extractor(r)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}

			permitted, err := m.authorizer.IsPermitted(roleID, action)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}
			if !permitted {
				m.errorHandler(w, r, NewError(ErrForbidden, "missing required permission").
					WithRole(roleID).
					WithAction(action))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActingRole(r.Context(), roleID)))
		})
	}
}

// RequireAnyPermission creates middleware that requires any of the actions to
// be permitted for the acting role.
func (m *Middleware) RequireAnyPermission(actions []string, extractor RoleExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, err := extractor(r)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}

			for _, action := range actions {
				permitted, err := m.authorizer.IsPermitted(roleID, action)
				if err != nil {
					m.errorHandler(w, r, err)
					return
				}
				if permitted {
					next.ServeHTTP(w, r.WithContext(WithActingRole(r.Context(), roleID)))
					return
				}
			}

			m.errorHandler(w, r, NewError(ErrForbidden, "missing required permission").
				WithRole(roleID))
		})
	}
}

// InjectActingRole creates middleware that extracts the acting role and
// request ID from the request and stores them in context for handlers that
// perform their own checks.
func (m *Middleware) InjectActingRole(extractor RoleExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if roleID, err := extractor(r); err == nil {
				ctx = WithActingRole(ctx, roleID)
			}
			if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
				ctx = WithRequestID(ctx, requestID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
