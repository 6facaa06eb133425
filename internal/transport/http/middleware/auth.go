package middleware

import (
	"context"
	"net/http"
	"strings"

	"timepay/internal/domain/auth"
	"timepay/internal/domain/employees"
	"timepay/internal/transport/http/api"
)

type ctxKey int

const ctxKeyEmployee ctxKey = iota

// EmployeeContext is the authenticated caller attached to the request.
type EmployeeContext struct {
	EmployeeID string
	Role       string
}

func (e EmployeeContext) Admin() bool {
	return e.Role == employees.RoleAdmin
}

// Auth parses a bearer token when present. Missing or invalid tokens pass
// through without a context; route guards decide what is required.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyEmployee, EmployeeContext{
				EmployeeID: claims.EmployeeID,
				Role:       claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetEmployee(ctx context.Context) (EmployeeContext, bool) {
	emp, ok := ctx.Value(ctxKeyEmployee).(EmployeeContext)
	return emp, ok
}

// RequireAuth rejects requests without an authenticated employee.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetEmployee(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests unless the caller holds the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		emp, ok := GetEmployee(r.Context())
		if !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		if !emp.Admin() {
			api.Fail(w, http.StatusForbidden, "forbidden", "admin role required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}
