package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"orgregistry/internal/participant/models"
)

// RoleValidator validates a bearer token and returns the role strings the
// caller is enrolled in.
type RoleValidator interface {
	ValidateToken(tokenString string) ([]string, error)
}

// ActiveRoleHeader names the header carrying the caller's currently
// selected role, e.g. "OrgLegRep_gaia-x-aisbl" or "FedAdmin_my-federation".
const ActiveRoleHeader = "Active-Role"

type contextKeyActiveRole struct{}

// ContextKeyActiveRole is exported for tests that inject a role directly.
var ContextKeyActiveRole = contextKeyActiveRole{}

// GetActiveRole retrieves the resolved active role from the context.
// Absent means no role: every predicate denies.
func GetActiveRole(ctx context.Context) models.ActiveRole {
	if role, ok := ctx.Value(ContextKeyActiveRole).(models.ActiveRole); ok {
		return role
	}
	return models.NoRole
}

// WithActiveRole injects an active role into a context. Test helper.
func WithActiveRole(ctx context.Context, role models.ActiveRole) context.Context {
	return context.WithValue(ctx, ContextKeyActiveRole, role)
}

// ResolveActiveRole derives the request's active role from the bearer
// token's enrolled roles and the Active-Role header.
//
// Unauthenticated requests proceed with no role; the visibility filter
// hides everything role-gated, so public reads still work. A present but
// invalid token is rejected with 401. A selected role the token is not
// enrolled in resolves to no role rather than an error: ambiguous
// authorization input always lands on the restrictive side.
func ResolveActiveRole(validator RoleValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, hasToken := strings.CutPrefix(authHeader, "Bearer ")
			if !hasToken {
				next.ServeHTTP(w, r)
				return
			}

			enrolled, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "rejected invalid bearer token", "error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","message":"invalid or expired token"}`))
				return
			}

			selected := r.Header.Get(ActiveRoleHeader)
			role := models.NoRole
			if selected != "" && slices.Contains(enrolled, selected) {
				role = models.ParseActiveRole(selected)
			}

			next.ServeHTTP(w, r.WithContext(WithActiveRole(r.Context(), role)))
		})
	}
}
