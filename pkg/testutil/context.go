package testutil

import (
	"net/http"

	"orgregistry/internal/participant/models"
	"orgregistry/internal/platform/middleware"
	"orgregistry/pkg/domain"
)

// WithRole attaches an active role to the request context, simulating what
// the role middleware does after validating the bearer token.
func WithRole(req *http.Request, role models.ActiveRole) *http.Request {
	return req.WithContext(middleware.WithActiveRole(req.Context(), role))
}

// AsRepresentative attaches an organization representative role for orgID.
func AsRepresentative(req *http.Request, orgID string) *http.Request {
	return WithRole(req, models.ActiveRole{
		OrganizationID: domain.OrganizationID(orgID),
		Kind:           models.RoleRepresentative,
	})
}

// AsFederationAdmin attaches a federation administrator role for orgID.
func AsFederationAdmin(req *http.Request, orgID string) *http.Request {
	return WithRole(req, models.ActiveRole{
		OrganizationID: domain.OrganizationID(orgID),
		Kind:           models.RoleFederationAdmin,
	})
}
