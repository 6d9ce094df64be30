package models

import (
	"strings"

	"orgregistry/pkg/domain"
)

// RoleKind is the kind of authorization context a caller has selected for
// the current request.
type RoleKind string

const (
	RoleNone            RoleKind = "none"
	RoleRepresentative  RoleKind = "representative"
	RoleFederationAdmin RoleKind = "federation_admin"
)

// Wire prefixes of the Active-Role header, e.g. "OrgLegRep_gaia-x-aisbl".
const (
	roleHeaderRepresentative  = "OrgLegRep_"
	roleHeaderFederationAdmin = "FedAdmin_"
)

// ActiveRole is the caller's currently-selected authorization context:
// an organization id plus a role kind. Derived once per request from the
// role header; immutable; never persisted.
type ActiveRole struct {
	OrganizationID domain.OrganizationID
	Kind           RoleKind
}

// NoRole is the zero authorization context. All predicates deny.
var NoRole = ActiveRole{Kind: RoleNone}

// ParseActiveRole derives an ActiveRole from the wire form of the role
// header. Anything malformed resolves to NoRole rather than an error: an
// unreadable role must deny, not fail the request pipeline.
func ParseActiveRole(header string) ActiveRole {
	var kind RoleKind
	var rest string
	switch {
	case strings.HasPrefix(header, roleHeaderRepresentative):
		kind, rest = RoleRepresentative, strings.TrimPrefix(header, roleHeaderRepresentative)
	case strings.HasPrefix(header, roleHeaderFederationAdmin):
		kind, rest = RoleFederationAdmin, strings.TrimPrefix(header, roleHeaderFederationAdmin)
	default:
		return NoRole
	}
	orgID, err := domain.ParseOrganizationID(rest)
	if err != nil {
		return NoRole
	}
	return ActiveRole{OrganizationID: orgID, Kind: kind}
}

// IsRepresentative reports whether the caller acts as an organization's
// legal representative.
func (r ActiveRole) IsRepresentative() bool {
	return r.Kind == RoleRepresentative
}

// IsFederationAdmin reports whether the caller acts as a federation admin.
func (r ActiveRole) IsFederationAdmin() bool {
	return r.Kind == RoleFederationAdmin
}

// RepresentsParticipant reports whether the caller is the legal
// representative of this specific participant. Both identity channels must
// agree: the id embedded in the credential subject and the key of the
// metadata record. A mismatch on either channel (stale or forged linkage)
// yields false, never an error.
func (r ActiveRole) RepresentsParticipant(p *Participant) bool {
	if !r.IsRepresentative() || p == nil {
		return false
	}
	subjectOrg, ok := p.CredentialSubject.OrganizationID()
	if !ok || r.OrganizationID != subjectOrg {
		return false
	}
	return p.Metadata != nil && r.OrganizationID == p.Metadata.OrganizationID
}

// IsFederationAdminForOtherOrg reports whether the caller is a federation
// admin acting on a participant other than its own organization.
func (r ActiveRole) IsFederationAdminForOtherOrg(p *Participant) bool {
	if !r.IsFederationAdmin() || p == nil {
		return false
	}
	subjectOrg, ok := p.CredentialSubject.OrganizationID()
	if !ok {
		return false
	}
	return r.OrganizationID != subjectOrg
}
