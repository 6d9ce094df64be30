package service

import (
	"orgregistry/internal/participant/models"
	dErrors "orgregistry/pkg/domain-errors"
)

// The field update policy is an allow-list merge: for each field a role may
// edit, the edited value is copied onto a fresh copy of the stored
// participant; every other field keeps the stored value. Adding a new field
// to the schema therefore defaults to non-editable until a policy names it
// here. Identity fields (subject id, organization id) are never copied from
// the edited input by any role.
//
// Each allowed field is named explicitly. No reflection, no generic
// mapping layer: the set of editable fields per role must stay auditable
// at a glance.

// mergeForRole computes the participant that may actually be persisted,
// given the caller's edits and the currently stored participant.
func mergeForRole(role models.ActiveRole, edited, stored *models.Participant) (*models.Participant, error) {
	if stored == nil || stored.CredentialSubject == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "stored participant is incomplete")
	}
	if edited == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "edited participant is required")
	}

	switch role.Kind {
	case models.RoleRepresentative:
		return mergeAsRepresentative(edited, stored), nil
	case models.RoleFederationAdmin:
		return mergeAsFederationAdmin(edited, stored), nil
	default:
		return nil, dErrors.New(dErrors.CodeForbidden, "active role may not update participants")
	}
}

// mergeAsRepresentative permits the self-service fields only:
// credential subject {description, legal address, headquarter address} and
// metadata {mail address}.
func mergeAsRepresentative(edited, stored *models.Participant) *models.Participant {
	merged := stored.Clone()

	if edited.CredentialSubject != nil {
		merged.CredentialSubject.Description = edited.CredentialSubject.Description
		merged.CredentialSubject.LegalAddress = edited.CredentialSubject.LegalAddress
		merged.CredentialSubject.HeadquarterAddress = edited.CredentialSubject.HeadquarterAddress
	}
	if merged.Metadata != nil && edited.Metadata != nil {
		merged.Metadata.MailAddress = edited.Metadata.MailAddress
	}
	return merged
}

// mergeAsFederationAdmin permits the representative's fields plus the
// organization's registered identity data: display name, legal name, legal
// form, registration numbers (all sub-fields), terms and conditions, and
// the parent/sub organization links; metadata additionally gains the
// membership class.
func mergeAsFederationAdmin(edited, stored *models.Participant) *models.Participant {
	merged := mergeAsRepresentative(edited, stored)

	if edited.CredentialSubject != nil {
		cs := edited.CredentialSubject
		merged.CredentialSubject.OrgName = cs.OrgName
		merged.CredentialSubject.LegalName = cs.LegalName
		merged.CredentialSubject.LegalForm = cs.LegalForm
		merged.CredentialSubject.RegistrationNumber = cs.RegistrationNumber
		merged.CredentialSubject.TermsAndConditions = cs.TermsAndConditions
		merged.CredentialSubject.ParentOrganization = append([]string(nil), cs.ParentOrganization...)
		merged.CredentialSubject.SubOrganization = append([]string(nil), cs.SubOrganization...)
	}
	if merged.Metadata != nil && edited.Metadata != nil {
		if edited.Metadata.MembershipClass.Valid() {
			merged.Metadata.MembershipClass = edited.Metadata.MembershipClass
		}
		merged.Metadata.Active = edited.Metadata.Active
	}
	return merged
}
