package models

import (
	connectormodels "orgregistry/internal/connector/models"
	"orgregistry/pkg/domain"
)

// MembershipClass governs list-visibility carve-outs. Federators are shown
// in the public directory with their metadata; plain participants are not.
type MembershipClass string

const (
	MembershipParticipant MembershipClass = "participant"
	MembershipFederator   MembershipClass = "federator"
)

// Valid reports whether the class is one of the known values.
func (c MembershipClass) Valid() bool {
	return c == MembershipParticipant || c == MembershipFederator
}

// Catalog semantic-document convention: every self-description submitted to
// the catalog carries this context map and type tag.
const CredentialType = "registry:ParticipantSelfDescription"

// CredentialContext returns the fixed JSON-LD context for participant
// self-descriptions. Returned fresh so callers can attach it without
// sharing a mutable map.
func CredentialContext() map[string]string {
	return map[string]string{
		"registry": "https://w3id.org/gaia-x/registry#",
		"vcard":    "http://www.w3.org/2006/vcard/ns#",
	}
}

// RegistrationNumber holds an organization's registration numbers by scheme.
// All sub-fields are optional individually; at least the local number is
// required at registration time.
type RegistrationNumber struct {
	Local   string `json:"local,omitempty"`
	EUID    string `json:"euid,omitempty"`
	EORI    string `json:"eori,omitempty"`
	VatID   string `json:"vatId,omitempty"`
	LeiCode string `json:"leiCode,omitempty"`
}

// Address is a vcard-style postal address.
type Address struct {
	CountryCode   string `json:"countryCode,omitempty"`
	City          string `json:"city,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	StreetAddress string `json:"streetAddress,omitempty"`
}

// TermsAndConditions references an organization's terms document by URL and
// content hash.
type TermsAndConditions struct {
	URL  string `json:"url,omitempty"`
	Hash string `json:"hash,omitempty"`
}

// CredentialSubject is the externally-sourced identity document for an
// organization. The catalog owns it; this service holds a projection and is
// never the source of truth for its identifier.
type CredentialSubject struct {
	Context            map[string]string  `json:"@context,omitempty"`
	ID                 string             `json:"id"`
	Type               string             `json:"type,omitempty"`
	OrgName            string             `json:"orgName,omitempty"`
	LegalName          string             `json:"legalName,omitempty"`
	LegalForm          string             `json:"legalForm,omitempty"`
	Description        string             `json:"description,omitempty"`
	RegistrationNumber RegistrationNumber `json:"registrationNumber"`
	LegalAddress       Address            `json:"legalAddress"`
	HeadquarterAddress Address            `json:"headquarterAddress"`
	TermsAndConditions TermsAndConditions `json:"termsAndConditions"`
	ParentOrganization []string           `json:"parentOrganization,omitempty"`
	SubOrganization    []string           `json:"subOrganization,omitempty"`
}

// OrganizationID extracts the bare organization id embedded in the subject
// id. ok is false when the subject id is outside the participant namespace;
// callers treat that as a non-match, never as an error.
func (cs *CredentialSubject) OrganizationID() (domain.OrganizationID, bool) {
	if cs == nil {
		return "", false
	}
	return domain.StripParticipantPrefix(cs.ID)
}

// DisplayName is the name participants are sorted and listed by.
func (cs *CredentialSubject) DisplayName() string {
	if cs == nil {
		return ""
	}
	if cs.OrgName != "" {
		return cs.OrgName
	}
	return cs.LegalName
}

// OrganizationMetadata is the locally-owned, mutable half of a participant.
// Keyed by the bare organization id; created at registration and never
// deleted while the organization exists.
type OrganizationMetadata struct {
	OrganizationID  domain.OrganizationID             `json:"orgId"`
	MailAddress     string                            `json:"mailAddress,omitempty"`
	MembershipClass MembershipClass                   `json:"membershipClass,omitempty"`
	Active          bool                              `json:"active"`
	Connectors      []connectormodels.ConnectorRecord `json:"connectors,omitempty"`
}

// Participant is the assembled view: one credential subject from the
// catalog plus at most one local metadata record, keyed by the same
// organization id. When metadata is absent the field stays nil rather than
// defaulting to an arbitrary membership class.
type Participant struct {
	ID                domain.OrganizationID `json:"id"`
	CredentialSubject *CredentialSubject    `json:"selfDescription,omitempty"`
	Metadata          *OrganizationMetadata `json:"metadata,omitempty"`
}

// DisplayName is the participant's public display name, used for the
// client-side sort of list responses.
func (p *Participant) DisplayName() string {
	if p == nil {
		return ""
	}
	return p.CredentialSubject.DisplayName()
}

// Clone returns a deep copy. The visibility filter operates on the outbound
// copy only and must never touch the assembled original.
func (p *Participant) Clone() *Participant {
	if p == nil {
		return nil
	}
	out := &Participant{ID: p.ID}
	if p.CredentialSubject != nil {
		cs := *p.CredentialSubject
		if p.CredentialSubject.Context != nil {
			cs.Context = make(map[string]string, len(p.CredentialSubject.Context))
			for k, v := range p.CredentialSubject.Context {
				cs.Context[k] = v
			}
		}
		cs.ParentOrganization = append([]string(nil), p.CredentialSubject.ParentOrganization...)
		cs.SubOrganization = append([]string(nil), p.CredentialSubject.SubOrganization...)
		out.CredentialSubject = &cs
	}
	if p.Metadata != nil {
		md := *p.Metadata
		if p.Metadata.Connectors != nil {
			md.Connectors = make([]connectormodels.ConnectorRecord, len(p.Metadata.Connectors))
			for i, c := range p.Metadata.Connectors {
				md.Connectors[i] = c.Clone()
			}
		}
		out.Metadata = &md
	}
	return out
}
