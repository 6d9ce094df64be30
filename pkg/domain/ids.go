// Package domain holds identifier primitives shared across features.
// Identifiers are validated at parse time so services never handle a
// malformed id past their entry point.
package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// ParticipantPrefix is the catalog's namespace for participant
// self-description subject ids. The catalog stores documents under the
// prefixed form; the local metadata store keys rows by the bare id.
const ParticipantPrefix = "Participant:"

// OrganizationID is the bare, durable key of an organization. It is a
// lowercase slug derived from the organization name at registration time
// and never changes for the lifetime of the organization.
type OrganizationID string

var orgIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ParseOrganizationID validates and returns an OrganizationID. The bare
// form as well as the catalog-prefixed form are accepted; the prefix is
// stripped. Anything else is rejected before any I/O can happen.
func ParseOrganizationID(s string) (OrganizationID, error) {
	s = strings.TrimPrefix(s, ParticipantPrefix)
	if !orgIDPattern.MatchString(s) {
		return "", fmt.Errorf("malformed organization id %q", s)
	}
	return OrganizationID(s), nil
}

// Prefixed returns the catalog-side subject id for this organization.
func (id OrganizationID) Prefixed() string {
	return ParticipantPrefix + string(id)
}

func (id OrganizationID) String() string { return string(id) }

// IsZero reports whether the id is unset.
func (id OrganizationID) IsZero() bool { return id == "" }

// StripParticipantPrefix returns the bare id embedded in a catalog subject
// id, or false when the value is not in the participant namespace. Used
// when cross-referencing a credential subject against local metadata;
// callers treat false as a non-match, never as an error.
func StripParticipantPrefix(subjectID string) (OrganizationID, bool) {
	bare, ok := strings.CutPrefix(subjectID, ParticipantPrefix)
	if !ok || !orgIDPattern.MatchString(bare) {
		return "", false
	}
	return OrganizationID(bare), true
}
