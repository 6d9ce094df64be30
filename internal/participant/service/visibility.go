package service

import (
	"orgregistry/internal/participant/models"
)

// The visibility filter is a presentation-time transform: it runs over the
// outbound copy of a response immediately before serialization and never
// touches persisted data. Nothing about hidden state is stored; the
// decision is recomputed fresh for every response. Filtering an
// already-filtered participant is a no-op.
//
// Whether the caller is a federation admin is decided once per request from
// the role header; whether the caller represents a given participant is
// decided per participant, since a page mixes organizations.

// FilterParticipant applies the single-object visibility rules and returns
// the filtered copy:
//  1. metadata is hidden unless the caller is a federation admin or
//     represents the organization,
//  2. connector data is additionally hidden from everyone who does not
//     represent the organization, even when the rest of metadata is shown.
//
// A participant in a shape the filter does not recognize passes through
// untouched rather than erroring.
func FilterParticipant(role models.ActiveRole, p *models.Participant) *models.Participant {
	return filterOne(role, p, false)
}

// FilterPage applies the list visibility rules to every item of a page.
// The list case carves out federators from rule 1: a federator's metadata
// stays visible in the directory so it can be displayed as such, but its
// connector data is still hidden by rule 2.
func FilterPage(role models.ActiveRole, page *ParticipantPage) *ParticipantPage {
	if page == nil {
		return nil
	}
	out := &ParticipantPage{
		TotalCount: page.TotalCount,
		Page:       page.Page,
		Size:       page.Size,
		Items:      make([]*models.Participant, len(page.Items)),
	}
	for i, p := range page.Items {
		out.Items[i] = filterOne(role, p, true)
	}
	return out
}

// FilterParticipants applies the list rules to a bare collection (the
// federator listing).
func FilterParticipants(role models.ActiveRole, participants []*models.Participant) []*models.Participant {
	out := make([]*models.Participant, len(participants))
	for i, p := range participants {
		out[i] = filterOne(role, p, true)
	}
	return out
}

func filterOne(role models.ActiveRole, p *models.Participant, listCase bool) *models.Participant {
	if p == nil {
		return nil
	}
	out := p.Clone()
	if out.Metadata == nil {
		return out
	}

	isFedAdmin := role.IsFederationAdmin()
	represents := role.RepresentsParticipant(out)

	// Rule 1: hide the metadata block. The federator carve-out applies in
	// the list case only; a direct single-object fetch hides regardless of
	// membership class.
	if !isFedAdmin && !represents {
		if !listCase || out.Metadata.MembershipClass != models.MembershipFederator {
			out.Metadata = nil
			return out
		}
	}

	// Rule 2: connector data is sensitive even when metadata is shown.
	if !represents {
		out.Metadata.Connectors = nil
	}
	return out
}
