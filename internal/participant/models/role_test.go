package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"orgregistry/pkg/domain"
)

func TestParseActiveRole(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   ActiveRole
	}{
		{
			name:   "representative",
			header: "OrgLegRep_gaia-x-aisbl",
			want:   ActiveRole{OrganizationID: "gaia-x-aisbl", Kind: RoleRepresentative},
		},
		{
			name:   "federation admin",
			header: "FedAdmin_dataspace-operator",
			want:   ActiveRole{OrganizationID: "dataspace-operator", Kind: RoleFederationAdmin},
		},
		{name: "empty header", header: "", want: NoRole},
		{name: "unknown prefix", header: "Visitor_gaia-x-aisbl", want: NoRole},
		{name: "prefix without org", header: "OrgLegRep_", want: NoRole},
		{name: "malformed org id", header: "OrgLegRep_Gaia X", want: NoRole},
		{name: "case sensitive prefix", header: "orgLegRep_gaia-x-aisbl", want: NoRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseActiveRole(tt.header))
		})
	}
}

func TestActiveRole_Predicates(t *testing.T) {
	rep := ActiveRole{OrganizationID: "gaia-x-aisbl", Kind: RoleRepresentative}
	admin := ActiveRole{OrganizationID: "dataspace-operator", Kind: RoleFederationAdmin}

	assert.True(t, rep.IsRepresentative())
	assert.False(t, rep.IsFederationAdmin())
	assert.True(t, admin.IsFederationAdmin())
	assert.False(t, admin.IsRepresentative())
	assert.False(t, NoRole.IsRepresentative())
	assert.False(t, NoRole.IsFederationAdmin())
}

func participantFixture(orgID string) *Participant {
	return &Participant{
		ID:                domain.OrganizationID(orgID),
		CredentialSubject: &CredentialSubject{ID: domain.ParticipantPrefix + orgID, OrgName: "Org"},
		Metadata:          &OrganizationMetadata{OrganizationID: domain.OrganizationID(orgID), Active: true},
	}
}

func TestActiveRole_RepresentsParticipant(t *testing.T) {
	rep := ActiveRole{OrganizationID: "gaia-x-aisbl", Kind: RoleRepresentative}

	t.Run("matches when both identity channels agree", func(t *testing.T) {
		assert.True(t, rep.RepresentsParticipant(participantFixture("gaia-x-aisbl")))
	})

	t.Run("denies a different organization", func(t *testing.T) {
		assert.False(t, rep.RepresentsParticipant(participantFixture("other-org")))
	})

	t.Run("denies when the metadata key disagrees with the subject id", func(t *testing.T) {
		p := participantFixture("gaia-x-aisbl")
		p.Metadata.OrganizationID = "other-org"
		assert.False(t, rep.RepresentsParticipant(p))
	})

	t.Run("denies when metadata is absent", func(t *testing.T) {
		p := participantFixture("gaia-x-aisbl")
		p.Metadata = nil
		assert.False(t, rep.RepresentsParticipant(p))
	})

	t.Run("denies when the subject id is outside the namespace", func(t *testing.T) {
		p := participantFixture("gaia-x-aisbl")
		p.CredentialSubject.ID = "gaia-x-aisbl"
		assert.False(t, rep.RepresentsParticipant(p))
	})

	t.Run("denies for nil participant", func(t *testing.T) {
		assert.False(t, rep.RepresentsParticipant(nil))
	})

	t.Run("a federation admin never represents", func(t *testing.T) {
		admin := ActiveRole{OrganizationID: "gaia-x-aisbl", Kind: RoleFederationAdmin}
		assert.False(t, admin.RepresentsParticipant(participantFixture("gaia-x-aisbl")))
	})
}

func TestActiveRole_IsFederationAdminForOtherOrg(t *testing.T) {
	admin := ActiveRole{OrganizationID: "dataspace-operator", Kind: RoleFederationAdmin}

	assert.True(t, admin.IsFederationAdminForOtherOrg(participantFixture("gaia-x-aisbl")))
	assert.False(t, admin.IsFederationAdminForOtherOrg(participantFixture("dataspace-operator")))
	assert.False(t, admin.IsFederationAdminForOtherOrg(nil))

	rep := ActiveRole{OrganizationID: "dataspace-operator", Kind: RoleRepresentative}
	assert.False(t, rep.IsFederationAdminForOtherOrg(participantFixture("gaia-x-aisbl")))
}
