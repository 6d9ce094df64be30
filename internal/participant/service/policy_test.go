package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgregistry/internal/participant/models"
	"orgregistry/pkg/domain"
	dErrors "orgregistry/pkg/domain-errors"
)

func storedParticipant() *models.Participant {
	return &models.Participant{
		ID: "gaia-x-aisbl",
		CredentialSubject: &models.CredentialSubject{
			ID:                 "Participant:gaia-x-aisbl",
			OrgName:            "Gaia-X AISBL",
			LegalName:          "Gaia-X European Association AISBL",
			LegalForm:          "AISBL",
			Description:        "stored description",
			RegistrationNumber: models.RegistrationNumber{Local: "0762747721"},
			LegalAddress:       models.Address{CountryCode: "BE", City: "Brussels"},
			HeadquarterAddress: models.Address{CountryCode: "BE", City: "Brussels"},
			TermsAndConditions: models.TermsAndConditions{URL: "https://gaia-x.eu/tnc.pdf", Hash: "abc"},
			ParentOrganization: []string{"Participant:parent"},
		},
		Metadata: &models.OrganizationMetadata{
			OrganizationID:  "gaia-x-aisbl",
			MailAddress:     "contact@gaia-x.eu",
			MembershipClass: models.MembershipParticipant,
			Active:          true,
		},
	}
}

// editedEverything changes every field a caller could possibly send,
// including the ones no role may touch.
func editedEverything() *models.Participant {
	return &models.Participant{
		ID: "forged-id",
		CredentialSubject: &models.CredentialSubject{
			ID:                 "Participant:forged-id",
			OrgName:            "Edited Org",
			LegalName:          "Edited Legal Name",
			LegalForm:          "GmbH",
			Description:        "edited description",
			RegistrationNumber: models.RegistrationNumber{Local: "999", VatID: "DE999"},
			LegalAddress:       models.Address{CountryCode: "DE", City: "Berlin"},
			HeadquarterAddress: models.Address{CountryCode: "DE", City: "Munich"},
			TermsAndConditions: models.TermsAndConditions{URL: "https://edited.example/tnc", Hash: "def"},
			ParentOrganization: []string{"Participant:edited-parent"},
			SubOrganization:    []string{"Participant:edited-sub"},
		},
		Metadata: &models.OrganizationMetadata{
			OrganizationID:  "forged-id",
			MailAddress:     "edited@example.org",
			MembershipClass: models.MembershipFederator,
			Active:          false,
		},
	}
}

func TestMergeForRole_Representative(t *testing.T) {
	role := models.ActiveRole{OrganizationID: "gaia-x-aisbl", Kind: models.RoleRepresentative}
	stored := storedParticipant()

	merged, err := mergeForRole(role, editedEverything(), stored)
	require.NoError(t, err)

	// Allowed fields carry the edit.
	assert.Equal(t, "edited description", merged.CredentialSubject.Description)
	assert.Equal(t, models.Address{CountryCode: "DE", City: "Berlin"}, merged.CredentialSubject.LegalAddress)
	assert.Equal(t, models.Address{CountryCode: "DE", City: "Munich"}, merged.CredentialSubject.HeadquarterAddress)
	assert.Equal(t, "edited@example.org", merged.Metadata.MailAddress)

	// Everything else keeps the stored value.
	assert.Equal(t, domain.OrganizationID("gaia-x-aisbl"), merged.ID)
	assert.Equal(t, "Participant:gaia-x-aisbl", merged.CredentialSubject.ID)
	assert.Equal(t, "Gaia-X AISBL", merged.CredentialSubject.OrgName)
	assert.Equal(t, "Gaia-X European Association AISBL", merged.CredentialSubject.LegalName)
	assert.Equal(t, "AISBL", merged.CredentialSubject.LegalForm)
	assert.Equal(t, models.RegistrationNumber{Local: "0762747721"}, merged.CredentialSubject.RegistrationNumber)
	assert.Equal(t, models.TermsAndConditions{URL: "https://gaia-x.eu/tnc.pdf", Hash: "abc"}, merged.CredentialSubject.TermsAndConditions)
	assert.Equal(t, []string{"Participant:parent"}, merged.CredentialSubject.ParentOrganization)
	assert.Equal(t, domain.OrganizationID("gaia-x-aisbl"), merged.Metadata.OrganizationID)
	assert.Equal(t, models.MembershipParticipant, merged.Metadata.MembershipClass)
	assert.True(t, merged.Metadata.Active)
}

func TestMergeForRole_FederationAdmin(t *testing.T) {
	role := models.ActiveRole{OrganizationID: "dataspace-operator", Kind: models.RoleFederationAdmin}
	stored := storedParticipant()

	merged, err := mergeForRole(role, editedEverything(), stored)
	require.NoError(t, err)

	// The representative's fields plus the registered identity data.
	assert.Equal(t, "edited description", merged.CredentialSubject.Description)
	assert.Equal(t, "Edited Org", merged.CredentialSubject.OrgName)
	assert.Equal(t, "Edited Legal Name", merged.CredentialSubject.LegalName)
	assert.Equal(t, "GmbH", merged.CredentialSubject.LegalForm)
	assert.Equal(t, models.RegistrationNumber{Local: "999", VatID: "DE999"}, merged.CredentialSubject.RegistrationNumber)
	assert.Equal(t, models.TermsAndConditions{URL: "https://edited.example/tnc", Hash: "def"}, merged.CredentialSubject.TermsAndConditions)
	assert.Equal(t, []string{"Participant:edited-parent"}, merged.CredentialSubject.ParentOrganization)
	assert.Equal(t, []string{"Participant:edited-sub"}, merged.CredentialSubject.SubOrganization)
	assert.Equal(t, "edited@example.org", merged.Metadata.MailAddress)
	assert.Equal(t, models.MembershipFederator, merged.Metadata.MembershipClass)
	assert.False(t, merged.Metadata.Active)

	// Identity fields never come from the edit, regardless of role.
	assert.Equal(t, domain.OrganizationID("gaia-x-aisbl"), merged.ID)
	assert.Equal(t, "Participant:gaia-x-aisbl", merged.CredentialSubject.ID)
	assert.Equal(t, domain.OrganizationID("gaia-x-aisbl"), merged.Metadata.OrganizationID)
}

func TestMergeForRole_InvalidMembershipClassKeepsStored(t *testing.T) {
	role := models.ActiveRole{OrganizationID: "dataspace-operator", Kind: models.RoleFederationAdmin}
	edited := editedEverything()
	edited.Metadata.MembershipClass = "board-member"

	merged, err := mergeForRole(role, edited, storedParticipant())
	require.NoError(t, err)
	assert.Equal(t, models.MembershipParticipant, merged.Metadata.MembershipClass)
}

func TestMergeForRole_NoRoleForbidden(t *testing.T) {
	_, err := mergeForRole(models.NoRole, editedEverything(), storedParticipant())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestMergeForRole_NilShapes(t *testing.T) {
	role := models.ActiveRole{OrganizationID: "gaia-x-aisbl", Kind: models.RoleRepresentative}

	t.Run("nil edited", func(t *testing.T) {
		_, err := mergeForRole(role, nil, storedParticipant())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("edited without credential subject leaves the subject alone", func(t *testing.T) {
		edited := &models.Participant{Metadata: &models.OrganizationMetadata{MailAddress: "new@example.org"}}
		merged, err := mergeForRole(role, edited, storedParticipant())
		require.NoError(t, err)
		assert.Equal(t, "stored description", merged.CredentialSubject.Description)
		assert.Equal(t, "new@example.org", merged.Metadata.MailAddress)
	})

	t.Run("stored without metadata merges the subject only", func(t *testing.T) {
		stored := storedParticipant()
		stored.Metadata = nil
		merged, err := mergeForRole(role, editedEverything(), stored)
		require.NoError(t, err)
		assert.Nil(t, merged.Metadata)
		assert.Equal(t, "edited description", merged.CredentialSubject.Description)
	})

	t.Run("incomplete stored participant", func(t *testing.T) {
		_, err := mergeForRole(role, editedEverything(), &models.Participant{})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func TestMergeForRole_DoesNotMutateStored(t *testing.T) {
	role := models.ActiveRole{OrganizationID: "dataspace-operator", Kind: models.RoleFederationAdmin}
	stored := storedParticipant()

	_, err := mergeForRole(role, editedEverything(), stored)
	require.NoError(t, err)
	assert.Equal(t, storedParticipant(), stored)
}
