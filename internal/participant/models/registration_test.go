package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "orgregistry/pkg/domain-errors"
)

func validForm() *RegistrationForm {
	return &RegistrationForm{
		OrganizationName:   "Gaia-X AISBL",
		LegalName:          "Gaia-X European Association for Data and Cloud AISBL",
		RegistrationNumber: "0762747721",
		MailAddress:        "contact@gaia-x.eu",
		TncLink:            "https://gaia-x.eu/tnc.pdf",
		TncHash:            "d8402a23de560f5ab34b22d1a142feb9e13b3143",
		CountryCode:        "BE",
		City:               "Brussels",
		PostalCode:         "1210",
		Street:             "Avenue des Arts 6-9",
	}
}

func TestRegistrationForm_Validate(t *testing.T) {
	t.Run("accepts a complete form", func(t *testing.T) {
		require.NoError(t, validForm().Validate())
	})

	t.Run("rejects an empty field", func(t *testing.T) {
		form := validForm()
		form.MailAddress = ""
		err := form.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects a whitespace-only field", func(t *testing.T) {
		form := validForm()
		form.City = "   "
		err := form.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func TestParticipant_Clone(t *testing.T) {
	original := participantFixture("gaia-x-aisbl")
	original.CredentialSubject.Context = CredentialContext()
	original.CredentialSubject.ParentOrganization = []string{"Participant:parent"}
	original.Metadata.Connectors = nil

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.CredentialSubject.OrgName = "changed"
	clone.CredentialSubject.Context["registry"] = "changed"
	clone.CredentialSubject.ParentOrganization[0] = "changed"
	clone.Metadata.Active = false

	assert.Equal(t, "Org", original.CredentialSubject.OrgName)
	assert.Equal(t, "https://w3id.org/gaia-x/registry#", original.CredentialSubject.Context["registry"])
	assert.Equal(t, []string{"Participant:parent"}, original.CredentialSubject.ParentOrganization)
	assert.True(t, original.Metadata.Active)
}

func TestCredentialSubject_DisplayName(t *testing.T) {
	assert.Equal(t, "Org", (&CredentialSubject{OrgName: "Org", LegalName: "Legal"}).DisplayName())
	assert.Equal(t, "Legal", (&CredentialSubject{LegalName: "Legal"}).DisplayName())
	assert.Empty(t, (*CredentialSubject)(nil).DisplayName())
}
