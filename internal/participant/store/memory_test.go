package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	connectormodels "orgregistry/internal/connector/models"
	"orgregistry/internal/participant/models"
	"orgregistry/pkg/domain"
	"orgregistry/pkg/platform/sentinel"
)

func TestInMemory_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	md := &models.OrganizationMetadata{
		OrganizationID:  "gaia-x-aisbl",
		MailAddress:     "contact@gaia-x.eu",
		MembershipClass: models.MembershipParticipant,
		Active:          true,
	}
	saved, err := s.Save(ctx, md)
	require.NoError(t, err)
	assert.Equal(t, md.OrganizationID, saved.OrganizationID)

	found, err := s.FindByOrgID(ctx, "gaia-x-aisbl")
	require.NoError(t, err)
	assert.Equal(t, "contact@gaia-x.eu", found.MailAddress)
	assert.True(t, found.Active)
}

func TestInMemory_FindByOrgID_NotFound(t *testing.T) {
	s := NewInMemory()
	_, err := s.FindByOrgID(context.Background(), "ghost-org")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemory_SaveUpserts(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	_, err := s.Save(ctx, &models.OrganizationMetadata{OrganizationID: "gaia-x-aisbl", Active: true})
	require.NoError(t, err)
	_, err = s.Save(ctx, &models.OrganizationMetadata{OrganizationID: "gaia-x-aisbl", Active: false, MailAddress: "new@gaia-x.eu"})
	require.NoError(t, err)

	found, err := s.FindByOrgID(ctx, "gaia-x-aisbl")
	require.NoError(t, err)
	assert.False(t, found.Active)
	assert.Equal(t, "new@gaia-x.eu", found.MailAddress)
}

func TestInMemory_SaveStripsConnectors(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	_, err := s.Save(ctx, &models.OrganizationMetadata{
		OrganizationID: "gaia-x-aisbl",
		Active:         true,
		Connectors:     []connectormodels.ConnectorRecord{{ConnectorID: "edc-1"}},
	})
	require.NoError(t, err)

	found, err := s.FindByOrgID(ctx, "gaia-x-aisbl")
	require.NoError(t, err)
	assert.Nil(t, found.Connectors, "connector rows live in their own store")
}

func TestInMemory_FindByMembershipClass(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	for id, class := range map[string]models.MembershipClass{
		"zeta-federator":  models.MembershipFederator,
		"alpha-federator": models.MembershipFederator,
		"plain-org":       models.MembershipParticipant,
	} {
		_, err := s.Save(ctx, &models.OrganizationMetadata{
			OrganizationID:  domain.OrganizationID(id),
			MembershipClass: class,
			Active:          true,
		})
		require.NoError(t, err)
	}

	federators, err := s.FindByMembershipClass(ctx, models.MembershipFederator)
	require.NoError(t, err)
	require.Len(t, federators, 2)
	assert.Equal(t, domain.OrganizationID("alpha-federator"), federators[0].OrganizationID)
	assert.Equal(t, domain.OrganizationID("zeta-federator"), federators[1].OrganizationID)
}

func TestInMemory_ListInactiveOrgIDs(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	_, err := s.Save(ctx, &models.OrganizationMetadata{OrganizationID: "active-org", Active: true})
	require.NoError(t, err)
	_, err = s.Save(ctx, &models.OrganizationMetadata{OrganizationID: "revoked-org", Active: false})
	require.NoError(t, err)

	inactive, err := s.ListInactiveOrgIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.OrganizationID{"revoked-org"}, inactive)
}
