//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"orgregistry/internal/connector/models"
	"orgregistry/internal/connector/store"
	"orgregistry/pkg/platform/sentinel"
	"orgregistry/pkg/testutil/containers"
)

const connectorSchema = `
CREATE TABLE IF NOT EXISTS connectors (
	org_id       TEXT NOT NULL,
	connector_id TEXT NOT NULL,
	endpoint     TEXT NOT NULL,
	access_token TEXT NOT NULL DEFAULT '',
	bucket_names TEXT[] NOT NULL DEFAULT '{}',
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (org_id, connector_id)
)`

type ConnectorStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestConnectorStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ConnectorStoreSuite))
}

func (s *ConnectorStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	_, err := s.postgres.DB.Exec(connectorSchema)
	s.Require().NoError(err)
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *ConnectorStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "connectors"))
}

func (s *ConnectorStoreSuite) TestSaveAndFind() {
	ctx := context.Background()
	err := s.store.Save(ctx, &models.ConnectorRecord{
		OrganizationID: "gaia-x-aisbl",
		ConnectorID:    "edc-1",
		Endpoint:       "https://edc.example.org",
		AccessToken:    "sealed-token",
		BucketNames:    []string{"bucket-a", "bucket-b"},
	})
	s.Require().NoError(err)

	rec, err := s.store.FindOne(ctx, "gaia-x-aisbl", "edc-1")
	s.Require().NoError(err)
	s.Equal("https://edc.example.org", rec.Endpoint)
	s.Equal("sealed-token", rec.AccessToken)
	s.Equal([]string{"bucket-a", "bucket-b"}, rec.BucketNames)
}

func (s *ConnectorStoreSuite) TestSaveUpserts() {
	ctx := context.Background()
	rec := &models.ConnectorRecord{
		OrganizationID: "gaia-x-aisbl",
		ConnectorID:    "edc-1",
		Endpoint:       "https://edc.example.org",
	}
	s.Require().NoError(s.store.Save(ctx, rec))

	rec.Endpoint = "https://changed.example.org"
	rec.BucketNames = []string{"bucket-c"}
	s.Require().NoError(s.store.Save(ctx, rec))

	found, err := s.store.FindOne(ctx, "gaia-x-aisbl", "edc-1")
	s.Require().NoError(err)
	s.Equal("https://changed.example.org", found.Endpoint)
	s.Equal([]string{"bucket-c"}, found.BucketNames)
}

func (s *ConnectorStoreSuite) TestFindAllByOrgID() {
	ctx := context.Background()
	for _, id := range []string{"edc-2", "edc-1"} {
		s.Require().NoError(s.store.Save(ctx, &models.ConnectorRecord{
			OrganizationID: "gaia-x-aisbl",
			ConnectorID:    id,
			Endpoint:       "https://edc.example.org/" + id,
		}))
	}
	s.Require().NoError(s.store.Save(ctx, &models.ConnectorRecord{
		OrganizationID: "other-org",
		ConnectorID:    "edc-1",
		Endpoint:       "https://other.example.org",
	}))

	records, err := s.store.FindAllByOrgID(ctx, "gaia-x-aisbl")
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal("edc-1", records[0].ConnectorID)
	s.Equal("edc-2", records[1].ConnectorID)
}

func (s *ConnectorStoreSuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, &models.ConnectorRecord{
		OrganizationID: "gaia-x-aisbl",
		ConnectorID:    "edc-1",
		Endpoint:       "https://edc.example.org",
	}))

	s.Require().NoError(s.store.Delete(ctx, "gaia-x-aisbl", "edc-1"))
	_, err := s.store.FindOne(ctx, "gaia-x-aisbl", "edc-1")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.Delete(ctx, "gaia-x-aisbl", "edc-1"), sentinel.ErrNotFound)
}
