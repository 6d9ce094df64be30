package handler

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgregistry/internal/catalog"
	"orgregistry/internal/participant/models"
	"orgregistry/internal/participant/service"
	"orgregistry/internal/participant/store"
	"orgregistry/pkg/domain"
	"orgregistry/pkg/testutil"
)

type env struct {
	router   chi.Router
	catalog  *catalog.InMemory
	metadata *store.InMemory
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		catalog:  catalog.NewInMemory(),
		metadata: store.NewInMemory(),
	}
	svc := service.New(e.catalog, e.metadata, service.WithLogger(slog.New(slog.DiscardHandler)))
	e.router = chi.NewRouter()
	New(svc, slog.New(slog.DiscardHandler)).Register(e.router)
	return e
}

func (e *env) seed(t *testing.T, orgID, name string, class models.MembershipClass, active bool) {
	t.Helper()
	ctx := context.Background()
	_, err := e.catalog.Create(ctx, &models.CredentialSubject{
		ID:      domain.ParticipantPrefix + orgID,
		Type:    models.CredentialType,
		OrgName: name,
	})
	require.NoError(t, err)
	_, err = e.metadata.Save(ctx, &models.OrganizationMetadata{
		OrganizationID:  domain.OrganizationID(orgID),
		MailAddress:     orgID + "@example.org",
		MembershipClass: class,
		Active:          active,
	})
	require.NoError(t, err)
}

func TestHandler_Get(t *testing.T) {
	t.Run("anonymous caller gets the filtered participant", func(t *testing.T) {
		e := newEnv(t)
		e.seed(t, "gaia-x-aisbl", "Gaia-X AISBL", models.MembershipParticipant, true)

		rr := testutil.DoRequest(e.router, testutil.NewRequest(t, http.MethodGet, "/organization/gaia-x-aisbl"))
		require.Equal(t, http.StatusOK, rr.Code)

		var got models.Participant
		testutil.DecodeJSON(t, rr, &got)
		assert.Equal(t, "Gaia-X AISBL", got.CredentialSubject.OrgName)
		assert.Nil(t, got.Metadata, "metadata is hidden from anonymous callers")
	})

	t.Run("own representative gets the metadata", func(t *testing.T) {
		e := newEnv(t)
		e.seed(t, "gaia-x-aisbl", "Gaia-X AISBL", models.MembershipParticipant, true)

		req := testutil.AsRepresentative(testutil.NewRequest(t, http.MethodGet, "/organization/gaia-x-aisbl"), "gaia-x-aisbl")
		rr := testutil.DoRequest(e.router, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var got models.Participant
		testutil.DecodeJSON(t, rr, &got)
		require.NotNil(t, got.Metadata)
		assert.Equal(t, "gaia-x-aisbl@example.org", got.Metadata.MailAddress)
	})

	t.Run("unknown organization is 404", func(t *testing.T) {
		e := newEnv(t)
		rr := testutil.DoRequest(e.router, testutil.NewRequest(t, http.MethodGet, "/organization/ghost-org"))
		assert.Equal(t, http.StatusNotFound, rr.Code)

		var body map[string]string
		testutil.DecodeJSON(t, rr, &body)
		assert.Equal(t, "not_found", body["error"])
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		e := newEnv(t)
		rr := testutil.DoRequest(e.router, testutil.NewRequest(t, http.MethodGet, "/organization/NOT%20AN%20ID"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandler_List(t *testing.T) {
	e := newEnv(t)
	e.seed(t, "beta-org", "Beta", models.MembershipParticipant, true)
	e.seed(t, "alpha-org", "Alpha", models.MembershipFederator, true)

	rr := testutil.DoRequest(e.router, testutil.NewRequest(t, http.MethodGet, "/organization?page=0&size=10"))
	require.Equal(t, http.StatusOK, rr.Code)

	var page service.ParticipantPage
	testutil.DecodeJSON(t, rr, &page)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Alpha", page.Items[0].CredentialSubject.OrgName)
	assert.NotNil(t, page.Items[0].Metadata, "federator metadata stays visible in the directory")
	assert.Nil(t, page.Items[1].Metadata)
	assert.Equal(t, 2, page.TotalCount)
	assert.Equal(t, 10, page.Size)
}

func TestHandler_Federators(t *testing.T) {
	e := newEnv(t)
	e.seed(t, "plain-org", "Plain", models.MembershipParticipant, true)
	e.seed(t, "federator-org", "Federator", models.MembershipFederator, true)

	rr := testutil.DoRequest(e.router, testutil.NewRequest(t, http.MethodGet, "/organization/federators"))
	require.Equal(t, http.StatusOK, rr.Code)

	var federators []*models.Participant
	testutil.DecodeJSON(t, rr, &federators)
	require.Len(t, federators, 1)
	assert.Equal(t, "Federator", federators[0].CredentialSubject.OrgName)
}

func TestHandler_Create(t *testing.T) {
	form := map[string]string{
		"organizationName":   "Gaia-X AISBL",
		"legalName":          "Gaia-X European Association AISBL",
		"registrationNumber": "0762747721",
		"mailAddress":        "contact@gaia-x.eu",
		"tncLink":            "https://gaia-x.eu/tnc.pdf",
		"tncHash":            "abc123",
		"countryCode":        "BE",
		"city":               "Brussels",
		"postalCode":         "1210",
		"street":             "Avenue des Arts 6-9",
	}

	t.Run("registers a participant", func(t *testing.T) {
		e := newEnv(t)
		rr := testutil.DoRequest(e.router, testutil.NewJSONRequest(t, http.MethodPost, "/organization", form))
		require.Equal(t, http.StatusCreated, rr.Code)

		var got models.Participant
		testutil.DecodeJSON(t, rr, &got)
		assert.Equal(t, "gaia-x-aisbl", got.ID.String())
		require.NotNil(t, got.Metadata, "the creator sees the full record")
		assert.True(t, got.Metadata.Active)
	})

	t.Run("incomplete form is 400", func(t *testing.T) {
		e := newEnv(t)
		incomplete := map[string]string{"organizationName": "Gaia-X AISBL"}
		rr := testutil.DoRequest(e.router, testutil.NewJSONRequest(t, http.MethodPost, "/organization", incomplete))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		e := newEnv(t)
		req := testutil.NewJSONRequest(t, http.MethodPost, "/organization", nil)
		req.Body = http.NoBody
		rr := testutil.DoRequest(e.router, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandler_Update(t *testing.T) {
	edited := map[string]any{
		"selfDescription": map[string]any{"description": "new description"},
		"metadata":        map[string]any{"mailAddress": "new@gaia-x.eu", "active": true},
	}

	t.Run("own representative updates", func(t *testing.T) {
		e := newEnv(t)
		e.seed(t, "gaia-x-aisbl", "Gaia-X AISBL", models.MembershipParticipant, true)

		req := testutil.AsRepresentative(
			testutil.NewJSONRequest(t, http.MethodPut, "/organization/gaia-x-aisbl", edited), "gaia-x-aisbl")
		rr := testutil.DoRequest(e.router, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var got models.Participant
		testutil.DecodeJSON(t, rr, &got)
		assert.Equal(t, "new description", got.CredentialSubject.Description)
		require.NotNil(t, got.Metadata)
		assert.Equal(t, "new@gaia-x.eu", got.Metadata.MailAddress)
	})

	t.Run("anonymous caller is forbidden", func(t *testing.T) {
		e := newEnv(t)
		e.seed(t, "gaia-x-aisbl", "Gaia-X AISBL", models.MembershipParticipant, true)

		rr := testutil.DoRequest(e.router, testutil.NewJSONRequest(t, http.MethodPut, "/organization/gaia-x-aisbl", edited))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("foreign representative is forbidden", func(t *testing.T) {
		e := newEnv(t)
		e.seed(t, "gaia-x-aisbl", "Gaia-X AISBL", models.MembershipParticipant, true)

		req := testutil.AsRepresentative(
			testutil.NewJSONRequest(t, http.MethodPut, "/organization/gaia-x-aisbl", edited), "other-org")
		rr := testutil.DoRequest(e.router, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("federation admin revokes a membership", func(t *testing.T) {
		e := newEnv(t)
		e.seed(t, "gaia-x-aisbl", "Gaia-X AISBL", models.MembershipParticipant, true)

		revoke := map[string]any{
			"metadata": map[string]any{"mailAddress": "contact@gaia-x.eu", "active": false},
		}
		req := testutil.AsFederationAdmin(
			testutil.NewJSONRequest(t, http.MethodPut, "/organization/gaia-x-aisbl", revoke), "dataspace-operator")
		rr := testutil.DoRequest(e.router, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var got models.Participant
		testutil.DecodeJSON(t, rr, &got)
		require.NotNil(t, got.Metadata)
		assert.False(t, got.Metadata.Active)
	})
}
