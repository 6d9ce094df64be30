// Package catalog talks to the remote self-description catalog. The catalog
// is the source of truth for participant credential subjects; this service
// only projects them. All errors carry the upstream status and, when the
// catalog supplied one, its message verbatim.
package catalog

import (
	"context"
	"fmt"

	"orgregistry/internal/participant/models"
	"orgregistry/pkg/domain"
)

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

// Page is one page of the catalog's participant index: the total count the
// catalog reports for the query plus the document URIs of this page. The
// order of URIs follows the catalog's sort, but the batch fetch does not
// guarantee to preserve it.
type Page struct {
	TotalCount int
	URIs       []string
}

// Client is the catalog contract the assembler depends on.
type Client interface {
	// FetchByID retrieves one credential subject by its prefixed subject id.
	// Returns sentinel.ErrNotFound (wrapped in a *Error) when absent.
	FetchByID(ctx context.Context, prefixedID string) (*models.CredentialSubject, error)

	// QueryPage returns a name-sorted page of participant document URIs.
	QueryPage(ctx context.Context, offset, limit int) (Page, error)

	// QueryPageExcluding is QueryPage minus the documents whose bare
	// organization ids appear in excluded.
	QueryPageExcluding(ctx context.Context, excluded []domain.OrganizationID, offset, limit int) (Page, error)

	// FetchManyByURIs resolves full documents for a set of URIs in one
	// call. Result order is not guaranteed to match the input.
	FetchManyByURIs(ctx context.Context, uris []string) ([]*models.CredentialSubject, error)

	// Create submits a new self-description to the catalog.
	Create(ctx context.Context, cs *models.CredentialSubject) (*models.CredentialSubject, error)

	// Update replaces an existing self-description. The catalog may reject
	// the document with a signature or presentation failure.
	Update(ctx context.Context, cs *models.CredentialSubject) (*models.CredentialSubject, error)
}

// Error is a catalog failure with the upstream's status code and optional
// human-readable message.
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("catalog responded %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("catalog responded %d", e.Status)
}

func (e *Error) Unwrap() error { return e.cause }

// UpstreamMessage returns the catalog's own message when it sent one, or
// the empty string. Services forward it verbatim when present.
func (e *Error) UpstreamMessage() string { return e.Message }
