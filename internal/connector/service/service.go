// Package service manages per-organization connector registrations. Access
// tokens are sealed before they reach the store and opened on the way out;
// the HTTP surface is gated to the organization's own representative, while
// the ungated lookups exist for the assembler and the message relay, whose
// outputs are protected by the visibility filter and the relay contract.
package service

import (
	"context"
	"errors"
	"log/slog"

	"orgregistry/internal/connector/models"
	participantmodels "orgregistry/internal/participant/models"
	"orgregistry/pkg/domain"
	dErrors "orgregistry/pkg/domain-errors"
	"orgregistry/pkg/platform/cipher"
	"orgregistry/pkg/platform/sentinel"
	pstrings "orgregistry/pkg/platform/strings"
)

// Store is the persistence contract for connector records.
type Store interface {
	FindAllByOrgID(ctx context.Context, orgID domain.OrganizationID) ([]models.ConnectorRecord, error)
	FindOne(ctx context.Context, orgID domain.OrganizationID, connectorID string) (*models.ConnectorRecord, error)
	Save(ctx context.Context, rec *models.ConnectorRecord) error
	Delete(ctx context.Context, orgID domain.OrganizationID, connectorID string) error
}

// Service orchestrates connector CRUD with encryption at rest.
type Service struct {
	store  Store
	cipher *cipher.Cipher
	logger *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New constructs a Service. The cipher is mandatory: connector tokens are
// never persisted in plaintext.
func New(store Store, c *cipher.Cipher, opts ...Option) *Service {
	s := &Service{store: store, cipher: c, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListOwn returns the connectors of the caller's own organization.
func (s *Service) ListOwn(ctx context.Context, role participantmodels.ActiveRole) ([]models.ConnectorRecord, error) {
	if err := requireRepresentative(role); err != nil {
		return nil, err
	}
	return s.FindAllByOrgID(ctx, role.OrganizationID)
}

// GetOwn returns one connector of the caller's own organization.
func (s *Service) GetOwn(ctx context.Context, role participantmodels.ActiveRole, connectorID string) (*models.ConnectorRecord, error) {
	if err := requireRepresentative(role); err != nil {
		return nil, err
	}
	return s.FindOne(ctx, role.OrganizationID, connectorID)
}

// SaveOwn creates or replaces a connector for the caller's own
// organization. The organization id on the record is forced to the
// caller's; a representative cannot register connectors for anyone else.
func (s *Service) SaveOwn(ctx context.Context, role participantmodels.ActiveRole, rec *models.ConnectorRecord) (*models.ConnectorRecord, error) {
	if err := requireRepresentative(role); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "connector record is required")
	}
	rec.OrganizationID = role.OrganizationID
	rec.BucketNames = pstrings.DedupeAndTrim(rec.BucketNames)
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	sealed := rec.Clone()
	token, err := s.cipher.Seal(rec.AccessToken)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to seal connector token")
	}
	sealed.AccessToken = token

	if err := s.store.Save(ctx, &sealed); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save connector")
	}
	out := rec.Clone()
	return &out, nil
}

// DeleteOwn removes a connector of the caller's own organization.
func (s *Service) DeleteOwn(ctx context.Context, role participantmodels.ActiveRole, connectorID string) error {
	if err := requireRepresentative(role); err != nil {
		return err
	}
	err := s.store.Delete(ctx, role.OrganizationID, connectorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "connector not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete connector")
	}
	return nil
}

// FindAllByOrgID returns an organization's connectors with opened tokens.
// Satisfies the assembler's ConnectorSource contract.
func (s *Service) FindAllByOrgID(ctx context.Context, orgID domain.OrganizationID) ([]models.ConnectorRecord, error) {
	records, err := s.store.FindAllByOrgID(ctx, orgID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list connectors")
	}
	for i := range records {
		if err := s.openToken(&records[i]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// FindOne returns one connector with an opened token, or CodeNotFound.
func (s *Service) FindOne(ctx context.Context, orgID domain.OrganizationID, connectorID string) (*models.ConnectorRecord, error) {
	rec, err := s.store.FindOne(ctx, orgID, connectorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "connector not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find connector")
	}
	if err := s.openToken(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) openToken(rec *models.ConnectorRecord) error {
	token, err := s.cipher.Open(rec.AccessToken)
	if err != nil {
		// A row that fails to open means key rotation gone wrong or
		// tampering; surface it instead of returning ciphertext.
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to open connector token")
	}
	rec.AccessToken = token
	return nil
}

func requireRepresentative(role participantmodels.ActiveRole) error {
	if !role.IsRepresentative() {
		return dErrors.New(dErrors.CodeForbidden, "active role may not manage connectors")
	}
	return nil
}
