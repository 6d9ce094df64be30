// Package service assembles participants from the remote catalog and the
// local metadata store, applies the per-role field update policy on writes,
// and filters visibility on reads.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"orgregistry/internal/catalog"
	connectormodels "orgregistry/internal/connector/models"
	participantmetrics "orgregistry/internal/participant/metrics"
	"orgregistry/internal/participant/models"
	"orgregistry/pkg/domain"
	dErrors "orgregistry/pkg/domain-errors"
	"orgregistry/pkg/platform/sentinel"
)

// MetadataStore is the local store contract the assembler depends on.
type MetadataStore interface {
	FindByOrgID(ctx context.Context, orgID domain.OrganizationID) (*models.OrganizationMetadata, error)
	Save(ctx context.Context, md *models.OrganizationMetadata) (*models.OrganizationMetadata, error)
	FindByMembershipClass(ctx context.Context, class models.MembershipClass) ([]*models.OrganizationMetadata, error)
	ListInactiveOrgIDs(ctx context.Context) ([]domain.OrganizationID, error)
}

// ConnectorSource yields an organization's connector records with opened
// access tokens. The visibility filter decides who gets to see them.
type ConnectorSource interface {
	FindAllByOrgID(ctx context.Context, orgID domain.OrganizationID) ([]connectormodels.ConnectorRecord, error)
}

// RevocationNotifier publishes a fire-and-forget notification when an
// organization's membership is revoked.
type RevocationNotifier interface {
	NotifyRevoked(ctx context.Context, orgID domain.OrganizationID) error
}

// ParticipantPage is one page of assembled participants plus the catalog's
// total count for the query.
type ParticipantPage struct {
	TotalCount int                   `json:"totalCount"`
	Page       int                   `json:"page"`
	Size       int                   `json:"size"`
	Items      []*models.Participant `json:"items"`
}

// Service orchestrates participant assembly, registration and updates.
type Service struct {
	catalog    catalog.Client
	metadata   MetadataStore
	connectors ConnectorSource
	notifier   RevocationNotifier
	logger     *slog.Logger
	metrics    *participantmetrics.Metrics
}

// Option configures the Service.
type Option func(*Service)

// WithConnectorSource attaches connector records to assembled metadata.
func WithConnectorSource(src ConnectorSource) Option {
	return func(s *Service) { s.connectors = src }
}

// WithRevocationNotifier publishes membership revocations to the bus.
func WithRevocationNotifier(n RevocationNotifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *participantmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs a Service.
func New(catalogClient catalog.Client, metadata MetadataStore, opts ...Option) *Service {
	s := &Service{
		catalog:  catalogClient,
		metadata: metadata,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetByID assembles one participant. The raw id must match the identifier
// pattern before any network call happens; the credential subject comes
// from the catalog, the metadata from the local store. Metadata absence is
// not an error, but a failing metadata read is: Update loads through here
// and must never merge against metadata it could not see.
func (s *Service) GetByID(ctx context.Context, rawID string) (*models.Participant, error) {
	orgID, err := domain.ParseOrganizationID(rawID)
	if err != nil {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid participant id %q", rawID)
	}

	cs, err := s.catalog.FetchByID(ctx, orgID.Prefixed())
	if err != nil {
		return nil, s.catalogError(ctx, err, "fetch participant")
	}
	return s.assemble(ctx, cs)
}

// ListPage assembles one name-sorted page of participants. Organizations
// flagged inactive locally are excluded unless the caller is a federation
// admin. The catalog's paging and its batch fetch do not share a stable
// order, so the merged result is re-sorted by display name before it is
// returned; this final sort is a correctness rule, not an optimization.
func (s *Service) ListPage(ctx context.Context, role models.ActiveRole, pageNum, size int) (*ParticipantPage, error) {
	if pageNum < 0 {
		pageNum = 0
	}
	if size <= 0 {
		size = 25
	}

	var excluded []domain.OrganizationID
	if !role.IsFederationAdmin() {
		inactive, err := s.metadata.ListInactiveOrgIDs(ctx)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve inactive organizations")
		}
		excluded = inactive
	}

	page, err := s.catalog.QueryPageExcluding(ctx, excluded, pageNum*size, size)
	if err != nil {
		return nil, s.catalogError(ctx, err, "query participants")
	}

	result := &ParticipantPage{TotalCount: page.TotalCount, Page: pageNum, Size: size}
	if len(page.URIs) == 0 {
		// Nothing to resolve; do not issue the batch fetch.
		result.Items = []*models.Participant{}
		return result, nil
	}

	subjects, err := s.catalog.FetchManyByURIs(ctx, page.URIs)
	if err != nil {
		return nil, s.catalogError(ctx, err, "resolve participants")
	}
	result.Items = s.assembleSorted(ctx, subjects)
	return result, nil
}

// ListFederators returns every participant whose membership class is
// federator. Never paginated: the federator set is resolved from local
// metadata first, then their documents are fetched in one batch.
func (s *Service) ListFederators(ctx context.Context) ([]*models.Participant, error) {
	federators, err := s.metadata.FindByMembershipClass(ctx, models.MembershipFederator)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve federators")
	}
	if len(federators) == 0 {
		return []*models.Participant{}, nil
	}

	uris := make([]string, 0, len(federators))
	for _, md := range federators {
		uris = append(uris, md.OrganizationID.Prefixed())
	}
	subjects, err := s.catalog.FetchManyByURIs(ctx, uris)
	if err != nil {
		return nil, s.catalogError(ctx, err, "resolve federators")
	}
	return s.assembleSorted(ctx, subjects), nil
}

// Create registers a new participant from a registration form: the
// organization id is derived deterministically from the organization name,
// the credential subject is submitted to the catalog, and only then is the
// local metadata row created with membership class participant and the
// organization active.
func (s *Service) Create(ctx context.Context, form *models.RegistrationForm) (*models.Participant, error) {
	if form == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "registration form is required")
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	orgID, err := deriveOrganizationID(form.OrganizationName)
	if err != nil {
		return nil, err
	}

	cs := &models.CredentialSubject{
		Context:            models.CredentialContext(),
		ID:                 orgID.Prefixed(),
		Type:               models.CredentialType,
		OrgName:            form.OrganizationName,
		LegalName:          form.LegalName,
		RegistrationNumber: models.RegistrationNumber{Local: form.RegistrationNumber},
		LegalAddress: models.Address{
			CountryCode:   form.CountryCode,
			City:          form.City,
			PostalCode:    form.PostalCode,
			StreetAddress: form.Street,
		},
		HeadquarterAddress: models.Address{
			CountryCode:   form.CountryCode,
			City:          form.City,
			PostalCode:    form.PostalCode,
			StreetAddress: form.Street,
		},
		TermsAndConditions: models.TermsAndConditions{URL: form.TncLink, Hash: form.TncHash},
	}

	created, err := s.catalog.Create(ctx, cs)
	if err != nil {
		return nil, s.catalogError(ctx, err, "register participant")
	}

	md := &models.OrganizationMetadata{
		OrganizationID:  orgID,
		MailAddress:     form.MailAddress,
		MembershipClass: models.MembershipParticipant,
		Active:          true,
	}
	savedMD, err := s.metadata.Save(ctx, md)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist organization metadata")
	}

	if s.metrics != nil {
		s.metrics.IncrementParticipantsCreated()
	}
	s.logger.InfoContext(ctx, "participant registered", "org_id", orgID)

	return &models.Participant{ID: orgID, CredentialSubject: created, Metadata: savedMD}, nil
}

// Update loads the stored participant, computes the policy-approved merge
// for the caller's role, writes the merged credential subject to the
// catalog and persists the merged metadata only after the catalog write
// succeeded. The catalog is the authoritative write; metadata must never
// drift ahead of the credential.
func (s *Service) Update(ctx context.Context, role models.ActiveRole, rawID string, edited *models.Participant) (*models.Participant, error) {
	stored, err := s.GetByID(ctx, rawID)
	if err != nil {
		return nil, err
	}

	// A representative edits only the organization it represents; a
	// federation admin edits any organization.
	if role.IsRepresentative() && !role.RepresentsParticipant(stored) {
		return nil, dErrors.New(dErrors.CodeForbidden, "active role does not represent this organization")
	}

	merged, err := mergeForRole(role, edited, stored)
	if err != nil {
		return nil, err
	}

	updatedCS, err := s.catalog.Update(ctx, merged.CredentialSubject)
	if err != nil {
		return nil, s.catalogError(ctx, err, "update participant")
	}

	result := &models.Participant{ID: merged.ID, CredentialSubject: updatedCS, Metadata: merged.Metadata}
	if merged.Metadata != nil {
		savedMD, err := s.metadata.Save(ctx, merged.Metadata)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist organization metadata")
		}
		result.Metadata = savedMD

		wasActive := stored.Metadata != nil && stored.Metadata.Active
		if wasActive && !savedMD.Active {
			s.notifyRevoked(ctx, merged.ID)
		}
	}

	if s.metrics != nil {
		s.metrics.IncrementParticipantsUpdated()
	}
	return result, nil
}

// notifyRevoked publishes the revocation fire-and-forget: a bus failure is
// logged but never fails the update that triggered it.
func (s *Service) notifyRevoked(ctx context.Context, orgID domain.OrganizationID) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyRevoked(ctx, orgID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish membership revocation",
			"org_id", orgID,
			"error", err,
		)
	}
}

// assemble merges a credential subject with its local metadata. Metadata
// absence leaves the field nil; a failing metadata read returns the bare
// participant together with the error so each caller decides whether to
// degrade or abort. When metadata exists, its organization id is
// overwritten with the externally-visible value: the stored copy of this
// cross-reference field is never trusted.
func (s *Service) assemble(ctx context.Context, cs *models.CredentialSubject) (*models.Participant, error) {
	p := &models.Participant{CredentialSubject: cs}
	orgID, ok := cs.OrganizationID()
	if !ok {
		return p, nil
	}
	p.ID = orgID

	md, err := s.metadata.FindByOrgID(ctx, orgID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return p, nil
		}
		return p, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load organization metadata")
	}
	md.OrganizationID = orgID

	if s.connectors != nil {
		connectors, err := s.connectors.FindAllByOrgID(ctx, orgID)
		if err != nil {
			s.logger.WarnContext(ctx, "connector lookup failed, assembling without connectors",
				"org_id", orgID,
				"error", err,
			)
		} else {
			md.Connectors = connectors
		}
	}
	p.Metadata = md
	return p, nil
}

// assembleSorted assembles a list tolerantly: one unreadable metadata row
// must not take down the whole page, so the affected entry degrades to its
// bare credential subject.
func (s *Service) assembleSorted(ctx context.Context, subjects []*models.CredentialSubject) []*models.Participant {
	items := make([]*models.Participant, 0, len(subjects))
	for _, cs := range subjects {
		p, err := s.assemble(ctx, cs)
		if err != nil {
			s.logger.WarnContext(ctx, "metadata lookup failed, listing without metadata",
				"org_id", p.ID,
				"error", err,
			)
		}
		items = append(items, p)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].DisplayName()) < strings.ToLower(items[j].DisplayName())
	})
	return items
}

// catalogError translates a catalog failure into a domain error, forwarding
// the upstream message verbatim when the catalog supplied one.
func (s *Service) catalogError(ctx context.Context, err error, action string) error {
	if s.metrics != nil {
		s.metrics.IncrementCatalogErrors()
	}
	s.logger.ErrorContext(ctx, "catalog call failed", "action", action, "error", err)

	var catErr *catalog.Error
	if errors.As(err, &catErr) {
		code := dErrors.CodeInternal
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			code = dErrors.CodeNotFound
		case errors.Is(err, sentinel.ErrConflict):
			code = dErrors.CodeConflict
		}
		if msg := catErr.UpstreamMessage(); msg != "" {
			return dErrors.Wrap(err, code, msg)
		}
		return dErrors.Wrap(err, code, "could not "+action)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "could not "+action)
}
