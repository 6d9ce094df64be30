package catalog

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"

	"orgregistry/internal/participant/models"
	"orgregistry/pkg/domain"
	"orgregistry/pkg/platform/sentinel"
)

// InMemory is a catalog fake for tests and local development. It keeps the
// contract honest: queries sort by display name, URIs are the prefixed
// subject ids, and the batch fetch deliberately returns documents in
// reverse order since the real catalog does not guarantee ordering either.
type InMemory struct {
	mu       sync.RWMutex
	subjects map[string]*models.CredentialSubject

	// FailNextUpdate, when set, is returned by the next Update call and
	// cleared. Simulates the catalog rejecting a signed presentation.
	FailNextUpdate error

	// FetchManyCalls counts FetchManyByURIs invocations so tests can
	// assert the zero-uri short-circuit.
	FetchManyCalls int
}

// NewInMemory creates an empty in-memory catalog.
func NewInMemory() *InMemory {
	return &InMemory{subjects: make(map[string]*models.CredentialSubject)}
}

func (m *InMemory) FetchByID(_ context.Context, prefixedID string) (*models.CredentialSubject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cs, ok := m.subjects[prefixedID]
	if !ok {
		return nil, &Error{Status: http.StatusNotFound, Message: "participant not found", cause: sentinel.ErrNotFound}
	}
	clone := *cs
	return &clone, nil
}

func (m *InMemory) QueryPage(ctx context.Context, offset, limit int) (Page, error) {
	return m.QueryPageExcluding(ctx, nil, offset, limit)
}

func (m *InMemory) QueryPageExcluding(_ context.Context, excluded []domain.OrganizationID, offset, limit int) (Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	skip := make(map[domain.OrganizationID]struct{}, len(excluded))
	for _, id := range excluded {
		skip[id] = struct{}{}
	}

	var kept []*models.CredentialSubject
	for _, cs := range m.subjects {
		if orgID, ok := cs.OrganizationID(); ok {
			if _, excluded := skip[orgID]; excluded {
				continue
			}
		}
		kept = append(kept, cs)
	}
	sort.Slice(kept, func(i, j int) bool {
		return strings.ToLower(kept[i].DisplayName()) < strings.ToLower(kept[j].DisplayName())
	})

	page := Page{TotalCount: len(kept)}
	if offset >= len(kept) {
		return page, nil
	}
	end := offset + limit
	if end > len(kept) {
		end = len(kept)
	}
	for _, cs := range kept[offset:end] {
		page.URIs = append(page.URIs, cs.ID)
	}
	return page, nil
}

func (m *InMemory) FetchManyByURIs(_ context.Context, uris []string) ([]*models.CredentialSubject, error) {
	m.mu.Lock()
	m.FetchManyCalls++
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.CredentialSubject, 0, len(uris))
	// Reverse order on purpose: callers must not rely on it.
	for i := len(uris) - 1; i >= 0; i-- {
		if cs, ok := m.subjects[uris[i]]; ok {
			clone := *cs
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *InMemory) Create(_ context.Context, cs *models.CredentialSubject) (*models.CredentialSubject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.subjects[cs.ID]; exists {
		return nil, &Error{Status: http.StatusConflict, Message: "self-description already exists", cause: sentinel.ErrConflict}
	}
	clone := *cs
	m.subjects[cs.ID] = &clone
	return cs, nil
}

func (m *InMemory) Update(_ context.Context, cs *models.CredentialSubject) (*models.CredentialSubject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FailNextUpdate; err != nil {
		m.FailNextUpdate = nil
		return nil, err
	}
	if _, exists := m.subjects[cs.ID]; !exists {
		return nil, &Error{Status: http.StatusNotFound, Message: "participant not found", cause: sentinel.ErrNotFound}
	}
	clone := *cs
	m.subjects[cs.ID] = &clone
	return cs, nil
}

var _ Client = (*InMemory)(nil)
