package store

import (
	"context"
	"sort"
	"sync"

	"orgregistry/internal/connector/models"
	"orgregistry/pkg/domain"
	"orgregistry/pkg/platform/sentinel"
)

type connectorKey struct {
	orgID       domain.OrganizationID
	connectorID string
}

// InMemory is a map-backed connector store for tests and local development.
type InMemory struct {
	mu   sync.RWMutex
	rows map[connectorKey]models.ConnectorRecord
}

// NewInMemory creates an empty in-memory connector store.
func NewInMemory() *InMemory {
	return &InMemory{rows: make(map[connectorKey]models.ConnectorRecord)}
}

func (s *InMemory) FindAllByOrgID(_ context.Context, orgID domain.OrganizationID) ([]models.ConnectorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.ConnectorRecord
	for key, rec := range s.rows {
		if key.orgID == orgID {
			out = append(out, rec.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ConnectorID < out[j].ConnectorID })
	return out, nil
}

func (s *InMemory) FindOne(_ context.Context, orgID domain.OrganizationID, connectorID string) (*models.ConnectorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.rows[connectorKey{orgID: orgID, connectorID: connectorID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := rec.Clone()
	return &clone, nil
}

func (s *InMemory) Save(_ context.Context, rec *models.ConnectorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[connectorKey{orgID: rec.OrganizationID, connectorID: rec.ConnectorID}] = rec.Clone()
	return nil
}

func (s *InMemory) Delete(_ context.Context, orgID domain.OrganizationID, connectorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := connectorKey{orgID: orgID, connectorID: connectorID}
	if _, ok := s.rows[key]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.rows, key)
	return nil
}
