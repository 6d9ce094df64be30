package store

import (
	"context"
	"sort"
	"sync"

	"orgregistry/internal/participant/models"
	"orgregistry/pkg/domain"
	"orgregistry/pkg/platform/sentinel"
)

// InMemory is a map-backed metadata store for tests and local development.
type InMemory struct {
	mu   sync.RWMutex
	rows map[domain.OrganizationID]models.OrganizationMetadata
}

// NewInMemory creates an empty in-memory metadata store.
func NewInMemory() *InMemory {
	return &InMemory{rows: make(map[domain.OrganizationID]models.OrganizationMetadata)}
}

func (s *InMemory) FindByOrgID(_ context.Context, orgID domain.OrganizationID) (*models.OrganizationMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	md, ok := s.rows[orgID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := md
	return &clone, nil
}

func (s *InMemory) Save(_ context.Context, md *models.OrganizationMetadata) (*models.OrganizationMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *md
	clone.Connectors = nil // connector rows live in their own store
	s.rows[md.OrganizationID] = clone
	saved := *md
	return &saved, nil
}

func (s *InMemory) FindByMembershipClass(_ context.Context, class models.MembershipClass) ([]*models.OrganizationMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.OrganizationMetadata
	for _, md := range s.rows {
		if md.MembershipClass == class {
			clone := md
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrganizationID < out[j].OrganizationID })
	return out, nil
}

func (s *InMemory) ListInactiveOrgIDs(_ context.Context) ([]domain.OrganizationID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.OrganizationID
	for id, md := range s.rows {
		if !md.Active {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
