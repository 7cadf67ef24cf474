package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/talenthive-labs/matchengine/internal/core/domain"
	"github.com/talenthive-labs/matchengine/internal/core/ports/driven"
)

// Ensure FreelancerStore implements the interface.
var _ driven.FreelancerRepository = (*FreelancerStore)(nil)

// FreelancerStore is an in-memory implementation of the freelancer
// repository collaborator, used in tests and for local development.
type FreelancerStore struct {
	mu          sync.RWMutex
	freelancers map[int64]domain.Freelancer
	users       map[int64]domain.User
}

// NewFreelancerStore creates an empty in-memory store.
func NewFreelancerStore() *FreelancerStore {
	return &FreelancerStore{
		freelancers: make(map[int64]domain.Freelancer),
		users:       make(map[int64]domain.User),
	}
}

// Put stores or replaces a freelancer record.
func (s *FreelancerStore) Put(f domain.Freelancer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.freelancers[f.ID] = f
}

// PutUser stores or replaces a user projection.
func (s *FreelancerStore) PutUser(id int64, u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = u
}

// All returns every freelancer, ordered by id for determinism.
func (s *FreelancerStore) All(_ context.Context) ([]domain.Freelancer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Freelancer, 0, len(s.freelancers))
	for _, f := range s.freelancers {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get returns a freelancer by id.
func (s *FreelancerStore) Get(_ context.Context, id int64) (*domain.Freelancer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.freelancers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &f, nil
}

// GetUser returns the display projection of a user account.
func (s *FreelancerStore) GetUser(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}
