package driven

import (
	"context"

	"github.com/talenthive-labs/matchengine/internal/core/domain"
)

// FreelancerRepository is the read-only collaborator holding marketplace
// freelancer records. The engine consumes candidates through this port and
// never writes back; the relational schema behind it is out of scope here.
type FreelancerRepository interface {
	// All returns every freelancer candidate.
	All(ctx context.Context) ([]domain.Freelancer, error)

	// Get returns a freelancer by id, or domain.ErrNotFound.
	Get(ctx context.Context, id int64) (*domain.Freelancer, error)

	// GetUser returns the display projection of a user account, or
	// domain.ErrNotFound.
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}
