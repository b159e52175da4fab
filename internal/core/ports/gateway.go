package ports

import (
	"context"

	"github.com/cloudtasker/state-converger/internal/core/domain"
)

// ResourceGateway abstracts one remote API's fetch/create/delete surface for
// a single resource kind. Implementations perform exactly one remote read or
// mutation per call and keep no client-side cache across calls.
//
// Fetch returns found=false when the resource does not exist; absence is an
// expected outcome, not an error. Transport, auth, quota and conflict
// failures are returned as coded errors.
type ResourceGateway interface {
	Kind() domain.ResourceKind
	Fetch(ctx context.Context, name string) (domain.Resource, bool, error)
	Create(ctx context.Context, desc domain.ResourceDescriptor) (domain.Resource, error)
	Delete(ctx context.Context, name string) error
}
