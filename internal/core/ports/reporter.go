package ports

import (
	"context"

	"github.com/cloudtasker/state-converger/internal/core/domain"
)

type Reporter interface {
	Report(ctx context.Context, report domain.ConvergenceReport) error
	// Fail emits the structured failure record for an aborted invocation.
	// The emitted record always carries changed=false; remote effects
	// already committed before the failure are not rolled back.
	Fail(ctx context.Context, err error) error
}
