package service

import (
	"context"

	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/internal/core/ports"
)

// ReconcileAll applies Reconcile to every name in input order and
// accumulates the per-name outcomes positionally. The first failure aborts
// the whole batch; mutations already committed remotely for earlier names
// are not rolled back.
func ReconcileAll(
	ctx context.Context,
	names []string,
	desired domain.DesiredState,
	desc domain.ResourceDescriptor,
	gateway ports.ResourceGateway,
	logger ports.Logger,
) (domain.BatchOutcome, error) {
	batch := domain.BatchOutcome{
		Names:    make([]string, 0, len(names)),
		Outcomes: make([]domain.Outcome, 0, len(names)),
	}

	for _, name := range names {
		outcome, err := Reconcile(ctx, desired, desc.WithName(name), gateway, logger)
		if err != nil {
			return domain.BatchOutcome{}, err
		}
		batch.Names = append(batch.Names, name)
		batch.Outcomes = append(batch.Outcomes, outcome)
		batch.Changed = batch.Changed || outcome.Changed
	}

	return batch, nil
}
