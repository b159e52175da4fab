package service

import (
	"context"
	"fmt"

	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/internal/core/ports"
	"github.com/cloudtasker/state-converger/internal/errors"
)

// Reconcile drives one named resource toward the desired state: fetch, then
// at most one create or delete. Presence alone satisfies StatePresent; an
// existing resource is never re-created or patched, callers wanting
// attribute changes must delete and re-create explicitly.
func Reconcile(
	ctx context.Context,
	desired domain.DesiredState,
	desc domain.ResourceDescriptor,
	gateway ports.ResourceGateway,
	logger ports.Logger,
) (domain.Outcome, error) {
	existing, found, err := gateway.Fetch(ctx, desc.Name)
	if err != nil {
		return domain.Outcome{}, errors.Wrap(err, errors.CodePlatformAPIError,
			fmt.Sprintf("failed to look up %s '%s'", gateway.Kind(), desc.Name))
	}

	switch desired {
	case domain.StatePresent:
		if found {
			logger.Debugf(ctx, "%s '%s' already exists, nothing to do", gateway.Kind(), desc.Name)
			return domain.Outcome{Changed: false, Info: existing.Info()}, nil
		}

		created, createErr := gateway.Create(ctx, desc)
		if createErr != nil {
			if errors.Is(createErr, errors.CodeResourceConflict) {
				// Lost a create race with another actor. The resource
				// exists now, which is the state we wanted; no mutation
				// of ours succeeded, so changed stays false.
				logger.Warnf(ctx, "%s '%s' was created concurrently, re-fetching", gateway.Kind(), desc.Name)
				raced, racedFound, fetchErr := gateway.Fetch(ctx, desc.Name)
				if fetchErr != nil {
					return domain.Outcome{}, errors.Wrap(fetchErr, errors.CodePlatformAPIError,
						fmt.Sprintf("failed to re-fetch %s '%s' after create conflict", gateway.Kind(), desc.Name))
				}
				if !racedFound {
					return domain.Outcome{}, errors.New(errors.CodePlatformAPIError,
						fmt.Sprintf("%s '%s' reported as existing but not found on re-fetch", gateway.Kind(), desc.Name))
				}
				return domain.Outcome{Changed: false, Info: raced.Info()}, nil
			}
			return domain.Outcome{}, createErr
		}
		logger.Infof(ctx, "created %s '%s'", gateway.Kind(), desc.Name)
		return domain.Outcome{Changed: true, Info: created.Info()}, nil

	case domain.StateAbsent:
		if !found {
			logger.Debugf(ctx, "%s '%s' already absent, nothing to do", gateway.Kind(), desc.Name)
			return domain.Outcome{Changed: false}, nil
		}
		if deleteErr := gateway.Delete(ctx, desc.Name); deleteErr != nil {
			return domain.Outcome{}, deleteErr
		}
		logger.Infof(ctx, "deleted %s '%s'", gateway.Kind(), desc.Name)
		return domain.Outcome{Changed: true}, nil
	}

	return domain.Outcome{}, errors.New(errors.CodeInternal,
		fmt.Sprintf("unknown desired state '%s'", desired))
}
