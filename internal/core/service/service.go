package service

import (
	"context"

	"github.com/cloudtasker/state-converger/internal/config"
	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/internal/core/ports"
	"github.com/cloudtasker/state-converger/internal/errors"
)

// ConvergenceService runs one task: it resolves the target gateway, builds
// the descriptor from task input, reconciles the named resources and hands
// the aggregate result to the reporter.
type ConvergenceService struct {
	registry *ComponentRegistry
	reporter ports.Reporter
	logger   ports.Logger
	task     *config.TaskConfig
}

func NewConvergenceService(
	registry *ComponentRegistry,
	reporter ports.Reporter,
	logger ports.Logger,
	task *config.TaskConfig,
) (*ConvergenceService, error) {
	if registry == nil {
		return nil, errors.New(errors.CodeConfigValidation, "component registry cannot be nil")
	}
	if reporter == nil {
		return nil, errors.New(errors.CodeConfigValidation, "reporter cannot be nil")
	}
	if task == nil {
		return nil, errors.New(errors.CodeConfigValidation, "task cannot be nil")
	}
	return &ConvergenceService{
		registry: registry,
		reporter: reporter,
		logger:   logger,
		task:     task,
	}, nil
}

func (s *ConvergenceService) Run(ctx context.Context) error {
	if s.task.Count > 0 {
		return errors.NewUserFacing(errors.CodeNotImplemented,
			"create-by-count is not implemented",
			"List every instance name in 'names' instead.")
	}
	if s.task.ExactCount > 0 {
		return errors.NewUserFacing(errors.CodeNotImplemented,
			"exact-count reconciliation is not implemented",
			"List every instance name in 'names' instead.")
	}

	kind, ok := domain.ParseKind(s.task.Kind)
	if !ok {
		return errors.NewUserFacing(errors.CodeConfigValidation,
			"unknown resource kind '"+s.task.Kind+"'", "")
	}
	desired, err := domain.ParseDesiredState(s.task.State)
	if err != nil {
		return err
	}

	// Any task input malformation must surface before a remote call runs.
	desc, err := s.task.Descriptor()
	if err != nil {
		return err
	}
	names, single, err := s.task.TargetNames()
	if err != nil {
		return err
	}

	gateway, err := s.registry.GetGateway(kind)
	if err != nil {
		return err
	}

	report := domain.ConvergenceReport{
		Kind:  kind,
		State: desired,
	}
	if desc.Instance != nil {
		report.Zone = desc.Instance.Zone
	}

	s.logger.Infof(ctx, "converging %d %s target(s) toward state '%s'", len(names), kind, desired)

	if single {
		outcome, runErr := Reconcile(ctx, desired, desc.WithName(names[0]), gateway, s.logger)
		if runErr != nil {
			return runErr
		}
		report.Name = names[0]
		report.Changed = outcome.Changed
		if outcome.Info != nil {
			report.Items = []map[string]any{outcome.Info}
		}
	} else {
		batch, runErr := ReconcileAll(ctx, names, desired, desc, gateway, s.logger)
		if runErr != nil {
			return runErr
		}
		report.Changed = batch.Changed
		if desired == domain.StateAbsent {
			// Deleting reports only the names that actually went away.
			for i, outcome := range batch.Outcomes {
				if outcome.Changed {
					report.Names = append(report.Names, batch.Names[i])
				}
			}
		} else {
			report.Names = batch.Names
			for _, outcome := range batch.Outcomes {
				if outcome.Info != nil {
					report.Items = append(report.Items, outcome.Info)
				}
			}
		}
	}

	return s.reporter.Report(ctx, report)
}
