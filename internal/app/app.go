package app

import (
	"context"

	"github.com/cloudtasker/state-converger/internal/core/ports"
)

// Application ties the convergence runner to the reporter chosen for this
// invocation.
type Application struct {
	Runner   ports.ConvergenceRunner
	Reporter ports.Reporter
	Logger   ports.Logger
}

func NewApplication(runner ports.ConvergenceRunner, reporter ports.Reporter, logger ports.Logger) *Application {
	return &Application{
		Runner:   runner,
		Reporter: reporter,
		Logger:   logger,
	}
}

// Run executes the convergence task. A failed run still emits a structured
// failure record through the reporter before the error propagates.
func (a *Application) Run(ctx context.Context) error {
	a.Logger.Infof(ctx, "Starting convergence...")

	err := a.Runner.Run(ctx)
	if err != nil {
		a.Logger.Errorf(ctx, err, "Convergence failed")
		if reportErr := a.Reporter.Fail(ctx, err); reportErr != nil {
			a.Logger.Errorf(ctx, reportErr, "Failed to emit failure record")
		}
		return err
	}

	a.Logger.Infof(ctx, "Convergence completed successfully")
	return nil
}
