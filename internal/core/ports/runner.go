package ports

import "context"

type ConvergenceRunner interface {
	Run(ctx context.Context) error
}
