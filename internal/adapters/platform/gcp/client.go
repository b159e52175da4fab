package gcp

import (
	"context"
	"fmt"
	"net/http"

	compute "google.golang.org/api/compute/v1"
	"google.golang.org/api/option"

	"github.com/cloudtasker/state-converger/internal/adapters/platform/gcp/limiter"
	"github.com/cloudtasker/state-converger/internal/config"
	"github.com/cloudtasker/state-converger/internal/core/ports"
	"github.com/cloudtasker/state-converger/internal/errors"
)

const operationStatusDone = "DONE"

// computeClient wraps the generated GCE service behind ComputeAPI. Every
// call is gated by the global rate limiter, and mutating calls block until
// their zone operation finishes, matching the synchronous invocation model.
type computeClient struct {
	service *compute.Service
	project string
	logger  ports.Logger
}

func NewComputeClient(ctx context.Context, cfg config.GCPConfig, logger ports.Logger) (ComputeAPI, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	service, err := compute.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAuth, "failed to initialize GCE API client")
	}

	return &computeClient{
		service: service,
		project: cfg.ProjectID,
		logger:  logger,
	}, nil
}

func (c *computeClient) ProjectID() string {
	return c.project
}

func (c *computeClient) GetInstance(ctx context.Context, zone, name string) (*compute.Instance, error) {
	if err := limiter.Wait(ctx, c.logger); err != nil {
		return nil, err
	}
	return c.service.Instances.Get(c.project, zone, name).Context(ctx).Do()
}

func (c *computeClient) InsertInstance(ctx context.Context, zone string, instance *compute.Instance) error {
	if err := limiter.Wait(ctx, c.logger); err != nil {
		return err
	}
	op, err := c.service.Instances.Insert(c.project, zone, instance).Context(ctx).Do()
	if err != nil {
		return err
	}
	return c.waitZoneOperation(ctx, zone, op)
}

func (c *computeClient) DeleteInstance(ctx context.Context, zone, name string) error {
	if err := limiter.Wait(ctx, c.logger); err != nil {
		return err
	}
	op, err := c.service.Instances.Delete(c.project, zone, name).Context(ctx).Do()
	if err != nil {
		return err
	}
	return c.waitZoneOperation(ctx, zone, op)
}

func (c *computeClient) GetImage(ctx context.Context, project, name string) (*compute.Image, error) {
	if err := limiter.Wait(ctx, c.logger); err != nil {
		return nil, err
	}
	return c.service.Images.Get(project, name).Context(ctx).Do()
}

func (c *computeClient) GetImageFromFamily(ctx context.Context, project, family string) (*compute.Image, error) {
	if err := limiter.Wait(ctx, c.logger); err != nil {
		return nil, err
	}
	return c.service.Images.GetFromFamily(project, family).Context(ctx).Do()
}

func (c *computeClient) GetNetwork(ctx context.Context, name string) (*compute.Network, error) {
	if err := limiter.Wait(ctx, c.logger); err != nil {
		return nil, err
	}
	return c.service.Networks.Get(c.project, name).Context(ctx).Do()
}

func (c *computeClient) GetMachineType(ctx context.Context, zone, name string) (*compute.MachineType, error) {
	if err := limiter.Wait(ctx, c.logger); err != nil {
		return nil, err
	}
	return c.service.MachineTypes.Get(c.project, zone, name).Context(ctx).Do()
}

func (c *computeClient) GetDisk(ctx context.Context, zone, name string) (*compute.Disk, error) {
	if err := limiter.Wait(ctx, c.logger); err != nil {
		return nil, err
	}
	return c.service.Disks.Get(c.project, zone, name).Context(ctx).Do()
}

func (c *computeClient) InsertDisk(ctx context.Context, zone string, disk *compute.Disk) error {
	if err := limiter.Wait(ctx, c.logger); err != nil {
		return err
	}
	op, err := c.service.Disks.Insert(c.project, zone, disk).Context(ctx).Do()
	if err != nil {
		return err
	}
	return c.waitZoneOperation(ctx, zone, op)
}

// waitZoneOperation blocks until op reaches DONE, then surfaces any
// operation-level error with its HTTP status mapped onto the taxonomy.
func (c *computeClient) waitZoneOperation(ctx context.Context, zone string, op *compute.Operation) error {
	for op.Status != operationStatusDone {
		if ctx.Err() != nil {
			return errors.Wrap(ctx.Err(), errors.CodePlatformAPIError,
				fmt.Sprintf("context canceled waiting for operation '%s'", op.Name))
		}
		if err := limiter.Wait(ctx, c.logger); err != nil {
			return err
		}
		next, err := c.service.ZoneOperations.Wait(c.project, zone, op.Name).Context(ctx).Do()
		if err != nil {
			return err
		}
		op = next
	}
	return operationError(op)
}

func operationError(op *compute.Operation) error {
	if op.Error == nil || len(op.Error.Errors) == 0 {
		return nil
	}
	detail := op.Error.Errors[0]
	message := fmt.Sprintf("operation '%s' failed: %s: %s", op.Name, detail.Code, detail.Message)
	switch op.HttpErrorStatusCode {
	case http.StatusConflict:
		return errors.New(errors.CodeResourceConflict, message)
	case http.StatusForbidden:
		if detail.Code == "QUOTA_EXCEEDED" {
			return errors.New(errors.CodeQuotaExceeded, message)
		}
		return errors.New(errors.CodePermissionDenied, message)
	case http.StatusNotFound:
		return errors.New(errors.CodeResourceNotFound, message)
	}
	return errors.New(errors.CodePlatformAPIError, message)
}
