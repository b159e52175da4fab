package gcp

import (
	"context"

	compute "google.golang.org/api/compute/v1"
)

// ComputeAPI is the slice of the GCE API the instance gateway consumes.
// Mutating calls block until the underlying zone operation completes, so a
// nil return means the change is visible to a subsequent read.
type ComputeAPI interface {
	ProjectID() string

	GetInstance(ctx context.Context, zone, name string) (*compute.Instance, error)
	InsertInstance(ctx context.Context, zone string, instance *compute.Instance) error
	DeleteInstance(ctx context.Context, zone, name string) error

	GetImage(ctx context.Context, project, name string) (*compute.Image, error)
	GetImageFromFamily(ctx context.Context, project, family string) (*compute.Image, error)
	GetNetwork(ctx context.Context, name string) (*compute.Network, error)
	GetMachineType(ctx context.Context, zone, name string) (*compute.MachineType, error)

	GetDisk(ctx context.Context, zone, name string) (*compute.Disk, error)
	InsertDisk(ctx context.Context, zone string, disk *compute.Disk) error
}
