package gcp

import (
	"context"
	"fmt"
	"strings"

	compute "google.golang.org/api/compute/v1"

	gcperrors "github.com/cloudtasker/state-converger/internal/adapters/platform/gcp/errors"
	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/internal/core/ports"
	"github.com/cloudtasker/state-converger/internal/errors"
)

// publicImageProjects maps well-known image name prefixes onto the Google
// projects that publish them, for resolving short names like "debian-7".
var publicImageProjects = map[string]string{
	"debian":   "debian-cloud",
	"centos":   "centos-cloud",
	"rhel":     "rhel-cloud",
	"sles":     "suse-cloud",
	"opensuse": "opensuse-cloud",
	"ubuntu":   "ubuntu-os-cloud",
	"coreos":   "coreos-cloud",
	"cos":      "cos-cloud",
	"windows":  "windows-cloud",
}

// InstanceGateway converges GCE compute instances within one zone.
type InstanceGateway struct {
	api    ComputeAPI
	zone   string
	logger ports.Logger
}

func NewInstanceGateway(api ComputeAPI, zone string, logger ports.Logger) (*InstanceGateway, error) {
	if api == nil {
		return nil, errors.New(errors.CodeConfigValidation, "compute API client cannot be nil")
	}
	if zone == "" {
		return nil, errors.New(errors.CodeConfigValidation, "zone cannot be empty")
	}
	return &InstanceGateway{api: api, zone: zone, logger: logger}, nil
}

func (g *InstanceGateway) Kind() domain.ResourceKind {
	return domain.KindComputeInstance
}

func (g *InstanceGateway) Fetch(ctx context.Context, name string) (domain.Resource, bool, error) {
	instance, err := g.api.GetInstance(ctx, g.zone, name)
	if err != nil {
		mapped := gcperrors.HandleGoogleError("instance", name, err, ctx)
		if errors.Is(mapped, errors.CodeResourceNotFound) {
			return nil, false, nil
		}
		return nil, false, mapped
	}
	return newInstanceResource(instance, ""), true, nil
}

func (g *InstanceGateway) Create(ctx context.Context, desc domain.ResourceDescriptor) (domain.Resource, error) {
	spec := desc.Instance
	if spec == nil {
		return nil, errors.New(errors.CodeInternal, "instance descriptor missing instance spec")
	}

	imageLink, imageName, err := g.resolveImage(ctx, spec.Image)
	if err != nil {
		return nil, err
	}
	machineType, err := g.api.GetMachineType(ctx, g.zone, spec.MachineType)
	if err != nil {
		return nil, gcperrors.HandleGoogleError("machine type", spec.MachineType, err, ctx)
	}

	networkInterfaces, err := g.buildNetworkInterfaces(ctx, spec)
	if err != nil {
		return nil, err
	}
	disks, err := g.buildDisks(ctx, spec, imageLink)
	if err != nil {
		return nil, err
	}

	instance := &compute.Instance{
		Name:              desc.Name,
		MachineType:       machineType.SelfLink,
		CanIpForward:      spec.CanIPForward,
		Disks:             disks,
		NetworkInterfaces: networkInterfaces,
	}
	if len(spec.Tags) > 0 {
		instance.Tags = &compute.Tags{Items: spec.Tags}
	}
	if len(spec.Metadata) > 0 {
		items := make([]*compute.MetadataItems, 0, len(spec.Metadata))
		for _, item := range spec.Metadata {
			value := item.Value
			items = append(items, &compute.MetadataItems{Key: item.Key, Value: &value})
		}
		instance.Metadata = &compute.Metadata{Items: items}
	}

	if err := g.api.InsertInstance(ctx, g.zone, instance); err != nil {
		return nil, gcperrors.HandleGoogleError("instance", desc.Name, err, ctx)
	}

	created, err := g.api.GetInstance(ctx, g.zone, desc.Name)
	if err != nil {
		return nil, gcperrors.HandleGoogleError("instance", desc.Name, err, ctx)
	}
	return newInstanceResource(created, imageName), nil
}

func (g *InstanceGateway) Delete(ctx context.Context, name string) error {
	if err := g.api.DeleteInstance(ctx, g.zone, name); err != nil {
		mapped := gcperrors.HandleGoogleError("instance", name, err, ctx)
		// Already gone counts as deleted.
		if errors.Is(mapped, errors.CodeResourceNotFound) {
			return nil
		}
		return mapped
	}
	return nil
}

// resolveImage turns an image parameter into a full resource link. Short
// names are looked up in the task's project first, then in the matching
// public image project, by exact name and then by family.
func (g *InstanceGateway) resolveImage(ctx context.Context, image string) (link, shortName string, err error) {
	if strings.Contains(image, "/") {
		return image, lastSegment(image), nil
	}

	if img, getErr := g.api.GetImage(ctx, g.api.ProjectID(), image); getErr == nil {
		return img.SelfLink, img.Name, nil
	} else if !gcperrors.IsNotFound(getErr) {
		return "", "", gcperrors.HandleGoogleError("image", image, getErr, ctx)
	}

	public, ok := publicImageProjects[strings.SplitN(image, "-", 2)[0]]
	if ok {
		if img, getErr := g.api.GetImage(ctx, public, image); getErr == nil {
			return img.SelfLink, img.Name, nil
		} else if !gcperrors.IsNotFound(getErr) {
			return "", "", gcperrors.HandleGoogleError("image", image, getErr, ctx)
		}
		if img, famErr := g.api.GetImageFromFamily(ctx, public, image); famErr == nil {
			return img.SelfLink, img.Name, nil
		} else if !gcperrors.IsNotFound(famErr) {
			return "", "", gcperrors.HandleGoogleError("image", image, famErr, ctx)
		}
	}

	return "", "", errors.NewUserFacing(errors.CodeResourceNotFound,
		fmt.Sprintf("image '%s' not found", image), "")
}

func (g *InstanceGateway) buildNetworkInterfaces(ctx context.Context, spec *domain.InstanceSpec) ([]*compute.NetworkInterface, error) {
	if len(spec.NICs) > 0 {
		interfaces := make([]*compute.NetworkInterface, 0, len(spec.NICs))
		for i, raw := range spec.NICs {
			nic, err := rawToNetworkInterface(raw)
			if err != nil {
				return nil, errors.Wrap(err, errors.CodeConfigValidation,
					fmt.Sprintf("invalid nics entry at index %d", i))
			}
			interfaces = append(interfaces, nic)
		}
		return interfaces, nil
	}

	network, err := g.api.GetNetwork(ctx, spec.Network)
	if err != nil {
		return nil, gcperrors.HandleGoogleError("network", spec.Network, err, ctx)
	}
	nic := &compute.NetworkInterface{Network: network.SelfLink}
	if spec.ExternalIP == "ephemeral" {
		nic.AccessConfigs = []*compute.AccessConfig{
			{Type: "ONE_TO_ONE_NAT", Name: "External NAT"},
		}
	}
	return []*compute.NetworkInterface{nic}, nil
}

// buildDisks assembles the attachment list. Legacy name entries are
// resolved to canonical links; full API-format entries pass through with
// partial names expanded; with no disk list at all, a boot disk comes into
// being from the image (or an existing named volume).
func (g *InstanceGateway) buildDisks(ctx context.Context, spec *domain.InstanceSpec, imageLink string) ([]*compute.AttachedDisk, error) {
	if len(spec.Disks) > 0 {
		attachments := make([]*compute.AttachedDisk, 0, len(spec.Disks))
		for i, diskSpec := range spec.Disks {
			if diskSpec.Raw != nil {
				expanded, err := g.expandRawDisk(ctx, diskSpec.Raw)
				if err != nil {
					return nil, err
				}
				attached, err := rawToAttachedDisk(expanded)
				if err != nil {
					return nil, errors.Wrap(err, errors.CodeConfigValidation,
						fmt.Sprintf("invalid disks entry at index %d", i))
				}
				attachments = append(attachments, attached)
				continue
			}

			disk, err := g.api.GetDisk(ctx, g.zone, diskSpec.Name)
			if err != nil {
				mapped := gcperrors.HandleGoogleError("disk", diskSpec.Name, err, ctx)
				if errors.Is(mapped, errors.CodeResourceNotFound) {
					return nil, errors.WrapUserFacing(mapped, errors.CodeDiskResolveError,
						fmt.Sprintf("the disk named '%s' was not found", diskSpec.Name), "")
				}
				return nil, mapped
			}
			attachments = append(attachments, &compute.AttachedDisk{
				Source: disk.SelfLink,
				Mode:   diskSpec.Mode,
				Boot:   diskSpec.Boot,
				Type:   "PERSISTENT",
			})
		}
		return attachments, nil
	}

	boot := spec.BootDisk
	if boot == nil {
		boot = &domain.BootDiskSpec{Type: "pd-standard", AutoDelete: true, UseExisting: true}
	}

	if boot.Name != "" {
		disk, err := g.ensureBootVolume(ctx, boot, imageLink)
		if err != nil {
			return nil, err
		}
		return []*compute.AttachedDisk{{
			Source:     disk.SelfLink,
			Boot:       true,
			Mode:       domain.DiskModeReadWrite,
			AutoDelete: boot.AutoDelete,
			Type:       "PERSISTENT",
		}}, nil
	}

	return []*compute.AttachedDisk{{
		Boot:       true,
		AutoDelete: boot.AutoDelete,
		Type:       "PERSISTENT",
		InitializeParams: &compute.AttachedDiskInitializeParams{
			SourceImage: imageLink,
			DiskSizeGb:  boot.SizeGB,
			DiskType:    g.diskTypeLink(boot.Type),
		},
	}}, nil
}

// ensureBootVolume reuses the named volume when it exists (and reuse is
// allowed), otherwise creates it from the boot image.
func (g *InstanceGateway) ensureBootVolume(ctx context.Context, boot *domain.BootDiskSpec, imageLink string) (*compute.Disk, error) {
	disk, err := g.api.GetDisk(ctx, g.zone, boot.Name)
	if err == nil {
		if !boot.UseExisting {
			return nil, errors.NewUserFacing(errors.CodeResourceConflict,
				fmt.Sprintf("boot disk '%s' already exists and reuse is disabled", boot.Name), "")
		}
		return disk, nil
	}
	mapped := gcperrors.HandleGoogleError("disk", boot.Name, err, ctx)
	if !errors.Is(mapped, errors.CodeResourceNotFound) {
		return nil, mapped
	}

	newDisk := &compute.Disk{
		Name:        boot.Name,
		SizeGb:      boot.SizeGB,
		SourceImage: imageLink,
		Type:        g.diskTypeLink(boot.Type),
	}
	if err := g.api.InsertDisk(ctx, g.zone, newDisk); err != nil {
		return nil, gcperrors.HandleGoogleError("disk", boot.Name, err, ctx)
	}
	created, err := g.api.GetDisk(ctx, g.zone, boot.Name)
	if err != nil {
		return nil, gcperrors.HandleGoogleError("disk", boot.Name, err, ctx)
	}
	return created, nil
}

// expandRawDisk fills in partial initializeParams references in a full
// API-format disk entry.
func (g *InstanceGateway) expandRawDisk(ctx context.Context, raw map[string]any) (map[string]any, error) {
	params, ok := raw["initializeParams"].(map[string]any)
	if !ok {
		return raw, nil
	}

	expanded := make(map[string]any, len(raw))
	for k, v := range raw {
		expanded[k] = v
	}
	expandedParams := make(map[string]any, len(params))
	for k, v := range params {
		expandedParams[k] = v
	}

	if sourceImage, ok := params["sourceImage"].(string); ok && sourceImage != "" {
		link, _, err := g.resolveImage(ctx, sourceImage)
		if err != nil {
			return nil, err
		}
		expandedParams["sourceImage"] = link
	}
	if diskType, ok := params["diskType"].(string); ok && diskType != "" {
		expandedParams["diskType"] = g.diskTypeLink(diskType)
	}

	expanded["initializeParams"] = expandedParams
	return expanded, nil
}

func (g *InstanceGateway) diskTypeLink(diskType string) string {
	if strings.Contains(diskType, "/") {
		return diskType
	}
	return fmt.Sprintf("projects/%s/zones/%s/diskTypes/%s", g.api.ProjectID(), g.zone, diskType)
}
