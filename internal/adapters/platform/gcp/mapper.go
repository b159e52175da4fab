package gcp

import (
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	compute "google.golang.org/api/compute/v1"

	"github.com/cloudtasker/state-converger/internal/core/domain"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// gceInstanceResource carries a fetched instance together with its
// flattened info view.
type gceInstanceResource struct {
	instance *compute.Instance
	info     map[string]any
}

func newInstanceResource(instance *compute.Instance, imageHint string) *gceInstanceResource {
	return &gceInstanceResource{
		instance: instance,
		info:     projectInstance(instance, imageHint),
	}
}

func (r *gceInstanceResource) Name() string {
	return r.instance.Name
}

func (r *gceInstanceResource) Info() map[string]any {
	return r.info
}

// projectInstance flattens an API instance into the reported info map.
// The API never returns the source image of a running instance, so the
// image field is only populated when the caller knows it (imageHint from a
// create path); otherwise it stays nil.
func projectInstance(instance *compute.Instance, imageHint string) map[string]any {
	metadata := map[string]string{}
	if instance.Metadata != nil {
		for _, item := range instance.Metadata.Items {
			if item == nil {
				continue
			}
			value := ""
			if item.Value != nil {
				value = *item.Value
			}
			metadata[item.Key] = value
		}
	}

	attached := make([]*compute.AttachedDisk, 0, len(instance.Disks))
	attached = append(attached, instance.Disks...)
	sort.SliceStable(attached, func(i, j int) bool {
		return attached[i].Index < attached[j].Index
	})
	disks := make([]string, 0, len(attached))
	for _, disk := range attached {
		if disk.Source == "" {
			disks = append(disks, "scratch")
			continue
		}
		disks = append(disks, lastSegment(disk.Source))
	}

	var network any
	var privateIP any
	var publicIP any
	if len(instance.NetworkInterfaces) > 0 {
		nic := instance.NetworkInterfaces[0]
		if nic.Network != "" {
			network = lastSegment(nic.Network)
		}
		if nic.NetworkIP != "" {
			privateIP = nic.NetworkIP
		}
	}
	for _, nic := range instance.NetworkInterfaces {
		for _, access := range nic.AccessConfigs {
			if access.NatIP != "" {
				publicIP = access.NatIP
				break
			}
		}
		if publicIP != nil {
			break
		}
	}

	var image any
	if imageHint != "" {
		image = imageHint
	}
	var status any
	if instance.Status != "" {
		status = instance.Status
	}
	tags := []string{}
	if instance.Tags != nil && instance.Tags.Items != nil {
		tags = instance.Tags.Items
	}

	return map[string]any{
		domain.KeyName:                instance.Name,
		domain.KeyStatus:              status,
		domain.InstanceImageKey:       image,
		domain.InstanceMachineTypeKey: lastSegment(instance.MachineType),
		domain.InstanceDisksKey:       disks,
		domain.InstanceMetadataKey:    metadata,
		domain.InstanceNetworkKey:     network,
		domain.InstancePrivateIPKey:   privateIP,
		domain.InstancePublicIPKey:    publicIP,
		domain.InstanceTagsKey:        tags,
		domain.InstanceZoneKey:        lastSegment(instance.Zone),
	}
}

// lastSegment returns the final path component of a resource link.
func lastSegment(link string) string {
	if link == "" {
		return ""
	}
	parts := strings.Split(link, "/")
	return parts[len(parts)-1]
}

// rawToAttachedDisk converts a full API-format disk entry into the typed
// attachment via a JSON round trip, so arbitrary valid fields survive.
func rawToAttachedDisk(raw map[string]any) (*compute.AttachedDisk, error) {
	data, err := jsonAPI.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var attached compute.AttachedDisk
	if err := jsonAPI.Unmarshal(data, &attached); err != nil {
		return nil, err
	}
	return &attached, nil
}

// rawToNetworkInterface converts a full API-format interface entry into
// the typed form, same mechanism as rawToAttachedDisk.
func rawToNetworkInterface(raw map[string]any) (*compute.NetworkInterface, error) {
	data, err := jsonAPI.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var nic compute.NetworkInterface
	if err := jsonAPI.Unmarshal(data, &nic); err != nil {
		return nil, err
	}
	return &nic, nil
}
