package config

import (
	"fmt"

	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/internal/errors"
	"github.com/cloudtasker/state-converger/internal/normalize"
	"github.com/cloudtasker/state-converger/pkg/convert"
)

const (
	defaultImage        = "debian-7"
	defaultMachineType  = "n1-standard-1"
	defaultZone         = "us-central1-a"
	defaultNetwork      = "default"
	defaultExternalIP   = "ephemeral"
	defaultBootDiskType = "pd-standard"
)

// TaskConfig is the flat parameter set for one invocation. Zero values mean
// "not given"; defaults are applied when the descriptor is built so that
// mutual-exclusion checks see only what the user actually supplied.
type TaskConfig struct {
	Kind       string `mapstructure:"kind" validate:"required"`
	State      string `mapstructure:"state"`
	Name       string `mapstructure:"name"`
	Names      any    `mapstructure:"names"`
	Count      int    `mapstructure:"count" validate:"omitempty,min=0"`
	ExactCount int    `mapstructure:"exact_count" validate:"omitempty,min=0"`

	Instance   *InstanceTask   `mapstructure:"instance,omitempty"`
	Pod        *PodTask        `mapstructure:"pod,omitempty"`
	Controller *ControllerTask `mapstructure:"replication_controller,omitempty"`
	Service    *ServiceTask    `mapstructure:"service,omitempty"`
}

type InstanceTask struct {
	Image               string   `mapstructure:"image"`
	MachineType         string   `mapstructure:"machine_type"`
	Zone                string   `mapstructure:"zone"`
	Network             string   `mapstructure:"network"`
	Metadata            any      `mapstructure:"metadata"`
	Tags                []string `mapstructure:"tags"`
	Disks               []any    `mapstructure:"disks"`
	BootDisk            string   `mapstructure:"boot_disk"`
	BootDiskSize        int64    `mapstructure:"boot_disk_size" validate:"omitempty,min=0"`
	BootDiskType        string   `mapstructure:"boot_disk_type" validate:"omitempty,oneof=pd-standard pd-ssd"`
	BootDiskAutoDelete  *bool    `mapstructure:"boot_disk_auto_delete"`
	BootDiskUseExisting *bool    `mapstructure:"boot_disk_use_existing"`
	IPForward           bool     `mapstructure:"ip_forward"`
	ExternalIP          string   `mapstructure:"external_ip" validate:"omitempty,oneof=ephemeral none"`
	NICs                []any    `mapstructure:"nics"`
}

type PodTask struct {
	Containers []any `mapstructure:"containers"`
	Labels     any   `mapstructure:"labels"`
}

type ControllerTask struct {
	Containers []any `mapstructure:"containers"`
	Labels     any   `mapstructure:"labels"`
	Replicas   int32 `mapstructure:"replicas" validate:"omitempty,min=0"`
	Selector   any   `mapstructure:"selector"`
}

type ServiceTask struct {
	Selector any   `mapstructure:"selector"`
	Ports    []any `mapstructure:"ports"`
}

// Validate enforces the mutual-exclusion constraints that must hold before
// any remote call is attempted.
func (t *TaskConfig) Validate() error {
	names, err := normalize.Names(t.Names)
	if err != nil {
		return err
	}

	if t.Name == "" && len(names) == 0 {
		return errors.NewUserFacing(errors.CodeConfigValidation,
			"either 'name' or 'names' is required", "")
	}
	if t.Name != "" && len(names) > 0 {
		return errors.NewUserFacing(errors.CodeConfigValidation,
			"'name' and 'names' are mutually exclusive", "")
	}
	if t.Count > 0 && len(names) > 0 {
		return errors.NewUserFacing(errors.CodeConfigValidation,
			"'count' and 'names' are mutually exclusive", "")
	}

	if inst := t.Instance; inst != nil {
		if len(inst.Disks) > 0 {
			for param, given := range map[string]bool{
				"boot_disk":              inst.BootDisk != "",
				"boot_disk_size":         inst.BootDiskSize != 0,
				"boot_disk_type":         inst.BootDiskType != "",
				"boot_disk_auto_delete":  inst.BootDiskAutoDelete != nil,
				"boot_disk_use_existing": inst.BootDiskUseExisting != nil,
			} {
				if given {
					return errors.NewUserFacing(errors.CodeConfigValidation,
						fmt.Sprintf("'disks' and '%s' are mutually exclusive", param), "")
				}
			}
		}
		if t.Count > 0 && inst.BootDisk != "" {
			return errors.NewUserFacing(errors.CodeConfigValidation,
				"'count' and 'boot_disk' are mutually exclusive", "")
		}
		if len(inst.NICs) > 0 {
			if inst.ExternalIP != "" {
				return errors.NewUserFacing(errors.CodeConfigValidation,
					"'nics' and 'external_ip' are mutually exclusive", "")
			}
			if inst.Network != "" {
				return errors.NewUserFacing(errors.CodeConfigValidation,
					"'nics' and 'network' are mutually exclusive", "")
			}
		}
	}

	return nil
}

// Zone returns the zone the task operates in, with the default applied.
func (t *TaskConfig) Zone() string {
	if t.Instance != nil && t.Instance.Zone != "" {
		return t.Instance.Zone
	}
	return defaultZone
}

// TargetNames resolves the single-name / name-list alternative into an
// ordered slice. single reports whether the task addressed one resource via
// 'name'.
func (t *TaskConfig) TargetNames() (names []string, single bool, err error) {
	if t.Name != "" {
		return []string{t.Name}, true, nil
	}
	names, err = normalize.Names(t.Names)
	if err != nil {
		return nil, false, err
	}
	if len(names) == 0 {
		return nil, false, errors.NewUserFacing(errors.CodeConfigValidation,
			"either 'name' or 'names' is required", "")
	}
	return names, false, nil
}

// Descriptor builds the immutable desired-state record for this task. All
// input reshaping (metadata literals, legacy disk lists, loose container
// maps) happens here, before the first remote call.
func (t *TaskConfig) Descriptor() (domain.ResourceDescriptor, error) {
	kind, ok := domain.ParseKind(t.Kind)
	if !ok {
		return domain.ResourceDescriptor{}, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unknown resource kind '%s'", t.Kind), "")
	}

	desc := domain.ResourceDescriptor{Kind: kind, Name: t.Name}

	switch kind {
	case domain.KindComputeInstance:
		spec, err := t.instanceSpec()
		if err != nil {
			return domain.ResourceDescriptor{}, err
		}
		desc.Instance = spec
	case domain.KindNamespace:
		desc.Namespace = &domain.NamespaceSpec{}
	case domain.KindPod:
		spec, err := t.podSpec()
		if err != nil {
			return domain.ResourceDescriptor{}, err
		}
		desc.Pod = spec
	case domain.KindReplicationController:
		spec, err := t.controllerSpec()
		if err != nil {
			return domain.ResourceDescriptor{}, err
		}
		desc.Controller = spec
	case domain.KindService:
		spec, err := t.serviceSpec()
		if err != nil {
			return domain.ResourceDescriptor{}, err
		}
		desc.Service = spec
	}

	return desc, nil
}

func (t *TaskConfig) instanceSpec() (*domain.InstanceSpec, error) {
	inst := t.Instance
	if inst == nil {
		inst = &InstanceTask{}
	}

	metadata, err := normalize.Metadata(inst.Metadata)
	if err != nil {
		return nil, err
	}
	disks, err := normalize.Disks(inst.Disks)
	if err != nil {
		return nil, err
	}
	nics, err := convert.ToSliceOfMap(inst.NICs)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation,
			"invalid value found in nics parameter", "")
	}

	spec := &domain.InstanceSpec{
		Image:        withDefault(inst.Image, defaultImage),
		MachineType:  withDefault(inst.MachineType, defaultMachineType),
		Zone:         withDefault(inst.Zone, defaultZone),
		Network:      withDefault(inst.Network, defaultNetwork),
		Metadata:     metadata,
		Tags:         inst.Tags,
		Disks:        disks,
		CanIPForward: inst.IPForward,
		ExternalIP:   withDefault(inst.ExternalIP, defaultExternalIP),
	}
	if len(nics) > 0 {
		spec.NICs = nics
		spec.Network = ""
		spec.ExternalIP = ""
	}
	if spec.ExternalIP == "none" {
		spec.ExternalIP = ""
	}

	if len(disks) == 0 {
		spec.BootDisk = &domain.BootDiskSpec{
			Name:        inst.BootDisk,
			SizeGB:      inst.BootDiskSize,
			Type:        withDefault(inst.BootDiskType, defaultBootDiskType),
			AutoDelete:  boolDefault(inst.BootDiskAutoDelete, true),
			UseExisting: boolDefault(inst.BootDiskUseExisting, true),
		}
	}

	return spec, nil
}

func (t *TaskConfig) podSpec() (*domain.PodSpec, error) {
	pod := t.Pod
	if pod == nil {
		pod = &PodTask{}
	}
	containers, err := containerSpecs(pod.Containers)
	if err != nil {
		return nil, err
	}
	labels, err := convert.ToStringMap(pod.Labels)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation,
			fmt.Sprintf("bad labels: %v", err), "")
	}
	return &domain.PodSpec{Containers: containers, Labels: labels}, nil
}

func (t *TaskConfig) controllerSpec() (*domain.ControllerSpec, error) {
	rc := t.Controller
	if rc == nil {
		rc = &ControllerTask{}
	}
	containers, err := containerSpecs(rc.Containers)
	if err != nil {
		return nil, err
	}
	labels, err := convert.ToStringMap(rc.Labels)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation,
			fmt.Sprintf("bad labels: %v", err), "")
	}
	selector, err := convert.ToStringMap(rc.Selector)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation,
			fmt.Sprintf("bad selector: %v", err), "")
	}
	replicas := rc.Replicas
	if replicas == 0 {
		replicas = 1
	}
	return &domain.ControllerSpec{
		Containers: containers,
		Labels:     labels,
		Replicas:   replicas,
		Selector:   selector,
	}, nil
}

func (t *TaskConfig) serviceSpec() (*domain.ServiceSpec, error) {
	svc := t.Service
	if svc == nil {
		svc = &ServiceTask{}
	}
	selector, err := convert.ToStringMap(svc.Selector)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation,
			fmt.Sprintf("bad selector: %v", err), "")
	}

	portMaps, err := convert.ToSliceOfMap(svc.Ports)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation,
			"invalid value found in ports parameter", "")
	}
	ports := make([]domain.ServicePort, 0, len(portMaps))
	for i, pm := range portMaps {
		port, portErr := intField(pm, "port")
		if portErr != nil {
			return nil, errors.NewUserFacing(errors.CodeConfigValidation,
				fmt.Sprintf("service port entry %d: %v", i, portErr), "")
		}
		target, _ := intField(pm, "targetPort")
		if target == 0 {
			target = port
		}
		protocol, _ := pm["protocol"].(string)
		ports = append(ports, domain.ServicePort{
			Protocol:   protocol,
			Port:       port,
			TargetPort: target,
		})
	}

	return &domain.ServiceSpec{Selector: selector, Ports: ports}, nil
}

func containerSpecs(raw []any) ([]domain.ContainerSpec, error) {
	maps, err := convert.ToSliceOfMap(raw)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation,
			"invalid value found in containers parameter", "")
	}

	specs := make([]domain.ContainerSpec, 0, len(maps))
	for i, cm := range maps {
		name, _ := cm["name"].(string)
		image, _ := cm["image"].(string)
		if name == "" || image == "" {
			return nil, errors.NewUserFacing(errors.CodeConfigValidation,
				fmt.Sprintf("container entry %d must have 'name' and 'image'", i), "")
		}
		spec := domain.ContainerSpec{Name: name, Image: image}

		portMaps, portErr := convert.ToSliceOfMap(cm["ports"])
		if portErr != nil {
			return nil, errors.NewUserFacing(errors.CodeConfigValidation,
				fmt.Sprintf("container '%s' has an invalid ports list", name), "")
		}
		for j, pm := range portMaps {
			cp, cpErr := intField(pm, "containerPort")
			if cpErr != nil {
				return nil, errors.NewUserFacing(errors.CodeConfigValidation,
					fmt.Sprintf("container '%s' port entry %d: %v", name, j, cpErr), "")
			}
			protocol, _ := pm["protocol"].(string)
			spec.Ports = append(spec.Ports, domain.ContainerPort{
				ContainerPort: cp,
				Protocol:      protocol,
			})
		}

		specs = append(specs, spec)
	}
	return specs, nil
}

func intField(m map[string]any, key string) (int32, error) {
	raw, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("missing '%s'", key)
	}
	switch v := raw.(type) {
	case int:
		return int32(v), nil
	case int32:
		return v, nil
	case int64:
		return int32(v), nil
	case float64:
		return int32(v), nil
	}
	return 0, fmt.Errorf("'%s' must be a number (got %T)", key, raw)
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func boolDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
