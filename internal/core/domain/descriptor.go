package domain

// ResourceDescriptor carries the identity and desired attributes for one
// target resource. Exactly one of the kind-specific spec fields is set,
// matching Kind. Descriptors are built once from task input and not mutated
// afterwards; WithName returns a copy for batch fan-out.
type ResourceDescriptor struct {
	Kind ResourceKind
	Name string

	Instance   *InstanceSpec
	Namespace  *NamespaceSpec
	Pod        *PodSpec
	Controller *ControllerSpec
	Service    *ServiceSpec
}

func (d ResourceDescriptor) WithName(name string) ResourceDescriptor {
	d.Name = name
	return d
}

type MetadataItem struct {
	Key   string
	Value string
}

const (
	DiskModeReadWrite = "READ_WRITE"
	DiskModeReadOnly  = "READ_ONLY"
)

// DiskSpec is one attachment in an instance's disk list. Either Name/Mode
// are set (legacy form, resolved against the remote system before create) or
// Raw holds a full API-format entry passed through with partial names
// expanded.
type DiskSpec struct {
	Name string
	Mode string
	Boot bool
	Raw  map[string]any
}

type BootDiskSpec struct {
	Name        string
	SizeGB      int64
	Type        string
	AutoDelete  bool
	UseExisting bool
}

type InstanceSpec struct {
	Image        string
	MachineType  string
	Zone         string
	Network      string
	Metadata     []MetadataItem
	Tags         []string
	Disks        []DiskSpec
	BootDisk     *BootDiskSpec
	NICs         []map[string]any
	CanIPForward bool
	ExternalIP   string // "ephemeral" or "" for none
}

type NamespaceSpec struct{}

type ContainerPort struct {
	ContainerPort int32
	Protocol      string
}

type ContainerSpec struct {
	Name  string
	Image string
	Ports []ContainerPort
}

type PodSpec struct {
	Containers []ContainerSpec
	Labels     map[string]string
}

type ControllerSpec struct {
	Containers []ContainerSpec
	Labels     map[string]string
	Replicas   int32
	Selector   map[string]string
}

type ServicePort struct {
	Protocol   string
	Port       int32
	TargetPort int32
}

type ServiceSpec struct {
	Selector map[string]string
	Ports    []ServicePort
}
