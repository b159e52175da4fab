package domain

// Keys used in projected resource info maps. Projections default optional
// fields to nil rather than omitting or failing on them.
const (
	KeyName   = "name"
	KeyStatus = "status"
	KeyLabels = "labels" // Expects map[string]string

	// Compute instance info keys
	InstanceImageKey       = "image"
	InstanceDisksKey       = "disks" // Expects []string, sorted by declared index
	InstanceMachineTypeKey = "machine_type"
	InstanceMetadataKey    = "metadata" // Expects map[string]string
	InstanceNetworkKey     = "network"
	InstancePrivateIPKey   = "private_ip"
	InstancePublicIPKey    = "public_ip"
	InstanceTagsKey        = "tags" // Expects []string
	InstanceZoneKey        = "zone"

	// Kubernetes info keys
	KubeNamespaceKey  = "namespace"
	KubeContainersKey = "containers"
	KubeReplicasKey   = "replicas"
	KubeSelectorKey   = "selector"
	KubePortsKey      = "ports"
	KubeClusterIPKey  = "cluster_ip"
)
