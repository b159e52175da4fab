package domain

type ResourceKind string

const (
	KindComputeInstance       ResourceKind = "ComputeInstance"
	KindNamespace             ResourceKind = "Namespace"
	KindPod                   ResourceKind = "Pod"
	KindReplicationController ResourceKind = "ReplicationController"
	KindService               ResourceKind = "Service"
)

func (rk ResourceKind) String() string {
	return string(rk)
}

// kindAliases maps the lowercase task-file spellings onto canonical kinds.
var kindAliases = map[string]ResourceKind{
	"instance":               KindComputeInstance,
	"compute_instance":       KindComputeInstance,
	"namespace":              KindNamespace,
	"pod":                    KindPod,
	"replication_controller": KindReplicationController,
	"service":                KindService,
}

func ParseKind(s string) (ResourceKind, bool) {
	switch ResourceKind(s) {
	case KindComputeInstance, KindNamespace, KindPod, KindReplicationController, KindService:
		return ResourceKind(s), true
	}
	if k, ok := kindAliases[s]; ok {
		return k, true
	}
	return "", false
}
