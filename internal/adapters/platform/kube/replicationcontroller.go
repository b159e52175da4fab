package kube

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/internal/core/ports"
	"github.com/cloudtasker/state-converger/internal/errors"
)

// ReplicationControllerGateway converges replication controllers within a
// single namespace.
type ReplicationControllerGateway struct {
	client    kubernetes.Interface
	namespace string
	logger    ports.Logger
}

func NewReplicationControllerGateway(client kubernetes.Interface, namespace string, logger ports.Logger) *ReplicationControllerGateway {
	return &ReplicationControllerGateway{client: client, namespace: namespace, logger: logger}
}

func (g *ReplicationControllerGateway) Kind() domain.ResourceKind {
	return domain.KindReplicationController
}

func (g *ReplicationControllerGateway) Fetch(ctx context.Context, name string) (domain.Resource, bool, error) {
	rc, err := g.client.CoreV1().ReplicationControllers(g.namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, handleAPIError("replication controller", name, err)
	}
	return projectReplicationController(rc), true, nil
}

func (g *ReplicationControllerGateway) Create(ctx context.Context, desc domain.ResourceDescriptor) (domain.Resource, error) {
	spec := desc.Controller
	if spec == nil {
		return nil, errors.New(errors.CodeInternal, "controller descriptor missing controller spec")
	}

	// The selector must match the template labels or the controller would
	// orphan its own pods immediately; with no selector given, the pod
	// labels double as one.
	selector := spec.Selector
	if len(selector) == 0 {
		selector = spec.Labels
	}
	replicas := spec.Replicas

	rc := &corev1.ReplicationController{
		ObjectMeta: metav1.ObjectMeta{
			Name:      desc.Name,
			Namespace: g.namespace,
			Labels:    spec.Labels,
		},
		Spec: corev1.ReplicationControllerSpec{
			Replicas: &replicas,
			Selector: selector,
			Template: &corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: selector},
				Spec: corev1.PodSpec{
					Containers: buildContainers(spec.Containers),
				},
			},
		},
	}
	created, err := g.client.CoreV1().ReplicationControllers(g.namespace).Create(ctx, rc, metav1.CreateOptions{})
	if err != nil {
		return nil, handleAPIError("replication controller", desc.Name, err)
	}
	return projectReplicationController(created), nil
}

func (g *ReplicationControllerGateway) Delete(ctx context.Context, name string) error {
	err := g.client.CoreV1().ReplicationControllers(g.namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return handleAPIError("replication controller", name, err)
	}
	return nil
}

func projectReplicationController(rc *corev1.ReplicationController) *kubeResource {
	var replicas any
	if rc.Spec.Replicas != nil {
		replicas = *rc.Spec.Replicas
	}
	containers := []map[string]any{}
	if rc.Spec.Template != nil {
		containers = projectContainers(rc.Spec.Template.Spec.Containers)
	}
	return &kubeResource{
		name: rc.Name,
		info: map[string]any{
			domain.KeyName:           rc.Name,
			domain.KeyStatus:         nil,
			domain.KeyLabels:         labelsOrEmpty(rc.Labels),
			domain.KubeNamespaceKey:  rc.Namespace,
			domain.KubeReplicasKey:   replicas,
			domain.KubeSelectorKey:   labelsOrEmpty(rc.Spec.Selector),
			domain.KubeContainersKey: containers,
		},
	}
}
