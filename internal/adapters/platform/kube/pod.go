package kube

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/internal/core/ports"
)

// PodGateway converges bare pods within a single namespace.
type PodGateway struct {
	client    kubernetes.Interface
	namespace string
	logger    ports.Logger
}

func NewPodGateway(client kubernetes.Interface, namespace string, logger ports.Logger) *PodGateway {
	return &PodGateway{client: client, namespace: namespace, logger: logger}
}

func (g *PodGateway) Kind() domain.ResourceKind {
	return domain.KindPod
}

func (g *PodGateway) Fetch(ctx context.Context, name string) (domain.Resource, bool, error) {
	pod, err := g.client.CoreV1().Pods(g.namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, handleAPIError("pod", name, err)
	}
	return projectPod(pod), true, nil
}

func (g *PodGateway) Create(ctx context.Context, desc domain.ResourceDescriptor) (domain.Resource, error) {
	spec := desc.Pod
	if spec == nil {
		spec = &domain.PodSpec{}
	}

	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      desc.Name,
			Namespace: g.namespace,
			Labels:    spec.Labels,
		},
		Spec: corev1.PodSpec{
			Containers: buildContainers(spec.Containers),
		},
	}
	created, err := g.client.CoreV1().Pods(g.namespace).Create(ctx, pod, metav1.CreateOptions{})
	if err != nil {
		return nil, handleAPIError("pod", desc.Name, err)
	}
	return projectPod(created), nil
}

func (g *PodGateway) Delete(ctx context.Context, name string) error {
	err := g.client.CoreV1().Pods(g.namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return handleAPIError("pod", name, err)
	}
	return nil
}

func projectPod(pod *corev1.Pod) *kubeResource {
	var status any
	if pod.Status.Phase != "" {
		status = string(pod.Status.Phase)
	}
	return &kubeResource{
		name: pod.Name,
		info: map[string]any{
			domain.KeyName:          pod.Name,
			domain.KeyStatus:        status,
			domain.KeyLabels:        labelsOrEmpty(pod.Labels),
			domain.KubeNamespaceKey: pod.Namespace,
			domain.KubeContainersKey: projectContainers(
				pod.Spec.Containers),
		},
	}
}
