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

// NamespaceGateway converges cluster namespaces.
type NamespaceGateway struct {
	client kubernetes.Interface
	logger ports.Logger
}

func NewNamespaceGateway(client kubernetes.Interface, logger ports.Logger) *NamespaceGateway {
	return &NamespaceGateway{client: client, logger: logger}
}

func (g *NamespaceGateway) Kind() domain.ResourceKind {
	return domain.KindNamespace
}

func (g *NamespaceGateway) Fetch(ctx context.Context, name string) (domain.Resource, bool, error) {
	ns, err := g.client.CoreV1().Namespaces().Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, handleAPIError("namespace", name, err)
	}
	return projectNamespace(ns), true, nil
}

func (g *NamespaceGateway) Create(ctx context.Context, desc domain.ResourceDescriptor) (domain.Resource, error) {
	ns := &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{Name: desc.Name},
	}
	created, err := g.client.CoreV1().Namespaces().Create(ctx, ns, metav1.CreateOptions{})
	if err != nil {
		return nil, handleAPIError("namespace", desc.Name, err)
	}
	return projectNamespace(created), nil
}

func (g *NamespaceGateway) Delete(ctx context.Context, name string) error {
	err := g.client.CoreV1().Namespaces().Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return handleAPIError("namespace", name, err)
	}
	return nil
}

func projectNamespace(ns *corev1.Namespace) *kubeResource {
	var status any
	if ns.Status.Phase != "" {
		status = string(ns.Status.Phase)
	}
	return &kubeResource{
		name: ns.Name,
		info: map[string]any{
			domain.KeyName:   ns.Name,
			domain.KeyStatus: status,
			domain.KeyLabels: labelsOrEmpty(ns.Labels),
		},
	}
}
