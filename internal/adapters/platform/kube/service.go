package kube

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/client-go/kubernetes"

	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/internal/core/ports"
)

// ServiceGateway converges services within a single namespace.
type ServiceGateway struct {
	client    kubernetes.Interface
	namespace string
	logger    ports.Logger
}

func NewServiceGateway(client kubernetes.Interface, namespace string, logger ports.Logger) *ServiceGateway {
	return &ServiceGateway{client: client, namespace: namespace, logger: logger}
}

func (g *ServiceGateway) Kind() domain.ResourceKind {
	return domain.KindService
}

func (g *ServiceGateway) Fetch(ctx context.Context, name string) (domain.Resource, bool, error) {
	svc, err := g.client.CoreV1().Services(g.namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, handleAPIError("service", name, err)
	}
	return projectService(svc), true, nil
}

func (g *ServiceGateway) Create(ctx context.Context, desc domain.ResourceDescriptor) (domain.Resource, error) {
	spec := desc.Service
	if spec == nil {
		spec = &domain.ServiceSpec{}
	}

	ports := make([]corev1.ServicePort, 0, len(spec.Ports))
	for _, port := range spec.Ports {
		ports = append(ports, corev1.ServicePort{
			Protocol:   containerProtocol(port.Protocol),
			Port:       port.Port,
			TargetPort: intstr.FromInt32(port.TargetPort),
		})
	}

	svc := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:      desc.Name,
			Namespace: g.namespace,
		},
		Spec: corev1.ServiceSpec{
			Selector: spec.Selector,
			Ports:    ports,
		},
	}
	created, err := g.client.CoreV1().Services(g.namespace).Create(ctx, svc, metav1.CreateOptions{})
	if err != nil {
		return nil, handleAPIError("service", desc.Name, err)
	}
	return projectService(created), nil
}

func (g *ServiceGateway) Delete(ctx context.Context, name string) error {
	err := g.client.CoreV1().Services(g.namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return handleAPIError("service", name, err)
	}
	return nil
}

func projectService(svc *corev1.Service) *kubeResource {
	ports := make([]map[string]any, 0, len(svc.Spec.Ports))
	for _, port := range svc.Spec.Ports {
		ports = append(ports, map[string]any{
			"protocol":   string(port.Protocol),
			"port":       port.Port,
			"targetPort": port.TargetPort.IntValue(),
		})
	}
	var clusterIP any
	if svc.Spec.ClusterIP != "" {
		clusterIP = svc.Spec.ClusterIP
	}
	return &kubeResource{
		name: svc.Name,
		info: map[string]any{
			domain.KeyName:          svc.Name,
			domain.KeyStatus:        nil,
			domain.KeyLabels:        labelsOrEmpty(svc.Labels),
			domain.KubeNamespaceKey: svc.Namespace,
			domain.KubeSelectorKey:  labelsOrEmpty(svc.Spec.Selector),
			domain.KubePortsKey:     ports,
			domain.KubeClusterIPKey: clusterIP,
		},
	}
}
