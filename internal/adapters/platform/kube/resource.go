package kube

import (
	"strings"

	corev1 "k8s.io/api/core/v1"

	"github.com/cloudtasker/state-converger/internal/core/domain"
)

// kubeResource is the shared fetched-resource carrier for all cluster
// object kinds; each gateway fills the info map with its own projection.
type kubeResource struct {
	name string
	info map[string]any
}

func (r *kubeResource) Name() string {
	return r.name
}

func (r *kubeResource) Info() map[string]any {
	return r.info
}

func buildContainers(specs []domain.ContainerSpec) []corev1.Container {
	containers := make([]corev1.Container, 0, len(specs))
	for _, spec := range specs {
		container := corev1.Container{Name: spec.Name, Image: spec.Image}
		for _, port := range spec.Ports {
			container.Ports = append(container.Ports, corev1.ContainerPort{
				ContainerPort: port.ContainerPort,
				Protocol:      containerProtocol(port.Protocol),
			})
		}
		containers = append(containers, container)
	}
	return containers
}

func containerProtocol(protocol string) corev1.Protocol {
	if protocol == "" {
		return corev1.ProtocolTCP
	}
	return corev1.Protocol(strings.ToUpper(protocol))
}

func projectContainers(containers []corev1.Container) []map[string]any {
	projected := make([]map[string]any, 0, len(containers))
	for _, container := range containers {
		projected = append(projected, map[string]any{
			"name":  container.Name,
			"image": container.Image,
		})
	}
	return projected
}

func labelsOrEmpty(labels map[string]string) map[string]string {
	if labels == nil {
		return map[string]string{}
	}
	return labels
}
