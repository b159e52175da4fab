package kube

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/mocks"
)

func TestPodGatewayCreate(t *testing.T) {
	ctx := context.Background()
	client := fake.NewSimpleClientset()
	gateway := NewPodGateway(client, "default", mocks.NoopLogger{})

	desc := domain.ResourceDescriptor{
		Kind: domain.KindPod,
		Name: "web",
		Pod: &domain.PodSpec{
			Labels: map[string]string{"app": "web"},
			Containers: []domain.ContainerSpec{
				{
					Name:  "nginx",
					Image: "nginx:1.25",
					Ports: []domain.ContainerPort{{ContainerPort: 80, Protocol: "tcp"}},
				},
			},
		},
	}

	created, err := gateway.Create(ctx, desc)
	require.NoError(t, err)
	assert.Equal(t, "web", created.Name())

	info := created.Info()
	assert.Equal(t, "default", info[domain.KubeNamespaceKey])
	assert.Equal(t, map[string]string{"app": "web"}, info[domain.KeyLabels])
	containers := info[domain.KubeContainersKey].([]map[string]any)
	require.Len(t, containers, 1)
	assert.Equal(t, "nginx:1.25", containers[0]["image"])

	// The protocol reaches the apiserver uppercased.
	stored, err := client.CoreV1().Pods("default").Get(ctx, "web", metav1.GetOptions{})
	require.NoError(t, err)
	require.Len(t, stored.Spec.Containers, 1)
	require.Len(t, stored.Spec.Containers[0].Ports, 1)
	assert.Equal(t, corev1.ProtocolTCP, stored.Spec.Containers[0].Ports[0].Protocol)
}

func TestPodGatewayNamespaceScoping(t *testing.T) {
	ctx := context.Background()
	client := fake.NewSimpleClientset(&corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "other"},
	})
	gateway := NewPodGateway(client, "default", mocks.NoopLogger{})

	_, found, err := gateway.Fetch(ctx, "web")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPodGatewayDelete(t *testing.T) {
	ctx := context.Background()
	client := fake.NewSimpleClientset(&corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "default"},
	})
	gateway := NewPodGateway(client, "default", mocks.NoopLogger{})

	require.NoError(t, gateway.Delete(ctx, "web"))
	_, found, err := gateway.Fetch(ctx, "web")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, gateway.Delete(ctx, "web"))
}
