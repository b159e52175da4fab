package kube

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/mocks"
)

func controllerDescriptor(name string, selector map[string]string) domain.ResourceDescriptor {
	return domain.ResourceDescriptor{
		Kind: domain.KindReplicationController,
		Name: name,
		Controller: &domain.ControllerSpec{
			Replicas: 3,
			Labels:   map[string]string{"app": "frontend"},
			Selector: selector,
			Containers: []domain.ContainerSpec{
				{Name: "web", Image: "nginx:1.25"},
			},
		},
	}
}

func TestReplicationControllerGatewayCreate(t *testing.T) {
	ctx := context.Background()
	client := fake.NewSimpleClientset()
	gateway := NewReplicationControllerGateway(client, "default", mocks.NoopLogger{})

	created, err := gateway.Create(ctx, controllerDescriptor("frontend", map[string]string{"tier": "web"}))
	require.NoError(t, err)

	info := created.Info()
	assert.Equal(t, "frontend", info[domain.KeyName])
	assert.Equal(t, int32(3), info[domain.KubeReplicasKey])
	assert.Equal(t, map[string]string{"tier": "web"}, info[domain.KubeSelectorKey])

	stored, err := client.CoreV1().ReplicationControllers("default").Get(ctx, "frontend", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"tier": "web"}, stored.Spec.Template.Labels)
}

func TestReplicationControllerGatewaySelectorDefaultsToLabels(t *testing.T) {
	ctx := context.Background()
	gateway := NewReplicationControllerGateway(fake.NewSimpleClientset(), "default", mocks.NoopLogger{})

	created, err := gateway.Create(ctx, controllerDescriptor("frontend", nil))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"app": "frontend"}, created.Info()[domain.KubeSelectorKey])
}

func TestReplicationControllerGatewayMissingSpec(t *testing.T) {
	gateway := NewReplicationControllerGateway(fake.NewSimpleClientset(), "default", mocks.NoopLogger{})

	_, err := gateway.Create(context.Background(), domain.ResourceDescriptor{
		Kind: domain.KindReplicationController,
		Name: "frontend",
	})
	require.Error(t, err)
}

func TestReplicationControllerGatewayFetchAndDelete(t *testing.T) {
	ctx := context.Background()
	gateway := NewReplicationControllerGateway(fake.NewSimpleClientset(), "default", mocks.NoopLogger{})

	_, found, err := gateway.Fetch(ctx, "frontend")
	require.NoError(t, err)
	assert.False(t, found)

	_, err = gateway.Create(ctx, controllerDescriptor("frontend", nil))
	require.NoError(t, err)

	_, found, err = gateway.Fetch(ctx, "frontend")
	require.NoError(t, err)
	assert.True(t, found)

	require.NoError(t, gateway.Delete(ctx, "frontend"))
	require.NoError(t, gateway.Delete(ctx, "frontend"))
}
