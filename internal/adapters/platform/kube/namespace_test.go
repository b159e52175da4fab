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

func TestNamespaceGatewayRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := fake.NewSimpleClientset()
	gateway := NewNamespaceGateway(client, mocks.NoopLogger{})

	_, found, err := gateway.Fetch(ctx, "staging")
	require.NoError(t, err)
	assert.False(t, found)

	desc := domain.ResourceDescriptor{Kind: domain.KindNamespace, Name: "staging"}
	created, err := gateway.Create(ctx, desc)
	require.NoError(t, err)
	assert.Equal(t, "staging", created.Name())
	assert.Equal(t, "staging", created.Info()[domain.KeyName])

	fetched, found, err := gateway.Fetch(ctx, "staging")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "staging", fetched.Name())

	require.NoError(t, gateway.Delete(ctx, "staging"))

	_, found, err = gateway.Fetch(ctx, "staging")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNamespaceGatewayDeleteAbsent(t *testing.T) {
	gateway := NewNamespaceGateway(fake.NewSimpleClientset(), mocks.NoopLogger{})
	require.NoError(t, gateway.Delete(context.Background(), "never-existed"))
}

func TestNamespaceGatewayProjection(t *testing.T) {
	client := fake.NewSimpleClientset(&corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{
			Name:   "prod",
			Labels: map[string]string{"env": "prod"},
		},
		Status: corev1.NamespaceStatus{Phase: corev1.NamespaceActive},
	})
	gateway := NewNamespaceGateway(client, mocks.NoopLogger{})

	fetched, found, err := gateway.Fetch(context.Background(), "prod")
	require.NoError(t, err)
	require.True(t, found)

	info := fetched.Info()
	assert.Equal(t, "prod", info[domain.KeyName])
	assert.Equal(t, "Active", info[domain.KeyStatus])
	assert.Equal(t, map[string]string{"env": "prod"}, info[domain.KeyLabels])
}

func TestNamespaceGatewayKind(t *testing.T) {
	gateway := NewNamespaceGateway(fake.NewSimpleClientset(), mocks.NoopLogger{})
	assert.Equal(t, domain.KindNamespace, gateway.Kind())
}
