package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/internal/errors"
	"github.com/cloudtasker/state-converger/mocks"
)

func TestRegistryGateways(t *testing.T) {
	registry := NewComponentRegistry()

	gateway := new(mocks.MockResourceGateway)
	gateway.On("Kind").Return(domain.KindComputeInstance)

	require.NoError(t, registry.RegisterGateway(gateway))

	got, err := registry.GetGateway(domain.KindComputeInstance)
	require.NoError(t, err)
	assert.Same(t, gateway, got.(*mocks.MockResourceGateway))

	t.Run("duplicate registration is rejected", func(t *testing.T) {
		err := registry.RegisterGateway(gateway)
		require.Error(t, err)
	})

	t.Run("unknown kind reads as not implemented", func(t *testing.T) {
		_, err := registry.GetGateway(domain.KindService)
		require.Error(t, err)
		assert.Equal(t, errors.CodeNotImplemented, errors.GetCode(err))
	})

	t.Run("nil gateway is rejected", func(t *testing.T) {
		require.Error(t, registry.RegisterGateway(nil))
	})
}

func TestRegistryReporters(t *testing.T) {
	registry := NewComponentRegistry()
	reporter := new(mocks.MockReporter)

	require.NoError(t, registry.RegisterReporter("text", reporter))

	got, err := registry.GetReporter("text")
	require.NoError(t, err)
	assert.Same(t, reporter, got.(*mocks.MockReporter))

	_, err = registry.GetReporter("xml")
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigValidation, errors.GetCode(err))
}
