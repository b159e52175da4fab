package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/internal/errors"
	"github.com/cloudtasker/state-converger/mocks"
)

func TestReconcileAllKeepsInputOrder(t *testing.T) {
	ctx := context.Background()
	desc := domain.ResourceDescriptor{Kind: domain.KindPod}
	names := []string{"web-3", "web-1", "web-2"}

	gateway := new(mocks.MockResourceGateway)
	gateway.On("Kind").Return(domain.KindPod).Maybe()
	// web-3 and web-2 exist, web-1 gets created.
	gateway.On("Fetch", ctx, "web-3").Return(&fakeResource{name: "web-3"}, true, nil).Once()
	gateway.On("Fetch", ctx, "web-1").Return(nil, false, nil).Once()
	gateway.On("Create", ctx, desc.WithName("web-1")).Return(&fakeResource{name: "web-1"}, nil).Once()
	gateway.On("Fetch", ctx, "web-2").Return(&fakeResource{name: "web-2"}, true, nil).Once()

	batch, err := ReconcileAll(ctx, names, domain.StatePresent, desc, gateway, mocks.NoopLogger{})

	require.NoError(t, err)
	assert.Equal(t, names, batch.Names)
	assert.True(t, batch.Changed)
	require.Len(t, batch.Outcomes, 3)
	assert.False(t, batch.Outcomes[0].Changed)
	assert.True(t, batch.Outcomes[1].Changed)
	assert.False(t, batch.Outcomes[2].Changed)
	gateway.AssertExpectations(t)
}

func TestReconcileAllUnchangedWhenNothingHappens(t *testing.T) {
	ctx := context.Background()
	desc := domain.ResourceDescriptor{Kind: domain.KindPod}

	gateway := new(mocks.MockResourceGateway)
	gateway.On("Kind").Return(domain.KindPod).Maybe()
	gateway.On("Fetch", ctx, mock.Anything).Return(nil, false, nil)

	batch, err := ReconcileAll(ctx, []string{"a", "b"}, domain.StateAbsent, desc, gateway, mocks.NoopLogger{})

	require.NoError(t, err)
	assert.False(t, batch.Changed)
}

func TestReconcileAllFailsFast(t *testing.T) {
	ctx := context.Background()
	desc := domain.ResourceDescriptor{Kind: domain.KindPod}

	gateway := new(mocks.MockResourceGateway)
	gateway.On("Kind").Return(domain.KindPod).Maybe()
	gateway.On("Fetch", ctx, "a").Return(&fakeResource{name: "a"}, true, nil).Once()
	gateway.On("Delete", ctx, "a").Return(nil).Once()
	gateway.On("Fetch", ctx, "b").Return(nil, false, errors.New(errors.CodePlatformAPIError, "boom")).Once()

	batch, err := ReconcileAll(ctx, []string{"a", "b", "c"}, domain.StateAbsent, desc, gateway, mocks.NoopLogger{})

	require.Error(t, err)
	// The failed batch reports nothing, even though "a" was already
	// deleted remotely; committed mutations are not rolled back.
	assert.Empty(t, batch.Names)
	assert.Empty(t, batch.Outcomes)
	assert.False(t, batch.Changed)
	gateway.AssertNotCalled(t, "Fetch", ctx, "c")
	gateway.AssertExpectations(t)
}
