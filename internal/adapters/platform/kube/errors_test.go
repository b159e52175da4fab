package kube

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/cloudtasker/state-converger/internal/errors"
)

func TestHandleAPIError(t *testing.T) {
	podsResource := schema.GroupResource{Resource: "pods"}

	tests := []struct {
		name         string
		err          error
		expectedCode errors.Code
	}{
		{
			name:         "not found",
			err:          apierrors.NewNotFound(podsResource, "web"),
			expectedCode: errors.CodeResourceNotFound,
		},
		{
			name:         "already exists maps to conflict",
			err:          apierrors.NewAlreadyExists(podsResource, "web"),
			expectedCode: errors.CodeResourceConflict,
		},
		{
			name:         "forbidden",
			err:          apierrors.NewForbidden(podsResource, "web", fmt.Errorf("rbac")),
			expectedCode: errors.CodePermissionDenied,
		},
		{
			name:         "unauthorized",
			err:          apierrors.NewUnauthorized("token expired"),
			expectedCode: errors.CodePlatformAuth,
		},
		{
			name:         "throttled",
			err:          apierrors.NewTooManyRequests("slow down", 1),
			expectedCode: errors.CodeQuotaExceeded,
		},
		{
			name:         "bad request",
			err:          apierrors.NewBadRequest("nope"),
			expectedCode: errors.CodeConfigValidation,
		},
		{
			name:         "server timeout",
			err:          apierrors.NewServerTimeout(podsResource, "get", 1),
			expectedCode: errors.CodeTimeout,
		},
		{
			name:         "anything else is a platform error",
			err:          fmt.Errorf("connection reset"),
			expectedCode: errors.CodePlatformAPIError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mapped := handleAPIError("pod", "web", tc.err)
			assert.Equal(t, tc.expectedCode, errors.GetCode(mapped))
		})
	}

	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, handleAPIError("pod", "web", nil))
	})
}
