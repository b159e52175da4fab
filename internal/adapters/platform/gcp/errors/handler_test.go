package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"

	"github.com/cloudtasker/state-converger/internal/errors"
)

func googleError(code int, reason string) *googleapi.Error {
	apiErr := &googleapi.Error{Code: code, Message: "remote message"}
	if reason != "" {
		apiErr.Errors = []googleapi.ErrorItem{{Reason: reason}}
	}
	return apiErr
}

func TestHandleGoogleError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode errors.Code
	}{
		{
			name:         "404 maps to resource not found",
			err:          googleError(http.StatusNotFound, ""),
			expectedCode: errors.CodeResourceNotFound,
		},
		{
			name:         "409 maps to conflict",
			err:          googleError(http.StatusConflict, ""),
			expectedCode: errors.CodeResourceConflict,
		},
		{
			name:         "403 with quota reason maps to quota exceeded",
			err:          googleError(http.StatusForbidden, "quotaExceeded"),
			expectedCode: errors.CodeQuotaExceeded,
		},
		{
			name:         "403 with rate limit reason maps to quota exceeded",
			err:          googleError(http.StatusForbidden, "rateLimitExceeded"),
			expectedCode: errors.CodeQuotaExceeded,
		},
		{
			name:         "plain 403 maps to permission denied",
			err:          googleError(http.StatusForbidden, "forbidden"),
			expectedCode: errors.CodePermissionDenied,
		},
		{
			name:         "401 maps to platform auth",
			err:          googleError(http.StatusUnauthorized, ""),
			expectedCode: errors.CodePlatformAuth,
		},
		{
			name:         "500 maps to platform API error",
			err:          googleError(http.StatusInternalServerError, ""),
			expectedCode: errors.CodePlatformAPIError,
		},
		{
			name:         "wrapped googleapi error is unwrapped",
			err:          fmt.Errorf("call failed: %w", googleError(http.StatusNotFound, "")),
			expectedCode: errors.CodeResourceNotFound,
		},
		{
			name:         "non-API error maps to platform API error",
			err:          fmt.Errorf("connection refused"),
			expectedCode: errors.CodePlatformAPIError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mapped := HandleGoogleError("instance", "web-1", tc.err, context.Background())
			assert.Equal(t, tc.expectedCode, errors.GetCode(mapped))
		})
	}
}

func TestHandleGoogleErrorCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mapped := HandleGoogleError("instance", "web-1", googleError(http.StatusNotFound, ""), ctx)
	assert.Equal(t, errors.CodePlatformAPIError, errors.GetCode(mapped))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(googleError(http.StatusNotFound, "")))
	assert.True(t, IsNotFound(errors.New(errors.CodeResourceNotFound, "gone")))
	assert.False(t, IsNotFound(googleError(http.StatusConflict, "")))
	assert.False(t, IsNotFound(fmt.Errorf("other")))
}
