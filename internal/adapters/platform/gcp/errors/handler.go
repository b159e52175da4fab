package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/cloudtasker/state-converger/internal/errors"
)

// HandleGoogleError maps a compute API error onto the application error
// taxonomy. 404 is RESOURCE_NOT_FOUND (an expected fetch outcome upstream),
// 409 is RESOURCE_CONFLICT (create race), 403 splits into quota versus
// permission by reason, everything else is a fatal platform error carrying
// the remote message.
func HandleGoogleError(resourceType string, resourceID string, err error, ctx context.Context) error {
	if err == nil {
		return errors.New(errors.CodeInternal, fmt.Sprintf("unexpected nil error in GCE error handler for %s", resourceType))
	}

	if ctx.Err() != nil {
		return errors.Wrap(ctx.Err(), errors.CodePlatformAPIError,
			fmt.Sprintf("context canceled during GCE %s API call", resourceType))
	}

	var apiErr *googleapi.Error
	if stderrs.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusNotFound:
			return errors.Wrap(err, errors.CodeResourceNotFound,
				fmt.Sprintf("%s '%s' not found", resourceType, resourceID))
		case http.StatusConflict:
			return errors.Wrap(err, errors.CodeResourceConflict,
				fmt.Sprintf("%s '%s' already exists", resourceType, resourceID))
		case http.StatusForbidden:
			if isQuotaReason(apiErr) {
				return errors.Wrap(err, errors.CodeQuotaExceeded,
					fmt.Sprintf("quota exceeded accessing %s '%s': %s", resourceType, resourceID, apiErr.Message))
			}
			return errors.Wrap(err, errors.CodePermissionDenied,
				fmt.Sprintf("permission denied accessing %s '%s': %s", resourceType, resourceID, apiErr.Message))
		case http.StatusUnauthorized:
			return errors.Wrap(err, errors.CodePlatformAuth,
				fmt.Sprintf("authentication failed accessing %s '%s'", resourceType, resourceID))
		}
	}

	return errors.Wrap(err, errors.CodePlatformAPIError,
		fmt.Sprintf("failed to access %s '%s': %v", resourceType, resourceID, err))
}

func isQuotaReason(apiErr *googleapi.Error) bool {
	for _, item := range apiErr.Errors {
		switch item.Reason {
		case "quotaExceeded", "rateLimitExceeded", "userRateLimitExceeded":
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is an already-mapped or raw 404.
func IsNotFound(err error) bool {
	if errors.Is(err, errors.CodeResourceNotFound) {
		return true
	}
	var apiErr *googleapi.Error
	return stderrs.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
