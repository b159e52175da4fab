package kube

import (
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"github.com/cloudtasker/state-converger/internal/errors"
)

// handleAPIError maps an apiserver error onto the application taxonomy so
// the convergence engine can react uniformly across platforms.
func handleAPIError(resourceType, name string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case apierrors.IsNotFound(err):
		return errors.Wrap(err, errors.CodeResourceNotFound,
			fmt.Sprintf("%s '%s' not found", resourceType, name))
	case apierrors.IsAlreadyExists(err), apierrors.IsConflict(err):
		return errors.Wrap(err, errors.CodeResourceConflict,
			fmt.Sprintf("%s '%s' already exists", resourceType, name))
	case apierrors.IsForbidden(err):
		return errors.WrapUserFacing(err, errors.CodePermissionDenied,
			fmt.Sprintf("permission denied for %s '%s'", resourceType, name),
			"Verify the credentials in your kubeconfig have access to this resource.")
	case apierrors.IsUnauthorized(err):
		return errors.WrapUserFacing(err, errors.CodePlatformAuth,
			"authentication with the cluster failed",
			"Verify the credentials in your kubeconfig are still valid.")
	case apierrors.IsTooManyRequests(err):
		return errors.Wrap(err, errors.CodeQuotaExceeded,
			fmt.Sprintf("request for %s '%s' was throttled by the apiserver", resourceType, name))
	case apierrors.IsInvalid(err), apierrors.IsBadRequest(err):
		return errors.WrapUserFacing(err, errors.CodeConfigValidation,
			fmt.Sprintf("the apiserver rejected %s '%s' as invalid", resourceType, name), "")
	case apierrors.IsTimeout(err), apierrors.IsServerTimeout(err):
		return errors.Wrap(err, errors.CodeTimeout,
			fmt.Sprintf("request for %s '%s' timed out", resourceType, name))
	default:
		return errors.Wrap(err, errors.CodePlatformAPIError,
			fmt.Sprintf("api call for %s '%s' failed", resourceType, name))
	}
}
