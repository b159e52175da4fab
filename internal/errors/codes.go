package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"
	CodeConfigNotFound   Code = "CONFIG_NOT_FOUND"
	CodePlatformAPIError Code = "PLATFORM_API_ERROR"
	CodePlatformAuth     Code = "PLATFORM_AUTH_ERROR"
	CodeResourceNotFound Code = "RESOURCE_NOT_FOUND"
	CodeResourceConflict Code = "RESOURCE_CONFLICT"
	CodeQuotaExceeded    Code = "QUOTA_EXCEEDED"
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeNotImplemented   Code = "NOT_IMPLEMENTED"
	CodeTimeout          Code = "TIMEOUT_ERROR"

	// Instance disk resolution against the remote system
	CodeDiskResolveError Code = "DISK_RESOLVE_ERROR"
)

func (c Code) String() string {
	return string(c)
}
