package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Object Storage Errors
var (
	ErrUploadFailed         = errors.New("upload failed")
	ErrBucketMissing        = errors.New("storage bucket missing")
	ErrStorageNotConfigured = errors.New("object storage not configured")
	ErrCommitInFlight       = errors.New("gallery commit already in progress")
)

// NewUploadError wraps a failed object upload. The record save that
// triggered the upload must be aborted by the caller.
func NewUploadError(objectName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUploadFailed,
		Details:    fmt.Sprintf("Failed to upload %s", objectName),
		Cause:      cause,
		Field:      "images",
	}
}

// NewBucketMissingError carries the actionable guidance message for a
// bucket that has not been provisioned, as opposed to a generic upload
// failure.
func NewBucketMissingError(bucket string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrBucketMissing,
		Details: fmt.Sprintf(
			"Storage bucket %q does not exist. Create it in the Supabase dashboard under Storage and mark it public",
			bucket),
		Field: "storage",
	}
}

func NewStorageNotConfiguredError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrStorageNotConfigured,
		Details:    "Set STORAGE_ENDPOINT, STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY to enable uploads",
		Field:      "configuration",
	}
}

func IsUploadError(err error) bool {
	return errors.Is(err, ErrUploadFailed)
}

func IsBucketMissingError(err error) bool {
	return errors.Is(err, ErrBucketMissing)
}

func IsCommitInFlightError(err error) bool {
	return errors.Is(err, ErrCommitInFlight)
}
