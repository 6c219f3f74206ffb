package storage

import "errors"

var (
	ErrInvalidKey    = errors.New("invalid object key") // Prevents path traversal
	ErrInvalidURL    = errors.New("Invalid picture URL format")
	ErrPresignFailed = errors.New("failed to presign request")

	// S3-specific errors for proper error classification
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")

	ErrOperationTimeout  = errors.New("operation timed out")
	ErrOperationCanceled = errors.New("operation canceled")

	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
)
