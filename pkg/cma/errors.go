package cma

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error resource ids reported by the platform in sys.id.
const (
	ErrorIDNotFound           = "NotFound"
	ErrorIDVersionMismatch    = "VersionMismatch"
	ErrorIDValidationFailed   = "ValidationFailed"
	ErrorIDAccessTokenInvalid = "AccessTokenInvalid"
	ErrorIDRateLimitExceeded  = "RateLimitExceeded"
	ErrorIDBadRequest         = "BadRequest"
	ErrorIDConflict           = "Conflict"
	ErrorIDInternalError      = "InternalServerError"
)

// ErrorSys is the metadata block of an error resource.
type ErrorSys struct {
	Type string `json:"type" yaml:"type"`
	ID   string `json:"id"   yaml:"id"`
}

// APIError represents an error resource returned by the platform. The sys.id
// discriminator names the failure class; Status carries the HTTP status the
// resource arrived with.
type APIError struct {
	Sys       ErrorSys               `json:"sys"                 yaml:"sys"`
	Message   string                 `json:"message,omitempty"   yaml:"message,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"   yaml:"details,omitempty"`
	RequestID string                 `json:"requestId,omitempty" yaml:"requestId,omitempty"`
	Status    int                    `json:"-"                   yaml:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s (status: %d)", e.Sys.ID, e.Status)
	}

	return fmt.Sprintf("%s: %s (status: %d)", e.Sys.ID, e.Message, e.Status)
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrEndpointRequired    = errors.New("API endpoint is required")
	ErrSpaceIDRequired     = errors.New("space id is required")
	ErrEntryIDRequired     = errors.New("entry id is required")
	ErrContentTypeRequired = errors.New("content type id is required")
	ErrEntryNotPersisted   = errors.New("entry has no server identity yet")
	ErrSchemaNotFound      = errors.New("content type schema not found")
	ErrMixedList           = errors.New("list elements are not homogeneous")
	ErrUnclassifiableValue = errors.New("value cannot be classified for encoding")
	ErrNoSchemaBound       = errors.New("entry has no content type schema bound")
	ErrCacheDisabled       = errors.New("cache disabled")
	ErrCacheKeyNotFound    = errors.New("key not found in cache")
	ErrCacheEntryTooLarge  = errors.New("cache entry exceeds maximum value size")
	ErrUnsupportedCache    = errors.New("unsupported cache type")
	ErrNATSConfigRequired  = errors.New("NATS configuration required for NATS cache")
)

// UnknownMemberError reports a field accessor that still does not resolve
// after the entry's schema has been fetched and bound.
type UnknownMemberError struct {
	EntryID string
	SpaceID string
	Name    string
}

// Error implements the error interface.
func (e *UnknownMemberError) Error() string {
	return fmt.Sprintf("unknown field accessor %q on entry %s/%s", e.Name, e.SpaceID, e.EntryID)
}

// IsNotFound checks if the error is a not found error resource.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Sys.ID == ErrorIDNotFound
	}

	return false
}

// IsVersionConflict checks if the error is a stale-version conflict. Version
// drift implies another writer; callers must not blindly retry.
func IsVersionConflict(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Sys.ID == ErrorIDVersionMismatch || apiErr.Status == 409
	}

	return false
}

// IsValidationFailed checks if the error is a validation failure resource.
func IsValidationFailed(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Sys.ID == ErrorIDValidationFailed
	}

	return false
}

// IsRateLimited checks if the error is a rate limit resource.
func IsRateLimited(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Sys.ID == ErrorIDRateLimitExceeded || apiErr.Status == 429
	}

	return false
}

// ParseAPIError parses an error resource from a response body. The HTTP
// status is recorded on the result; bodies that are not valid error resources
// yield a synthesized APIError so remote failures never get swallowed.
func ParseAPIError(status int, body []byte) *APIError {
	var apiErr APIError

	err := json.Unmarshal(body, &apiErr)
	if err != nil || apiErr.Sys.ID == "" {
		apiErr = APIError{
			Sys:     ErrorSys{Type: TypeError, ID: errorIDForStatus(status)},
			Message: string(body),
		}
	}

	apiErr.Status = status

	return &apiErr
}

func errorIDForStatus(status int) string {
	switch status {
	case 400:
		return ErrorIDBadRequest
	case 404:
		return ErrorIDNotFound
	case 409:
		return ErrorIDVersionMismatch
	case 422:
		return ErrorIDValidationFailed
	case 429:
		return ErrorIDRateLimitExceeded
	default:
		return ErrorIDInternalError
	}
}
