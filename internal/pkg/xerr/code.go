package xerr

import (
	"errors"
	"net/http"
	"strings"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota // StoreError and anything unclassified
	KindValidation
	KindNotFound
	KindUnauthorized
	KindUpload // blob adapter failure during upload
)

// Issue is one field-level validation problem.
type Issue struct {
	Code    string   `json:"code"`
	Path    []string `json:"path"`
	Field   string   `json:"field"`
	Message string   `json:"message"`
}

// ValidationError is returned when an inbound payload violates its schema.
type ValidationError struct {
	Err    error // operator message, e.g. ErrInvalidTir
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Field+": "+is.Message)
	}
	return e.Err.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError wraps issues under the given operator message.
func NewValidationError(msg error, issues ...Issue) *ValidationError {
	return &ValidationError{Err: msg, Issues: issues}
}

// UploadError marks a blob store failure during upload.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return "blob upload: " + e.Err.Error()
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

var notFound = []error{
	ErrTirNotFound,
	ErrDocumentNotFound,
	ErrShareLinkNotFound,
	ErrShareLinkInvalid,
	ErrShareLinkExpired,
}

var badRequest = []error{
	ErrInvalidParams,
	ErrInvalidShareType,
	ErrFileRequired,
	ErrFileTypeNotAllowed,
	ErrFileTooLarge,
	ErrInvalidExpiryFormat,
}

// KindOf classifies err.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return KindValidation
		}
	}
	for _, target := range notFound {
		if errors.Is(err, target) {
			return KindNotFound
		}
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidCredentials) {
		return KindUnauthorized
	}
	var ue *UploadError
	if errors.As(err, &ue) {
		return KindUpload
	}
	return KindInternal
}

// StatusOf maps err to its HTTP status.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
