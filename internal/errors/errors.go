// Package errors provides custom error types for the gagyebu API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import (
	"errors"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, retry classification, and
// optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Retriable  bool   `json:"retriable"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so that
// wrapped copies still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Retriable:  sentinel.Retriable,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Retriable:  sentinel.Retriable,
		Internal:   sentinel.Internal,
	}
}

// As extracts the *AppError from err. Non-AppErrors are wrapped in
// ErrInternalServer so callers always get one uniform shape.
func As(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(ErrInternalServer, err)
}

// IsRetriable reports whether the operation that produced err may be retried
// without user action.
func IsRetriable(err error) bool {
	appErr := As(err)
	return appErr != nil && appErr.Retriable
}

// Authentication & authorization errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrForbidden    = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrUnknownOwner = &AppError{Code: "UNKNOWN_OWNER", Message: "This account is not part of the household", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Credential errors. None of these can be fixed by retrying; the user has to
// sign in again.
var (
	ErrAuthenticationRequired = &AppError{Code: "AUTHENTICATION_REQUIRED", Message: "Please sign in to connect your Google Drive", StatusCode: http.StatusUnauthorized}
	ErrCredentialExpired      = &AppError{Code: "CREDENTIAL_EXPIRED", Message: "Your Google session has expired, please sign in again", StatusCode: http.StatusUnauthorized}
	ErrRefreshUnavailable     = &AppError{Code: "REFRESH_UNAVAILABLE", Message: "Offline access was not granted, please sign out and sign in again", StatusCode: http.StatusUnauthorized}
)

// Remote drive errors.
var (
	ErrFolderNotFound     = &AppError{Code: "FOLDER_NOT_FOUND", Message: "The sync folder was not found in Google Drive", StatusCode: http.StatusNotFound}
	ErrAmbiguousFolder    = &AppError{Code: "AMBIGUOUS_FOLDER", Message: "More than one Google Drive folder has the sync folder name", StatusCode: http.StatusConflict}
	ErrSourceFileNotFound = &AppError{Code: "SOURCE_FILE_NOT_FOUND", Message: "No exported database file was found in the sync folder", StatusCode: http.StatusNotFound}
	ErrDownloadFailed     = &AppError{Code: "DOWNLOAD_FAILED", Message: "Downloading the exported database failed, please try again", StatusCode: http.StatusBadGateway, Retriable: true}
	ErrDriveUnavailable   = &AppError{Code: "DRIVE_UNAVAILABLE", Message: "Google Drive could not be reached, please try again", StatusCode: http.StatusBadGateway, Retriable: true}
)

// Extraction & persistence errors.
var (
	ErrCorruptSourceFile     = &AppError{Code: "CORRUPT_SOURCE_FILE", Message: "The exported database file could not be read", StatusCode: http.StatusUnprocessableEntity}
	ErrInvalidTemporalValue  = &AppError{Code: "INVALID_TEMPORAL_VALUE", Message: "Record date or time could not be parsed", StatusCode: http.StatusUnprocessableEntity}
	ErrPersistenceFailure    = &AppError{Code: "PERSISTENCE_FAILURE", Message: "Saving the synced records failed, previous data was kept", StatusCode: http.StatusInternalServerError, Retriable: true}
	ErrSyncTimeout           = &AppError{Code: "SYNC_TIMEOUT", Message: "Sync took too long, please try again", StatusCode: http.StatusGatewayTimeout, Retriable: true}
	ErrUnsupportedSchemaType = &AppError{Code: "UNSUPPORTED_SCHEMA_VERSION", Message: "Unsupported source record version", StatusCode: http.StatusBadRequest}
)
