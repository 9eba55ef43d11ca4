package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestWrapKeepsSentinelIdentity(t *testing.T) {
	err := Wrap(ErrDownloadFailed, io.ErrUnexpectedEOF)

	if !errors.Is(err, ErrDownloadFailed) {
		t.Error("expected wrapped error to match its sentinel")
	}
	if errors.Is(err, ErrCorruptSourceFile) {
		t.Error("expected wrapped error not to match another sentinel")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("expected internal error to stay reachable")
	}
	if err.StatusCode != ErrDownloadFailed.StatusCode || !err.Retriable {
		t.Errorf("expected sentinel status and retry hint, got %d/%v", err.StatusCode, err.Retriable)
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrInvalidInput, "month must look like YYYY-MM")
	if err.Message != "month must look like YYYY-MM" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Code != ErrInvalidInput.Code {
		t.Errorf("unexpected code %q", err.Code)
	}
	if ErrInvalidInput.Message != "Invalid input" {
		t.Error("sentinel message must not change")
	}
}

func TestAs(t *testing.T) {
	if As(nil) != nil {
		t.Error("expected nil for nil error")
	}

	wrapped := fmt.Errorf("listing files: %w", Wrap(ErrFolderNotFound, nil))
	if got := As(wrapped); got.Code != ErrFolderNotFound.Code {
		t.Errorf("expected FOLDER_NOT_FOUND, got %s", got.Code)
	}

	plain := As(io.EOF)
	if plain.Code != ErrInternalServer.Code {
		t.Errorf("expected INTERNAL_ERROR for plain errors, got %s", plain.Code)
	}
	if !errors.Is(plain, io.EOF) {
		t.Error("expected plain error to be kept as internal")
	}
}

func TestIsRetriable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{ErrDownloadFailed, true},
		{ErrDriveUnavailable, true},
		{ErrPersistenceFailure, true},
		{ErrSyncTimeout, true},
		{ErrCredentialExpired, false},
		{ErrRefreshUnavailable, false},
		{ErrAuthenticationRequired, false},
		{ErrFolderNotFound, false},
		{ErrAmbiguousFolder, false},
		{ErrCorruptSourceFile, false},
		{io.EOF, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsRetriable(tt.err); got != tt.want {
			t.Errorf("IsRetriable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
