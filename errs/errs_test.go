package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIDRequiredMessage(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{kind: "Project", want: "Project ID required"},
		{kind: "Experience", want: "Experience ID required"},
		{kind: "Category", want: "Category ID required"},
	}

	for _, tt := range tests {
		err := IDRequired(tt.kind)
		if err.Error() != tt.want {
			t.Errorf("IDRequired(%q) = %q, want %q", tt.kind, err.Error(), tt.want)
		}
		if err.StatusCode != http.StatusBadRequest {
			t.Errorf("IDRequired(%q) status = %d, want 400", tt.kind, err.StatusCode)
		}
		if !IsMissingRequiredFieldError(err) {
			t.Errorf("IDRequired(%q) should classify as missing required field", tt.kind)
		}
	}
}

func TestStoreErrorKeepsVerbatimMessage(t *testing.T) {
	cause := errors.New(`pq: relation "projects" does not exist`)
	err := NewStoreError("find", "projects", cause)

	if err.Error() != cause.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), cause.Error())
	}
	if err.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", err.StatusCode)
	}
	if !errors.Is(err, ErrDatabaseQuery) {
		t.Error("expected errors.Is(err, ErrDatabaseQuery)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected the cause to stay reachable")
	}
	if IsStoreUnavailable(err) {
		t.Error("query failure must not classify as unavailable")
	}
}

func TestStoreErrorConnectionFailure(t *testing.T) {
	err := NewStoreError("find", "skills", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))
	if !IsStoreUnavailable(err) {
		t.Error("expected connection failure to classify as unavailable")
	}
	if err.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", err.StatusCode)
	}
}

func TestStoreErrorPassesThroughApiErr(t *testing.T) {
	inner := NewMissingRequiredFieldError("title")
	err := NewStoreError("create", "project", fmt.Errorf("validate: %w", inner))
	if err != inner {
		t.Errorf("expected the already-classified error to be returned as is")
	}
}

func TestGetFullError(t *testing.T) {
	err := NewInternalErrorWithCause("failed to send", errors.New("timeout"))
	if got := err.GetFullError(); got != "failed to send -> timeout" {
		t.Errorf("GetFullError() = %q", got)
	}
}

func TestStatusCode(t *testing.T) {
	if got := StatusCode(errors.New("boom")); got != http.StatusInternalServerError {
		t.Errorf("plain error status = %d", got)
	}
	wrapped := fmt.Errorf("login: %w", NewInvalidCredentialsError())
	if got := StatusCode(wrapped); got != http.StatusUnauthorized {
		t.Errorf("wrapped credentials error status = %d", got)
	}
	if !IsInvalidCredentialsError(wrapped) || !IsUnauthorized(wrapped) {
		t.Error("wrapped credentials error lost its classification")
	}
}

func TestNotFoundWrapsSentinel(t *testing.T) {
	err := NewNotFound("project")
	if !IsNotFound(err) {
		t.Error("expected IsNotFound")
	}
	if err.Error() != "project not found" {
		t.Errorf("Error() = %q", err.Error())
	}
}
