package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindInvalidArgument, KindNotFound, KindInternal, KindUnavailable} {
		if got := KindFromStatus(k.Status()); got != k {
			t.Errorf("KindFromStatus(%q) = %q, want %q", k.Status(), got, k)
		}
	}
	if got := KindFromStatus("PERMISSION_DENIED"); got != KindInternal {
		t.Errorf("Expected unknown status to map to internal, got %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	if KindInvalidArgument.HTTPStatus() != http.StatusBadRequest {
		t.Error("Expected 400 for invalid-argument")
	}
	if KindNotFound.HTTPStatus() != http.StatusNotFound {
		t.Error("Expected 404 for not-found")
	}
	if Kind("weird").HTTPStatus() != http.StatusInternalServerError {
		t.Error("Expected 500 for unknown kinds")
	}
}

func TestWrappedErrorsKeepKind(t *testing.T) {
	base := NotFound("Save data not found.")
	wrapped := fmt.Errorf("load game: %w", base)

	if !IsNotFound(wrapped) {
		t.Error("Expected wrapped error to be not-found")
	}
	if IsInvalidArgument(wrapped) {
		t.Error("Expected wrapped error not to be invalid-argument")
	}
	if KindOf(wrapped) != KindNotFound {
		t.Errorf("Expected not-found kind, got %q", KindOf(wrapped))
	}
	if Message(wrapped) != "Save data not found." {
		t.Errorf("Unexpected message %q", Message(wrapped))
	}
	if KindOf(errors.New("plain")) != KindInternal {
		t.Error("Expected plain errors to be internal")
	}
}

func TestErrorString(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal("save failed", cause)
	if err.Error() != "save failed: disk full" {
		t.Errorf("Unexpected error string %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the cause")
	}
}

func TestIsUnavailable(t *testing.T) {
	err := fmt.Errorf("load game: %w", Unavailable("unreachable", nil))
	if !IsUnavailable(err) {
		t.Error("Expected wrapped unavailable error to match")
	}
	if IsUnavailable(NotFound("x")) {
		t.Error("Expected not-found not to match")
	}
}
