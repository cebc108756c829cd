package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestGetCode(t *testing.T) {
	err := New(CodeNoteEmptyTitle, "note title is required")
	if got := GetCode(err); got != CodeNoteEmptyTitle {
		t.Errorf("code = %q, want %q", got, CodeNoteEmptyTitle)
	}
	if got := GetCode(fmt.Errorf("plain")); got != CodeUnknown {
		t.Errorf("code = %q, want %q", got, CodeUnknown)
	}
}

func TestGetCodeWrapped(t *testing.T) {
	inner := New(CodeNotFound, "record not found")
	wrapped := fmt.Errorf("load note: %w", inner)
	if got := GetCode(wrapped); got != CodeNotFound {
		t.Errorf("code = %q, want %q", got, CodeNotFound)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNoteEmptyTitle, http.StatusBadRequest},
		{CodeUnauthenticated, http.StatusUnauthorized},
		{CodeNotFound, http.StatusNotFound},
		{CodeSessionClosed, http.StatusConflict},
		{CodePassageUpstream, http.StatusBadGateway},
		{CodeUnknown, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := tc.code.HTTPStatus(); got != tc.want {
			t.Errorf("%s status = %d, want %d", tc.code, got, tc.want)
		}
	}
}
