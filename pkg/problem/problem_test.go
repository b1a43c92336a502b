package problem

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewAndWithErrors(t *testing.T) {
	fieldErrors := []FieldError{{Field: "typical_wake_time", Message: "must be a time in HH:MM format"}}
	p := New(http.StatusUnprocessableEntity, "validation-error", "Validation Error", "Request body contains invalid fields").WithErrors(fieldErrors)

	if got, want := p.Type, BaseURI+"/validation-error"; got != want {
		t.Fatalf("unexpected type: got %q want %q", got, want)
	}
	if p.Status != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status: %d", p.Status)
	}
	if len(p.Errors) != 1 || p.Errors[0] != fieldErrors[0] {
		t.Fatalf("errors not set: %+v", p.Errors)
	}
}

func TestProblemWrite(t *testing.T) {
	resp := httptest.NewRecorder()
	NotFound("No forecast available for this date").Write(resp)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != ContentType {
		t.Fatalf("missing content type: %s", got)
	}

	var decoded Problem
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if decoded.Title != "Not Found" || decoded.Detail != "No forecast available for this date" {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
}

func TestConstructorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		p      *Problem
		status int
	}{
		{"bad request", BadRequest("Invalid user ID format"), http.StatusBadRequest},
		{"conflict", Conflict("User with this email already exists"), http.StatusConflict},
		{"internal", InternalError("Failed to compute forecast"), http.StatusInternalServerError},
		{"validation", ValidationError("Request body contains invalid fields", nil), http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.p.Status != tt.status {
				t.Fatalf("got status %d want %d", tt.p.Status, tt.status)
			}
			if tt.p.Type == "" || tt.p.Title == "" {
				t.Fatalf("incomplete problem: %+v", tt.p)
			}
		})
	}
}
