package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cryptocube/internal/trading"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "NotFound",
			err:        fmt.Errorf("%w: order", trading.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   "not found: order",
		},
		{
			name:       "Validation",
			err:        fmt.Errorf("%w: amount must be positive", trading.ErrValidation),
			wantStatus: http.StatusBadRequest,
			wantBody:   "validation failed: amount must be positive",
		},
		{
			name:       "InvalidState",
			err:        trading.ErrInvalidState,
			wantStatus: http.StatusConflict,
			wantBody:   "invalid state",
		},
		{
			name:       "InsufficientFunds",
			err:        trading.ErrInsufficientFunds,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "insufficient cash balance",
		},
		{
			name:       "InsufficientPosition",
			err:        trading.ErrInsufficientPosition,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "insufficient position",
		},
		{
			name:       "UnknownErrorIsNotLeaked",
			err:        fmt.Errorf("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)
			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error != tt.wantBody {
				t.Errorf("expected body %q, got %q", tt.wantBody, body.Error)
			}
		})
	}
}
