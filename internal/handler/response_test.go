package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"kidpoints/internal/service"
)

func TestJSONErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", fmt.Errorf("%w: amount", service.ErrValidation), http.StatusBadRequest, "bad_request"},
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"not found", service.ErrNotFound, http.StatusNotFound, "not_found"},
		{"conflict", service.ErrConflict, http.StatusConflict, "conflict"},
		{"email taken", service.ErrEmailTaken, http.StatusConflict, "conflict"},
		{"username taken", service.ErrUsernameTaken, http.StatusConflict, "conflict"},
		{"store failure", fmt.Errorf("dial tcp: connection refused"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			if err := jsonError(c, tt.err); err != nil {
				t.Fatalf("jsonError: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("status=%d want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantCode) {
				t.Fatalf("body=%s missing code %q", rec.Body.String(), tt.wantCode)
			}
		})
	}
}

func TestInternalErrorsAreOpaque(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := jsonError(c, fmt.Errorf("dsn user:pass@tcp(db:3306)/prod")); err != nil {
		t.Fatalf("jsonError: %v", err)
	}
	if strings.Contains(rec.Body.String(), "dsn") {
		t.Fatalf("body leaks internal error detail: %s", rec.Body.String())
	}
}
