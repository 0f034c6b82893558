package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rahuldey/uniroutine/internal/app/models/dto"
	"github.com/rahuldey/uniroutine/internal/pkg/apperrors"
)

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", apperrors.NewValidationError("All fields are required"), http.StatusBadRequest, "All fields are required"},
		{"conflict", apperrors.NewConflictError("Schedule conflict detected."), http.StatusBadRequest, "Schedule conflict detected."},
		{"not found", apperrors.NewNotFoundError("Routine not found"), http.StatusNotFound, "Routine not found"},
		{"credentials", &apperrors.CustomError{Err: apperrors.ErrInvalidCredentials, Message: "Invalid email or password"}, http.StatusUnauthorized, "Invalid email or password"},
		{"forbidden", apperrors.NewForbiddenError("Permission denied"), http.StatusForbidden, "Permission denied"},
		{"unknown", errors.New("pg connection lost"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tc.err)

			if rec.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			var resp dto.APIResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Message != tc.wantMsg {
				t.Errorf("expected message %q, got %q", tc.wantMsg, resp.Message)
			}
			if resp.Success {
				t.Error("error envelope must not report success")
			}
			if resp.StatusCode != tc.wantStatus {
				t.Errorf("envelope status %d does not match HTTP status %d", resp.StatusCode, tc.wantStatus)
			}
		})
	}
}
