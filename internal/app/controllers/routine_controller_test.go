package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rahuldey/uniroutine/internal/app/models"
	"github.com/rahuldey/uniroutine/internal/app/models/dto"
	"github.com/rahuldey/uniroutine/internal/app/services"
	"github.com/rahuldey/uniroutine/internal/pkg/apperrors"
	"github.com/rahuldey/uniroutine/internal/pkg/validation"
)

type stubRoutineService struct {
	admitResult *models.Routine
	admitErr    error
	routines    []*models.Routine
	deleteErr   error
	deletedID   int64
}

func (s *stubRoutineService) Admit(_ context.Context, _ *dto.AdmitRoutineRequest) (*models.Routine, error) {
	return s.admitResult, s.admitErr
}

func (s *stubRoutineService) GetAll(_ context.Context) ([]*models.Routine, error) {
	return s.routines, nil
}

func (s *stubRoutineService) Delete(_ context.Context, id int64) error {
	s.deletedID = id
	return s.deleteErr
}

func setupRoutineRouter(t *testing.T, svc *stubRoutineService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	// The binding engine needs the same custom rules the server registers.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.RegisterCustomValidators(v); err != nil {
			t.Fatalf("failed to register custom validators: %v", err)
		}
	}
	router := gin.New()
	controller := NewRoutineController(svc)
	router.POST("/api/v1/routines", controller.AddRoutine)
	router.GET("/api/v1/routines", controller.GetRoutines)
	router.DELETE("/api/v1/routines/:id", controller.DeleteRoutine)
	return router
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) dto.APIResponse {
	t.Helper()
	var resp dto.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestAddRoutineCreated(t *testing.T) {
	svc := &stubRoutineService{admitResult: &models.Routine{ID: 7, Day: "Monday", Time: "09:00-10:00"}}
	router := setupRoutineRouter(t, svc)

	body := `{"course":"B.Tech","department":"CSE","semester":"3","subject":"DS",` +
		`"faculty":"Dr. Sen","room":"R-101","day":"Monday","time":"09:00-10:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/routines", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec)
	if !resp.Success || resp.StatusCode != http.StatusCreated {
		t.Errorf("unexpected envelope: %+v", resp)
	}
	if resp.Message != "Routine added successfully" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestAddRoutineConflictAnswersBadRequest(t *testing.T) {
	svc := &stubRoutineService{admitErr: apperrors.NewConflictError("Faculty already assigned in this time slot.")}
	router := setupRoutineRouter(t, svc)

	body := `{"course":"B.Tech","department":"CSE","semester":"3","subject":"DS",` +
		`"faculty":"Dr. Sen","room":"R-101","day":"Monday","time":"09:00-10:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/routines", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Success {
		t.Error("envelope must not report success")
	}
	if resp.Message != "Faculty already assigned in this time slot." {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestAddRoutineRejectsInvalidDayAtBinding(t *testing.T) {
	svc := &stubRoutineService{}
	router := setupRoutineRouter(t, svc)

	body := `{"course":"B.Tech","department":"CSE","semester":"3","subject":"DS",` +
		`"faculty":"Dr. Sen","room":"R-101","day":"Sunday","time":"09:00-10:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/routines", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec)
	if resp.Message != services.MsgInvalidDay {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestGetRoutinesEnvelope(t *testing.T) {
	svc := &stubRoutineService{routines: []*models.Routine{{ID: 1}, {ID: 2}}}
	router := setupRoutineRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/routines", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	items, ok := resp.Data.([]interface{})
	if !ok || len(items) != 2 {
		t.Errorf("expected 2 routines in data, got %#v", resp.Data)
	}
}

func TestDeleteRoutineNotFoundAnswers404(t *testing.T) {
	svc := &stubRoutineService{deleteErr: apperrors.NewNotFoundError("Routine not found")}
	router := setupRoutineRouter(t, svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/routines/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if svc.deletedID != 42 {
		t.Errorf("expected delete with id 42, got %d", svc.deletedID)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Message != "Routine not found" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestDeleteRoutineRejectsBadID(t *testing.T) {
	svc := &stubRoutineService{}
	router := setupRoutineRouter(t, svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/routines/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.deletedID != 0 {
		t.Error("service must not be called for a malformed id")
	}
}
