package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"facegate.io/application/controller/dto"
	"facegate.io/application/interfaces"
	biometric_usecases "facegate.io/application/usecases/biometric"
	"facegate.io/entities"
	"facegate.io/infrastructure/biometric/types"
	"facegate.io/infrastructure/logger"
	"github.com/gin-gonic/gin"
)

type stubSettingsStore struct {
	settings *entities.AuthSettings
}

func (s stubSettingsStore) Get(userID string) (*entities.AuthSettings, error) {
	return s.settings, nil
}

func (s stubSettingsStore) Create(ctx context.Context, settings entities.AuthSettings) (*entities.AuthSettings, error) {
	return &settings, nil
}

func (s stubSettingsStore) Update(userID string, fields map[string]any) (bool, error) {
	return true, nil
}

type stubAttemptLedger struct {
	rows []entities.AuthAttempt
}

func (l *stubAttemptLedger) Append(ctx context.Context, attempt entities.AuthAttempt) error {
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now()
	}
	l.rows = append([]entities.AuthAttempt{attempt}, l.rows...)
	return nil
}

func (l *stubAttemptLedger) ListRecent(userID string, limit int64) ([]entities.AuthAttempt, error) {
	return l.rows, nil
}

func (l *stubAttemptLedger) ListPaginated(userID string, pageSize int64, lastID *string) ([]entities.AuthAttempt, error) {
	return l.rows, nil
}

type failingCipher struct{}

func (failingCipher) Encrypt(embedding []float32) (string, error) {
	return "", errors.New("sealed storage offline")
}

func (failingCipher) Decrypt(payload string) ([]float32, error) {
	return nil, errors.New("sealed storage offline")
}

func captureBody(userID string) *dto.FaceCaptureDTO {
	return &dto.FaceCaptureDTO{
		UserID: userID,
		Faces: []types.DetectedFace{{
			Confidence: 0.95,
			Embedding:  []float32{0.5, 0.5, 0.5, 0.5},
		}},
		IsLive:  true,
		Quality: 0.9,
	}
}

func newRequestContext[T any](t *testing.T, body *T) (*interfaces.ApplicationContext[T], *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if logger.Logger == nil {
		logger.InitializeLogger()
	}
	recorder := httptest.NewRecorder()
	ginCtx, _ := gin.CreateTestContext(recorder)
	ginCtx.Request = httptest.NewRequest(http.MethodPost, "/api/v1/biometric", nil)
	return &interfaces.ApplicationContext[T]{Ctx: ginCtx, Body: body}, recorder
}

func responseCodeOf(t *testing.T, recorder *httptest.ResponseRecorder) float64 {
	t.Helper()
	payload := map[string]any{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response is not valid json: %v", err)
	}
	code, _ := payload["response_code"].(float64)
	return code
}

// An encrypt or persist failure is a system fault, not a bad request.
func TestEnrollFaceStoreFailureIsServerError(t *testing.T) {
	biometric_usecases.Engine = &biometric_usecases.FaceAuthService{
		Settings: stubSettingsStore{},
		Attempts: &stubAttemptLedger{},
		Cipher:   failingCipher{},
		Now:      time.Now,
	}

	appCtx, recorder := newRequestContext(t, captureBody("user_1"))
	EnrollFace(appCtx)

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", recorder.Code, http.StatusInternalServerError)
	}
}

func TestEnrollFaceDisabledAccountIsForbidden(t *testing.T) {
	settings := entities.AuthSettings{
		UserID:                 "user_1",
		IsEnabled:              false,
		ConfidenceThreshold:    0.85,
		MaxFailedAttempts:      5,
		LockoutDurationMinutes: 15,
	}
	biometric_usecases.Engine = &biometric_usecases.FaceAuthService{
		Settings: stubSettingsStore{settings: &settings},
		Attempts: &stubAttemptLedger{},
		Now:      time.Now,
	}

	appCtx, recorder := newRequestContext(t, captureBody("user_1"))
	EnrollFace(appCtx)

	if recorder.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", recorder.Code, http.StatusForbidden)
	}
	if code := responseCodeOf(t, recorder); code != 6010 {
		t.Errorf("response_code = %v, want 6010", code)
	}
}

func TestVerifyFaceLockedOutIsLockedAndLedgered(t *testing.T) {
	reason := biometric_usecases.ReasonLowConfidenceMatch
	ledger := &stubAttemptLedger{}
	for i := 0; i < 5; i++ {
		ledger.rows = append(ledger.rows, entities.AuthAttempt{
			UserID:        "user_1",
			AttemptType:   entities.VerificationAttempt,
			Success:       false,
			FailureReason: &reason,
			CreatedAt:     time.Now().Add(-time.Duration(i+1) * time.Minute),
		})
	}
	biometric_usecases.Engine = &biometric_usecases.FaceAuthService{
		Settings: stubSettingsStore{},
		Attempts: ledger,
		Now:      time.Now,
	}

	appCtx, recorder := newRequestContext(t, captureBody("user_1"))
	VerifyFace(appCtx)

	if recorder.Code != http.StatusLocked {
		t.Errorf("status = %d, want %d", recorder.Code, http.StatusLocked)
	}
	if code := responseCodeOf(t, recorder); code != 4231 {
		t.Errorf("response_code = %v, want 4231", code)
	}
	// the rejected call still lands in the ledger, marked locked_out
	if len(ledger.rows) != 6 {
		t.Fatalf("ledger has %d rows, want 6", len(ledger.rows))
	}
	row := ledger.rows[0]
	if row.Success || row.FailureReason == nil || *row.FailureReason != biometric_usecases.ReasonLockedOut {
		t.Errorf("newest row = %+v, want a failed row with locked_out", row)
	}
}
