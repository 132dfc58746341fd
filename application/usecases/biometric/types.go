package biometric_usecases

import (
	"context"
	"time"

	"facegate.io/entities"
)

// failure reason codes returned to callers and written to the attempt ledger
const (
	ReasonNoFaceDetected         = "no_face_detected"
	ReasonMultipleFacesDetected  = "multiple_faces_detected"
	ReasonLowDetectionConfidence = "low_detection_confidence"
	ReasonLivenessFailed         = "liveness_failed"
	ReasonNoTemplateEnrolled     = "no_template_enrolled"
	ReasonLowConfidenceMatch     = "low_confidence_match"
	ReasonLockedOut              = "locked_out"
	ReasonDimensionMismatch      = "embedding_dimension_mismatch"
	ReasonStoreUnavailable       = "store_unavailable"
	ReasonFallbackNotAllowed     = "fallback_not_allowed"
	ReasonInvalidPassword        = "invalid_password"
	ReasonBiometricDisabled      = "biometric_auth_disabled"
)

type EnrollmentResult struct {
	Success         bool     `json:"success"`
	TemplateID      *string  `json:"templateId,omitempty"`
	ConfidenceScore *float64 `json:"confidenceScore,omitempty"`
	QualityScore    *float64 `json:"qualityScore,omitempty"`
	Error           *string  `json:"error,omitempty"`
}

type VerificationResult struct {
	Success           bool       `json:"success"`
	ConfidenceScore   float64    `json:"confidenceScore"`
	MatchTemplateID   *string    `json:"matchTemplateId,omitempty"`
	Error             *string    `json:"error,omitempty"`
	IsLockedOut       bool       `json:"isLockedOut"`
	RemainingAttempts *int       `json:"remainingAttempts,omitempty"`
	SessionToken      *string    `json:"sessionToken,omitempty"`
	SessionExpiresAt  *time.Time `json:"sessionExpiresAt,omitempty"`
}

// LockoutState is derived from the attempt ledger on every evaluation; it is
// never persisted, so there is no second source of truth to drift.
type LockoutState struct {
	IsLockedOut         bool
	ConsecutiveFailures int
	RemainingAttempts   int
	LockedUntil         *time.Time
}

// UpdateSettingsPayload carries a partial settings update; nil fields are
// left untouched.
type UpdateSettingsPayload struct {
	IsEnabled              *bool    `json:"isEnabled"`
	RequireFaceForLogin    *bool    `json:"requireFaceForLogin"`
	ConfidenceThreshold    *float64 `json:"confidenceThreshold" validate:"omitempty,gte=0,lte=1"`
	MaxFailedAttempts      *int     `json:"maxFailedAttempts" validate:"omitempty,gte=1,lte=20"`
	LockoutDurationMinutes *int     `json:"lockoutDurationMinutes" validate:"omitempty,gte=1,lte=1440"`
	AllowFallbackPassword  *bool    `json:"allowFallbackPassword"`
	FallbackPassword       *string  `json:"fallbackPassword" validate:"omitempty,fallback_password"`
	AntiSpoofingEnabled    *bool    `json:"antiSpoofingEnabled"`
	MultiFaceDetection     *bool    `json:"multiFaceDetection"`
}

// AttemptPage is one page of the attempt ledger, newest first.
type AttemptPage struct {
	Attempts []entities.AuthAttempt `json:"attempts"`
	PageSize int64                  `json:"pageSize"`
	LastID   *string                `json:"lastId,omitempty"`
	HasMore  bool                   `json:"hasMore"`
}

// AttemptMetadata captures request-scoped diagnostics recorded on every
// attempt row.
type AttemptMetadata struct {
	DeviceInfo *string
	UserAgent  *string
	IPAddress  *string
}

// The engine's collaborators. Mongo-backed implementations live in
// adapters.go; tests substitute in-memory fakes.

type TemplateStore interface {
	Create(ctx context.Context, template entities.FaceTemplate) (*entities.FaceTemplate, error)
	ListActive(userID string) ([]entities.FaceTemplate, error)
	Deactivate(userID string, templateID string, now time.Time) (bool, error)
}

type AttemptLedger interface {
	// Append must be atomic; rows are immutable once written.
	Append(ctx context.Context, attempt entities.AuthAttempt) error
	// ListRecent returns biometric attempts most-recent-first.
	ListRecent(userID string, limit int64) ([]entities.AuthAttempt, error)
	ListPaginated(userID string, pageSize int64, lastID *string) ([]entities.AuthAttempt, error)
}

type SecurityEventLog interface {
	Append(ctx context.Context, event entities.SecurityEvent) error
}

type SettingsStore interface {
	Get(userID string) (*entities.AuthSettings, error)
	Create(ctx context.Context, settings entities.AuthSettings) (*entities.AuthSettings, error)
	Update(userID string, fields map[string]any) (bool, error)
}

type SessionStore interface {
	Create(ctx context.Context, session entities.AuthSession) (*entities.AuthSession, error)
	FindByID(sessionID string) (*entities.AuthSession, error)
	Revoke(sessionID string, reason string, now time.Time) (bool, error)
}

type TemplateCipher interface {
	Encrypt(embedding []float32) (string, error)
	Decrypt(payload string) ([]float32, error)
}

type SessionTokenSigner interface {
	Sign(sessionID string, userID string, deviceID *string, issuedAt time.Time, expiresAt time.Time) (*string, error)
}

type PasswordHasher interface {
	HashString(data string, salt []byte) ([]byte, error)
	VerifyHashData(hash string, data string) bool
}

// AlertDispatcher fans warning/critical security events out to the operator
// alerting channel. Dispatch is fire-and-forget.
type AlertDispatcher interface {
	DispatchSecurityAlert(event entities.SecurityEvent)
}
