package biometric_usecases

import (
	"context"
	"os"
	"strconv"
	"time"

	"facegate.io/entities"
	"facegate.io/infrastructure/logger"
)

// FaceAuthService is the policy engine around the external face detector.
// All collaborators are injected so the decision logic can be exercised with
// deterministic fakes.
type FaceAuthService struct {
	Templates TemplateStore
	Attempts  AttemptLedger
	Events    SecurityEventLog
	Settings  SettingsStore
	Sessions  SessionStore
	Cipher    TemplateCipher
	Signer    SessionTokenSigner
	Hasher    PasswordHasher
	Alerts    AlertDispatcher
	Now       func() time.Time

	// OpTimeout caps how long an enrollment or verification may run.
	// Zero means the request context alone bounds the operation.
	OpTimeout time.Duration
}

var Engine *FaceAuthService

// InitialiseFaceAuthEngine wires the engine against mongo, the template
// cipher, the jwt signer and the asynq alert queue. Called once at startup.
func InitialiseFaceAuthEngine() {
	Engine = &FaceAuthService{
		Templates: &mongoTemplateStore{},
		Attempts:  &mongoAttemptLedger{},
		Events:    &mongoSecurityEventLog{},
		Settings:  &mongoSettingsStore{},
		Sessions:  &mongoSessionStore{},
		Cipher:    &aeadTemplateCipher{},
		Signer:    &jwtSessionSigner{},
		Hasher:    &argonPasswordHasher{},
		Alerts:    &queueAlertDispatcher{},
		Now:       time.Now,
		OpTimeout: engineOpTimeout(),
	}
}

func engineOpTimeout() time.Duration {
	if raw := os.Getenv("ENGINE_OP_TIMEOUT"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
		logger.Warning("invalid ENGINE_OP_TIMEOUT, using default", logger.LoggerOptions{
			Key:  "value",
			Data: raw,
		})
	}
	return 10 * time.Second
}

// opContext bounds a biometric operation with the configured timeout.
func (s *FaceAuthService) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.OpTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.OpTimeout)
}

// recordAttempt appends exactly one ledger row for the attempt. A cancelled
// request never reaches this point, so a cancelled attempt is not a failed
// attempt.
func (s *FaceAuthService) recordAttempt(ctx context.Context, attempt entities.AuthAttempt) {
	if err := s.Attempts.Append(ctx, attempt); err != nil {
		logger.Error("failed to append auth attempt", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "userID",
			Data: attempt.UserID,
		})
	}
}

// recordEvent appends a security event and fans warning/critical severities
// out to the alert channel.
func (s *FaceAuthService) recordEvent(ctx context.Context, event entities.SecurityEvent) {
	if err := s.Events.Append(ctx, event); err != nil {
		logger.Error("failed to append security event", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "eventType",
			Data: event.EventType,
		})
		return
	}
	if event.Severity == entities.SeverityWarning || event.Severity == entities.SeverityCritical {
		s.Alerts.DispatchSecurityAlert(event)
	}
}
