package biometric_usecases

import (
	"context"
	"errors"
	"fmt"

	"facegate.io/application/utils"
	"facegate.io/entities"
	"facegate.io/infrastructure/biometric"
	"facegate.io/infrastructure/biometric/types"
	"facegate.io/infrastructure/logger"
)

// VerifyFace compares the live capture against the user's active templates.
// Order of checks: lockout first (the matcher must not run for a locked-out
// user), then enrollment presence, then capture framing, then similarity
// against the per-user threshold. A success mints a session.
func (s *FaceAuthService) VerifyFace(ctx context.Context, userID string, detection types.DetectionResult, meta AttemptMetadata) (*VerificationResult, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	settings, err := s.resolveSettings(userID)
	if err != nil {
		return nil, err
	}
	if !settings.IsEnabled {
		return s.failVerification(ctx, userID, settings, ReasonBiometricDisabled, 0, detection, meta)
	}

	lockout, err := s.EvaluateLockout(userID, settings)
	if err != nil {
		return nil, err
	}
	if lockout.IsLockedOut {
		// the rejected call is still ledgered; the row carries locked_out
		// so EvaluateLockout does not count it as a fresh failure
		reason := ReasonLockedOut
		s.recordAttempt(ctx, entities.AuthAttempt{
			UserID:        userID,
			AttemptType:   entities.VerificationAttempt,
			Success:       false,
			FailureReason: &reason,
			DeviceInfo:    meta.DeviceInfo,
			UserAgent:     meta.UserAgent,
			IPAddress:     meta.IPAddress,
		})
		return &VerificationResult{
			Success:           false,
			Error:             &reason,
			IsLockedOut:       true,
			RemainingAttempts: utils.GetIntPointer(0),
		}, nil
	}

	templates, err := s.Templates.ListActive(userID)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return s.failVerification(ctx, userID, settings, ReasonNoTemplateEnrolled, 0, detection, meta)
	}

	processingTime := int64(detection.ProcessingTimeMs)

	if len(detection.Faces) == 0 {
		return s.failVerification(ctx, userID, settings, ReasonNoFaceDetected, 0, detection, meta)
	}
	if len(detection.Faces) > 1 && settings.MultiFaceDetection {
		return s.failVerification(ctx, userID, settings, ReasonMultipleFacesDetected, 0, detection, meta)
	}
	if settings.AntiSpoofingEnabled && !detection.IsLive {
		s.recordEvent(ctx, entities.SecurityEvent{
			UserID:      userID,
			EventType:   entities.EventSpoofingSuspected,
			Severity:    entities.SeverityWarning,
			Description: utils.GetStringPointer("liveness check failed during verification"),
			Metadata: map[string]any{
				"quality": detection.Quality,
			},
		})
		return s.failVerification(ctx, userID, settings, ReasonLivenessFailed, 0, detection, meta)
	}

	face := bestFace(detection.Faces)

	stored := make([]biometric.TemplateEmbedding, 0, len(templates))
	for _, template := range templates {
		embedding, err := s.Cipher.Decrypt(template.EncryptedEmbedding)
		if err != nil {
			logger.Error("failed to decrypt stored template", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			}, logger.LoggerOptions{
				Key:  "templateID",
				Data: template.ID,
			})
			return nil, err
		}
		stored = append(stored, biometric.TemplateEmbedding{
			TemplateID: template.ID,
			Embedding:  embedding,
			CreatedAt:  template.CreatedAt,
		})
	}

	match, err := biometric.MatchTemplates(face.Embedding, stored)
	if err != nil {
		if errors.Is(err, biometric.ErrEmbeddingDimensionMismatch) {
			s.recordEvent(ctx, entities.SecurityEvent{
				UserID:      userID,
				EventType:   entities.EventDimensionMismatch,
				Severity:    entities.SeverityCritical,
				Description: utils.GetStringPointer("live embedding dimension does not match stored templates"),
				Metadata: map[string]any{
					"liveDimension": len(face.Embedding),
				},
			})
			return s.failVerification(ctx, userID, settings, ReasonDimensionMismatch, 0, detection, meta)
		}
		return nil, err
	}

	if match.Similarity < settings.ConfidenceThreshold {
		return s.failVerification(ctx, userID, settings, ReasonLowConfidenceMatch, match.Similarity, detection, meta)
	}

	s.recordAttempt(ctx, entities.AuthAttempt{
		UserID:           userID,
		AttemptType:      entities.VerificationAttempt,
		Success:          true,
		ConfidenceScore:  &match.Similarity,
		DeviceInfo:       meta.DeviceInfo,
		UserAgent:        meta.UserAgent,
		IPAddress:        meta.IPAddress,
		ProcessingTimeMs: &processingTime,
	})
	s.recordEvent(ctx, entities.SecurityEvent{
		UserID:      userID,
		EventType:   entities.EventVerificationSucceeded,
		Severity:    entities.SeverityInfo,
		Description: utils.GetStringPointer(fmt.Sprintf("face verified against template %s", match.TemplateID)),
		Metadata: map[string]any{
			"templateID": match.TemplateID,
			"similarity": match.Similarity,
		},
	})

	result := VerificationResult{
		Success:         true,
		ConfidenceScore: match.Similarity,
		MatchTemplateID: &match.TemplateID,
	}

	session, token, err := s.issueSession(ctx, userID, meta.DeviceInfo)
	if err != nil {
		// verification stands even when the session mint fails; the caller
		// can retry the session without redoing biometrics
		logger.Error("failed to issue session after verification", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "userID",
			Data: userID,
		})
		return &result, nil
	}
	result.SessionToken = token
	result.SessionExpiresAt = &session.ExpiresAt

	return &result, nil
}

// failVerification writes the attempt row, re-derives the lockout state and
// emits lockout_triggered when this failure crossed the limit.
func (s *FaceAuthService) failVerification(ctx context.Context, userID string, settings *entities.AuthSettings, reason string, confidence float64, detection types.DetectionResult, meta AttemptMetadata) (*VerificationResult, error) {
	processingTime := int64(detection.ProcessingTimeMs)
	var score *float64
	if reason == ReasonLowConfidenceMatch {
		score = &confidence
	}
	s.recordAttempt(ctx, entities.AuthAttempt{
		UserID:           userID,
		AttemptType:      entities.VerificationAttempt,
		Success:          false,
		ConfidenceScore:  score,
		FailureReason:    &reason,
		DeviceInfo:       meta.DeviceInfo,
		UserAgent:        meta.UserAgent,
		IPAddress:        meta.IPAddress,
		ProcessingTimeMs: &processingTime,
	})

	lockout, err := s.EvaluateLockout(userID, settings)
	if err != nil {
		return nil, err
	}
	if lockout.IsLockedOut {
		s.recordEvent(ctx, entities.SecurityEvent{
			UserID:      userID,
			EventType:   entities.EventLockoutTriggered,
			Severity:    entities.SeverityWarning,
			Description: utils.GetStringPointer(fmt.Sprintf("account locked after %d consecutive failures", lockout.ConsecutiveFailures)),
			Metadata: map[string]any{
				"consecutiveFailures": lockout.ConsecutiveFailures,
				"lockedUntil":         lockout.LockedUntil,
				"lastFailureReason":   reason,
			},
		})
	}

	return &VerificationResult{
		Success:           false,
		ConfidenceScore:   confidence,
		Error:             &reason,
		IsLockedOut:       lockout.IsLockedOut,
		RemainingAttempts: &lockout.RemainingAttempts,
	}, nil
}

// bestFace picks the highest-confidence detection. Only reached with multiple
// faces when strict multi-face rejection is disabled.
func bestFace(faces []types.DetectedFace) types.DetectedFace {
	best := faces[0]
	for _, face := range faces[1:] {
		if face.Confidence > best.Confidence {
			best = face
		}
	}
	return best
}
