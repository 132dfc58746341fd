package biometric_usecases

import (
	"context"
	"fmt"

	"facegate.io/application/constants"
	"facegate.io/application/utils"
	"facegate.io/entities"
	"facegate.io/infrastructure/biometric/types"
	"facegate.io/infrastructure/logger"
)

// EnrollFace stores a new face template from a capture-adapter detection.
// Preconditions: exactly one face, detector confidence at or above the
// enrollment floor, and liveness passed. Every call writes exactly one
// attempt row, whatever the outcome.
func (s *FaceAuthService) EnrollFace(ctx context.Context, userID string, detection types.DetectionResult, meta AttemptMetadata) (*EnrollmentResult, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	processingTime := int64(detection.ProcessingTimeMs)

	settings, err := s.resolveSettings(userID)
	if err != nil {
		return nil, err
	}
	if !settings.IsEnabled {
		return s.failEnrollment(ctx, userID, ReasonBiometricDisabled, nil, processingTime, meta), nil
	}

	if len(detection.Faces) == 0 {
		return s.failEnrollment(ctx, userID, ReasonNoFaceDetected, nil, processingTime, meta), nil
	}
	if len(detection.Faces) > 1 {
		return s.failEnrollment(ctx, userID, ReasonMultipleFacesDetected, nil, processingTime, meta), nil
	}

	face := detection.Faces[0]
	if face.Confidence < constants.ENROLLMENT_CONFIDENCE_FLOOR {
		return s.failEnrollment(ctx, userID, ReasonLowDetectionConfidence, &face.Confidence, processingTime, meta), nil
	}
	if !detection.IsLive {
		return s.failEnrollment(ctx, userID, ReasonLivenessFailed, &face.Confidence, processingTime, meta), nil
	}

	encrypted, err := s.Cipher.Encrypt(face.Embedding)
	if err != nil {
		logger.Error("failed to encrypt embedding during enrollment", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "userID",
			Data: userID,
		})
		return s.failEnrollment(ctx, userID, ReasonStoreUnavailable, nil, processingTime, meta), nil
	}

	landmarks := make([]entities.Point, len(face.Landmarks))
	for i, landmark := range face.Landmarks {
		landmarks[i] = entities.Point{X: landmark.X, Y: landmark.Y}
	}

	template, err := s.Templates.Create(ctx, entities.FaceTemplate{
		UserID:              userID,
		EncryptedEmbedding:  encrypted,
		TemplateVersion:     constants.CURRENT_TEMPLATE_VERSION,
		ConfidenceAtCapture: face.Confidence,
		Landmarks:           landmarks,
		IsActive:            true,
		CaptureDeviceInfo:   meta.DeviceInfo,
	})
	if err != nil {
		logger.Error("failed to persist face template", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "userID",
			Data: userID,
		})
		return s.failEnrollment(ctx, userID, ReasonStoreUnavailable, nil, processingTime, meta), nil
	}

	templateVersion := constants.CURRENT_TEMPLATE_VERSION
	s.recordAttempt(ctx, entities.AuthAttempt{
		UserID:           userID,
		AttemptType:      entities.EnrollmentAttempt,
		Success:          true,
		ConfidenceScore:  &face.Confidence,
		DeviceInfo:       meta.DeviceInfo,
		UserAgent:        meta.UserAgent,
		IPAddress:        meta.IPAddress,
		ProcessingTimeMs: &processingTime,
		TemplateVersion:  &templateVersion,
	})
	s.recordEvent(ctx, entities.SecurityEvent{
		UserID:      userID,
		EventType:   entities.EventEnrollmentCompleted,
		Severity:    entities.SeverityInfo,
		Description: utils.GetStringPointer(fmt.Sprintf("face template %s enrolled", template.ID)),
		Metadata: map[string]any{
			"templateID": template.ID,
			"confidence": face.Confidence,
		},
	})

	return &EnrollmentResult{
		Success:         true,
		TemplateID:      &template.ID,
		ConfidenceScore: &face.Confidence,
		QualityScore:    &detection.Quality,
	}, nil
}

func (s *FaceAuthService) failEnrollment(ctx context.Context, userID string, reason string, confidence *float64, processingTime int64, meta AttemptMetadata) *EnrollmentResult {
	s.recordAttempt(ctx, entities.AuthAttempt{
		UserID:           userID,
		AttemptType:      entities.EnrollmentAttempt,
		Success:          false,
		ConfidenceScore:  confidence,
		FailureReason:    &reason,
		DeviceInfo:       meta.DeviceInfo,
		UserAgent:        meta.UserAgent,
		IPAddress:        meta.IPAddress,
		ProcessingTimeMs: &processingTime,
	})
	return &EnrollmentResult{
		Success: false,
		Error:   &reason,
	}
}
