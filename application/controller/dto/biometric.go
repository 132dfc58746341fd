package dto

import (
	biometric_usecases "facegate.io/application/usecases/biometric"
	"facegate.io/infrastructure/biometric/types"
)

// FaceCaptureDTO is the detection payload handed over by the capture adapter.
// The engine never sees raw frames, only the adapter's detection output.
type FaceCaptureDTO struct {
	UserID           string               `json:"user_id" validate:"required"`
	Faces            []types.DetectedFace `json:"faces" validate:"dive"`
	IsLive           bool                 `json:"is_live"`
	Quality          float64              `json:"quality" validate:"gte=0,lte=1"`
	ProcessingTimeMs int                  `json:"processing_time_ms" validate:"gte=0"`
}

func (d *FaceCaptureDTO) ToDetectionResult() types.DetectionResult {
	return types.DetectionResult{
		Faces:            d.Faces,
		IsLive:           d.IsLive,
		Quality:          d.Quality,
		ProcessingTimeMs: d.ProcessingTimeMs,
	}
}

type UpdateAuthSettingsDTO struct {
	UserID                 string   `json:"user_id" validate:"required"`
	IsEnabled              *bool    `json:"is_enabled"`
	RequireFaceForLogin    *bool    `json:"require_face_for_login"`
	ConfidenceThreshold    *float64 `json:"confidence_threshold" validate:"omitempty,gte=0,lte=1"`
	MaxFailedAttempts      *int     `json:"max_failed_attempts" validate:"omitempty,gte=1,lte=20"`
	LockoutDurationMinutes *int     `json:"lockout_duration_minutes" validate:"omitempty,gte=1,lte=1440"`
	AllowFallbackPassword  *bool    `json:"allow_fallback_password"`
	FallbackPassword       *string  `json:"fallback_password" validate:"omitempty,fallback_password"`
	AntiSpoofingEnabled    *bool    `json:"anti_spoofing_enabled"`
	MultiFaceDetection     *bool    `json:"multi_face_detection"`
}

func (d *UpdateAuthSettingsDTO) ToPayload() biometric_usecases.UpdateSettingsPayload {
	return biometric_usecases.UpdateSettingsPayload{
		IsEnabled:              d.IsEnabled,
		RequireFaceForLogin:    d.RequireFaceForLogin,
		ConfidenceThreshold:    d.ConfidenceThreshold,
		MaxFailedAttempts:      d.MaxFailedAttempts,
		LockoutDurationMinutes: d.LockoutDurationMinutes,
		AllowFallbackPassword:  d.AllowFallbackPassword,
		FallbackPassword:       d.FallbackPassword,
		AntiSpoofingEnabled:    d.AntiSpoofingEnabled,
		MultiFaceDetection:     d.MultiFaceDetection,
	}
}
