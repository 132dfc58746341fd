package biometric_usecases

import (
	"context"
	"errors"

	"facegate.io/application/constants"
	"facegate.io/application/utils"
	"facegate.io/entities"
)

var ErrFallbackNotAllowed = errors.New("fallback password authentication is not enabled for this account")

// defaultSettings is what a user operates under before they have ever saved a
// policy document. Returned unsaved so a read never creates state.
func defaultSettings(userID string) *entities.AuthSettings {
	return &entities.AuthSettings{
		UserID:                 userID,
		IsEnabled:              true,
		RequireFaceForLogin:    false,
		ConfidenceThreshold:    constants.DEFAULT_CONFIDENCE_THRESHOLD,
		MaxFailedAttempts:      constants.DEFAULT_MAX_FAILED_ATTEMPTS,
		LockoutDurationMinutes: constants.DEFAULT_LOCKOUT_DURATION_MINUTES,
		AllowFallbackPassword:  true,
		AntiSpoofingEnabled:    true,
		MultiFaceDetection:     true,
	}
}

// resolveSettings loads the user's stored policy, falling back to defaults
// when nothing has been saved yet.
func (s *FaceAuthService) resolveSettings(userID string) (*entities.AuthSettings, error) {
	settings, err := s.Settings.Get(userID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return defaultSettings(userID), nil
	}
	return settings, nil
}

// GetSettings returns the user's effective biometric policy.
func (s *FaceAuthService) GetSettings(ctx context.Context, userID string) (*entities.AuthSettings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.resolveSettings(userID)
}

// UpdateSettings applies a partial policy update, creating the settings
// document on first write. A fallback password is hashed before it is stored;
// the plaintext never touches the database.
func (s *FaceAuthService) UpdateSettings(ctx context.Context, userID string, payload UpdateSettingsPayload) (*entities.AuthSettings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	existing, err := s.Settings.Get(userID)
	if err != nil {
		return nil, err
	}

	var passwordHash *string
	if payload.FallbackPassword != nil {
		hash, err := s.Hasher.HashString(*payload.FallbackPassword, nil)
		if err != nil {
			return nil, err
		}
		passwordHash = utils.GetStringPointer(string(hash))
	}

	if existing == nil {
		settings := defaultSettings(userID)
		applySettingsPayload(settings, payload, passwordHash)
		return s.Settings.Create(ctx, *settings)
	}

	fields := map[string]any{}
	if payload.IsEnabled != nil {
		fields["isEnabled"] = *payload.IsEnabled
	}
	if payload.RequireFaceForLogin != nil {
		fields["requireFaceForLogin"] = *payload.RequireFaceForLogin
	}
	if payload.ConfidenceThreshold != nil {
		fields["confidenceThreshold"] = *payload.ConfidenceThreshold
	}
	if payload.MaxFailedAttempts != nil {
		fields["maxFailedAttempts"] = *payload.MaxFailedAttempts
	}
	if payload.LockoutDurationMinutes != nil {
		fields["lockoutDurationMinutes"] = *payload.LockoutDurationMinutes
	}
	if payload.AllowFallbackPassword != nil {
		fields["allowFallbackPassword"] = *payload.AllowFallbackPassword
	}
	if passwordHash != nil {
		fields["fallbackPasswordHash"] = *passwordHash
	}
	if payload.AntiSpoofingEnabled != nil {
		fields["antiSpoofingEnabled"] = *payload.AntiSpoofingEnabled
	}
	if payload.MultiFaceDetection != nil {
		fields["multiFaceDetection"] = *payload.MultiFaceDetection
	}
	if len(fields) > 0 {
		if _, err := s.Settings.Update(userID, fields); err != nil {
			return nil, err
		}
	}
	return s.Settings.Get(userID)
}

func applySettingsPayload(settings *entities.AuthSettings, payload UpdateSettingsPayload, passwordHash *string) {
	if payload.IsEnabled != nil {
		settings.IsEnabled = *payload.IsEnabled
	}
	if payload.RequireFaceForLogin != nil {
		settings.RequireFaceForLogin = *payload.RequireFaceForLogin
	}
	if payload.ConfidenceThreshold != nil {
		settings.ConfidenceThreshold = *payload.ConfidenceThreshold
	}
	if payload.MaxFailedAttempts != nil {
		settings.MaxFailedAttempts = *payload.MaxFailedAttempts
	}
	if payload.LockoutDurationMinutes != nil {
		settings.LockoutDurationMinutes = *payload.LockoutDurationMinutes
	}
	if payload.AllowFallbackPassword != nil {
		settings.AllowFallbackPassword = *payload.AllowFallbackPassword
	}
	if passwordHash != nil {
		settings.FallbackPasswordHash = passwordHash
	}
	if payload.AntiSpoofingEnabled != nil {
		settings.AntiSpoofingEnabled = *payload.AntiSpoofingEnabled
	}
	if payload.MultiFaceDetection != nil {
		settings.MultiFaceDetection = *payload.MultiFaceDetection
	}
}

// VerifyFallbackPassword is the non-biometric escape hatch. It shares the
// attempt ledger and lockout window with face verification, so password
// guessing cannot sidestep the biometric lockout.
func (s *FaceAuthService) VerifyFallbackPassword(ctx context.Context, userID string, password string, meta AttemptMetadata) (*VerificationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	settings, err := s.resolveSettings(userID)
	if err != nil {
		return nil, err
	}
	if settings.RequireFaceForLogin || !settings.AllowFallbackPassword || settings.FallbackPasswordHash == nil {
		return &VerificationResult{
			Success: false,
			Error:   utils.GetStringPointer(ReasonFallbackNotAllowed),
		}, ErrFallbackNotAllowed
	}

	lockout, err := s.EvaluateLockout(userID, settings)
	if err != nil {
		return nil, err
	}
	if lockout.IsLockedOut {
		reason := ReasonLockedOut
		s.recordAttempt(ctx, entities.AuthAttempt{
			UserID:        userID,
			AttemptType:   entities.LoginAttempt,
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

	if !s.Hasher.VerifyHashData(*settings.FallbackPasswordHash, password) {
		reason := ReasonInvalidPassword
		s.recordAttempt(ctx, entities.AuthAttempt{
			UserID:        userID,
			AttemptType:   entities.LoginAttempt,
			Success:       false,
			FailureReason: &reason,
			DeviceInfo:    meta.DeviceInfo,
			UserAgent:     meta.UserAgent,
			IPAddress:     meta.IPAddress,
		})
		lockout, err := s.EvaluateLockout(userID, settings)
		if err != nil {
			return nil, err
		}
		return &VerificationResult{
			Success:           false,
			Error:             &reason,
			IsLockedOut:       lockout.IsLockedOut,
			RemainingAttempts: &lockout.RemainingAttempts,
		}, nil
	}

	s.recordAttempt(ctx, entities.AuthAttempt{
		UserID:      userID,
		AttemptType: entities.LoginAttempt,
		Success:     true,
		DeviceInfo:  meta.DeviceInfo,
		UserAgent:   meta.UserAgent,
		IPAddress:   meta.IPAddress,
	})

	result := VerificationResult{Success: true}
	session, token, err := s.issueSession(ctx, userID, meta.DeviceInfo)
	if err != nil {
		return &result, nil
	}
	result.SessionToken = token
	result.SessionExpiresAt = &session.ExpiresAt
	return &result, nil
}
