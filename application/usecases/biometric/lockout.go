package biometric_usecases

import (
	"time"

	"facegate.io/entities"
)

// how far back the ledger scan reaches when counting consecutive failures
const lockoutScanLimit = 50

// EvaluateLockout derives the user's lockout state from a most-recent-first
// read of the attempt ledger. A user is locked out when consecutive failures
// (stopping at the first success) have reached MaxFailedAttempts and the
// newest failure is younger than the lockout duration. Any success resets
// the counter.
func (s *FaceAuthService) EvaluateLockout(userID string, settings *entities.AuthSettings) (*LockoutState, error) {
	attempts, err := s.Attempts.ListRecent(userID, lockoutScanLimit)
	if err != nil {
		return nil, err
	}

	lockoutDuration := time.Duration(settings.LockoutDurationMinutes) * time.Minute
	now := s.Now()

	consecutiveFailures := 0
	var newestFailureAt time.Time
	for _, attempt := range attempts {
		// enrollment rejections do not gate verification
		if attempt.AttemptType == entities.EnrollmentAttempt {
			continue
		}
		// policy rejections are ledgered but are not authentication
		// failures; counting a locked_out row would roll the window
		// forward on every retry
		if isPolicyRejection(attempt) {
			continue
		}
		if attempt.Success {
			break
		}
		// failures older than the window no longer count
		if now.Sub(attempt.CreatedAt) >= lockoutDuration {
			break
		}
		if newestFailureAt.IsZero() {
			newestFailureAt = attempt.CreatedAt
		}
		consecutiveFailures++
		if consecutiveFailures >= settings.MaxFailedAttempts {
			break
		}
	}

	state := LockoutState{
		ConsecutiveFailures: consecutiveFailures,
		RemainingAttempts:   settings.MaxFailedAttempts - consecutiveFailures,
	}
	if state.RemainingAttempts < 0 {
		state.RemainingAttempts = 0
	}

	if consecutiveFailures >= settings.MaxFailedAttempts && now.Sub(newestFailureAt) < lockoutDuration {
		lockedUntil := newestFailureAt.Add(lockoutDuration)
		state.IsLockedOut = true
		state.LockedUntil = &lockedUntil
	}

	return &state, nil
}

func isPolicyRejection(attempt entities.AuthAttempt) bool {
	if attempt.FailureReason == nil {
		return false
	}
	return *attempt.FailureReason == ReasonLockedOut || *attempt.FailureReason == ReasonBiometricDisabled
}
