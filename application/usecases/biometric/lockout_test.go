package biometric_usecases

import (
	"context"
	"testing"
	"time"

	"facegate.io/application/utils"
	"facegate.io/entities"
)

func testSettings(maxFailures int, lockoutMinutes int) *entities.AuthSettings {
	return &entities.AuthSettings{
		UserID:                 "user_1",
		IsEnabled:              true,
		ConfidenceThreshold:    0.85,
		MaxFailedAttempts:      maxFailures,
		LockoutDurationMinutes: lockoutMinutes,
	}
}

func appendAttempt(t *testing.T, engine *testEngine, attemptType entities.AttemptType, success bool, age time.Duration) {
	t.Helper()
	err := engine.attempts.Append(context.Background(), entities.AuthAttempt{
		UserID:        "user_1",
		AttemptType:   attemptType,
		Success:       success,
		FailureReason: utils.GetStringPointer(ReasonLowConfidenceMatch),
		CreatedAt:     engine.clock.now().Add(-age),
	})
	if err != nil {
		t.Fatalf("failed to seed attempt: %v", err)
	}
}

func TestEvaluateLockout(t *testing.T) {
	t.Run("empty ledger is not locked out", func(t *testing.T) {
		engine := newTestEngine()
		state, err := engine.service.EvaluateLockout("user_1", testSettings(5, 15))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state.IsLockedOut {
			t.Error("fresh user should not be locked out")
		}
		if state.RemainingAttempts != 5 {
			t.Errorf("remaining = %d, want 5", state.RemainingAttempts)
		}
	})

	t.Run("failures below the limit", func(t *testing.T) {
		engine := newTestEngine()
		appendAttempt(t, engine, entities.VerificationAttempt, false, 2*time.Minute)
		appendAttempt(t, engine, entities.VerificationAttempt, false, time.Minute)

		state, err := engine.service.EvaluateLockout("user_1", testSettings(5, 15))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state.IsLockedOut {
			t.Error("two failures should not lock with a limit of five")
		}
		if state.ConsecutiveFailures != 2 {
			t.Errorf("consecutive failures = %d, want 2", state.ConsecutiveFailures)
		}
		if state.RemainingAttempts != 3 {
			t.Errorf("remaining = %d, want 3", state.RemainingAttempts)
		}
	})

	t.Run("failures at the limit lock the account", func(t *testing.T) {
		engine := newTestEngine()
		for i := 0; i < 3; i++ {
			appendAttempt(t, engine, entities.VerificationAttempt, false, time.Duration(3-i)*time.Minute)
		}

		state, err := engine.service.EvaluateLockout("user_1", testSettings(3, 15))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !state.IsLockedOut {
			t.Fatal("expected lockout at the limit")
		}
		if state.LockedUntil == nil {
			t.Fatal("expected a locked-until timestamp")
		}
		wantUntil := engine.clock.now().Add(-time.Minute).Add(15 * time.Minute)
		if !state.LockedUntil.Equal(wantUntil) {
			t.Errorf("locked until %v, want %v", state.LockedUntil, wantUntil)
		}
	})

	t.Run("a success interrupts the streak", func(t *testing.T) {
		engine := newTestEngine()
		appendAttempt(t, engine, entities.VerificationAttempt, false, 4*time.Minute)
		appendAttempt(t, engine, entities.VerificationAttempt, false, 3*time.Minute)
		appendAttempt(t, engine, entities.VerificationAttempt, true, 2*time.Minute)
		appendAttempt(t, engine, entities.VerificationAttempt, false, time.Minute)

		state, err := engine.service.EvaluateLockout("user_1", testSettings(3, 15))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state.IsLockedOut {
			t.Error("a success between failures must reset the count")
		}
		if state.ConsecutiveFailures != 1 {
			t.Errorf("consecutive failures = %d, want 1", state.ConsecutiveFailures)
		}
	})

	t.Run("failures outside the window expire", func(t *testing.T) {
		engine := newTestEngine()
		for i := 0; i < 3; i++ {
			appendAttempt(t, engine, entities.VerificationAttempt, false, time.Duration(20+i)*time.Minute)
		}

		state, err := engine.service.EvaluateLockout("user_1", testSettings(3, 15))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state.IsLockedOut {
			t.Error("stale failures must not lock the account")
		}
		if state.ConsecutiveFailures != 0 {
			t.Errorf("consecutive failures = %d, want 0", state.ConsecutiveFailures)
		}
	})

	t.Run("enrollment rejections are ignored", func(t *testing.T) {
		engine := newTestEngine()
		for i := 0; i < 5; i++ {
			appendAttempt(t, engine, entities.EnrollmentAttempt, false, time.Duration(i+1)*time.Minute)
		}

		state, err := engine.service.EvaluateLockout("user_1", testSettings(3, 15))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state.IsLockedOut || state.ConsecutiveFailures != 0 {
			t.Errorf("enrollment failures must not count, got %+v", state)
		}
	})

	t.Run("locked_out rows never roll the window forward", func(t *testing.T) {
		engine := newTestEngine()
		appendAttempt(t, engine, entities.VerificationAttempt, false, 3*time.Minute)
		appendAttempt(t, engine, entities.VerificationAttempt, false, 2*time.Minute)
		// a rejected call ledgered during the lockout sits on top of
		// the real failures
		err := engine.attempts.Append(context.Background(), entities.AuthAttempt{
			UserID:        "user_1",
			AttemptType:   entities.VerificationAttempt,
			Success:       false,
			FailureReason: utils.GetStringPointer(ReasonLockedOut),
			CreatedAt:     engine.clock.now(),
		})
		if err != nil {
			t.Fatalf("failed to seed attempt: %v", err)
		}

		state, err := engine.service.EvaluateLockout("user_1", testSettings(2, 15))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !state.IsLockedOut {
			t.Fatal("the real failures should still lock the account")
		}
		if state.ConsecutiveFailures != 2 {
			t.Errorf("consecutive failures = %d, want 2 (locked_out row must not count)", state.ConsecutiveFailures)
		}
		// the window is anchored on the newest real failure
		wantUntil := engine.clock.now().Add(-2 * time.Minute).Add(15 * time.Minute)
		if state.LockedUntil == nil || !state.LockedUntil.Equal(wantUntil) {
			t.Errorf("locked until %v, want %v", state.LockedUntil, wantUntil)
		}
	})

	t.Run("login failures share the window with verification", func(t *testing.T) {
		engine := newTestEngine()
		appendAttempt(t, engine, entities.VerificationAttempt, false, 3*time.Minute)
		appendAttempt(t, engine, entities.LoginAttempt, false, 2*time.Minute)
		appendAttempt(t, engine, entities.VerificationAttempt, false, time.Minute)

		state, err := engine.service.EvaluateLockout("user_1", testSettings(3, 15))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !state.IsLockedOut {
			t.Error("mixed verification and login failures should lock together")
		}
	})
}
