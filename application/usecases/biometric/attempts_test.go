package biometric_usecases

import (
	"context"
	"testing"
	"time"

	"facegate.io/application/constants"
	"facegate.io/entities"
)

func TestListAttemptsPagination(t *testing.T) {
	engine := newTestEngine()
	for i := 0; i < 5; i++ {
		appendAttempt(t, engine, entities.VerificationAttempt, i%2 == 0, time.Duration(5-i)*time.Minute)
	}

	page, err := engine.service.ListAttempts(context.Background(), "user_1", 2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(page.Attempts))
	}
	if !page.HasMore {
		t.Error("expected more pages")
	}
	// newest first
	if !page.Attempts[0].CreatedAt.After(page.Attempts[1].CreatedAt) {
		t.Error("attempts should be ordered newest first")
	}

	second, err := engine.service.ListAttempts(context.Background(), "user_1", 2, page.LastID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second.Attempts) != 2 {
		t.Fatalf("expected 2 attempts on page two, got %d", len(second.Attempts))
	}
	if second.Attempts[0].ID == page.Attempts[0].ID {
		t.Error("pages should not overlap")
	}

	third, err := engine.service.ListAttempts(context.Background(), "user_1", 2, second.LastID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(third.Attempts) != 1 {
		t.Fatalf("expected 1 attempt on the last page, got %d", len(third.Attempts))
	}
}

func TestListAttemptsClampsPageSize(t *testing.T) {
	engine := newTestEngine()
	appendAttempt(t, engine, entities.VerificationAttempt, true, time.Minute)

	for _, size := range []int64{0, -1, constants.MAX_ATTEMPT_PAGE_SIZE + 1} {
		page, err := engine.service.ListAttempts(context.Background(), "user_1", size, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.PageSize != constants.MAX_ATTEMPT_PAGE_SIZE {
			t.Errorf("page size %d should clamp to %d, got %d", size, constants.MAX_ATTEMPT_PAGE_SIZE, page.PageSize)
		}
	}
}

func TestListAttemptsScopedToUser(t *testing.T) {
	engine := newTestEngine()
	appendAttempt(t, engine, entities.VerificationAttempt, true, time.Minute)
	if err := engine.attempts.Append(context.Background(), entities.AuthAttempt{
		UserID:      "user_2",
		AttemptType: entities.VerificationAttempt,
		Success:     false,
	}); err != nil {
		t.Fatalf("failed to seed attempt: %v", err)
	}

	page, err := engine.service.ListAttempts(context.Background(), "user_1", 10, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, attempt := range page.Attempts {
		if attempt.UserID != "user_1" {
			t.Errorf("attempt for %s leaked into user_1's page", attempt.UserID)
		}
	}
}
