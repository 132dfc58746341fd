package biometric_usecases

import (
	"context"

	"facegate.io/application/constants"
)

// ListAttempts pages through the user's attempt history, newest first. Pass
// the last id of the previous page to continue; pageSize is clamped.
func (s *FaceAuthService) ListAttempts(ctx context.Context, userID string, pageSize int64, lastID *string) (*AttemptPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if pageSize <= 0 || pageSize > constants.MAX_ATTEMPT_PAGE_SIZE {
		pageSize = constants.MAX_ATTEMPT_PAGE_SIZE
	}

	attempts, err := s.Attempts.ListPaginated(userID, pageSize, lastID)
	if err != nil {
		return nil, err
	}

	page := AttemptPage{
		Attempts: attempts,
		PageSize: pageSize,
	}
	if count := len(attempts); count > 0 {
		page.LastID = &attempts[count-1].ID
		page.HasMore = int64(count) == pageSize
	}
	return &page, nil
}
