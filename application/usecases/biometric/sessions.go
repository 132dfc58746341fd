package biometric_usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"facegate.io/application/constants"
	"facegate.io/application/utils"
	"facegate.io/entities"
	"facegate.io/infrastructure/database/repository/cache"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired or been revoked")
)

// issueSession mints a session document and a signed token bound to it. The
// token carries the session id so revocation can be checked without a db
// round trip on the hot path.
func (s *FaceAuthService) issueSession(ctx context.Context, userID string, deviceFingerprint *string) (*entities.AuthSession, *string, error) {
	now := s.Now()
	expiresAt := now.Add(time.Duration(constants.SESSION_TTL_MINUTES) * time.Minute)
	sessionID := utils.GenerateUULDString()

	token, err := s.Signer.Sign(sessionID, userID, deviceFingerprint, now, expiresAt)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.Sessions.Create(ctx, entities.AuthSession{
		ID:                sessionID,
		UserID:            userID,
		SessionToken:      *token,
		AuthenticatedAt:   now,
		ExpiresAt:         expiresAt,
		DeviceFingerprint: deviceFingerprint,
		IsActive:          true,
	})
	if err != nil {
		return nil, nil, err
	}
	return session, token, nil
}

// RevokeSession deactivates a session ahead of its natural expiry and drops a
// tombstone in redis so in-flight tokens die immediately.
func (s *FaceAuthService) RevokeSession(ctx context.Context, userID string, sessionID string, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		return err
	}
	if session == nil || session.UserID != userID {
		return ErrSessionNotFound
	}

	now := s.Now()
	revoked, err := s.Sessions.Revoke(sessionID, reason, now)
	if err != nil {
		return err
	}
	if !revoked {
		// already inactive; nothing to do
		return nil
	}

	ttl := session.ExpiresAt.Sub(now)
	if ttl > 0 {
		cache.Cache.CreateEntry(revokedSessionKey(sessionID), reason, ttl)
	}

	s.recordEvent(ctx, entities.SecurityEvent{
		UserID:      userID,
		EventType:   entities.EventSessionRevoked,
		Severity:    entities.SeverityInfo,
		Description: utils.GetStringPointer(fmt.Sprintf("session %s revoked", sessionID)),
		Metadata: map[string]any{
			"sessionID": sessionID,
			"reason":    reason,
		},
	})
	return nil
}

// ValidateSession checks that a decoded token still maps to a live session.
// The redis tombstone short-circuits lookups for freshly revoked sessions.
func (s *FaceAuthService) ValidateSession(sessionID string) (*entities.AuthSession, error) {
	if revoked := cache.Cache.FindOne(revokedSessionKey(sessionID)); revoked != nil {
		return nil, ErrSessionExpired
	}

	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if !session.Valid(s.Now()) {
		return nil, ErrSessionExpired
	}
	return session, nil
}

func revokedSessionKey(sessionID string) string {
	return fmt.Sprintf("revoked_session:%s", sessionID)
}
