package auth

type SessionClaims struct {
	SessionID string
	UserID    string
	DeviceID  *string
	IssuedAt  int64
	ExpiresAt int64
}
