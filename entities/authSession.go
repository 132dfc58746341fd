package entities

import (
	"time"

	"facegate.io/application/utils"
)

// AuthSession is minted on a successful verification. A session is valid iff
// IsActive and the expiry is in the future; revocation is independent of
// natural expiry.
type AuthSession struct {
	UserID            string     `bson:"userID" json:"userID"`
	SessionToken      string     `bson:"sessionToken" json:"sessionToken"`
	AuthenticatedAt   time.Time  `bson:"authenticatedAt" json:"authenticatedAt"`
	ExpiresAt         time.Time  `bson:"expiresAt" json:"expiresAt"`
	DeviceFingerprint *string    `bson:"deviceFingerprint" json:"deviceFingerprint"`
	IsActive          bool       `bson:"isActive" json:"isActive"`
	RevokedAt         *time.Time `bson:"revokedAt" json:"revokedAt"`
	RevokedReason     *string    `bson:"revokedReason" json:"revokedReason"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model AuthSession) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateUULDString()
		}
	}
	model.UpdatedAt = now
	return &model
}

func (model *AuthSession) Valid(now time.Time) bool {
	return model.IsActive && now.Before(model.ExpiresAt)
}
