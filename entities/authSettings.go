package entities

import (
	"time"

	"facegate.io/application/utils"
)

// AuthSettings holds the per-user biometric policy. One document per user.
type AuthSettings struct {
	UserID                 string  `bson:"userID" json:"userID"`
	IsEnabled              bool    `bson:"isEnabled" json:"isEnabled"`
	RequireFaceForLogin    bool    `bson:"requireFaceForLogin" json:"requireFaceForLogin"`
	ConfidenceThreshold    float64 `bson:"confidenceThreshold" json:"confidenceThreshold"`
	MaxFailedAttempts      int     `bson:"maxFailedAttempts" json:"maxFailedAttempts"`
	LockoutDurationMinutes int     `bson:"lockoutDurationMinutes" json:"lockoutDurationMinutes"`
	AllowFallbackPassword  bool    `bson:"allowFallbackPassword" json:"allowFallbackPassword"`
	FallbackPasswordHash   *string `bson:"fallbackPasswordHash" json:"-"`
	AntiSpoofingEnabled    bool    `bson:"antiSpoofingEnabled" json:"antiSpoofingEnabled"`
	MultiFaceDetection     bool    `bson:"multiFaceDetection" json:"multiFaceDetection"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model AuthSettings) ParseModel() any {
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
