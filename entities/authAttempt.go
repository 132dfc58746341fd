package entities

import (
	"time"

	"facegate.io/application/utils"
)

type AttemptType string

const (
	EnrollmentAttempt   AttemptType = "enrollment"
	VerificationAttempt AttemptType = "verification"
	LoginAttempt        AttemptType = "login"
)

// AuthAttempt is an append-only record of a single enrollment, verification
// or login attempt. Rows are never mutated after creation; the lockout state
// machine is derived from them.
type AuthAttempt struct {
	UserID           string      `bson:"userID" json:"userID"`
	AttemptType      AttemptType `bson:"attemptType" json:"attemptType"`
	Success          bool        `bson:"success" json:"success"`
	ConfidenceScore  *float64    `bson:"confidenceScore" json:"confidenceScore"`
	FailureReason    *string     `bson:"failureReason" json:"failureReason"`
	DeviceInfo       *string     `bson:"deviceInfo" json:"deviceInfo"`
	UserAgent        *string     `bson:"userAgent" json:"userAgent"`
	IPAddress        *string     `bson:"ipAddress" json:"ipAddress"`
	ProcessingTimeMs *int64      `bson:"processingTimeMs" json:"processingTimeMs"`
	TemplateVersion  *int        `bson:"templateVersion" json:"templateVersion"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model AuthAttempt) ParseModel() any {
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
