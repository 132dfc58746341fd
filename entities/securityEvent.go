package entities

import (
	"time"

	"facegate.io/application/utils"
)

type EventSeverity string

const (
	SeverityInfo     EventSeverity = "info"
	SeverityWarning  EventSeverity = "warning"
	SeverityError    EventSeverity = "error"
	SeverityCritical EventSeverity = "critical"
)

type SecurityEventType string

const (
	EventEnrollmentCompleted   SecurityEventType = "enrollment_completed"
	EventVerificationSucceeded SecurityEventType = "verification_succeeded"
	EventSpoofingSuspected     SecurityEventType = "spoofing_suspected"
	EventLockoutTriggered      SecurityEventType = "lockout_triggered"
	EventTemplateDeactivated   SecurityEventType = "template_deactivated"
	EventDimensionMismatch     SecurityEventType = "embedding_dimension_mismatch"
	EventSessionRevoked        SecurityEventType = "session_revoked"
)

// SecurityEvent is an append-only operator-facing audit record, distinct from
// routine attempts. Severity lets monitoring consumers separate signal
// (warning/critical) from noise (info).
type SecurityEvent struct {
	UserID      string            `bson:"userID" json:"userID"`
	EventType   SecurityEventType `bson:"eventType" json:"eventType"`
	Severity    EventSeverity     `bson:"severity" json:"severity"`
	Description *string           `bson:"description" json:"description"`
	Metadata    map[string]any    `bson:"metadata" json:"metadata"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model SecurityEvent) ParseModel() any {
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
