package entities

import (
	"time"

	"facegate.io/application/utils"
)

type Point struct {
	X float64 `bson:"x" json:"x"`
	Y float64 `bson:"y" json:"y"`
}

// FaceTemplate is one enrolled face sample for a user. The embedding is
// stored AEAD-encrypted; it is never returned to clients. Templates are
// deactivated, never deleted, so the attempt audit chain stays intact.
type FaceTemplate struct {
	UserID              string     `bson:"userID" json:"userID"`
	EncryptedEmbedding  string     `bson:"encryptedEmbedding" json:"-"`
	TemplateVersion     int        `bson:"templateVersion" json:"templateVersion"`
	ConfidenceAtCapture float64    `bson:"confidenceAtCapture" json:"confidenceAtCapture"`
	Landmarks           []Point    `bson:"landmarks" json:"landmarks"`
	IsActive            bool       `bson:"isActive" json:"isActive"`
	CaptureDeviceInfo   *string    `bson:"captureDeviceInfo" json:"captureDeviceInfo"`
	DeactivatedAt       *time.Time `bson:"deactivatedAt" json:"deactivatedAt"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model FaceTemplate) ParseModel() any {
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
