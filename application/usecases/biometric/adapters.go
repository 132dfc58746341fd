package biometric_usecases

import (
	"context"
	"encoding/json"
	"time"

	"facegate.io/application/repository"
	"facegate.io/entities"
	"facegate.io/infrastructure/auth"
	"facegate.io/infrastructure/cryptography"
	messagequeue "facegate.io/infrastructure/message_queue"
	queue_tasks "facegate.io/infrastructure/message_queue/tasks"
	mq_types "facegate.io/infrastructure/message_queue/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo-backed implementations of the engine's collaborators. They are thin
// shims over the generic repositories; no policy lives here.

type mongoTemplateStore struct{}

func (ts *mongoTemplateStore) Create(ctx context.Context, template entities.FaceTemplate) (*entities.FaceTemplate, error) {
	return repository.FaceTemplateRepo().CreateOne(ctx, template)
}

func (ts *mongoTemplateStore) ListActive(userID string) ([]entities.FaceTemplate, error) {
	templates, err := repository.FaceTemplateRepo().FindMany(map[string]any{
		"userID":   userID,
		"isActive": true,
	}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	return *templates, nil
}

func (ts *mongoTemplateStore) Deactivate(userID string, templateID string, now time.Time) (bool, error) {
	return repository.FaceTemplateRepo().UpdatePartialByFilter(map[string]any{
		"_id":      templateID,
		"userID":   userID,
		"isActive": true,
	}, map[string]any{
		"isActive":      false,
		"deactivatedAt": now,
	})
}

type mongoAttemptLedger struct{}

func (al *mongoAttemptLedger) Append(ctx context.Context, attempt entities.AuthAttempt) error {
	_, err := repository.AuthAttemptRepo().CreateOne(ctx, attempt)
	return err
}

func (al *mongoAttemptLedger) ListRecent(userID string, limit int64) ([]entities.AuthAttempt, error) {
	attempts, err := repository.AuthAttemptRepo().FindMany(map[string]any{
		"userID": userID,
	}, options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	return *attempts, nil
}

func (al *mongoAttemptLedger) ListPaginated(userID string, pageSize int64, lastID *string) ([]entities.AuthAttempt, error) {
	attempts, err := repository.AuthAttemptRepo().FindManyPaginated(map[string]any{
		"userID": userID,
	}, pageSize, lastID, -1, options.Find().SetSort(bson.M{"_id": -1}))
	if err != nil {
		return nil, err
	}
	return *attempts, nil
}

type mongoSecurityEventLog struct{}

func (el *mongoSecurityEventLog) Append(ctx context.Context, event entities.SecurityEvent) error {
	_, err := repository.SecurityEventRepo().CreateOne(ctx, event)
	return err
}

type mongoSettingsStore struct{}

func (ss *mongoSettingsStore) Get(userID string) (*entities.AuthSettings, error) {
	return repository.AuthSettingsRepo().FindOneByFilter(map[string]any{"userID": userID})
}

func (ss *mongoSettingsStore) Create(ctx context.Context, settings entities.AuthSettings) (*entities.AuthSettings, error) {
	return repository.AuthSettingsRepo().CreateOne(ctx, settings)
}

func (ss *mongoSettingsStore) Update(userID string, fields map[string]any) (bool, error) {
	return repository.AuthSettingsRepo().UpdatePartialByFilter(map[string]any{"userID": userID}, fields)
}

type mongoSessionStore struct{}

func (ss *mongoSessionStore) Create(ctx context.Context, session entities.AuthSession) (*entities.AuthSession, error) {
	return repository.AuthSessionRepo().CreateOne(ctx, session)
}

func (ss *mongoSessionStore) FindByID(sessionID string) (*entities.AuthSession, error) {
	return repository.AuthSessionRepo().FindByID(sessionID)
}

func (ss *mongoSessionStore) Revoke(sessionID string, reason string, now time.Time) (bool, error) {
	return repository.AuthSessionRepo().UpdatePartialByFilter(map[string]any{
		"_id":      sessionID,
		"isActive": true,
	}, map[string]any{
		"isActive":      false,
		"revokedAt":     now,
		"revokedReason": reason,
	})
}

// aeadTemplateCipher serialises the embedding to json and seals it with the
// template key. The key never leaves the cryptography package.
type aeadTemplateCipher struct{}

func (tc *aeadTemplateCipher) Encrypt(embedding []float32) (string, error) {
	raw, err := json.Marshal(embedding)
	if err != nil {
		return "", err
	}
	sealed, err := cryptography.EncryptData(raw, nil)
	if err != nil {
		return "", err
	}
	return *sealed, nil
}

func (tc *aeadTemplateCipher) Decrypt(payload string) ([]float32, error) {
	raw, err := cryptography.DecryptData(payload, nil)
	if err != nil {
		return nil, err
	}
	var embedding []float32
	if err := json.Unmarshal(raw, &embedding); err != nil {
		return nil, err
	}
	return embedding, nil
}

type jwtSessionSigner struct{}

func (js *jwtSessionSigner) Sign(sessionID string, userID string, deviceID *string, issuedAt time.Time, expiresAt time.Time) (*string, error) {
	return auth.GenerateSessionToken(auth.SessionClaims{
		SessionID: sessionID,
		UserID:    userID,
		DeviceID:  deviceID,
		IssuedAt:  issuedAt.Unix(),
		ExpiresAt: expiresAt.Unix(),
	})
}

type argonPasswordHasher struct{}

func (ph *argonPasswordHasher) HashString(data string, salt []byte) ([]byte, error) {
	return cryptography.CryptoHahser.HashString(data, salt)
}

func (ph *argonPasswordHasher) VerifyHashData(hash string, data string) bool {
	return cryptography.CryptoHahser.VerifyHashData(hash, data)
}

// queueAlertDispatcher pushes warning/critical events onto the task queue so
// the request path never blocks on email delivery.
type queueAlertDispatcher struct{}

func (ad *queueAlertDispatcher) DispatchSecurityAlert(event entities.SecurityEvent) {
	occurredAt := event.CreatedAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	payload, err := json.Marshal(queue_tasks.SecurityAlertPayload{
		UserID:      event.UserID,
		EventType:   string(event.EventType),
		Severity:    string(event.Severity),
		Description: event.Description,
		Metadata:    event.Metadata,
		OccurredAt:  occurredAt,
	})
	if err != nil {
		return
	}
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:     queue_tasks.HandleSecurityAlertTaskName,
		Payload:  payload,
		Priority: mq_types.High,
		TimeOut:  30,
	})
}
