package biometric_usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"facegate.io/entities"
	"facegate.io/infrastructure/logger"
)

func TestMain(m *testing.M) {
	if logger.Logger == nil {
		logger.InitializeLogger()
	}
	os.Exit(m.Run())
}

// In-memory fakes for the engine's collaborators. Time is frozen and
// advanced manually so lockout windows are deterministic.

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) advance(d time.Duration) { c.current = c.current.Add(d) }

type fakeTemplateStore struct {
	templates []entities.FaceTemplate
	createErr error
}

func (ts *fakeTemplateStore) Create(ctx context.Context, template entities.FaceTemplate) (*entities.FaceTemplate, error) {
	if ts.createErr != nil {
		return nil, ts.createErr
	}
	template.ID = fmt.Sprintf("template_%d", len(ts.templates)+1)
	if template.CreatedAt.IsZero() {
		template.CreatedAt = time.Now()
	}
	ts.templates = append(ts.templates, template)
	return &template, nil
}

func (ts *fakeTemplateStore) ListActive(userID string) ([]entities.FaceTemplate, error) {
	active := []entities.FaceTemplate{}
	for _, template := range ts.templates {
		if template.UserID == userID && template.IsActive {
			active = append(active, template)
		}
	}
	return active, nil
}

func (ts *fakeTemplateStore) Deactivate(userID string, templateID string, now time.Time) (bool, error) {
	for i, template := range ts.templates {
		if template.ID == templateID && template.UserID == userID && template.IsActive {
			ts.templates[i].IsActive = false
			ts.templates[i].DeactivatedAt = &now
			return true, nil
		}
	}
	return false, nil
}

type fakeAttemptLedger struct {
	attempts []entities.AuthAttempt
	clock    *fakeClock
}

// Append prepends so the slice is always newest-first, matching the mongo
// sort even when the frozen clock hands out identical timestamps.
func (al *fakeAttemptLedger) Append(ctx context.Context, attempt entities.AuthAttempt) error {
	attempt.ID = fmt.Sprintf("attempt_%d", len(al.attempts)+1)
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = al.clock.now()
	}
	al.attempts = append([]entities.AuthAttempt{attempt}, al.attempts...)
	return nil
}

func (al *fakeAttemptLedger) ListRecent(userID string, limit int64) ([]entities.AuthAttempt, error) {
	matched := []entities.AuthAttempt{}
	for _, attempt := range al.attempts {
		if attempt.UserID == userID {
			matched = append(matched, attempt)
		}
	}
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (al *fakeAttemptLedger) ListPaginated(userID string, pageSize int64, lastID *string) ([]entities.AuthAttempt, error) {
	all, err := al.ListRecent(userID, int64(len(al.attempts)))
	if err != nil {
		return nil, err
	}
	start := 0
	if lastID != nil {
		for i, attempt := range all {
			if attempt.ID == *lastID {
				start = i + 1
				break
			}
		}
	}
	end := start + int(pageSize)
	if end > len(all) {
		end = len(all)
	}
	if start > len(all) {
		start = len(all)
	}
	return all[start:end], nil
}

type fakeSecurityEventLog struct {
	events []entities.SecurityEvent
}

func (el *fakeSecurityEventLog) Append(ctx context.Context, event entities.SecurityEvent) error {
	el.events = append(el.events, event)
	return nil
}

func (el *fakeSecurityEventLog) lastOfType(eventType entities.SecurityEventType) *entities.SecurityEvent {
	for i := len(el.events) - 1; i >= 0; i-- {
		if el.events[i].EventType == eventType {
			return &el.events[i]
		}
	}
	return nil
}

type fakeSettingsStore struct {
	settings map[string]*entities.AuthSettings
}

func (ss *fakeSettingsStore) Get(userID string) (*entities.AuthSettings, error) {
	return ss.settings[userID], nil
}

func (ss *fakeSettingsStore) Create(ctx context.Context, settings entities.AuthSettings) (*entities.AuthSettings, error) {
	settings.ID = "settings_" + settings.UserID
	ss.settings[settings.UserID] = &settings
	return &settings, nil
}

func (ss *fakeSettingsStore) Update(userID string, fields map[string]any) (bool, error) {
	existing := ss.settings[userID]
	if existing == nil {
		return false, nil
	}
	for key, value := range fields {
		switch key {
		case "isEnabled":
			existing.IsEnabled = value.(bool)
		case "requireFaceForLogin":
			existing.RequireFaceForLogin = value.(bool)
		case "confidenceThreshold":
			existing.ConfidenceThreshold = value.(float64)
		case "maxFailedAttempts":
			existing.MaxFailedAttempts = value.(int)
		case "lockoutDurationMinutes":
			existing.LockoutDurationMinutes = value.(int)
		case "allowFallbackPassword":
			existing.AllowFallbackPassword = value.(bool)
		case "fallbackPasswordHash":
			hash := value.(string)
			existing.FallbackPasswordHash = &hash
		case "antiSpoofingEnabled":
			existing.AntiSpoofingEnabled = value.(bool)
		case "multiFaceDetection":
			existing.MultiFaceDetection = value.(bool)
		}
	}
	return true, nil
}

type fakeSessionStore struct {
	sessions map[string]*entities.AuthSession
}

func (ss *fakeSessionStore) Create(ctx context.Context, session entities.AuthSession) (*entities.AuthSession, error) {
	stored := session
	ss.sessions[session.ID] = &stored
	return &stored, nil
}

func (ss *fakeSessionStore) FindByID(sessionID string) (*entities.AuthSession, error) {
	return ss.sessions[sessionID], nil
}

func (ss *fakeSessionStore) Revoke(sessionID string, reason string, now time.Time) (bool, error) {
	session := ss.sessions[sessionID]
	if session == nil || !session.IsActive {
		return false, nil
	}
	session.IsActive = false
	session.RevokedAt = &now
	session.RevokedReason = &reason
	return true, nil
}

// jsonCipher round-trips embeddings through json with no real encryption.
type jsonCipher struct{}

func (c *jsonCipher) Encrypt(embedding []float32) (string, error) {
	raw, err := json.Marshal(embedding)
	return string(raw), err
}

func (c *jsonCipher) Decrypt(payload string) ([]float32, error) {
	var embedding []float32
	err := json.Unmarshal([]byte(payload), &embedding)
	return embedding, err
}

type fakeSigner struct {
	signErr error
}

func (fs *fakeSigner) Sign(sessionID string, userID string, deviceID *string, issuedAt time.Time, expiresAt time.Time) (*string, error) {
	if fs.signErr != nil {
		return nil, fs.signErr
	}
	token := "token_" + sessionID
	return &token, nil
}

type fakeHasher struct{}

func (fh *fakeHasher) HashString(data string, salt []byte) ([]byte, error) {
	return []byte("hashed:" + data), nil
}

func (fh *fakeHasher) VerifyHashData(hash string, data string) bool {
	return hash == "hashed:"+data
}

type fakeAlertDispatcher struct {
	dispatched []entities.SecurityEvent
}

func (ad *fakeAlertDispatcher) DispatchSecurityAlert(event entities.SecurityEvent) {
	ad.dispatched = append(ad.dispatched, event)
}

type testEngine struct {
	service   *FaceAuthService
	clock     *fakeClock
	templates *fakeTemplateStore
	attempts  *fakeAttemptLedger
	events    *fakeSecurityEventLog
	settings  *fakeSettingsStore
	sessions  *fakeSessionStore
	alerts    *fakeAlertDispatcher
}

func newTestEngine() *testEngine {
	clock := &fakeClock{current: time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)}
	templates := &fakeTemplateStore{}
	attempts := &fakeAttemptLedger{clock: clock}
	events := &fakeSecurityEventLog{}
	settings := &fakeSettingsStore{settings: map[string]*entities.AuthSettings{}}
	sessions := &fakeSessionStore{sessions: map[string]*entities.AuthSession{}}
	alerts := &fakeAlertDispatcher{}
	return &testEngine{
		service: &FaceAuthService{
			Templates: templates,
			Attempts:  attempts,
			Events:    events,
			Settings:  settings,
			Sessions:  sessions,
			Cipher:    &jsonCipher{},
			Signer:    &fakeSigner{},
			Hasher:    &fakeHasher{},
			Alerts:    alerts,
			Now:       clock.now,
		},
		clock:     clock,
		templates: templates,
		attempts:  attempts,
		events:    events,
		settings:  settings,
		sessions:  sessions,
		alerts:    alerts,
	}
}

var errStoreDown = errors.New("store unavailable")
