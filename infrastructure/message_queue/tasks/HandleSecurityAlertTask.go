package queue_tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"facegate.io/application/constants"
	"facegate.io/infrastructure/logger"
	mq_types "facegate.io/infrastructure/message_queue/types"
	"facegate.io/infrastructure/messaging/emails"
	"github.com/hibiken/asynq"
)

var HandleSecurityAlertTaskName mq_types.Queues = "security_alert"

type SecurityAlertPayload struct {
	UserID      string
	EventType   string
	Severity    string
	Description *string
	Metadata    map[string]any
	OccurredAt  time.Time
}

// HandleSecurityAlertTask mails warning/critical security events to the
// operator inbox. Delivery failures are retried by the queue.
func HandleSecurityAlertTask(ctx context.Context, t *asynq.Task) error {
	var payload SecurityAlertPayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling security alert queue payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return asynq.SkipRetry
	}

	description := ""
	if payload.Description != nil {
		description = *payload.Description
	}
	metadata, _ := json.MarshalIndent(payload.Metadata, "", "  ")

	subject := fmt.Sprintf("[%s] security event: %s", payload.Severity, payload.EventType)
	success := emails.EmailService.SendEmail(constants.SECURITY_ALERT_EMAIL, subject, "security_alert", map[string]any{
		"UserID":      payload.UserID,
		"EventType":   payload.EventType,
		"Severity":    payload.Severity,
		"Description": description,
		"Metadata":    string(metadata),
		"OccurredAt":  payload.OccurredAt.Format(time.RFC3339),
	})
	if !success {
		logger.Error("failed to deliver security alert email", logger.LoggerOptions{
			Key:  "eventType",
			Data: payload.EventType,
		}, logger.LoggerOptions{
			Key:  "userID",
			Data: payload.UserID,
		})
		return fmt.Errorf("security alert email delivery failed for event %s", payload.EventType)
	}
	return nil
}
