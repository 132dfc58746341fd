package biometric_usecases

import (
	"context"
	"errors"
	"fmt"

	"facegate.io/application/utils"
	"facegate.io/entities"
)

var ErrTemplateNotFound = errors.New("no active template with that id")

// ListTemplates returns the user's active templates. Embeddings stay
// encrypted and are stripped from the json representation.
func (s *FaceAuthService) ListTemplates(ctx context.Context, userID string) ([]entities.FaceTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Templates.ListActive(userID)
}

// DeactivateTemplate retires a template without deleting it, keeping the
// attempt history it produced intact.
func (s *FaceAuthService) DeactivateTemplate(ctx context.Context, userID string, templateID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	deactivated, err := s.Templates.Deactivate(userID, templateID, s.Now())
	if err != nil {
		return err
	}
	if !deactivated {
		return ErrTemplateNotFound
	}

	s.recordEvent(ctx, entities.SecurityEvent{
		UserID:      userID,
		EventType:   entities.EventTemplateDeactivated,
		Severity:    entities.SeverityInfo,
		Description: utils.GetStringPointer(fmt.Sprintf("face template %s deactivated", templateID)),
		Metadata: map[string]any{
			"templateID": templateID,
		},
	})
	return nil
}
