package service

import (
	"context"

	"github.com/portfolio-api/internal/content"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/validation"
	"github.com/rs/zerolog"
)

// ContactSuccessMessage is returned to the visitor once a message is stored.
const ContactSuccessMessage = "Message envoyé avec succès"

// contactService is the concrete implementation of ContactService
type contactService struct {
	messages *content.Manager[models.ContactMessage, content.NoForm]
	log      zerolog.Logger
}

func newContactService(messages *content.Manager[models.ContactMessage, content.NoForm], log zerolog.Logger) *contactService {
	return &contactService{
		messages: messages,
		log:      log.With().Str("service", "contact").Logger(),
	}
}

// Submit validates and stores a contact message. Validation failures are
// returned as *validation.Errors.
func (s *contactService) Submit(ctx context.Context, req *models.ContactRequest) (*models.ContactResponse, error) {
	if err := validation.AsError(validation.ValidateContact(req)); err != nil {
		return nil, err
	}

	clean := validation.NormalizeContact(req)
	now := s.messages.Now()
	saved, err := s.messages.Add(ctx, models.ContactMessage{
		Name:      clean.Name,
		Email:     clean.Email,
		Subject:   clean.Subject,
		Message:   clean.Message,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to store contact message")
		return nil, err
	}

	s.log.Info().Int64("id", saved.ID).Str("subject", saved.Subject).Msg("Contact message received")
	return &models.ContactResponse{
		Success: true,
		Message: ContactSuccessMessage,
		ID:      saved.ID,
	}, nil
}
