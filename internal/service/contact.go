package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fanclubhq/fanclub/internal/domain"
	"github.com/fanclubhq/fanclub/internal/event"
	"github.com/fanclubhq/fanclub/internal/repository"
)

// ContactService persists contact form submissions and hands them to the
// notification pipeline via Kafka.
type ContactService struct {
	contactRepo repository.ContactRepository
	producer    *event.Producer
	logger      *slog.Logger
}

// NewContactService creates a contact service.
func NewContactService(
	contactRepo repository.ContactRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		producer:    producer,
		logger:      logger,
	}
}

// ContactInput holds a validated contact form submission.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Submit stores the message and publishes a contact.submitted event.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*domain.ContactMessage, error) {
	msg := &domain.ContactMessage{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		Subject:   input.Subject,
		Message:   input.Message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("persist contact message: %w", err)
	}

	if err := s.producer.PublishContactSubmitted(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish contact.submitted event",
			slog.String("message_id", msg.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "contact message submitted",
		slog.String("message_id", msg.ID),
	)

	return msg, nil
}
