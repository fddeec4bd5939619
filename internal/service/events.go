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
	apperrors "github.com/fanclubhq/fanclub/pkg/errors"
)

// eventListTTL bounds staleness of the cached upcoming-events listing.
const eventListTTL = time.Minute

// EventService implements event listing and RSVP logic.
type EventService struct {
	eventRepo repository.EventRepository
	cache     Cache
	producer  *event.Producer
	logger    *slog.Logger
	now       func() time.Time
}

// NewEventService creates an event service.
func NewEventService(
	eventRepo repository.EventRepository,
	cache Cache,
	producer *event.Producer,
	logger *slog.Logger,
) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		cache:     cache,
		producer:  producer,
		logger:    logger,
		now:       time.Now,
	}
}

// EventList is a page of upcoming events.
type EventList struct {
	Events []domain.Event `json:"events"`
	Total  int            `json:"total"`
}

// ListUpcoming returns upcoming published events, read through the cache.
func (s *EventService) ListUpcoming(ctx context.Context, limit, offset int) (*EventList, error) {
	key := fmt.Sprintf("events:upcoming:%d:%d", limit, offset)

	var cached EventList
	if cachedJSON(ctx, s.cache, s.logger, key, &cached) {
		return &cached, nil
	}

	events, total, err := s.eventRepo.ListUpcoming(ctx, s.now().UTC(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}

	list := &EventList{Events: events, Total: total}
	storeJSON(ctx, s.cache, s.logger, key, list, eventListTTL)

	return list, nil
}

// RSVP records the user's attendance intent. RSVPing to a past event is
// invalid; a duplicate RSVP conflicts.
func (s *EventService) RSVP(ctx context.Context, eventID, userID string) (*domain.RSVP, error) {
	evt, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if evt.HasStarted(s.now().UTC()) {
		return nil, apperrors.InvalidInput("cannot rsvp to an event that has already started")
	}

	rsvp := &domain.RSVP{
		ID:        uuid.New().String(),
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: s.now().UTC(),
	}

	if err := s.eventRepo.CreateRSVP(ctx, rsvp); err != nil {
		return nil, err
	}

	if err := s.producer.PublishEventRSVPed(ctx, rsvp); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish event.rsvped event",
			slog.String("event_id", eventID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "rsvp recorded",
		slog.String("event_id", eventID),
		slog.String("user_id", userID),
	)

	return rsvp, nil
}
