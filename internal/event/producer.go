// Package event publishes club domain events to Kafka for downstream
// consumers (notification delivery, analytics).
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fanclubhq/fanclub/internal/domain"
	pkgkafka "github.com/fanclubhq/fanclub/pkg/kafka"
)

// Kafka topic constants for club domain events.
const (
	TopicUserRegistered       = "fanclub.user.registered"
	TopicMembershipSubscribed = "fanclub.membership.subscribed"
	TopicContactSubmitted     = "fanclub.contact.submitted"
	TopicEventRSVPed          = "fanclub.event.rsvped"
)

// Source identifier for events originating from this service.
const Source = "fanclub-api"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Provider  string `json:"provider"`
}

// MembershipSubscribedData is the payload for a membership.subscribed event.
type MembershipSubscribedData struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Plan       string `json:"plan"`
	PriceCents int64  `json:"price_cents"`
	Currency   string `json:"currency"`
}

// ContactSubmittedData is the payload for a contact.submitted event.
type ContactSubmittedData struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
}

// EventRSVPedData is the payload for an event.rsvped event.
type EventRSVPedData struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
}

// Publisher is the subset of the Kafka producer the event package needs.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes club domain events to Kafka.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates an event producer.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Provider:  user.AuthProvider,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, user.ID, Source, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.String("user_id", user.ID),
	)

	return nil
}

// PublishMembershipSubscribed publishes a membership.subscribed event.
func (p *Producer) PublishMembershipSubscribed(ctx context.Context, m *domain.Membership) error {
	data := MembershipSubscribedData{
		ID:         m.ID,
		Email:      m.Email,
		Plan:       m.Plan,
		PriceCents: m.PriceCents,
		Currency:   m.Currency,
	}

	event, err := pkgkafka.NewEvent(TopicMembershipSubscribed, m.ID, Source, data)
	if err != nil {
		return fmt.Errorf("create membership.subscribed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicMembershipSubscribed, event); err != nil {
		return fmt.Errorf("publish membership.subscribed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published membership.subscribed event",
		slog.String("membership_id", m.ID),
		slog.String("plan", m.Plan),
	)

	return nil
}

// PublishContactSubmitted publishes a contact.submitted event.
func (p *Producer) PublishContactSubmitted(ctx context.Context, msg *domain.ContactMessage) error {
	data := ContactSubmittedData{
		ID:      msg.ID,
		Name:    msg.Name,
		Email:   msg.Email,
		Subject: msg.Subject,
	}

	event, err := pkgkafka.NewEvent(TopicContactSubmitted, msg.ID, Source, data)
	if err != nil {
		return fmt.Errorf("create contact.submitted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicContactSubmitted, event); err != nil {
		return fmt.Errorf("publish contact.submitted event: %w", err)
	}

	return nil
}

// PublishEventRSVPed publishes an event.rsvped event.
func (p *Producer) PublishEventRSVPed(ctx context.Context, rsvp *domain.RSVP) error {
	data := EventRSVPedData{
		EventID: rsvp.EventID,
		UserID:  rsvp.UserID,
	}

	event, err := pkgkafka.NewEvent(TopicEventRSVPed, rsvp.EventID, Source, data)
	if err != nil {
		return fmt.Errorf("create event.rsvped event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicEventRSVPed, event); err != nil {
		return fmt.Errorf("publish event.rsvped event: %w", err)
	}

	return nil
}
