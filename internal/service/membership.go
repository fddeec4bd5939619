package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/fanclubhq/fanclub/internal/domain"
	"github.com/fanclubhq/fanclub/internal/event"
	"github.com/fanclubhq/fanclub/internal/payment"
	"github.com/fanclubhq/fanclub/internal/repository"
	"github.com/fanclubhq/fanclub/internal/storage"
	apperrors "github.com/fanclubhq/fanclub/pkg/errors"
)

// MembershipService implements the subscription flow: validate, store
// documents, persist the application, create the checkout session.
type MembershipService struct {
	membershipRepo repository.MembershipRepository
	store          storage.Storage
	provider       payment.Provider
	producer       *event.Producer
	logger         *slog.Logger
}

// NewMembershipService creates a membership service.
func NewMembershipService(
	membershipRepo repository.MembershipRepository,
	store storage.Storage,
	provider payment.Provider,
	producer *event.Producer,
	logger *slog.Logger,
) *MembershipService {
	return &MembershipService{
		membershipRepo: membershipRepo,
		store:          store,
		provider:       provider,
		producer:       producer,
		logger:         logger,
	}
}

// DocumentUpload is one uploaded file in a subscription request.
type DocumentUpload struct {
	Kind        string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// SubscribeInput holds the parameters of a subscription request.
type SubscribeInput struct {
	UserID       string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	PostalCode   string
	Country      string
	Plan         string
	University   string
	Program      string
	Documents    []DocumentUpload
}

// SubscribeResult is the successful outcome of a subscription request.
type SubscribeResult struct {
	MembershipID string `json:"membership_id"`
	CheckoutURL  string `json:"checkout_url"`
}

// ListPlans returns the offered membership plans.
func (s *MembershipService) ListPlans(ctx context.Context) []domain.Plan {
	return domain.Plans()
}

// Subscribe validates the application, stores any student documents,
// persists the membership as pending payment, and creates a checkout
// session. A provider failure marks the membership failed and surfaces a
// checkout error.
func (s *MembershipService) Subscribe(ctx context.Context, input SubscribeInput) (*SubscribeResult, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	price, _ := domain.PlanPrice(input.Plan)
	now := time.Now().UTC()
	m := &domain.Membership{
		ID:           uuid.New().String(),
		UserID:       input.UserID,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		PostalCode:   input.PostalCode,
		Country:      input.Country,
		Plan:         input.Plan,
		PriceCents:   price,
		Currency:     "EUR",
		Status:       domain.MembershipPendingPayment,
		University:   input.University,
		Program:      input.Program,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	docs, err := s.storeDocuments(ctx, m.ID, input.Documents)
	if err != nil {
		return nil, err
	}

	if err := s.membershipRepo.Create(ctx, m, docs); err != nil {
		s.cleanupDocuments(ctx, docs)
		return nil, fmt.Errorf("persist membership: %w", err)
	}

	session, err := s.provider.CreateCheckout(ctx, payment.CheckoutRequest{
		MembershipID:  m.ID,
		Plan:          m.Plan,
		AmountCents:   m.PriceCents,
		Currency:      m.Currency,
		CustomerEmail: m.Email,
	})
	if err != nil {
		if updErr := s.membershipRepo.UpdateStatus(ctx, m.ID, domain.MembershipFailed, ""); updErr != nil {
			s.logger.ErrorContext(ctx, "failed to mark membership failed",
				slog.String("membership_id", m.ID),
				slog.String("error", updErr.Error()),
			)
		}
		return nil, err
	}

	if err := s.membershipRepo.UpdateStatus(ctx, m.ID, domain.MembershipPendingPayment, session.ID); err != nil {
		s.logger.ErrorContext(ctx, "failed to record checkout session",
			slog.String("membership_id", m.ID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishMembershipSubscribed(ctx, m); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish membership.subscribed event",
			slog.String("membership_id", m.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "membership subscription created",
		slog.String("membership_id", m.ID),
		slog.String("plan", m.Plan),
	)

	return &SubscribeResult{MembershipID: m.ID, CheckoutURL: session.URL}, nil
}

// validate applies the plan rules. Student applications need the academic
// fields and both verification documents.
func (s *MembershipService) validate(input SubscribeInput) error {
	if input.FirstName == "" {
		return apperrors.InvalidInput("first name is required")
	}
	if input.LastName == "" {
		return apperrors.InvalidInput("last name is required")
	}
	if input.Email == "" {
		return apperrors.InvalidInput("email is required")
	}
	if input.Phone == "" {
		return apperrors.InvalidInput("phone is required")
	}
	if !domain.IsValidPlan(input.Plan) {
		return apperrors.InvalidInput(fmt.Sprintf("unknown plan %q", input.Plan))
	}

	if input.Plan != domain.PlanStudent {
		return nil
	}

	if input.University == "" {
		return apperrors.InvalidInput("university is required for the student plan")
	}
	if input.Program == "" {
		return apperrors.InvalidInput("program is required for the student plan")
	}

	byKind := make(map[string]DocumentUpload, len(input.Documents))
	for _, doc := range input.Documents {
		byKind[doc.Kind] = doc
	}
	for _, kind := range []string{domain.DocumentStudentID, domain.DocumentTimetable} {
		doc, ok := byKind[kind]
		if !ok {
			return apperrors.InvalidInput(fmt.Sprintf("document %q is required for the student plan", kind))
		}
		if err := domain.ValidateDocument(kind, doc.ContentType, doc.Size); err != nil {
			return apperrors.InvalidInput(err.Error())
		}
	}

	return nil
}

// storeDocuments uploads the documents and returns their records. On a
// partial failure, already-uploaded objects are removed.
func (s *MembershipService) storeDocuments(ctx context.Context, membershipID string, uploads []DocumentUpload) ([]domain.Document, error) {
	var docs []domain.Document
	now := time.Now().UTC()

	for _, up := range uploads {
		key := path.Join("memberships", membershipID, up.Kind+path.Ext(up.Filename))
		if err := s.store.Put(ctx, key, up.ContentType, up.Body, up.Size); err != nil {
			s.cleanupDocuments(ctx, docs)
			return nil, fmt.Errorf("store document %s: %w", up.Kind, err)
		}

		docs = append(docs, domain.Document{
			ID:           uuid.New().String(),
			MembershipID: membershipID,
			Kind:         up.Kind,
			ObjectKey:    key,
			ContentType:  up.ContentType,
			SizeBytes:    up.Size,
			CreatedAt:    now,
		})
	}

	return docs, nil
}

func (s *MembershipService) cleanupDocuments(ctx context.Context, docs []domain.Document) {
	for _, d := range docs {
		if err := s.store.Delete(ctx, d.ObjectKey); err != nil {
			s.logger.WarnContext(ctx, "failed to remove orphaned document",
				slog.String("key", d.ObjectKey),
				slog.String("error", err.Error()),
			)
		}
	}
}
