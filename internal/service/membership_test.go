package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fanclubhq/fanclub/internal/domain"
	"github.com/fanclubhq/fanclub/internal/event"
	"github.com/fanclubhq/fanclub/internal/payment"
	"github.com/fanclubhq/fanclub/internal/storage/memory"
	apperrors "github.com/fanclubhq/fanclub/pkg/errors"
)

type membershipTestFixture struct {
	repo     *mockMembershipRepository
	store    *memory.Store
	provider *mockCheckoutProvider
	pub      *recordingPublisher
	svc      *MembershipService
}

func newMembershipTestFixture(t *testing.T) *membershipTestFixture {
	t.Helper()
	f := &membershipTestFixture{
		repo:     new(mockMembershipRepository),
		store:    memory.New(),
		provider: new(mockCheckoutProvider),
		pub:      &recordingPublisher{},
	}
	f.svc = NewMembershipService(f.repo, f.store, f.provider, newTestProducer(f.pub), newTestLogger())
	return f
}

func monthlyInput() SubscribeInput {
	return SubscribeInput{
		UserID:       "user-1",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		Phone:        "+35699123456",
		AddressLine1: "1 Strait Street",
		City:         "Valletta",
		PostalCode:   "VLT 1432",
		Country:      "MT",
		Plan:         domain.PlanMonthly,
	}
}

func studentInput() SubscribeInput {
	input := monthlyInput()
	input.Plan = domain.PlanStudent
	input.University = "University of Malta"
	input.Program = "Computer Science"
	input.Documents = []DocumentUpload{
		{
			Kind:        domain.DocumentStudentID,
			Filename:    "student-id.jpg",
			ContentType: "image/jpeg",
			Size:        1024,
			Body:        strings.NewReader("jpeg bytes"),
		},
		{
			Kind:        domain.DocumentTimetable,
			Filename:    "timetable.pdf",
			ContentType: "application/pdf",
			Size:        2048,
			Body:        strings.NewReader("pdf bytes"),
		},
	}
	return input
}

func TestMembershipService_ListPlans(t *testing.T) {
	f := newMembershipTestFixture(t)

	plans := f.svc.ListPlans(context.Background())

	require.Len(t, plans, 3)
	names := make([]string, 0, len(plans))
	for _, p := range plans {
		names = append(names, p.Name)
		assert.Equal(t, "EUR", p.Currency)
	}
	assert.ElementsMatch(t, []string{domain.PlanMonthly, domain.PlanYearly, domain.PlanStudent}, names)
}

func TestMembershipService_Subscribe_Success(t *testing.T) {
	f := newMembershipTestFixture(t)

	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.Membership) bool {
		return m.Plan == domain.PlanMonthly &&
			m.Status == domain.MembershipPendingPayment &&
			m.PriceCents == 500 && m.Currency == "EUR"
	}), mock.Anything).Return(nil)
	f.provider.On("CreateCheckout", mock.Anything, mock.MatchedBy(func(req payment.CheckoutRequest) bool {
		return req.Plan == domain.PlanMonthly && req.AmountCents == 500 && req.CustomerEmail == "ada@example.com"
	})).Return(&payment.CheckoutSession{ID: "cs_123", URL: "https://pay.example.com/cs_123"}, nil)
	f.repo.On("UpdateStatus", mock.Anything, mock.Anything, domain.MembershipPendingPayment, "cs_123").Return(nil)

	result, err := f.svc.Subscribe(context.Background(), monthlyInput())

	require.NoError(t, err)
	assert.NotEmpty(t, result.MembershipID)
	assert.Equal(t, "https://pay.example.com/cs_123", result.CheckoutURL)
	assert.Contains(t, f.pub.published(), event.TopicMembershipSubscribed)
	f.repo.AssertExpectations(t)
	f.provider.AssertExpectations(t)
}

func TestMembershipService_Subscribe_StudentStoresDocuments(t *testing.T) {
	f := newMembershipTestFixture(t)

	var membershipID string
	f.repo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(docs []domain.Document) bool {
		if len(docs) != 2 {
			return false
		}
		membershipID = docs[0].MembershipID
		kinds := map[string]bool{docs[0].Kind: true, docs[1].Kind: true}
		return kinds[domain.DocumentStudentID] && kinds[domain.DocumentTimetable]
	})).Return(nil)
	f.provider.On("CreateCheckout", mock.Anything, mock.Anything).
		Return(&payment.CheckoutSession{ID: "cs_456", URL: "https://pay.example.com/cs_456"}, nil)
	f.repo.On("UpdateStatus", mock.Anything, mock.Anything, domain.MembershipPendingPayment, "cs_456").Return(nil)

	result, err := f.svc.Subscribe(context.Background(), studentInput())

	require.NoError(t, err)
	assert.Equal(t, membershipID, result.MembershipID)

	contentType, data, ok := f.store.Get("memberships/" + membershipID + "/student_id.jpg")
	require.True(t, ok)
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, "jpeg bytes", string(data))
}

func TestMembershipService_Subscribe_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SubscribeInput)
		message string
	}{
		{
			name:    "unknown plan",
			mutate:  func(in *SubscribeInput) { in.Plan = "quarterly" },
			message: `unknown plan "quarterly"`,
		},
		{
			name: "student without university",
			mutate: func(in *SubscribeInput) {
				*in = studentInput()
				in.University = ""
			},
			message: "university is required",
		},
		{
			name: "student missing timetable",
			mutate: func(in *SubscribeInput) {
				*in = studentInput()
				in.Documents = in.Documents[:1]
			},
			message: `document "timetable" is required`,
		},
		{
			name: "student document too large",
			mutate: func(in *SubscribeInput) {
				*in = studentInput()
				in.Documents[0].Size = domain.MaxDocumentSize + 1
			},
			message: "exceeds the maximum size",
		},
		{
			name: "student document wrong type",
			mutate: func(in *SubscribeInput) {
				*in = studentInput()
				in.Documents[1].ContentType = "text/plain"
			},
			message: `unsupported type "text/plain"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMembershipTestFixture(t)

			input := monthlyInput()
			tt.mutate(&input)

			_, err := f.svc.Subscribe(context.Background(), input)

			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.message)
			f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
			f.provider.AssertNotCalled(t, "CreateCheckout", mock.Anything, mock.Anything)
		})
	}
}

func TestMembershipService_Subscribe_CheckoutFailureMarksFailed(t *testing.T) {
	f := newMembershipTestFixture(t)

	f.repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.provider.On("CreateCheckout", mock.Anything, mock.Anything).
		Return(nil, apperrors.CheckoutFailed("payment provider unreachable"))
	f.repo.On("UpdateStatus", mock.Anything, mock.Anything, domain.MembershipFailed, "").Return(nil)

	_, err := f.svc.Subscribe(context.Background(), monthlyInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCheckoutFailed))
	assert.Empty(t, f.pub.published())
	f.repo.AssertExpectations(t)
}

func TestMembershipService_Subscribe_PersistFailureCleansUpDocuments(t *testing.T) {
	f := newMembershipTestFixture(t)

	var membershipID string
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.Membership) bool {
		membershipID = m.ID
		return true
	}), mock.Anything).Return(errors.New("db down"))

	_, err := f.svc.Subscribe(context.Background(), studentInput())

	require.Error(t, err)
	f.provider.AssertNotCalled(t, "CreateCheckout", mock.Anything, mock.Anything)

	_, _, ok := f.store.Get("memberships/" + membershipID + "/student_id.jpg")
	assert.False(t, ok)
	_, _, ok = f.store.Get("memberships/" + membershipID + "/timetable.pdf")
	assert.False(t, ok)
}
