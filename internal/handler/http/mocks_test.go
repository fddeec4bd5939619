package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fanclubhq/fanclub/internal/auth"
	"github.com/fanclubhq/fanclub/internal/domain"
	"github.com/fanclubhq/fanclub/internal/event"
	"github.com/fanclubhq/fanclub/internal/payment"
	"github.com/fanclubhq/fanclub/internal/service"
	"github.com/fanclubhq/fanclub/internal/storage/memory"
	"github.com/fanclubhq/fanclub/pkg/health"
	"github.com/fanclubhq/fanclub/pkg/httputil"
	pkgkafka "github.com/fanclubhq/fanclub/pkg/kafka"
	"github.com/fanclubhq/fanclub/pkg/middleware"
)

// --- Repository mocks ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type mockMembershipRepository struct {
	mock.Mock
}

func (m *mockMembershipRepository) Create(ctx context.Context, mem *domain.Membership, docs []domain.Document) error {
	args := m.Called(ctx, mem, docs)
	return args.Error(0)
}

func (m *mockMembershipRepository) GetByID(ctx context.Context, id string) (*domain.Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *mockMembershipRepository) UpdateStatus(ctx context.Context, id, status, checkoutSessionID string) error {
	args := m.Called(ctx, id, status, checkoutSessionID)
	return args.Error(0)
}

type mockEventRepository struct {
	mock.Mock
}

func (m *mockEventRepository) ListUpcoming(ctx context.Context, now time.Time, limit, offset int) ([]domain.Event, int, error) {
	args := m.Called(ctx, now, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Event), args.Int(1), args.Error(2)
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *mockEventRepository) CreateRSVP(ctx context.Context, rsvp *domain.RSVP) error {
	args := m.Called(ctx, rsvp)
	return args.Error(0)
}

type mockGalleryRepository struct {
	mock.Mock
}

func (m *mockGalleryRepository) ListPublished(ctx context.Context, limit, offset int) ([]domain.GalleryImage, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.GalleryImage), args.Int(1), args.Error(2)
}

func (m *mockGalleryRepository) Create(ctx context.Context, img *domain.GalleryImage) error {
	args := m.Called(ctx, img)
	return args.Error(0)
}

type mockContactRepository struct {
	mock.Mock
}

func (m *mockContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type mockChapterRepository struct {
	mock.Mock
}

func (m *mockChapterRepository) List(ctx context.Context) ([]domain.Chapter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Chapter), args.Error(1)
}

type mockCheckoutProvider struct {
	mock.Mock
}

func (m *mockCheckoutProvider) CreateCheckout(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutSession), args.Error(1)
}

// --- OAuth provider stub ---

type stubGoogleProvider struct {
	profile auth.Profile
	err     error
}

func (p *stubGoogleProvider) AuthCodeURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (p *stubGoogleProvider) Exchange(ctx context.Context, code string) (auth.Profile, error) {
	if p.err != nil {
		return auth.Profile{}, p.err
	}
	return p.profile, nil
}

// --- Kafka publisher stub ---

type droppingPublisher struct{}

func (droppingPublisher) Publish(ctx context.Context, topic string, evt *pkgkafka.Event) error {
	return nil
}

// --- Test wiring ---

const testJWTSecret = "test-secret-key-for-handlers"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testProducer() *event.Producer {
	return event.NewProducer(droppingPublisher{}, testLogger())
}

type routerFixture struct {
	userRepo       *mockUserRepository
	membershipRepo *mockMembershipRepository
	eventRepo      *mockEventRepository
	galleryRepo    *mockGalleryRepository
	contactRepo    *mockContactRepository
	chapterRepo    *mockChapterRepository
	provider       *mockCheckoutProvider
	store          *memory.Store
	google         *stubGoogleProvider
	jwt            *auth.JWTManager
	router         http.Handler
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	f := &routerFixture{
		userRepo:       new(mockUserRepository),
		membershipRepo: new(mockMembershipRepository),
		eventRepo:      new(mockEventRepository),
		galleryRepo:    new(mockGalleryRepository),
		contactRepo:    new(mockContactRepository),
		chapterRepo:    new(mockChapterRepository),
		provider:       new(mockCheckoutProvider),
		store:          memory.New(),
		google:         &stubGoogleProvider{},
		jwt:            auth.NewJWTManager(testJWTSecret, 15*time.Minute),
	}

	logger := testLogger()
	producer := testProducer()

	f.router = NewRouter(RouterConfig{
		UserService:       service.NewUserService(f.userRepo, f.jwt, producer, logger),
		MembershipService: service.NewMembershipService(f.membershipRepo, f.store, f.provider, producer, logger),
		EventService:      service.NewEventService(f.eventRepo, nil, producer, logger),
		GalleryService:    service.NewGalleryService(f.galleryRepo, f.store, nil, logger),
		ContactService:    service.NewContactService(f.contactRepo, producer, logger),
		NetworkService:    service.NewNetworkService(f.chapterRepo, nil, logger),
		JWTManager:        f.jwt,
		GoogleProvider:    f.google,
		FrontendOrigin:    "http://localhost:3000",
		HealthHandler:     health.NewHandler(),
		Logger:            logger,
		CORS:              middleware.DefaultCORSConfig(),
		RateLimitRPS:      1000,
		RateLimitBurst:    1000,
	})

	return f
}

func (f *routerFixture) bearerToken(t *testing.T, userID, email, role string) string {
	t.Helper()
	token, err := f.jwt.GenerateAccessToken(userID, email, role)
	require.NoError(t, err)
	return token
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}
