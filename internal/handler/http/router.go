package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fanclubhq/fanclub/internal/auth"
	"github.com/fanclubhq/fanclub/internal/domain"
	"github.com/fanclubhq/fanclub/internal/service"
	"github.com/fanclubhq/fanclub/pkg/health"
	"github.com/fanclubhq/fanclub/pkg/middleware"
)

// RouterConfig bundles the dependencies the router wires together.
type RouterConfig struct {
	UserService       *service.UserService
	MembershipService *service.MembershipService
	EventService      *service.EventService
	GalleryService    *service.GalleryService
	ContactService    *service.ContactService
	NetworkService    *service.NetworkService

	JWTManager     *auth.JWTManager
	GoogleProvider OAuthProvider
	FrontendOrigin string

	HealthHandler *health.Handler
	Logger        *slog.Logger
	CORS          middleware.CORSConfig

	TracingEnabled bool
	RateLimitRPS   int
	RateLimitBurst int
}

// NewRouter creates the chi router with all API routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("fanclub"))
	if cfg.TracingEnabled {
		r.Use(middleware.Tracing("fanclub"))
	}

	// Health check and metrics endpoints
	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := cfg.JWTManager.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}, nil
	}

	authHandler := NewAuthHandler(cfg.UserService, cfg.GoogleProvider, cfg.FrontendOrigin, cfg.Logger)
	membershipHandler := NewMembershipHandler(cfg.MembershipService, cfg.Logger)
	eventHandler := NewEventHandler(cfg.EventService, cfg.Logger)
	galleryHandler := NewGalleryHandler(cfg.GalleryService, cfg.Logger)
	contactHandler := NewContactHandler(cfg.ContactService, cfg.Logger)
	networkHandler := NewNetworkHandler(cfg.NetworkService, cfg.Logger)

	rateLimit := middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.Logger)
	publicCache := middleware.CacheControl(60)

	// Auth endpoints (public; credential endpoints rate limited)
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(rateLimit)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Get("/google", authHandler.GoogleRedirect)
		r.Get("/google/callback", authHandler.GoogleCallback)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokenValidator))
			r.Get("/profile", authHandler.Profile)
		})
	})

	// Membership endpoints (subscribe accepts anonymous and logged-in callers)
	r.Route("/api/v1/memberships", func(r chi.Router) {
		r.With(publicCache).Get("/plans", membershipHandler.ListPlans)

		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(tokenValidator))
			r.Post("/subscribe", membershipHandler.Subscribe)
		})
	})

	// Events
	r.Route("/api/v1/events", func(r chi.Router) {
		r.With(publicCache).Get("/", eventHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokenValidator))
			r.Post("/{id}/rsvp", eventHandler.RSVP)
		})
	})

	// Gallery (listing public, upload admin only)
	r.Route("/api/v1/gallery", func(r chi.Router) {
		r.With(publicCache).Get("/", galleryHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokenValidator))
			r.Use(middleware.RequireRole(domain.RoleAdmin))
			r.Post("/", galleryHandler.Upload)
		})
	})

	// Contact form (rate limited per IP)
	r.Route("/api/v1/contact", func(r chi.Router) {
		r.Use(rateLimit)
		r.Post("/", contactHandler.Submit)
	})

	// Global network directory
	r.With(publicCache).Get("/api/v1/global-network/groups", networkHandler.ListGroups)

	return r
}
