// Package httpapi is the REST surface: auth endpoints that hand out
// cookies and tokens, and the authenticated appointment resource.
package httpapi

import (
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	schedulev1 "appointment-scheduler/internal/api/schedulev1"
	"appointment-scheduler/internal/account"
	"appointment-scheduler/internal/middleware"
	"appointment-scheduler/internal/schedule"
)

type Config struct {
	Secret         string
	AllowedOrigins []string
	// Location resolves calendar dates given without a zone.
	Location      *time.Location
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	SecureCookies bool
	// TrustedProxies may set the client address through X-Forwarded-For.
	TrustedProxies []netip.Prefix
}

type Server struct {
	appointments *schedule.Service
	accounts     *account.Service
	limiter      *middleware.RateLimiter
	cfg          Config
	log          *zap.Logger
	validate     *validator.Validate
}

func New(appointments *schedule.Service, accounts *account.Service, limiter *middleware.RateLimiter, cfg Config, log *zap.Logger) *Server {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Server{
		appointments: appointments,
		accounts:     accounts,
		limiter:      limiter,
		cfg:          cfg,
		log:          log,
		validate:     validator.New(),
	}
}

// Handler builds the router. metrics and bridge are optional; the bridge
// sits outside the REST CORS policy because it carries its own.
func (s *Server) Handler(metrics, bridge http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RealIP(s.cfg.TrustedProxies))
	r.Use(middleware.Logger(s.log))
	r.Use(chimw.Recoverer)

	if bridge != nil {
		r.Handle("/"+schedulev1.ServiceName+"/*", bridge)
	}

	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		if metrics != nil {
			r.Method(http.MethodGet, "/metrics", metrics)
		}

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.Limit(s.limiter)).Post("/register", s.register)
			r.With(middleware.Limit(s.limiter)).Post("/login", s.login)
			r.Post("/refresh", s.refresh)
			r.With(middleware.Authenticate(s.cfg.Secret)).Post("/logout", s.logout)
		})

		r.Route("/api/appointments", func(r chi.Router) {
			r.Use(middleware.Authenticate(s.cfg.Secret))
			r.Get("/", s.listAppointments)
			r.Post("/", s.createAppointment)
			r.Get("/upcoming", s.upcoming)
			r.Get("/calendar.ics", s.calendar)
			r.Get("/{id}", s.getAppointment)
			r.Put("/{id}", s.updateAppointment)
			r.Delete("/{id}", s.deleteAppointment)
		})
	})

	return r
}
