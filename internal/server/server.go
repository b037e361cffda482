package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"sportsmeet-portal/internal/auth"
	"sportsmeet-portal/internal/config"
	"sportsmeet-portal/internal/models"
	"sportsmeet-portal/internal/registration"
)

// Exporter reads every stored registration.
type Exporter interface {
	Export(ctx context.Context) (models.Table, error)
}

type Handlers struct {
	auth         *auth.Manager
	registration *registration.Service
	store        Exporter
	exportSecret string
	secureCookie bool
}

func NewHandlers(cfg config.Config, am *auth.Manager, reg *registration.Service, st Exporter) *Handlers {
	return &Handlers{
		auth:         am,
		registration: reg,
		store:        st,
		exportSecret: cfg.ExportSecret,
		secureCookie: strings.HasPrefix(cfg.BasePublicURL, "https://"),
	}
}

func New(cfg config.Config, am *auth.Manager, reg *registration.Service, st Exporter) *http.Server {
	h := NewHandlers(cfg, am, reg, st)
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h.Router(cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (h *Handlers) Router(corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler)

	r.Get("/healthz", h.health)
	r.Get("/export/registrations.csv", h.signedExport)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", h.catalog)
		r.Get("/category", h.category)
		r.Post("/login", h.login)
		r.Post("/logout", h.logout)

		r.Group(func(r chi.Router) {
			r.Use(h.auth.RequireSession)
			r.Route("/teams/{team}", func(r chi.Router) {
				r.Post("/slots", h.createSlots)
				r.Get("/roster", h.roster)
				r.Patch("/participants/{index}", h.updateParticipant)
				r.Put("/participants/{index}/sports/{slot}", h.updateSport)
				r.Post("/validate", h.validate)
				r.Post("/submit", h.submit)
				r.Get("/export.csv", h.teamCSV)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(h.auth.RequireAdmin)
			r.Get("/admin/registrations", h.registrations)
			r.Get("/admin/registrations.csv", h.registrationsCSV)
		})
	})

	return r
}
