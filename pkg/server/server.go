package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/de-tools/aims/pkg/client"
	handlers "github.com/de-tools/aims/pkg/handlers/governance"
	"github.com/de-tools/aims/pkg/models/api"
	aimsmiddleware "github.com/de-tools/aims/pkg/server/middleware"
	"github.com/de-tools/aims/pkg/services/config"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          http.Handler
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Records client.Backend
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	// Token, when set, is required as a bearer token on every resource route.
	Token        string
	Endpoints    config.Endpoints
	Dependencies Dependencies
}

// ConfigureRouter mounts the governance resources at the configured endpoint
// paths, plus /healthz which never requires a token.
func ConfigureRouter(logger zerolog.Logger, cfg Config) http.Handler {
	h := handlers.NewHandler(cfg.Dependencies.Records)

	router := chi.NewRouter()
	router.Use(aimsmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.Health{Status: "ok"})
	})

	router.Group(func(r chi.Router) {
		r.Use(aimsmiddleware.BearerToken(cfg.Token))

		r.Get(cfg.Endpoints.Dashboard, h.GetDashboard)
		r.Route(cfg.Endpoints.AiSystems, func(r chi.Router) {
			r.Get("/", h.ListAiSystems)
			r.Post("/", h.CreateAiSystem)
			r.Put("/{id}", h.UpdateAiSystem)
			r.Delete("/{id}", h.DeleteAiSystem)
		})
		r.Route(cfg.Endpoints.Policies, func(r chi.Router) {
			r.Get("/", h.ListPolicies)
			r.Post("/", h.CreatePolicy)
			r.Put("/{id}", h.UpdatePolicy)
			r.Delete("/{id}", h.DeletePolicy)
		})
		r.Route(cfg.Endpoints.Incidents, func(r chi.Router) {
			r.Get("/", h.ListIncidents)
			r.Post("/", h.CreateIncident)
			r.Put("/{id}", h.UpdateIncident)
			r.Delete("/{id}", h.DeleteIncident)
		})
		r.Route(cfg.Endpoints.RiskAssessments, func(r chi.Router) {
			r.Get("/", h.GetRiskAssessments)
			r.Post("/", h.CreateRiskAssessment)
			r.Put("/{id}", h.UpdateRiskAssessment)
			r.Delete("/{id}", h.DeleteRiskAssessment)
		})
	})

	return router
}

func NewWebAPI(logger zerolog.Logger, cfg Config) *WebAPI {
	router := ConfigureRouter(logger, cfg)

	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
