package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	authhandler "github.com/de-tools/booking-atlas/pkg/handlers/auth"
	reporthandler "github.com/de-tools/booking-atlas/pkg/handlers/report"
	"github.com/de-tools/booking-atlas/pkg/server/middleware"
	"github.com/de-tools/booking-atlas/pkg/services/auth"
	"github.com/de-tools/booking-atlas/pkg/services/refdata"
	"github.com/de-tools/booking-atlas/pkg/services/report"
	"github.com/de-tools/booking-atlas/pkg/services/search"
	"github.com/de-tools/booking-atlas/pkg/services/selection"
)

type Dependencies struct {
	Reports    report.Service
	Search     search.Service
	Selections *selection.Registry
	Auth       auth.Service
	Lookup     *refdata.Lookup
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

// ConfigureRouter wires the API surface. Everything except login sits
// behind bearer auth.
func ConfigureRouter(logger *zerolog.Logger, deps Dependencies) *chi.Mux {
	reports := reporthandler.NewHandler(deps.Reports, deps.Search, deps.Selections, deps.Lookup)
	login := authhandler.NewHandler(deps.Auth)

	router := chi.NewRouter()
	router.Use(middleware.Logger(logger))
	router.Use(chimiddleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", login.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(deps.Auth))

			r.Get("/properties", reports.SearchProperties)

			r.Post("/selection", reports.CreateSelection)
			r.Route("/selection/{sid}", func(r chi.Router) {
				r.Get("/", reports.GetSelection)
				r.Delete("/", reports.DropSelection)
				r.Post("/properties", reports.AddToSelection)
				r.Delete("/properties", reports.ClearSelection)
				r.Delete("/properties/{id}", reports.RemoveFromSelection)
			})

			r.Post("/reports/query", reports.QueryReport)
			r.Post("/reports/export", reports.ExportReport)
		})
	})

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(&logger, config.Dependencies)

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: timeout,
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
