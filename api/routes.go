package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/budget-api/internal/auth"
	"github.com/carson-networks/budget-api/internal/handlers/v1/category"
	"github.com/carson-networks/budget-api/internal/handlers/v1/export"
	"github.com/carson-networks/budget-api/internal/handlers/v1/status"
	"github.com/carson-networks/budget-api/internal/handlers/v1/summary"
	"github.com/carson-networks/budget-api/internal/handlers/v1/transaction"
	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/metrics"
	"github.com/carson-networks/budget-api/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger     *logrus.Logger
	Port       string
	CORSOrigin string
	Service    *service.Service
	DB         status.Pinger
	JWT        *auth.JWTManager
}

type registrar interface {
	Register(api huma.API)
}

// Router builds the HTTP handler: plain routes for /status and /metrics
// and the Huma API for everything else.
func (r *Rest) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{r.CORSOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	statusHandler := status.NewHandler(r.DB)
	router.Get("/status", logging.LoggingWrapper("Status", r.Logger, metrics.ObserveHandler, statusHandler.Handler))
	router.Handle("/metrics", metrics.Handler())

	config := huma.DefaultConfig("Budget API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		auth.SecurityScheme: {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humachi.New(router, config)
	api.UseMiddleware(
		logging.HumaMiddleware(r.Logger, metrics.ObserveHandler),
		auth.RequireAuth(api, r.JWT),
	)

	svc := r.Service
	handlers := []registrar{
		category.NewListCategoriesHandler(svc.Category),
		category.NewCreateCategoryHandler(svc.Category),
		category.NewUpdateCategoryHandler(svc.Category),
		category.NewDeleteCategoryHandler(svc.Category),
		transaction.NewListTransactionsHandler(svc.Transaction),
		transaction.NewCreateTransactionHandler(svc.Transaction),
		transaction.NewUpdateTransactionHandler(svc.Transaction),
		transaction.NewDeleteTransactionHandler(svc.Transaction),
		summary.NewGetSummaryHandler(svc.Summary),
		summary.NewGetAISummaryHandler(svc.AISummary),
		export.NewExportTransactionsHandler(svc.Export),
	}
	for _, h := range handlers {
		h.Register(api)
	}

	return router
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Router(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(60) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		r.Logger.Info("HttpServer.Serve.shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
