package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront-service/internal/configs"
	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/port"
)

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewServer(cfg configs.RESTConfig,
	inventoryHandler *InventoryHandler,
	filterHandler *FilterHandler,
	baseLogger port.LoggerPort) *Server {

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg, inventoryHandler, filterHandler, baseLogger),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: baseLogger.WithFields(port.Fields{"component": "rest_server"}),
	}
}

// NewRouter builds the routing tree; tests drive it through httptest.
func NewRouter(cfg configs.RESTConfig,
	inventoryHandler *InventoryHandler,
	filterHandler *FilterHandler,
	baseLogger port.LoggerPort) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), MetricsMiddleware, middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", contextkeys.TraceHeader},
		ExposedHeaders: []string{contextkeys.TraceHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/cars", inventoryHandler.SearchCars)
		r.Get("/cars/*", inventoryHandler.SearchCars)

		r.Get("/facets/cars", inventoryHandler.GetFacets)
		r.Get("/facets/cars/*", inventoryHandler.GetFacets)

		r.Get("/canonical", inventoryHandler.GetCanonical)
		r.Post("/filters/apply", filterHandler.ApplyFilter)
	})

	return r
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
