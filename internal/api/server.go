// Package api provides the HTTP API server and handlers for the Galleria application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/galleriaapp/galleria-server/internal/service"
	"github.com/galleriaapp/galleria-server/internal/sse"
	"github.com/galleriaapp/galleria-server/internal/store"
)

// apiVersion is reported in the OpenAPI document.
const apiVersion = "1.0.0"

// Services bundles the service layer the handlers dispatch to.
type Services struct {
	Artist    *service.ArtistService
	Artwork   *service.ArtworkService
	Catalogue *service.CatalogueService
	Curation  *service.CurationService
	Market    *service.MarketService
	Image     *service.ImageService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store      *store.Store
	services   *Services
	sseManager *sse.Manager
	sseHandler *sse.Handler
	router     *chi.Mux
	api        huma.API
	logger     *slog.Logger
	limiter    *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, services *Services, sseManager *sse.Manager, sseHandler *sse.Handler, logger *slog.Logger) *Server {
	s := &Server{
		store:      st,
		services:   services,
		sseManager: sseManager,
		sseHandler: sseHandler,
		router:     chi.NewRouter(),
		logger:     logger,
		limiter:    NewRateLimiter(AnalysisRatePerMinute, time.Minute, AnalysisBurst),
	}

	// Middleware must be attached before humachi mounts any routes.
	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Galleria API", apiVersion)
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	// Dashboards are served from whatever host the creator runs them on,
	// so the API stays origin-agnostic.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "If-None-Match"},
		ExposedHeaders: []string{"ETag"},
		MaxAge:         300,
	}))
	s.router.Use(AnalysisRateLimitMiddleware(s.limiter, s.logger))
}

// setupRoutes registers all huma operations and the raw chi routes that
// bypass it (image streaming and SSE).
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerArtistRoutes()
	s.registerArtworkRoutes()
	s.registerCatalogueRoutes()
	s.registerCurationRoutes()
	s.registerMarketRoutes()

	// Image bytes stream straight through chi; huma's serializer has no
	// business buffering JPEGs.
	s.router.Get("/images/artworks/{id}/{file}", s.handleServeArtworkImage)

	// Event stream for connected dashboards.
	s.router.Get("/api/v1/events", s.sseHandler.ServeHTTP)
}
