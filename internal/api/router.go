// Package api exposes the service over HTTP. Handlers translate between
// the REST surface and the domain services; no business logic lives here.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"country-explorer/internal/common/config"
	"country-explorer/internal/common/errors"
	"country-explorer/internal/common/logger"
	"country-explorer/internal/common/metrics"
	"country-explorer/internal/costofliving"
	"country-explorer/internal/countries"
	"country-explorer/internal/geocoding"
	"country-explorer/internal/images"
	"country-explorer/internal/quality"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
)

// Server holds the HTTP server dependencies
type Server struct {
	costOfLiving *costofliving.Service
	countries    *countries.Client
	geocoder     *geocoding.Client
	quality      *quality.Service
	resolver     *images.Resolver
	pagination   config.PaginationConfig
	logger       logger.Logger
	router       chi.Router
}

// New creates a new API server
func New(
	costOfLiving *costofliving.Service,
	countryClient *countries.Client,
	geocoder *geocoding.Client,
	qualityService *quality.Service,
	resolver *images.Resolver,
	cfg config.ServerConfig,
	pagination config.PaginationConfig,
	log logger.Logger,
) *Server {
	s := &Server{
		costOfLiving: costOfLiving,
		countries:    countryClient,
		geocoder:     geocoder,
		quality:      qualityService,
		resolver:     resolver,
		pagination:   pagination,
		logger:       log,
		router:       chi.NewRouter(),
	}

	s.setupMiddleware(cfg)
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware(cfg config.ServerConfig) {
	s.router.Use(s.requestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(s.instrument)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		// Cost of living
		r.Get("/cost-of-living", s.handleGetCountriesPage)
		r.Get("/cost-of-living/cities", s.handleGetCitiesPage)
		r.Get("/cost-of-living/search", s.handleSearch)
		r.Get("/cost-of-living/statistics", s.handleGetStatistics)

		// Country metadata + quality of life
		r.Get("/countries", s.handleListCountries)
		r.Get("/countries/search", s.handleSearchCountries)
		r.Get("/countries/{code}", s.handleGetCountry)
		r.Get("/countries/{code}/quality-of-life", s.handleGetQualityOfLife)

		// Cities
		r.Get("/cities/search", s.handleSearchCity)
		r.Get("/cities/map-search", s.handleMapSearch)
		r.Get("/cities/reverse", s.handleReverseGeocode)

		// Images
		r.Get("/images", s.handleGetImage)
		r.Post("/images/revalidate", s.handleRevalidateImage)
	})

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

type ctxKey string

const requestIDKey ctxKey = "requestID"

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, r.Method, http.StatusText(ww.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())

		s.logger.Info("request handled", map[string]interface{}{
			"requestId": r.Context().Value(requestIDKey),
			"method":    r.Method,
			"route":     route,
			"status":    ww.Status(),
			"tookMs":    time.Since(start).Milliseconds(),
		})
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, errors.HTTPStatus(err), map[string]string{"error": err.Error()})
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, map[string]string{"error": message})
}
