package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/farmstead/internal/handler"
	"github.com/osse101/farmstead/internal/logger"
	"github.com/osse101/farmstead/internal/metrics"
)

// Config configures the HTTP server
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	// EventStream serves /api/v1/events when set
	EventStream http.Handler
}

// Server serves the world API
type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(cfg Config, game *handler.GameHandlers, readiness map[string]handler.HealthChecker) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, game, readiness),
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the route tree. Chi middleware executes in the order
// defined, outermost first.
func NewRouter(cfg Config, game *handler.GameHandlers, readiness map[string]handler.HealthChecker) chi.Router {
	r := chi.NewRouter()
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(DefaultMaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(readiness))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", game.HandleGetStatus)
		r.Post("/location", game.HandleMove)

		r.Route("/clock", func(r chi.Router) {
			r.Get("/", game.HandleGetClock)
			r.Post("/advance", game.HandleAdvance)
			r.Post("/skip", game.HandleSkip)
			r.Post("/pause", game.HandlePause)
			r.Post("/resume", game.HandleResume)
		})

		r.Route("/farm", func(r chi.Router) {
			r.Post("/till", game.HandleTill)
			r.Post("/water", game.HandleWater)
			r.Post("/plant", game.HandlePlant)
			r.Post("/harvest", game.HandleHarvest)
			r.Post("/clear", game.HandleClearObstacle)
		})

		r.Post("/inventory/equip", game.HandleEquip)
		r.Post("/ship", game.HandleShip)
		r.Post("/buy", game.HandleBuy)

		r.Route("/npc", func(r chi.Router) {
			r.Post("/talk", game.HandleTalk)
			r.Post("/gift", game.HandleGift)
		})

		r.Post("/incubate", game.HandleIncubate)

		if cfg.EventStream != nil {
			r.Handle("/events", cfg.EventStream)
		}

		r.Route("/sleep", func(r chi.Router) {
			r.Get("/", game.HandleGetSleep)
			r.Post("/", game.HandleRequestSleep)
			r.Post("/start", game.HandleStartSleep)
			r.Post("/cancel", game.HandleCancelSleep)
			r.Post("/fade-complete", game.HandleFadeComplete)
			r.Get("/result", game.HandleSleepResult)
		})

		r.Route("/saves", func(r chi.Router) {
			r.Get("/", game.HandleListSaves)
			r.Post("/save", game.HandleSave)
			r.Post("/load", game.HandleLoad)
		})

		r.Get("/snapshot", game.HandleExportSnapshot)
		r.Put("/snapshot", game.HandleImportSnapshot)
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush forwards to the wrapped writer so the event stream can flush
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Probes and scrapes are too frequent to log
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
