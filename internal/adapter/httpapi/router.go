package httpapi

import (
	"encoding/json"
	"net/http"

	"miniclaw/internal/application/port/input"
	"miniclaw/internal/application/port/output"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog"
)

type Config struct {
	ServiceName string
	// RequestLogging enables the httplog access log.
	RequestLogging bool
}

func DefaultConfig() Config {
	return Config{
		ServiceName:    "miniclaw",
		RequestLogging: true,
	}
}

type Handler struct {
	runner input.AgentRunner
	logger output.LoggerPort
}

func NewHandler(runner input.AgentRunner, logger output.LoggerPort) *Handler {
	return &Handler{runner: runner, logger: logger}
}

// NewRouter mounts the API under /api.
func NewRouter(h *Handler, cfg Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if cfg.RequestLogging {
		r.Use(httplog.RequestLogger(httplog.NewLogger(cfg.ServiceName, httplog.Options{JSON: true})))
	}
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Post("/chat", h.Chat)
	})

	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
