package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/distrubuted-game-mechanic/hello-buttons/internal/api"
	"github.com/distrubuted-game-mechanic/hello-buttons/internal/metrics"
	"github.com/distrubuted-game-mechanic/hello-buttons/internal/models"
	"github.com/distrubuted-game-mechanic/hello-buttons/internal/skill"
	"github.com/distrubuted-game-mechanic/hello-buttons/internal/store"
	"github.com/distrubuted-game-mechanic/hello-buttons/pkg/logger"
)

// maxBodyBytes bounds an inbound skill envelope
const maxBodyBytes = 1 << 20

// Options tunes the handler
type Options struct {
	Timeout   time.Duration // per-request deadline, default 5s
	RateLimit int           // skill requests per minute per client IP, 0 disables
}

// Handler holds HTTP handlers and dependencies.
// It plays the voice runtime's part: it carries session attributes between
// invocations when the caller does not echo them back.
type Handler struct {
	dispatcher *skill.Dispatcher
	store      store.Store // nil = stateless, attributes travel only in envelopes
	logger     *logger.Logger
	opts       Options
}

// NewHandler creates a new HTTP handler
func NewHandler(dispatcher *skill.Dispatcher, st store.Store, log *logger.Logger, opts Options) *Handler {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		dispatcher: dispatcher,
		store:      st,
		logger:     log,
		opts:       opts,
	}
}

// Routes sets up all HTTP routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.With(api.RateLimit(h.opts.RateLimit, time.Minute)).Post("/skill", h.InvokeSkill)
		r.Get("/sessions/{id}", h.GetSession)
		r.Delete("/sessions/{id}", h.DeleteSession)
	})

	// Health check and metrics
	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Health handles health check requests
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// InvokeSkill handles POST /v1/skill
func (h *Handler) InvokeSkill(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opts.Timeout)
	defer cancel()

	var env models.RequestEnvelope
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&env); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if env.Request.Type == "" {
		h.respondError(w, http.StatusBadRequest, "invalid request", "request.type is required")
		return
	}

	sessionID := env.Session.SessionID
	log := h.logger.With(
		logger.F("session_id", sessionID),
		logger.F("request_type", env.Request.Type),
		logger.F("http_request_id", api.GetRequestID(r.Context())),
	)

	if env.Session.Attributes == nil && !env.Session.New {
		env.Session.Attributes = h.loadAttributes(ctx, log, sessionID)
	}

	out := h.dispatcher.Dispatch(ctx, &env)

	if env.Request.Type == models.RequestTypeSessionEnded {
		h.forget(ctx, log, sessionID)
	} else {
		h.persist(ctx, log, sessionID, out.SessionAttributes)
	}

	h.respondJSON(w, http.StatusOK, out)
}

// GetSession handles GET /v1/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opts.Timeout)
	defer cancel()

	if h.store == nil {
		h.respondError(w, http.StatusNotFound, "session not found", "no session store configured")
		return
	}

	sessionID := chi.URLParam(r, "id")
	attrs, err := h.store.GetAttributes(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			h.respondError(w, http.StatusNotFound, "session not found", err.Error())
			return
		}
		metrics.ObserveStoreError("get")
		h.respondError(w, http.StatusInternalServerError, "failed to get session", err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, attrs)
}

// DeleteSession handles DELETE /v1/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opts.Timeout)
	defer cancel()

	if h.store != nil {
		if err := h.store.DeleteAttributes(ctx, chi.URLParam(r, "id")); err != nil {
			metrics.ObserveStoreError("delete")
			h.respondError(w, http.StatusInternalServerError, "failed to delete session", err.Error())
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// loadAttributes hydrates a continuing session; any failure starts from an
// empty mapping so the skill still answers.
func (h *Handler) loadAttributes(ctx context.Context, log *logger.Logger, sessionID string) models.Attributes {
	if h.store == nil || sessionID == "" {
		return nil
	}
	attrs, err := h.store.GetAttributes(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, store.ErrSessionNotFound) {
			metrics.ObserveStoreError("get")
			log.Error("Failed to load session attributes", logger.Err(err))
		}
		return nil
	}
	return attrs
}

func (h *Handler) persist(ctx context.Context, log *logger.Logger, sessionID string, attrs models.Attributes) {
	if h.store == nil || sessionID == "" {
		return
	}
	if err := h.store.SaveAttributes(ctx, sessionID, attrs); err != nil {
		metrics.ObserveStoreError("save")
		log.Error("Failed to save session attributes", logger.Err(err))
	}
}

func (h *Handler) forget(ctx context.Context, log *logger.Logger, sessionID string) {
	if h.store == nil || sessionID == "" {
		return
	}
	if err := h.store.DeleteAttributes(ctx, sessionID); err != nil {
		metrics.ObserveStoreError("delete")
		log.Error("Failed to delete session attributes", logger.Err(err))
	}
}

// respondJSON sends a JSON response
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", logger.Err(err))
	}
}

// respondError sends an error response
func (h *Handler) respondError(w http.ResponseWriter, status int, errorMsg, message string) {
	h.respondJSON(w, status, models.ErrorResponse{
		Error:   errorMsg,
		Message: message,
	})
}
