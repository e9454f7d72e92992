// Package handler provides HTTP handlers for the voice agent gateway.
package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hpn/voice-agent-gateway/internal/adapter"
	"github.com/hpn/voice-agent-gateway/internal/domain"
	"github.com/hpn/voice-agent-gateway/internal/ui"
)

const (
	// MsgInvalidBody is returned when the request body is not valid JSON.
	MsgInvalidBody = "Invalid request body"

	// ctxKeyProvider carries the target provider to the logging middleware.
	ctxKeyProvider = "provider"
)

// AgentHandler serves agent creation. Each request results in at most one
// outbound provider call; nothing is cached or retried.
type AgentHandler struct {
	providers map[domain.ProviderType]adapter.AgentProvider
	logger    *slog.Logger
	console   bool
}

// AgentHandlerOption is a functional option for configuring AgentHandler.
type AgentHandlerOption func(*AgentHandler)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) AgentHandlerOption {
	return func(h *AgentHandler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithConsole enables colored per-request console output.
func WithConsole(enabled bool) AgentHandlerOption {
	return func(h *AgentHandler) {
		h.console = enabled
	}
}

// NewAgentHandler creates a new AgentHandler routing to the given providers.
func NewAgentHandler(providers []adapter.AgentProvider, opts ...AgentHandlerOption) *AgentHandler {
	h := &AgentHandler{
		providers: make(map[domain.ProviderType]adapter.AgentProvider, len(providers)),
		logger:    slog.Default(),
	}

	for _, p := range providers {
		h.providers[p.Name()] = p
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// HandleCreateAgent handles POST /create-agent
func (h *AgentHandler) HandleCreateAgent(c *gin.Context) {
	req, err := decodeCreationRequest(c)
	if err != nil {
		h.logger.Debug("rejected request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgInvalidBody})
		return
	}

	provider, err := req.Validate()
	if err != nil {
		h.respondError(c, provider, err)
		return
	}
	c.Set(ctxKeyProvider, provider.String())

	p, ok := h.providers[provider]
	if !ok {
		h.respondError(c, provider, fmt.Errorf("no adapter registered for %s", provider))
		return
	}

	result, err := p.CreateAgent(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, provider, err)
		return
	}

	h.logger.Info("agent created", slog.String("provider", provider.String()))
	if h.console {
		ui.PrintAgentCreated(provider.String(), http.StatusCreated)
	}

	c.Data(http.StatusCreated, "application/json; charset=utf-8", result)
}

// decodeCreationRequest parses the body. Only syntactically invalid JSON is an
// error. An empty body or a JSON value other than an object decodes to the
// zero request so it fails provider validation.
func decodeCreationRequest(c *gin.Context) (domain.CreationRequest, error) {
	var req domain.CreationRequest

	body, err := c.GetRawData()
	if err != nil {
		return req, fmt.Errorf("failed to read body: %w", err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return req, nil
	}
	if !json.Valid(body) {
		return req, errors.New("body is not valid JSON")
	}
	if body[0] != '{' {
		return req, nil
	}

	if err := json.Unmarshal(body, &req); err != nil {
		return req, fmt.Errorf("failed to decode body: %w", err)
	}
	return req, nil
}

// respondError converts a typed failure into the HTTP response.
func (h *AgentHandler) respondError(c *gin.Context, provider domain.ProviderType, err error) {
	var (
		validationErr *domain.ValidationError
		upstreamErr   *domain.UpstreamError
		networkErr    *domain.NetworkError
	)

	switch {
	case errors.As(err, &validationErr):
		if h.console {
			ui.PrintRejected(validationErr.Message)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})

	case errors.As(err, &upstreamErr):
		h.logger.Error("provider rejected agent creation",
			slog.String("provider", provider.String()),
			slog.Int("upstream_status", upstreamErr.Status),
			slog.String("upstream_body", string(upstreamErr.Body)),
		)
		if h.console {
			ui.PrintAgentFailed(provider.String(), upstreamErr.Status, string(upstreamErr.Body))
		}
		c.JSON(upstreamErr.Status, gin.H{"error": upstreamErr.Detail()})

	case errors.As(err, &networkErr):
		h.logger.Error("provider call failed",
			slog.String("provider", provider.String()),
			slog.String("error", networkErr.Error()),
		)
		if h.console {
			ui.PrintAgentFailed(provider.String(), http.StatusInternalServerError, networkErr.Error())
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": domain.GenericErrorMessage})

	default:
		h.logger.Error("agent creation failed",
			slog.String("provider", provider.String()),
			slog.String("error", err.Error()),
		)
		if h.console {
			ui.PrintAgentFailed(provider.String(), http.StatusInternalServerError, err.Error())
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": domain.GenericErrorMessage})
	}
}

// HandleHealth handles GET /health
// Reports which providers have credentials configured.
func (h *AgentHandler) HandleHealth(c *gin.Context) {
	configured := gin.H{}
	ready := 0
	for _, p := range domain.SupportedProviders {
		adp, ok := h.providers[p]
		hasKey := ok && adp.HasCredentials()
		configured[p.String()] = hasKey
		if hasKey {
			ready++
		}
	}

	status := "healthy"
	if ready == 0 {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"providers": configured,
	})
}
