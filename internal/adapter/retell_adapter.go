package adapter

import (
	"context"
	"encoding/json"

	"github.com/hpn/voice-agent-gateway/internal/domain"
)

const (
	// DefaultRetellURL is the Retell agent creation endpoint.
	DefaultRetellURL = "https://api.retellai.com/agent"

	retellEngineType = "retell-llm"
)

var _ AgentProvider = (*RetellAdapter)(nil)

// RetellAdapter implements AgentProvider for the Retell agent API.
type RetellAdapter struct {
	endpoint
}

// NewRetellAdapter creates a new RetellAdapter with the given API key.
func NewRetellAdapter(apiKey string, opts ...Option) *RetellAdapter {
	return &RetellAdapter{endpoint: newEndpoint(domain.ProviderRetell, apiKey, DefaultRetellURL, opts...)}
}

// Name returns the provider identifier.
func (r *RetellAdapter) Name() domain.ProviderType {
	return domain.ProviderRetell
}

// CreateAgent creates a Retell agent backed by an existing Retell LLM.
func (r *RetellAdapter) CreateAgent(ctx context.Context, req domain.CreationRequest) (json.RawMessage, error) {
	return r.post(ctx, MapToRetellPayload(req))
}

// MapToRetellPayload converts a unified request into Retell's flat agent shape.
func MapToRetellPayload(req domain.CreationRequest) RetellPayload {
	return RetellPayload{
		ResponseEngine: RetellResponseEngine{
			LLMID: req.LLMID,
			Type:  retellEngineType,
		},
		VoiceID:   req.VoiceID,
		AgentName: req.Name,
	}
}

// RetellPayload is the body of POST /agent.
type RetellPayload struct {
	ResponseEngine RetellResponseEngine `json:"response_engine"`
	VoiceID        json.RawMessage      `json:"voice_id,omitempty"`
	AgentName      json.RawMessage      `json:"agent_name,omitempty"`
}

// RetellResponseEngine points the agent at a Retell-hosted LLM.
type RetellResponseEngine struct {
	LLMID json.RawMessage `json:"llm_id,omitempty"`
	Type  string          `json:"type"`
}
