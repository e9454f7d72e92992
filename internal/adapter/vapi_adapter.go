package adapter

import (
	"context"
	"encoding/json"

	"github.com/hpn/voice-agent-gateway/internal/domain"
)

const (
	// DefaultVapiURL is the Vapi assistant creation endpoint.
	DefaultVapiURL = "https://api.vapi.ai/assistant"

	vapiVoiceProvider       = "azure"
	vapiModelProvider       = "anyscale"
	vapiTranscriberProvider = "assembly-ai"
	vapiTranscriberLanguage = "en"
)

var _ AgentProvider = (*VapiAdapter)(nil)

// VapiAdapter implements AgentProvider for the Vapi assistant API.
type VapiAdapter struct {
	endpoint
}

// NewVapiAdapter creates a new VapiAdapter with the given API key.
func NewVapiAdapter(apiKey string, opts ...Option) *VapiAdapter {
	return &VapiAdapter{endpoint: newEndpoint(domain.ProviderVapi, apiKey, DefaultVapiURL, opts...)}
}

// Name returns the provider identifier.
func (v *VapiAdapter) Name() domain.ProviderType {
	return domain.ProviderVapi
}

// CreateAgent creates a Vapi assistant.
func (v *VapiAdapter) CreateAgent(ctx context.Context, req domain.CreationRequest) (json.RawMessage, error) {
	return v.post(ctx, MapToVapiPayload(req))
}

// MapToVapiPayload converts a unified request into Vapi's nested assistant shape.
func MapToVapiPayload(req domain.CreationRequest) VapiPayload {
	return VapiPayload{
		Name:         req.Name,
		FirstMessage: req.FirstMessage,
		Voice: VapiVoice{
			Provider: vapiVoiceProvider,
			VoiceID:  req.VoiceID,
		},
		Model: VapiModel{
			Provider: vapiModelProvider,
			Model:    req.Model,
		},
		Transcriber: VapiTranscriber{
			Provider: vapiTranscriberProvider,
			Language: vapiTranscriberLanguage,
		},
	}
}

// ============================================================================
// Vapi API Types
// ============================================================================

// VapiPayload is the body of POST /assistant.
type VapiPayload struct {
	Name         json.RawMessage `json:"name,omitempty"`
	FirstMessage json.RawMessage `json:"firstMessage,omitempty"`
	Voice        VapiVoice       `json:"voice"`
	Model        VapiModel       `json:"model"`
	Transcriber  VapiTranscriber `json:"transcriber"`
}

// VapiVoice selects the TTS voice.
type VapiVoice struct {
	Provider string          `json:"provider"`
	VoiceID  json.RawMessage `json:"voiceId,omitempty"`
}

// VapiModel selects the LLM backing the assistant.
type VapiModel struct {
	Provider string          `json:"provider"`
	Model    json.RawMessage `json:"model,omitempty"`
}

// VapiTranscriber selects the speech-to-text engine.
type VapiTranscriber struct {
	Provider string `json:"provider"`
	Language string `json:"language"`
}
