// Package adapter provides implementations for external voice-agent provider integrations.
// It uses the Adapter pattern to abstract provider-specific APIs behind a common interface.
package adapter

import (
	"context"
	"encoding/json"

	"github.com/hpn/voice-agent-gateway/internal/domain"
)

// AgentProvider defines the interface for voice-agent provider adapters.
// All provider implementations must satisfy this interface.
type AgentProvider interface {
	// CreateAgent maps the unified request into the provider payload, issues
	// exactly one POST and returns the provider's response body untouched.
	// Failures are *domain.UpstreamError or *domain.NetworkError.
	CreateAgent(ctx context.Context, req domain.CreationRequest) (json.RawMessage, error)

	// Name returns the provider's identifier.
	Name() domain.ProviderType

	// HasCredentials reports whether an API key was configured.
	HasCredentials() bool
}
