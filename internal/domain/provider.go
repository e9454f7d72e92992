// Package domain contains the core business entities and value objects.
// These structs are framework-agnostic and represent the heart of the application.
package domain

// ProviderType identifies a voice-agent vendor.
type ProviderType string

const (
	ProviderVapi   ProviderType = "vapi"
	ProviderRetell ProviderType = "retell"
)

// SupportedProviders lists every provider the gateway can create agents on.
var SupportedProviders = []ProviderType{ProviderVapi, ProviderRetell}

// IsValid reports whether p is one of the supported providers.
func (p ProviderType) IsValid() bool {
	switch p {
	case ProviderVapi, ProviderRetell:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (p ProviderType) String() string {
	return string(p)
}
