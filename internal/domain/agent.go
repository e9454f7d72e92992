package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Validation messages returned to clients verbatim.
const (
	MsgInvalidProvider    = "Invalid provider. Use 'vapi' or 'retell'."
	MsgVapiMissingFields  = "Missing required fields for VAPI agent"
	MsgRetellMissingLLMID = "Missing required llm_id for Retell agent"
)

// CreationRequest is the provider-agnostic body accepted by POST /create-agent.
// Fields hold the caller's raw JSON values. An absent field stays nil and is
// left out of the outbound payload; a present one is forwarded unchanged,
// whatever its JSON type.
type CreationRequest struct {
	Provider     json.RawMessage `json:"provider"`
	Name         json.RawMessage `json:"name"`
	FirstMessage json.RawMessage `json:"firstMessage"`
	VoiceID      json.RawMessage `json:"voiceId"`
	Model        json.RawMessage `json:"model"`
	LLMID        json.RawMessage `json:"llm_id"`
}

// ProviderName returns provider when it is a JSON string, "" otherwise.
func (r CreationRequest) ProviderName() string {
	var name string
	if err := json.Unmarshal(r.Provider, &name); err != nil {
		return ""
	}
	return name
}

// Validate checks the request in order and returns the first failure as a
// *ValidationError. On success it returns the parsed provider.
func (r CreationRequest) Validate() (ProviderType, error) {
	provider := ProviderType(r.ProviderName())
	if !provider.IsValid() {
		return "", NewValidationError(MsgInvalidProvider)
	}

	switch provider {
	case ProviderVapi:
		if IsFalsy(r.Model) || IsFalsy(r.FirstMessage) {
			return "", NewValidationError(MsgVapiMissingFields)
		}
	case ProviderRetell:
		if IsFalsy(r.LLMID) {
			return "", NewValidationError(MsgRetellMissingLLMID)
		}
	}

	return provider, nil
}

// IsFalsy reports whether raw is absent or one of the JSON values that count
// as "not provided": null, false, "" and any zero number.
func IsFalsy(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return true
	}

	switch trimmed[0] {
	case 'n', 'f':
		return string(trimmed) == "null" || string(trimmed) == "false"
	case '"':
		return string(trimmed) == `""`
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(trimmed), 64)
		return err == nil && f == 0
	}
	return false
}
