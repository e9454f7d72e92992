package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hpn/voice-agent-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jsonString encodes s as a raw JSON string value.
func jsonString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

func TestMapToVapiPayload(t *testing.T) {
	tests := []struct {
		name  string
		input domain.CreationRequest
		want  string
	}{
		{
			name: "full request",
			input: domain.CreationRequest{
				Provider:     jsonString("vapi"),
				Name:         jsonString("Bot"),
				FirstMessage: jsonString("Hi"),
				VoiceID:      jsonString("v1"),
				Model:        jsonString("m1"),
			},
			want: `{
				"name": "Bot",
				"firstMessage": "Hi",
				"voice": {"provider": "azure", "voiceId": "v1"},
				"model": {"provider": "anyscale", "model": "m1"},
				"transcriber": {"provider": "assembly-ai", "language": "en"}
			}`,
		},
		{
			name: "absent name and voice are omitted",
			input: domain.CreationRequest{
				FirstMessage: jsonString("Hi"),
				Model:        jsonString("m1"),
			},
			want: `{
				"firstMessage": "Hi",
				"voice": {"provider": "azure"},
				"model": {"provider": "anyscale", "model": "m1"},
				"transcriber": {"provider": "assembly-ai", "language": "en"}
			}`,
		},
		{
			name: "empty name is forwarded",
			input: domain.CreationRequest{
				Name:         jsonString(""),
				FirstMessage: jsonString("Hi"),
				VoiceID:      jsonString(""),
				Model:        jsonString("m1"),
			},
			want: `{
				"name": "",
				"firstMessage": "Hi",
				"voice": {"provider": "azure", "voiceId": ""},
				"model": {"provider": "anyscale", "model": "m1"},
				"transcriber": {"provider": "assembly-ai", "language": "en"}
			}`,
		},
		{
			name: "non-string values are forwarded unchanged",
			input: domain.CreationRequest{
				Name:         json.RawMessage(`null`),
				FirstMessage: jsonString("Hi"),
				VoiceID:      json.RawMessage(`7`),
				Model:        json.RawMessage(`{"id":"m1"}`),
			},
			want: `{
				"name": null,
				"firstMessage": "Hi",
				"voice": {"provider": "azure", "voiceId": 7},
				"model": {"provider": "anyscale", "model": {"id": "m1"}},
				"transcriber": {"provider": "assembly-ai", "language": "en"}
			}`,
		},
		{
			name: "llm_id is not part of the vapi payload",
			input: domain.CreationRequest{
				FirstMessage: jsonString("Hi"),
				Model:        jsonString("m1"),
				LLMID:        jsonString("l1"),
			},
			want: `{
				"firstMessage": "Hi",
				"voice": {"provider": "azure"},
				"model": {"provider": "anyscale", "model": "m1"},
				"transcriber": {"provider": "assembly-ai", "language": "en"}
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(MapToVapiPayload(tt.input))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestVapiAdapter_CreateAgent(t *testing.T) {
	var (
		gotMethod string
		gotAuth   string
		gotType   string
		gotBody   []byte
	)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"asst_123","name":"Bot"}`))
	}))
	defer upstream.Close()

	vapi := NewVapiAdapter("vapi-secret", WithEndpoint(upstream.URL))
	assert.Equal(t, domain.ProviderVapi, vapi.Name())

	result, err := vapi.CreateAgent(context.Background(), domain.CreationRequest{
		Name:         jsonString("Bot"),
		FirstMessage: jsonString("Hi"),
		VoiceID:      jsonString("v1"),
		Model:        jsonString("m1"),
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"asst_123","name":"Bot"}`, string(result))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "Bearer vapi-secret", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.JSONEq(t, `{
		"name": "Bot",
		"firstMessage": "Hi",
		"voice": {"provider": "azure", "voiceId": "v1"},
		"model": {"provider": "anyscale", "model": "m1"},
		"transcriber": {"provider": "assembly-ai", "language": "en"}
	}`, string(gotBody))
}

func TestNewVapiAdapter_Defaults(t *testing.T) {
	vapi := NewVapiAdapter("key")

	assert.Equal(t, DefaultVapiURL, vapi.url)
	assert.Zero(t, vapi.httpClient.Timeout)
	assert.True(t, vapi.HasCredentials())
	assert.False(t, NewRetellAdapter("").HasCredentials())
}
