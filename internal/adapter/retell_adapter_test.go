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

func TestMapToRetellPayload(t *testing.T) {
	tests := []struct {
		name  string
		input domain.CreationRequest
		want  string
	}{
		{
			name: "full request",
			input: domain.CreationRequest{
				Provider: jsonString("retell"),
				Name:     jsonString("Bot"),
				VoiceID:  jsonString("v1"),
				LLMID:    jsonString("l1"),
			},
			want: `{
				"response_engine": {"llm_id": "l1", "type": "retell-llm"},
				"voice_id": "v1",
				"agent_name": "Bot"
			}`,
		},
		{
			name: "vapi-only fields are dropped",
			input: domain.CreationRequest{
				Name:         jsonString("Bot"),
				VoiceID:      jsonString("v1"),
				LLMID:        jsonString("l1"),
				Model:        jsonString("m1"),
				FirstMessage: jsonString("Hi"),
			},
			want: `{
				"response_engine": {"llm_id": "l1", "type": "retell-llm"},
				"voice_id": "v1",
				"agent_name": "Bot"
			}`,
		},
		{
			name: "non-string values are forwarded unchanged",
			input: domain.CreationRequest{
				Name:    json.RawMessage(`false`),
				VoiceID: json.RawMessage(`7`),
				LLMID:   json.RawMessage(`42`),
			},
			want: `{
				"response_engine": {"llm_id": 42, "type": "retell-llm"},
				"voice_id": 7,
				"agent_name": false
			}`,
		},
		{
			name:  "absent name and voice are omitted",
			input: domain.CreationRequest{LLMID: jsonString("l1")},
			want:  `{"response_engine": {"llm_id": "l1", "type": "retell-llm"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(MapToRetellPayload(tt.input))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestRetellAdapter_CreateAgent(t *testing.T) {
	var (
		gotAuth string
		gotBody []byte
	)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"agent_id":"agent_9","agent_name":"Bot"}`))
	}))
	defer upstream.Close()

	retell := NewRetellAdapter("retell-secret", WithEndpoint(upstream.URL+"/"))
	assert.Equal(t, domain.ProviderRetell, retell.Name())

	result, err := retell.CreateAgent(context.Background(), domain.CreationRequest{
		Name:    jsonString("Bot"),
		VoiceID: jsonString("v1"),
		LLMID:   jsonString("l1"),
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"agent_id":"agent_9","agent_name":"Bot"}`, string(result))
	assert.Equal(t, "Bearer retell-secret", gotAuth)
	assert.JSONEq(t, `{
		"response_engine": {"llm_id": "l1", "type": "retell-llm"},
		"voice_id": "v1",
		"agent_name": "Bot"
	}`, string(gotBody))
}
