package matchproxy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireloop/hireloop/internal/ports"
)

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name    string
		opts    ClientOptions
		wantErr string
	}{
		{name: "missing base URL", opts: ClientOptions{}, wantErr: "base URL is required"},
		{name: "bad scheme", opts: ClientOptions{BaseURL: "ftp://match"}, wantErr: "invalid base URL scheme"},
		{name: "bad score path", opts: ClientOptions{BaseURL: "http://match", ScorePath: "]["}, wantErr: "invalid score path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClient_Score(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/match", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var in ports.MatchInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Go Engineer", in.JobTitle)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":{"fit":87.5}}`))
	}))
	defer srv.Close()

	client, err := NewClient(ClientOptions{
		BaseURL:   srv.URL,
		ScorePath: "result.fit",
		APIKey:    "secret",
	})
	require.NoError(t, err)

	score, err := client.Score(context.Background(), ports.MatchInput{
		JobTitle:        "Go Engineer",
		CandidateSkills: []string{"go", "postgres"},
	})
	require.NoError(t, err)
	assert.InDelta(t, 87.5, score, 0.001)
}

func TestClient_Score_DefaultPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"score":42}`))
	}))
	defer srv.Close()

	client, err := NewClient(ClientOptions{BaseURL: srv.URL})
	require.NoError(t, err)

	score, err := client.Score(context.Background(), ports.MatchInput{})
	require.NoError(t, err)
	assert.InDelta(t, 42, score, 0.001)
}

func TestClient_Score_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name:    "non-2xx status",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) },
			wantErr: "status 502",
		},
		{
			name:    "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("not json")) },
			wantErr: "decode match response",
		},
		{
			name:    "non-numeric score",
			handler: func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`{"score":"high"}`)) },
			wantErr: "did not yield a number",
		},
		{
			name:    "score out of range",
			handler: func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`{"score":250}`)) },
			wantErr: "outside 0..100",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client, err := NewClient(ClientOptions{BaseURL: srv.URL})
			require.NoError(t, err)

			_, err = client.Score(context.Background(), ports.MatchInput{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
