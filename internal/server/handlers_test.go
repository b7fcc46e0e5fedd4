package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/deck-generator/internal/config"
	"github.com/jonathan/deck-generator/internal/pipeline"
	"github.com/jonathan/deck-generator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer builds a Server around a stubbed pipeline run
func newTestServer(run runFunc) *Server {
	s := &Server{}
	s.run = run
	return s
}

func stubDocument() *types.Document {
	return &types.Document{
		Title: "Test Deck",
		Slides: []types.Slide{
			{Title: "Test Deck", Layers: []types.Layer{{Type: types.LayerText, Content: "Test Deck"}}},
		},
	}
}

func stubRun(_ context.Context, _ *types.GenerationRequest, onProgress pipeline.ProgressCallback) (*types.Document, *types.PipelineRecord, error) {
	if onProgress != nil {
		onProgress(pipeline.ProgressEvent{Step: "classification", Category: "classify", Message: "Classified topic as business"})
		onProgress(pipeline.ProgressEvent{Step: "document", Category: "assemble", Message: "Assembled document with 1 slides"})
	}
	record := types.NewPipelineRecord("test topic")
	record.Complete()
	return stubDocument(), record, nil
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(stubRun)
	ts := httptest.NewServer(s.routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleGenerate(t *testing.T) {
	s := newTestServer(stubRun)
	ts := httptest.NewServer(s.routes())
	defer ts.Close()

	reqBody := `{"topic":"the history of cartography"}`
	resp, err := http.Post(ts.URL+"/generate", "application/json", strings.NewReader(reqBody))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body GenerateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.Document)
	assert.Equal(t, "Test Deck", body.Document.Title)
	require.NotNil(t, body.Record)
	assert.Equal(t, "test topic", body.Record.Topic)
}

func TestHandleGenerate_InvalidBody(t *testing.T) {
	s := newTestServer(stubRun)
	ts := httptest.NewServer(s.routes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/generate", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleGenerate_PipelineErrors(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		wantStatus int
	}{
		{"invalid request", pipeline.CodeInvalidRequest, http.StatusBadRequest},
		{"classification failed", pipeline.CodeClassificationFailed, http.StatusBadGateway},
		{"generation failed", pipeline.CodeGenerationFailed, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(func(_ context.Context, _ *types.GenerationRequest, _ pipeline.ProgressCallback) (*types.Document, *types.PipelineRecord, error) {
				return nil, nil, &pipeline.Error{Code: tt.code}
			})
			ts := httptest.NewServer(s.routes())
			defer ts.Close()

			resp, err := http.Post(ts.URL+"/generate", "application/json", strings.NewReader(`{"topic":"t"}`))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestHandleGenerateStream(t *testing.T) {
	s := newTestServer(stubRun)
	ts := httptest.NewServer(s.routes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/generate/stream", "application/json", strings.NewReader(`{"topic":"t"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)

	assert.Contains(t, body, "event: step")
	assert.Contains(t, body, "Classified topic as business")
	assert.Contains(t, body, "event: document")
	assert.Contains(t, body, "Test Deck")
	assert.Contains(t, body, "event: complete")
	assert.Contains(t, body, `"status":"completed"`)
}

func TestHandleGenerateStream_PipelineError(t *testing.T) {
	s := newTestServer(func(_ context.Context, _ *types.GenerationRequest, _ pipeline.ProgressCallback) (*types.Document, *types.PipelineRecord, error) {
		return nil, nil, &pipeline.Error{Code: pipeline.CodeGenerationFailed}
	})
	ts := httptest.NewServer(s.routes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/generate/stream", "application/json", strings.NewReader(`{"topic":"t"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(raw), "event: error")
	assert.NotContains(t, string(raw), "event: complete")
}

func TestRunEndpoints_WithoutDatabase(t *testing.T) {
	s := newTestServer(stubRun)
	ts := httptest.NewServer(s.routes())
	defer ts.Close()

	paths := []string{
		"/runs",
		"/runs/" + uuid.New().String(),
		"/runs/" + uuid.New().String() + "/document",
	}
	for _, path := range paths {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, path)
	}
}

func TestHandleToken_NotConfigured(t *testing.T) {
	s := newTestServer(stubRun)
	ts := httptest.NewServer(s.routes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/auth/token", "application/json", strings.NewReader(`{"password":"pw"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHandleToken(t *testing.T) {
	passwords := &config.PasswordConfig{BcryptCost: 10}
	hash, err := passwords.HashPassword("correct horse")
	require.NoError(t, err)

	s := newTestServer(stubRun)
	s.jwtService = NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	s.passwords = passwords
	s.accessHash = hash

	ts := httptest.NewServer(s.routes())
	defer ts.Close()

	t.Run("wrong password", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/auth/token", "application/json", strings.NewReader(`{"password":"wrong"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("correct password", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/auth/token", "application/json", strings.NewReader(`{"password":"correct horse"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body TokenResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.NotEmpty(t, body.Token)
		assert.Equal(t, 1, body.ExpirationHours)

		claims, err := s.jwtService.ValidateToken(body.Token)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, claims.GetSessionID())
	})
}

func TestGenerateRequiresTokenWhenAuthConfigured(t *testing.T) {
	s := newTestServer(stubRun)
	s.jwtService = NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})

	ts := httptest.NewServer(s.routes())
	defer ts.Close()

	body := func() io.Reader { return bytes.NewReader([]byte(`{"topic":"t"}`)) }

	resp, err := http.Post(ts.URL+"/generate", "application/json", body())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "missing token rejected")

	token, err := s.jwtService.GenerateToken(uuid.New())
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/generate", body())
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "valid token accepted")
}

func TestCORSPreflights(t *testing.T) {
	s := newTestServer(stubRun)
	ts := httptest.NewServer(s.routes())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/generate", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
