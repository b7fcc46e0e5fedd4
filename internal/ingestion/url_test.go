package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`
			<html><body>
				<nav>Menu</nav>
				<article>
					<h1>Migratory Birds</h1>
					<p>Every year billions of birds cross continents.</p>
				</article>
			</body></html>`))
	}))
	defer server.Close()

	text, meta, err := IngestFromURL(context.Background(), server.URL, false, false)
	require.NoError(t, err)
	assert.Contains(t, text, "Migratory Birds")
	assert.Contains(t, text, "billions of birds")
	assert.NotContains(t, text, "Menu")

	require.NotNil(t, meta)
	assert.Equal(t, server.URL, meta.URL)
	assert.False(t, meta.Truncated)
}

func TestIngestFromURL_HTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, _, err := IngestFromURL(context.Background(), server.URL, false, false)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}

func TestIngestFromURL_InvalidURL(t *testing.T) {
	_, _, err := IngestFromURL(context.Background(), "::not-a-url::", false, false)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}
