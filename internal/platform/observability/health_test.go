package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_Routes(t *testing.T) {
	logger := zerolog.Nop()

	api := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	notReady := errors.New("warming up")
	ready := notReady

	srv := NewServer(ServerOptions{Port: 0}, api, func(context.Context) error { return ready }, &logger)
	h := srv.Handler()

	tests := []struct {
		name     string
		path     string
		wantCode int
	}{
		{"healthz", "/healthz", http.StatusOK},
		{"readyz not ready", "/readyz", http.StatusServiceUnavailable},
		{"metrics", "/metrics", http.StatusOK},
		{"api mounted", "/v1/entities", http.StatusTeapot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}

	ready = nil

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestNewServer_DefaultTimeouts(t *testing.T) {
	logger := zerolog.Nop()

	srv := NewServer(ServerOptions{Port: 8080}, nil, nil, &logger)

	assert.Equal(t, defaultReadHeaderTimeout, srv.opts.ReadHeaderTimeout)
	assert.Equal(t, defaultShutdownTimeout, srv.opts.ShutdownTimeout)
}
