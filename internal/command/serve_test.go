package command

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sssecrets/go-sssecrets/internal/config"
	"github.com/sssecrets/go-sssecrets/token"
)

func testRuntime(t *testing.T) *Runtime {
	t.Helper()

	engine, err := token.New("t", "k")
	require.NoError(t, err)

	log := logrus.New()
	log.Out = io.Discard

	return &Runtime{
		Config: &config.Config{
			Org:     "t",
			Type:    "k",
			Padding: config.PaddingLeft,
			Serve:   config.ServeConfig{Addr: "127.0.0.1:0", MetricsPath: "/metrics"},
		},
		Engine: engine,
		Log:    log,
	}
}

func TestNewServeHandler(t *testing.T) {
	handler, err := NewServeHandler(testRuntime(t), prometheus.NewRegistry())
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tests := []struct {
		name       string
		path       string
		header     string
		value      string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "bearer token",
			path:       "/",
			header:     "Authorization",
			value:      "Bearer " + validToken,
			wantStatus: http.StatusOK,
			wantBody:   `{"kind":"token","prefix":"tk","secret":"tk_[REDACTED]14nosQ"}` + "\n",
		},
		{
			name:       "api key header",
			path:       "/anything",
			header:     "X-API-Key",
			value:      validHeader,
			wantStatus: http.StatusOK,
			wantBody:   `{"kind":"header","prefix":"tk","secret":"tk_1e6YXE_[REDACTED]"}` + "\n",
		},
		{
			name:       "missing secret",
			path:       "/",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"Secret is missing."}`,
		},
		{
			name:       "tampered secret",
			path:       "/",
			header:     "Authorization",
			value:      "Bearer " + tamperedToken,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"Secret is invalid."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, server.URL+tt.path, nil)
			require.NoError(t, err)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}

			res, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer res.Body.Close()

			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, res.StatusCode)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}

	t.Run("metrics are public and record checks", func(t *testing.T) {
		res, err := http.Get(server.URL + "/metrics")
		require.NoError(t, err)
		defer res.Body.Close()

		body, err := io.ReadAll(res.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, string(body), `result="valid"`)
		assert.Contains(t, string(body), `result="checksum_mismatch"`)
	})
}
