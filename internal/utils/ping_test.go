package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceAddress(t *testing.T) {
	cases := map[string]string{
		"http://localhost:3000/api/health": "localhost:3000",
		"http://foodtrack/api/health":      "foodtrack:80",
		"https://foodtrack.example.com/":   "foodtrack.example.com:443",
		"http://[::1]:8080/":               "[::1]:8080",
	}
	for raw, want := range cases {
		got, err := ServiceAddress(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	_, err := ServiceAddress("/api/health")
	assert.Error(t, err)
}

func TestCheckHealth(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.NoError(t, CheckHealth(srv.URL+"/api/health", time.Second))

	healthy.Store(false)
	assert.ErrorContains(t, CheckHealth(srv.URL+"/api/health", time.Second), "503")
}

func TestDialRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	address := strings.TrimPrefix(srv.URL, "http://")
	require.NoError(t, Dial(address, time.Second))
	srv.Close()

	assert.ErrorContains(t, Dial(address, time.Second), "failed to connect")
}
