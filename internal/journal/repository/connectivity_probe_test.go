package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"trading-journal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestHTTPConnectivityProbe(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	probe := NewHTTPConnectivityProbe(srv.URL, time.Second, logger.NewNop())
	ctx := context.Background()

	assert.True(t, probe.IsOnline(ctx))

	status.Store(http.StatusFound)
	assert.True(t, probe.IsOnline(ctx), "redirects still mean the host is reachable")

	status.Store(http.StatusBadGateway)
	assert.False(t, probe.IsOnline(ctx))
}

func TestHTTPConnectivityProbeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	assert.False(t, NewHTTPConnectivityProbe(url, 200*time.Millisecond, logger.NewNop()).IsOnline(context.Background()))
	assert.False(t, NewHTTPConnectivityProbe("", time.Second, logger.NewNop()).IsOnline(context.Background()))
}
