package netx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bluecarbonlabs/fieldsync/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestHTTPProbe_Online(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
	}))
	defer srv.Close()

	p := NewHTTPProbe(srv.URL, time.Second, logging.Nop())
	assert.True(t, p.Online(context.Background()))
}

func TestHTTPProbe_ServerErrorMeansOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewHTTPProbe(srv.URL, time.Second, logging.Nop())
	assert.False(t, p.Online(context.Background()))
}

func TestHTTPProbe_UnreachableMeansOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	p := NewHTTPProbe(srv.URL, time.Second, logging.Nop())
	assert.False(t, p.Online(context.Background()))
}

func TestHTTPProbe_BadURLMeansOffline(t *testing.T) {
	p := NewHTTPProbe("http://bad url", time.Second, logging.Nop())
	assert.False(t, p.Online(context.Background()))
}

func TestStaticProbe(t *testing.T) {
	assert.True(t, StaticProbe(true).Online(context.Background()))
	assert.False(t, StaticProbe(false).Online(context.Background()))
}
