package transport_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prismslink/internal/domain"
	"prismslink/internal/transport"
)

func TestSend_PostsForm(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		got = r
		_, _ = w.Write([]byte(`[{"method":"init"}]`))
	}))
	defer srv.Close()

	c := transport.NewHTTP(srv.URL)
	body, err := c.Send(context.Background(), domain.WireRequest{
		"method": "init", "app": "Manager", "data": `{"a":1}`,
	})
	require.NoError(t, err)
	assert.Equal(t, `[{"method":"init"}]`, string(body))

	require.NotNil(t, got)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "no-cache", got.Header.Get("Cache-Control"))
	assert.Equal(t, "init", got.PostForm.Get("method"))
	assert.Equal(t, "Manager", got.PostForm.Get("app"))
	assert.Equal(t, `{"a":1}`, got.PostForm.Get("data"))
}

func TestSend_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := transport.NewHTTP(srv.URL).Send(context.Background(), domain.WireRequest{"method": "init"})
	var te *domain.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, domain.TransportStatus, te.Kind)
	assert.Equal(t, http.StatusInternalServerError, te.Status)
	assert.True(t, errors.Is(err, domain.ErrTransport))
}

func TestSend_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := transport.NewHTTP(addr).Send(context.Background(), domain.WireRequest{"method": "init"})
	var te *domain.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, domain.TransportUnreachable, te.Kind)
}

func TestSend_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := transport.NewHTTP(srv.URL).Send(ctx, domain.WireRequest{"method": "getEvents"})
	var te *domain.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, domain.TransportTimeout, te.Kind)
}
