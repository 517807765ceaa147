package amadeus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUpstream(t *testing.T, tokenCalls *int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(tokenCalls, 1)
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.Form.Get("grant_type") != "client_credentials" ||
			r.Form.Get("client_id") != "key" || r.Form.Get("client_secret") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"Bearer","expires_in":1799}`))
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errors":[{"detail":"missing token"}]}`))
			return
		}
		if r.URL.Query().Get("originLocationCode") == "XXX" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"errors":[{"detail":"unknown origin"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPFetcher_AttachesTokenAndReusesIt(t *testing.T) {
	var tokenCalls int32
	srv := newUpstream(t, &tokenCalls)

	f := NewHTTPFetcher(FetcherConfig{BaseURL: srv.URL, ClientID: "key", ClientSecret: "secret"})

	for i := 0; i < 3; i++ {
		ok, body, err := f.Fetch(context.Background(), srv.URL+"/v2/shopping/flight-offers?originLocationCode=CDG")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `{"data":[]}`, string(body))
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))
}

func TestHTTPFetcher_NonSuccessKeepsBody(t *testing.T) {
	var tokenCalls int32
	srv := newUpstream(t, &tokenCalls)

	f := NewHTTPFetcher(FetcherConfig{BaseURL: srv.URL, ClientID: "key", ClientSecret: "secret", RequestsPerSecond: 100})

	ok, body, err := f.Fetch(context.Background(), srv.URL+"/v2/shopping/flight-offers?originLocationCode=XXX")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, string(body), "unknown origin")
}

func TestHTTPFetcher_BadCredentialsIsTransportError(t *testing.T) {
	var tokenCalls int32
	srv := newUpstream(t, &tokenCalls)

	f := NewHTTPFetcher(FetcherConfig{BaseURL: srv.URL, ClientID: "key", ClientSecret: "wrong"})

	_, _, err := f.Fetch(context.Background(), srv.URL+"/v2/shopping/flight-offers")
	assert.Error(t, err)
}

func TestHTTPFetcher_CancelledContext(t *testing.T) {
	var tokenCalls int32
	srv := newUpstream(t, &tokenCalls)

	f := NewHTTPFetcher(FetcherConfig{BaseURL: srv.URL, ClientID: "key", ClientSecret: "secret", RequestsPerSecond: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := f.Fetch(ctx, srv.URL+"/v2/shopping/flight-offers")
	assert.Error(t, err)
}
