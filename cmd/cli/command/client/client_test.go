package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenServer simulates the API's auth behavior: requests bearing anything
// but the current access token get 401, the refresh endpoint rotates the
// pair and counts how often it was hit.
type tokenServer struct {
	mu           sync.Mutex
	access       string
	refresh      string
	refreshCalls int32
	failRefresh  bool
}

func newTokenServer() *tokenServer {
	return &tokenServer{access: "access-1", refresh: "refresh-1"}
}

func (s *tokenServer) handler(t *testing.T, resource http.HandlerFunc) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.refreshCalls, 1)

		if s.failRefresh {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "refresh token revoked"})
			return
		}

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		s.mu.Lock()
		require.Equal(t, s.refresh, body["refresh"])
		s.access = "access-2"
		s.refresh = "refresh-2"
		s.mu.Unlock()

		json.NewEncoder(w).Encode(RefreshResponse{
			AccessToken:  "access-2",
			RefreshToken: "refresh-2",
			TokenType:    "Bearer",
			ExpiresIn:    900,
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		current := "Bearer " + s.access
		s.mu.Unlock()

		if r.Header.Get("Authorization") != current {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid token"})
			return
		}
		resource(w, r)
	})
	return mux
}

func TestSingleFlightRefresh(t *testing.T) {
	ts := newTokenServer()
	var resourceHits int32
	srv := httptest.NewServer(ts.handler(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&resourceHits, 1)
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetTokens("stale-access", "refresh-1")

	const n = 10
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var out map[string]string
			errs[i] = c.do(context.Background(), http.MethodGet, "/resource", nil, &out)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "request %d", i)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&ts.refreshCalls), "concurrent 401s must share one refresh")

	access, refresh := c.Tokens()
	assert.Equal(t, "access-2", access)
	assert.Equal(t, "refresh-2", refresh)
}

func TestRetryOnceBound(t *testing.T) {
	// The resource rejects everything, so the flow is 401, refresh,
	// retry, 401 again, terminal session-expired error.
	ts := newTokenServer()
	var resourceHits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/user/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&ts.refreshCalls, 1)
		json.NewEncoder(w).Encode(RefreshResponse{AccessToken: "access-2", RefreshToken: "refresh-2"})
	})
	mux.HandleFunc("/resource", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&resourceHits, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	c.SetTokens("stale-access", "refresh-1")

	expired := false
	c.OnSessionExpired(func() { expired = true })

	err := c.do(context.Background(), http.MethodGet, "/resource", nil, nil)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.EqualValues(t, 2, atomic.LoadInt32(&resourceHits), "exactly one retry")
	assert.EqualValues(t, 1, atomic.LoadInt32(&ts.refreshCalls))
	assert.True(t, expired, "session-expired handler must fire")

	access, refresh := c.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestFailedRefreshEndsSession(t *testing.T) {
	ts := newTokenServer()
	ts.failRefresh = true
	srv := httptest.NewServer(ts.handler(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetTokens("stale-access", "refresh-1")

	var expirations int32
	c.OnSessionExpired(func() { atomic.AddInt32(&expirations, 1) })

	err := c.do(context.Background(), http.MethodGet, "/resource", nil, nil)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.EqualValues(t, 1, atomic.LoadInt32(&expirations))

	access, refresh := c.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestTokenPersistenceRoundTrip(t *testing.T) {
	var sawHeader string
	mux := http.NewServeMux()
	mux.HandleFunc("/user/login/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(AuthResponse{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			Email:        "reader@example.com",
		})
	})
	mux.HandleFunc("/resource", func(w http.ResponseWriter, r *http.Request) {
		sawHeader = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "reader@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, c.do(context.Background(), http.MethodGet, "/resource", nil, nil))
	assert.Equal(t, "Bearer access-1", sawHeader)

	c.ClearTokens()
	require.NoError(t, c.do(context.Background(), http.MethodGet, "/resource", nil, nil))
	assert.Empty(t, sawHeader, "no Authorization header after logout")
}

func TestMultipartNoRetry(t *testing.T) {
	ts := newTokenServer()
	var uploadHits int32
	srv := httptest.NewServer(ts.handler(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&uploadHits, 1)
		json.NewEncoder(w).Encode(map[string]string{"message": "created"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetTokens("stale-access", "refresh-1")

	file := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(file, []byte("jpeg-bytes"), 0o600))

	err := c.PostMultipart(context.Background(), http.MethodPost, "/upload",
		map[string]string{"child_name": "Mila"},
		map[string]string{"child_image": file}, nil)
	require.Error(t, err, "multipart 401 must surface, not resend")
	assert.NotErrorIs(t, err, ErrSessionExpired)
	assert.EqualValues(t, 0, atomic.LoadInt32(&uploadHits), "the stale upload never reaches the handler twice")
	assert.EqualValues(t, 1, atomic.LoadInt32(&ts.refreshCalls), "the token is still refreshed in the background")

	// The refreshed token makes the resubmission succeed.
	err = c.PostMultipart(context.Background(), http.MethodPost, "/upload",
		map[string]string{"child_name": "Mila"},
		map[string]string{"child_image": file}, nil)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&uploadHits))
}

func TestDownloadRetriesOnceAfterRefresh(t *testing.T) {
	ts := newTokenServer()
	srv := httptest.NewServer(ts.handler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 content"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetTokens("stale-access", "refresh-1")

	var buf bytes.Buffer
	contentType, err := c.Download(context.Background(), "/books/bookfile/1/", &buf)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.Equal(t, "%PDF-1.4 content", buf.String())
	assert.EqualValues(t, 1, atomic.LoadInt32(&ts.refreshCalls))
}

func TestSequentialStaleTokenSkipsSecondRefresh(t *testing.T) {
	ts := newTokenServer()
	srv := httptest.NewServer(ts.handler(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetTokens("stale-access", "refresh-1")

	require.NoError(t, c.do(context.Background(), http.MethodGet, "/a", nil, nil))
	require.NoError(t, c.do(context.Background(), http.MethodGet, "/b", nil, nil))
	assert.EqualValues(t, 1, atomic.LoadInt32(&ts.refreshCalls), "the second call uses the rotated token directly")
}
