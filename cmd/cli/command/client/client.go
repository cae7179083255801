package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrSessionExpired is returned when a request keeps getting 401 after a
// token refresh, or when the refresh itself is rejected. The stored tokens
// are cleared before it is returned.
var ErrSessionExpired = errors.New("session expired, please login again")

// Client wraps every call against the StoryNest API: it attaches the bearer
// token, retries exactly once after a transparent token refresh on 401, and
// collapses concurrent refresh attempts into a single outbound request.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu      sync.Mutex
	access  string
	refresh string

	refreshGroup     singleflight.Group
	onSessionExpired func()
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetTokens installs a token pair, typically right after login or when the
// CLI restores a persisted session.
func (c *Client) SetTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.access = access
	c.refresh = refresh
}

// Tokens returns the current pair so callers can persist it.
func (c *Client) Tokens() (access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.access, c.refresh
}

func (c *Client) ClearTokens() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.access = ""
	c.refresh = ""
}

// OnSessionExpired registers a handler fired when the session becomes
// irrecoverable. The network layer stays ignorant of what the handler does.
func (c *Client) OnSessionExpired(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSessionExpired = fn
}

// do performs a JSON request with the 401-refresh-retry-once contract. The
// body is marshalled up front so the retry can replay it safely.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	token := c.accessToken()
	resp, err := c.send(ctx, method, path, payload, token, "application/json")
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		newToken, err := c.refreshedToken(token)
		if err != nil {
			return c.expireSession()
		}

		resp, err = c.send(ctx, method, path, payload, newToken, "application/json")
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return c.expireSession()
		}
	}

	return decodeResponse(resp, out)
}

// Download fetches a binary endpoint into w with the same 401-retry-once
// semantics as do. It reports the Content-Type of the payload.
func (c *Client) Download(ctx context.Context, path string, w io.Writer) (string, error) {
	token := c.accessToken()
	resp, err := c.send(ctx, http.MethodGet, path, nil, token, "")
	if err != nil {
		return "", err
	}

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		newToken, err := c.refreshedToken(token)
		if err != nil {
			return "", c.expireSession()
		}

		resp, err = c.send(ctx, http.MethodGet, path, nil, newToken, "")
		if err != nil {
			return "", err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return "", c.expireSession()
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return "", decodeAPIError(resp.StatusCode, body)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", err
	}
	return resp.Header.Get("Content-Type"), nil
}

// PostMultipart uploads form fields plus files (form field name to path on
// disk). A 401 here is never retried automatically: the token is refreshed
// so subsequent calls work, and the error is surfaced for the caller to
// resubmit the upload deliberately.
func (c *Client) PostMultipart(ctx context.Context, method, path string, fields map[string]string, files map[string]string, out any) error {
	body, contentType, err := buildMultipart(fields, files)
	if err != nil {
		return err
	}

	token := c.accessToken()
	resp, err := c.send(ctx, method, path, body, token, contentType)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if _, err := c.refreshedToken(token); err != nil {
			return c.expireSession()
		}
		return fmt.Errorf("upload interrupted by token refresh, please retry")
	}

	return decodeResponse(resp, out)
}

func (c *Client) accessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.access
}

// refreshedToken exchanges the refresh token for a new pair. Callers pass
// the access token their failed request used: if another caller already
// rotated the pair, the fresh token is handed back without a network call,
// and concurrent callers behind the same stale token share one outbound
// refresh via singleflight.
func (c *Client) refreshedToken(stale string) (string, error) {
	c.mu.Lock()
	if c.access != "" && c.access != stale {
		token := c.access
		c.mu.Unlock()
		return token, nil
	}
	refresh := c.refresh
	c.mu.Unlock()

	if refresh == "" {
		return "", ErrSessionExpired
	}

	token, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		// A caller that lost the race to an already-settled refresh finds
		// the rotated token here instead of refreshing a second time.
		c.mu.Lock()
		if c.access != "" && c.access != stale {
			token := c.access
			c.mu.Unlock()
			return token, nil
		}
		c.mu.Unlock()

		payload, err := json.Marshal(map[string]string{"refresh": refresh})
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		resp, err := c.send(ctx, http.MethodPost, "/user/token/refresh/", payload, "", "application/json")
		if err != nil {
			return nil, err
		}

		var result RefreshResponse
		if err := decodeResponse(resp, &result); err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.access = result.AccessToken
		if result.RefreshToken != "" {
			c.refresh = result.RefreshToken
		}
		c.mu.Unlock()

		return result.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

// expireSession clears stored tokens and notifies the registered handler.
func (c *Client) expireSession() error {
	c.mu.Lock()
	c.access = ""
	c.refresh = ""
	fn := c.onSessionExpired
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
	return ErrSessionExpired
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, token, contentType string) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" && payload != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpClient.Do(req)
}

// decodeResponse consumes the body: non-2xx is normalized into an APIError,
// a 2xx body is decoded into out when requested.
func decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return decodeAPIError(resp.StatusCode, body)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func buildMultipart(fields map[string]string, files map[string]string) ([]byte, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}
	for name, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, "", err
		}
		part, err := mw.CreateFormFile(name, filepath.Base(path))
		if err != nil {
			f.Close()
			return nil, "", err
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return nil, "", err
		}
		f.Close()
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), mw.FormDataContentType(), nil
}
