package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	model "github.com/IgorGreusunset/shortener-ui/internal/app"
	"github.com/IgorGreusunset/shortener-ui/internal/client"
	"github.com/IgorGreusunset/shortener-ui/internal/clipboard"
	"github.com/IgorGreusunset/shortener-ui/internal/form"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClipboard struct {
	mu      sync.Mutex
	written []string
	err     error
}

func (c *fakeClipboard) write(ctx context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.written = append(c.written, text)
	return nil
}

func (c *fakeClipboard) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.written...)
}

func newTestUI(t *testing.T, endpoint http.HandlerFunc, cb *fakeClipboard) *resty.Client {
	t.Helper()

	api := httptest.NewServer(endpoint)
	t.Cleanup(api.Close)

	f := form.New(client.New(api.URL, time.Second, nil), clipboard.Func(cb.write),
		form.WithCopyResetAfter(50*time.Millisecond),
	)
	t.Cleanup(func() { f.Close() })

	ui := httptest.NewServer(newRouter(f, zap.NewNop()))
	t.Cleanup(ui.Close)

	rc := resty.New().
		SetBaseURL(ui.URL).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))
	return rc
}

func getState(t *testing.T, rc *resty.Client) model.FormState {
	t.Helper()
	resp, err := rc.R().Get("/api/state")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	var state model.FormState
	require.NoError(t, json.Unmarshal(resp.Body(), &state))
	return state
}

func TestShortenAndCopy(t *testing.T) {
	endpoint := func(res http.ResponseWriter, req *http.Request) {
		var body model.ShortenRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.LongURL == "" {
			res.WriteHeader(http.StatusBadRequest)
			return
		}
		res.Header().Set("Content-Type", "application/json")
		res.Write([]byte(`{"shortUrl":"https://s.example/abc"}`))
	}
	cb := &fakeClipboard{}
	rc := newTestUI(t, endpoint, cb)

	resp, err := rc.R().Get("/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, resp.String(), "Shorten URL")
	assert.NotEmpty(t, resp.Header().Get("X-Request-ID"))

	resp, err = rc.R().SetFormData(map[string]string{"longUrl": "https://practicum.yandex.ru/"}).Post("/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode())
	assert.Equal(t, "/", resp.Header().Get("Location"))

	state := getState(t, rc)
	assert.Equal(t, "https://s.example/abc", state.ShortURL)
	assert.Empty(t, state.LongURL)
	assert.Equal(t, model.PhaseSuccess, state.Phase)

	resp, err = rc.R().Post("/copy")
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode())
	assert.Equal(t, model.CopyDone, getState(t, rc).CopyStatus)
	assert.Equal(t, []string{"https://s.example/abc"}, cb.all())

	resp, err = rc.R().Get("/")
	require.NoError(t, err)
	assert.Contains(t, resp.String(), "Copied!")

	require.Eventually(t, func() bool {
		return getState(t, rc).CopyStatus == model.CopyReady
	}, time.Second, 10*time.Millisecond)
}

func TestShortenAPIFailure(t *testing.T) {
	endpoint := func(res http.ResponseWriter, req *http.Request) {
		io.Copy(io.Discard, req.Body)
		res.WriteHeader(http.StatusInternalServerError)
		res.Write([]byte("lambda crashed"))
	}
	rc := newTestUI(t, endpoint, &fakeClipboard{})

	resp, err := rc.R().SetFormData(map[string]string{"longUrl": "https://mail.ru/"}).Post("/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode())

	state := getState(t, rc)
	assert.Equal(t, model.ErrorMessage, state.Error)
	assert.Empty(t, state.ShortURL)
	assert.False(t, state.IsLoading)

	resp, err = rc.R().Get("/")
	require.NoError(t, err)
	assert.Contains(t, resp.String(), "Error: Failed to shorten URL. Check the URL and API status.")
	assert.NotContains(t, resp.String(), "lambda crashed")
}

func TestCopyFailureShown(t *testing.T) {
	endpoint := func(res http.ResponseWriter, req *http.Request) {
		res.Write([]byte(`{"shortUrl":"https://s.example/abc"}`))
	}
	rc := newTestUI(t, endpoint, &fakeClipboard{err: errors.New("permission denied")})

	_, err := rc.R().SetFormData(map[string]string{"longUrl": "https://mail.ru/"}).Post("/")
	require.NoError(t, err)

	resp, err := rc.R().Post("/copy")
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode())

	time.Sleep(150 * time.Millisecond)
	state := getState(t, rc)
	assert.Equal(t, model.CopyFailed, state.CopyStatus)
	assert.Empty(t, state.Error)
}

func TestRouterRejections(t *testing.T) {
	rc := newTestUI(t, func(res http.ResponseWriter, req *http.Request) {
		t.Error("endpoint must not be called")
	}, &fakeClipboard{})

	tests := []struct {
		name         string
		method       string
		path         string
		form         map[string]string
		expectedCode int
	}{
		{name: "invalid_url", method: http.MethodPost, path: "/", form: map[string]string{"longUrl": "not a url"}, expectedCode: http.StatusBadRequest},
		{name: "empty_url", method: http.MethodPost, path: "/", form: map[string]string{"longUrl": ""}, expectedCode: http.StatusBadRequest},
		{name: "copy_without_result", method: http.MethodPost, path: "/copy", expectedCode: http.StatusBadRequest},
		{name: "ping", method: http.MethodGet, path: "/ping", expectedCode: http.StatusOK},
		{name: "unknown_route", method: http.MethodGet, path: "/nope", expectedCode: http.StatusNotFound},
		{name: "wrong_method", method: http.MethodDelete, path: "/", expectedCode: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := rc.R()
			if tt.form != nil {
				req.SetFormData(tt.form)
			}
			resp, err := req.Execute(tt.method, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCode, resp.StatusCode())
		})
	}
}
