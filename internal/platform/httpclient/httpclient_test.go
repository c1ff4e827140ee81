package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsInvalidBaseURL(t *testing.T) {
	_, err := New(time.Second, WithBaseURL("not a url"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidBase))
}

func TestDo_SendsJSONAndHeaders(t *testing.T) {
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/things", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "yes", r.Header.Get("X-Extra"))

		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	c, err := New(time.Second, WithBaseURL(ts.URL+"/"))
	require.NoError(t, err)

	var out struct {
		OK bool `json:"ok"`
	}
	err = c.Do(context.Background(), Request{
		Method:  http.MethodPost,
		Path:    "rest/v1/things",
		Headers: map[string]string{"X-Extra": "yes", " ": "skip"},
		Body:    map[string]any{"age": 30},
		Out:     &out,
	})
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.EqualValues(t, 30, gotBody["age"])
}

func TestDo_Non2xxReturnsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("  duplicate key  "))
	}))
	defer ts.Close()

	c, err := New(time.Second)
	require.NoError(t, err)

	err = c.Do(context.Background(), Request{Method: http.MethodPost, Path: ts.URL, Body: map[string]any{}})

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusConflict, httpErr.StatusCode)
	assert.Equal(t, "  duplicate key  ", httpErr.Body)
}

func TestDo_RelativePathWithoutBase(t *testing.T) {
	c, err := New(0)
	require.NoError(t, err)

	err = c.Do(context.Background(), Request{Path: "/x"})
	assert.ErrorIs(t, err, ErrNoBaseURL)

	err = c.Do(context.Background(), Request{Path: "  "})
	assert.ErrorIs(t, err, ErrEmptyURL)
}

func TestDo_NilClient(t *testing.T) {
	var c *Client
	assert.ErrorIs(t, c.Do(context.Background(), Request{Path: "http://x"}), ErrNilClient)
}
