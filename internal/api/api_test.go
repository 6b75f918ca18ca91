package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadImage(t *testing.T) {
	t.Run("returns url on success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/images", r.URL.Path)
			assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
			assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
			assert.Equal(t, "bf.png", r.Header.Get("X-File-Name"))
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, body)

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"url":"https://cdn.example/bf.png"}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL+"/", "secret")
		url, err := c.UploadImage(context.Background(), "bf.png", []byte{0x89, 'P', 'N', 'G'})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example/bf.png", url)
	})

	t.Run("non-2xx carries status and reason", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"invalid api key"}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "bad").UploadImage(context.Background(), "a.png", []byte("a"))
		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusUnauthorized, se.Status)
		assert.Equal(t, "invalid api key", se.Reason)
	})

	t.Run("plain text error body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream down"))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "k").UploadImage(context.Background(), "a.png", []byte("a"))
		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusBadGateway, se.Status)
		assert.Equal(t, "upstream down", se.Reason)
	})

	t.Run("success without url is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"123"}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "k").UploadImage(context.Background(), "a.png", []byte("a"))
		assert.ErrorIs(t, err, ErrMissingURL)
	})
}

func TestUploadImageUnlabelledJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(`{"url":"https://cdn.example/x.png"}`))
	}))
	defer srv.Close()

	url, err := NewClient(srv.URL, "k").UploadImage(context.Background(), "x.png", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/x.png", url)
}
