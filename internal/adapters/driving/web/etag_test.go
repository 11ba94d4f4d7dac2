package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEtag(t *testing.T) {
	a := etag([]byte("hello"))
	b := etag([]byte("hello"))
	c := etag([]byte("hello!"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	// Quoted 16-byte hex digest.
	assert.Len(t, a, 34)
	assert.Equal(t, byte('"'), a[0])
}

func TestNotModified(t *testing.T) {
	tag := etag([]byte("body"))

	tests := []struct {
		name     string
		header   string
		expected bool
	}{
		{name: "no header", header: "", expected: false},
		{name: "exact match", header: tag, expected: true},
		{name: "weak match", header: "W/" + tag, expected: true},
		{name: "match in list", header: `"other", ` + tag, expected: true},
		{name: "wildcard", header: "*", expected: true},
		{name: "mismatch", header: `"other"`, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("If-None-Match", tt.header)
			}
			assert.Equal(t, tt.expected, notModified(r, tag))
		})
	}
}

func TestWriteCached(t *testing.T) {
	body := []byte("<p>hi</p>")

	t.Run("writes body and headers", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		writeCached(w, r, "text/html", body)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, etag(body), w.Header().Get("ETag"))
		assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
		assert.Equal(t, "text/html", w.Header().Get("Content-Type"))
		assert.Equal(t, string(body), w.Body.String())
	})

	t.Run("not modified", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("If-None-Match", etag(body))

		writeCached(w, r, "text/html", body)

		assert.Equal(t, http.StatusNotModified, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("head omits body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodHead, "/", nil)

		writeCached(w, r, "text/html", body)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})
}
