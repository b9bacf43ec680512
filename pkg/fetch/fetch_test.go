package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte("hello world"))
	}))
	defer server.Close()

	content, err := NewClient().URLContent(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Content from "+server.URL+":\n\nhello world", content)
}

func TestURLContent_Truncates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", MaxContentLength+500)))
	}))
	defer server.Close()

	content, err := NewClient().URLContent(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, content, "[Content truncated due to length]")
	assert.Less(t, len(content), MaxContentLength+200)
}

func TestURLContent_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewClient().URLContent(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestURLContent_InvalidURL(t *testing.T) {
	_, err := NewClient().URLContent(context.Background(), "http://127.0.0.1:1/nothing-listens-here")
	require.Error(t, err)
}
