package atlas

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

func newTestClient() *Client {
	return NewClient(5*time.Second, testUserAgent, nil)
}

func TestClientSendsUserAgent(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	client := newTestClient()
	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, testUserAgent, gotUserAgent)
}

func TestClientGetDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div class="col-sm-11">content</div></body></html>`))
	}))
	defer server.Close()

	client := newTestClient()
	doc, err := client.GetDocument(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Find("div.col-sm-11").Length())
}

func TestClientGetDocumentNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient()
	_, err := client.GetDocument(context.Background(), server.URL)
	require.Error(t, err)

	var atlasErr *Error
	require.ErrorAs(t, err, &atlasErr)
	assert.Equal(t, ErrorTypeNotFound, atlasErr.Type)
	assert.Equal(t, http.StatusNotFound, atlasErr.Code)
}

func TestClientGetDocumentServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient()
	_, err := client.GetDocument(context.Background(), server.URL)

	var atlasErr *Error
	require.ErrorAs(t, err, &atlasErr)
	assert.Equal(t, ErrorTypeServerError, atlasErr.Type)
}

func TestClientDownloadImage(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	client := newTestClient()
	data, err := client.DownloadImage(context.Background(), server.URL+"/AABB1.jpg")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestClientNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := newTestClient()
	_, err := client.Get(context.Background(), url)

	var atlasErr *Error
	require.ErrorAs(t, err, &atlasErr)
	assert.Equal(t, ErrorTypeNetwork, atlasErr.Type)
	assert.Equal(t, 0, atlasErr.Code)
}
