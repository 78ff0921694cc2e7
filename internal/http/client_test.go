package http

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentforge-io/cma-client/pkg/cma"
)

type testLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *testLogger) log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *testLogger) Debug(msg string, fields map[string]interface{}) { l.log(msg) }
func (l *testLogger) Info(msg string, fields map[string]interface{})  { l.log(msg) }
func (l *testLogger) Warn(msg string, fields map[string]interface{})  { l.log(msg) }
func (l *testLogger) Error(msg string, fields map[string]interface{}) { l.log(msg) }

func (l *testLogger) has(msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, m := range l.messages {
		if m == msg {
			return true
		}
	}

	return false
}

func TestClientDo(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Equal(t, "/spaces/space-id/entries", request.URL.Path)
		assert.Equal(t, "blog", request.URL.Query().Get("content_type"))
		assert.Equal(t, "Bearer secret", request.Header.Get("Authorization"))
		assert.Equal(t, "application/json", request.Header.Get("Accept"))

		var body map[string]interface{}

		err := json.NewDecoder(request.Body).Decode(&body)
		assert.NoError(t, err)
		assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

		writer.WriteHeader(nethttp.StatusCreated)
		_, _ = writer.Write([]byte(`{"sys":{"id":"new","type":"Entry"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, &StaticTokenProvider{AccessToken: "secret"})

	query := url.Values{}
	query.Set("content_type", "blog")

	resp, err := client.Do(context.Background(), &Request{
		Method: nethttp.MethodPost,
		Path:   "/spaces/space-id/entries",
		Query:  query,
		Body:   map[string]interface{}{"fields": map[string]interface{}{}},
	})
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	assert.Contains(t, string(resp.Body), `"id":"new"`)
}

func TestClientDoAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		writer.WriteHeader(nethttp.StatusNotFound)
		_, _ = writer.Write([]byte(`{"sys":{"id":"NotFound","type":"Error"},"message":"The resource could not be found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	resp, err := client.Get(context.Background(), "/spaces/space-id/entries/missing", nil)
	require.Error(t, err)

	// The envelope comes back alongside the parsed error resource.
	require.NotNil(t, resp)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

	var apiErr *cma.APIError

	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, cma.ErrorIDNotFound, apiErr.Sys.ID)
	assert.Equal(t, "The resource could not be found", apiErr.Message)
	assert.True(t, cma.IsNotFound(err))
}

func TestClientRetriesServerErrors(t *testing.T) {
	t.Parallel()

	attempts := 0

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		attempts++
		if attempts < 3 {
			writer.WriteHeader(nethttp.StatusInternalServerError)

			return
		}

		_, _ = writer.Write([]byte(`{"sys":{"id":"ok","type":"Entry"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil,
		WithRetryConfig(3, time.Millisecond, 5*time.Millisecond))

	resp, err := client.Get(context.Background(), "/spaces/space-id/entries/entry-id", nil)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, attempts)
}

func TestClientDoesNotRetryConflicts(t *testing.T) {
	t.Parallel()

	attempts := 0

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		attempts++

		writer.WriteHeader(nethttp.StatusConflict)
		_, _ = writer.Write([]byte(`{"sys":{"id":"VersionMismatch","type":"Error"},"message":"Version mismatch"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil,
		WithRetryConfig(3, time.Millisecond, 5*time.Millisecond))

	_, err := client.Put(context.Background(), "/spaces/space-id/entries/entry-id", nil, nil)
	require.Error(t, err)
	assert.True(t, cma.IsVersionConflict(err))
	assert.Equal(t, 1, attempts)
}

func TestClientDebugLogging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		_, _ = writer.Write([]byte(`{}`))
	}))
	defer server.Close()

	logger := &testLogger{}
	client := NewClient(server.URL, nil, WithLogger(logger), WithDebug(true))

	_, err := client.Get(context.Background(), "/spaces/space-id", nil)
	require.NoError(t, err)

	assert.True(t, logger.has("HTTP Request"))
	assert.True(t, logger.has("HTTP Response"))
}

func TestClientUserAgent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Equal(t, "custom-agent/2.0", request.Header.Get("User-Agent"))
		_, _ = writer.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, WithUserAgent("custom-agent/2.0"))

	_, err := client.Get(context.Background(), "/spaces/space-id", nil)
	require.NoError(t, err)
}

func TestClientCustomHeaders(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		assert.Equal(t, "value", request.Header.Get("X-Custom"))
		_, _ = writer.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	_, err := client.Do(context.Background(), &Request{
		Method:  nethttp.MethodGet,
		Path:    "/spaces/space-id",
		Headers: map[string]string{"X-Custom": "value"},
	})
	require.NoError(t, err)
}

func TestClientSynthesizesErrorForUnparsableBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		writer.WriteHeader(nethttp.StatusBadGateway)
		_, _ = writer.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, WithRetryConfig(0, time.Millisecond, time.Millisecond))

	_, err := client.Get(context.Background(), "/spaces/space-id", nil)
	require.Error(t, err)

	var apiErr *cma.APIError

	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, nethttp.StatusBadGateway, apiErr.Status)
}
