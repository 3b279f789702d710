package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mpilhlt/dhamps-gist/internal/auth"
	"github.com/mpilhlt/dhamps-gist/internal/generator"
	"github.com/mpilhlt/dhamps-gist/internal/handlers"
	"github.com/mpilhlt/dhamps-gist/internal/upload"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// While huma's humatest package gives us an in-memory API, the routes and
// middleware are registered exactly the way main does it, so the tests
// exercise the real request chain minus the network.

const (
	testSecret = "Password123"
	minimalPDF = "%PDF-1.4\n1 0 obj<<>>endobj\ntrailer<<>>\n%%EOF\n"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// mockGenerator stands in for the remote generation service.
type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, payload generator.Payload, instruction string) (string, error) {
	args := m.Called(ctx, payload, instruction)
	return args.String(0), args.Error(1)
}

// --- Helper functions and types ---

// newTestAPI sets up router, middleware and routes for testing.
// An empty secret leaves the upload routes unauthenticated.
func newTestAPI(t *testing.T, gen generator.Generator, secret string) humatest.TestAPI {
	t.Helper()

	_, api := newTestRouter(t, gen, secret)
	return api
}

// newTestRouter is newTestAPI that also hands out the router, for tests
// that wrap it the way main does.
func newTestRouter(t *testing.T, gen generator.Generator, secret string) (http.Handler, humatest.TestAPI) {
	t.Helper()

	router, api := humatest.New(t, handlers.NewConfig())
	api.UseMiddleware(handlers.RequestLogger(discardLogger))
	api.UseMiddleware(auth.BearerTokenAuth(api, secret, discardLogger))

	pipeline := &upload.Pipeline{
		Generator: gen,
		MaxBytes:  1 << 20,
		Log:       discardLogger,
	}
	err := handlers.AddRoutes(api, pipeline, secret != "")
	require.NoError(t, err)

	return router, api
}

// multipartBody encodes a single file part. With an empty field name the
// body carries only an unrelated value field.
func multipartBody(t *testing.T, field, filename string, content []byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field == "" {
		require.NoError(t, w.WriteField("comment", "no file here"))
	} else {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return &buf, "Content-Type: " + w.FormDataContentType()
}

// postFile sends a multipart upload to path with optional extra headers.
func postFile(t *testing.T, api humatest.TestAPI, path, filename string, content []byte, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartBody(t, "file", filename, content)
	args := []any{contentType}
	for _, h := range headers {
		args = append(args, h)
	}
	args = append(args, body)
	return api.Post(path, args...)
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body), "body: %s", resp.Body.String())
	return body
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, &mockGenerator{}, testSecret)

	resp := api.Get("/")

	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, "API is running", resp.Body.String())
	assert.Contains(t, resp.Header().Get("Content-Type"), "text/plain")
}

func TestRequestID(t *testing.T) {
	api := newTestAPI(t, &mockGenerator{}, "")

	resp := api.Get("/", "X-Request-Id: req-42")
	assert.Equal(t, "req-42", resp.Header().Get(handlers.RequestIDHeader))

	resp = api.Get("/")
	assert.Len(t, resp.Header().Get(handlers.RequestIDHeader), 36, "a UUID should be generated")
}

func TestGetPipelineMissing(t *testing.T) {
	_, err := handlers.GetPipeline(context.Background())

	var apiErr *handlers.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, handlers.ErrPipelineNotFound.Error(), apiErr.Message)
}
