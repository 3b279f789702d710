package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mpilhlt/dhamps-gist/internal/auth"
	"github.com/mpilhlt/dhamps-gist/internal/upload"

	huma "github.com/danielgtaylor/huma/v2"
)

type contextKey string

// Context keys
const (
	PipelineKey  = contextKey("pipeline")
	RequestIDKey = contextKey("requestID")
)

// Error responses
var (
	ErrPipelineNotFound = errors.New("upload pipeline not found in context")
)

// NewConfig returns the huma configuration shared by the server and the tests.
// Responses carry no $schema link so that bodies stay exactly
// {"summary": ...}, {"text": ...} or {"error": ...}.
func NewConfig() huma.Config {
	config := huma.DefaultConfig("DH@MPS Gist API", "0.1.0")
	config.CreateHooks = nil
	config.Components.SecuritySchemes = auth.Config
	return config
}

// AddRoutes adds all the routes to the API. With secured set, the upload
// operations require the bearer token checked by auth.BearerTokenAuth.
func AddRoutes(api huma.API, pipeline *upload.Pipeline, secured bool) error {
	if err := RegisterHealthRoutes(api); err != nil {
		return fmt.Errorf("register health routes: %w", err)
	}
	if err := RegisterUploadRoutes(pipeline, secured, api); err != nil {
		return fmt.Errorf("register upload routes: %w", err)
	}
	return nil
}

// Middleware to add the upload pipeline to the context
func addPipelineToContext[I any, O any](pipeline *upload.Pipeline, next func(context.Context, *I) (*O, error)) func(context.Context, *I) (*O, error) {
	return func(ctx context.Context, input *I) (*O, error) {
		if pipeline == nil {
			return nil, fmt.Errorf("provided pipeline is nil")
		}
		ctx = context.WithValue(ctx, PipelineKey, pipeline)
		return next(ctx, input)
	}
}

// Get the upload pipeline from the context
// (exported helper function so that blackbox testing can access it)
func GetPipeline(ctx context.Context) (*upload.Pipeline, error) {
	pipeline, ok := ctx.Value(PipelineKey).(*upload.Pipeline)
	if !ok {
		return nil, huma.NewError(http.StatusInternalServerError, ErrPipelineNotFound.Error())
	}
	return pipeline, nil
}

// RequestID returns the ID RequestLogger assigned to the request, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
