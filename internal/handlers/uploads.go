package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mpilhlt/dhamps-gist/internal/auth"
	"github.com/mpilhlt/dhamps-gist/internal/generator"
	"github.com/mpilhlt/dhamps-gist/internal/models"
	"github.com/mpilhlt/dhamps-gist/internal/upload"

	"github.com/danielgtaylor/huma/v2"
)

const uploadReadTimeout = time.Minute

// Define handler functions for each route
func summarizeFunc(ctx context.Context, input *models.UploadRequest) (*models.SummaryResponse, error) {
	text, err := runPipeline(ctx, input, upload.Document)
	if err != nil {
		return nil, err
	}

	response := &models.SummaryResponse{}
	response.Body.Summary = text
	return response, nil
}

func extractTextFunc(ctx context.Context, input *models.UploadRequest) (*models.TextResponse, error) {
	text, err := runPipeline(ctx, input, upload.Image)
	if err != nil {
		return nil, err
	}

	response := &models.TextResponse{}
	response.Body.Text = text
	return response, nil
}

func runPipeline(ctx context.Context, input *models.UploadRequest, kind upload.Kind) (string, error) {
	pipeline, err := GetPipeline(ctx)
	if err != nil {
		return "", err
	}

	text, err := pipeline.Run(ctx, &input.RawBody, kind)
	if err != nil {
		apiErr := toAPIError(kind, err)
		pipeline.Logger().WarnContext(ctx, "Upload is rejected",
			"requestID", RequestID(ctx),
			"kind", kind.String(),
			"status", apiErr.Status,
			"error", err)
		return "", apiErr
	}
	return text, nil
}

// toAPIError maps pipeline failures onto status codes: 400 for rejected
// uploads, 500 for everything that went wrong afterwards.
func toAPIError(kind upload.Kind, err error) *APIError {
	var validationErr *upload.ValidationError
	var uploadErr *generator.UploadError
	var genErr *generator.GenerationError

	switch {
	case errors.As(err, &validationErr):
		return &APIError{Status: http.StatusBadRequest, Message: validationErr.Message}
	case errors.As(err, &uploadErr):
		return &APIError{Status: http.StatusInternalServerError, Message: "Error uploading file: " + uploadErr.Err.Error()}
	case errors.As(err, &genErr):
		prefix := "Error generating summary: "
		if kind == upload.Image {
			prefix = "Error extracting text: "
		}
		return &APIError{Status: http.StatusInternalServerError, Message: prefix + genErr.Err.Error()}
	default:
		return &APIError{Status: http.StatusInternalServerError, Message: "Error reading file: " + err.Error()}
	}
}

// RegisterUploadRoutes registers the document and image upload routes with the API
func RegisterUploadRoutes(pipeline *upload.Pipeline, secured bool, api huma.API) error {
	// The body is capped by http.MaxBytesHandler in main and read by
	// MultipartGuard; huma's MaxBodyBytes does not apply to multipart forms.
	var maxBytes int64
	if pipeline != nil {
		maxBytes = pipeline.MaxBytes
	}
	guard := huma.Middlewares{MultipartGuard(api, maxBytes)}

	// Define huma.Operations for each route
	summarizeOp := huma.Operation{
		OperationID: "summarizeDocument",
		Method:      http.MethodPost,
		Path:        "/upload",
		Summary:     "Summarize an uploaded PDF",
		Description: "Upload a PDF as multipart form field `file` and get a plain text summary back.",
		Tags:        []string{"uploads"},
		Middlewares: guard,
	}
	extractTextOp := huma.Operation{
		OperationID: "extractImageText",
		Method:      http.MethodPost,
		Path:        "/upload-image",
		Summary:     "Extract the text of an uploaded image",
		Description: "Upload a PNG, JPG or JPEG image as multipart form field `file` and get the text written in it.",
		Tags:        []string{"uploads"},
		Middlewares: guard,
	}
	if secured {
		summarizeOp.Security = auth.Security
		extractTextOp.Security = auth.Security
	}

	// Register the routes with middleware
	huma.Register(api, summarizeOp, addPipelineToContext(pipeline, summarizeFunc))
	huma.Register(api, extractTextOp, addPipelineToContext(pipeline, extractTextFunc))
	return nil
}
