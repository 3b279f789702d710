package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mpilhlt/dhamps-gist/internal/upload"

	"github.com/google/uuid"

	huma "github.com/danielgtaylor/huma/v2"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-Id"

// RequestLogger returns a middleware function that tags every request with
// an ID (taken from X-Request-Id or freshly generated), echoes it in the
// response and logs the outcome once the request is done.
func RequestLogger(log *slog.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		requestID := ctx.Header(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.SetHeader(RequestIDHeader, requestID)
		ctx = huma.WithValue(ctx, RequestIDKey, requestID)

		next(ctx)

		log.InfoContext(ctx.Context(), "Request is handled",
			"requestID", requestID,
			"method", ctx.Method(),
			"path", ctx.URL().Path,
			"status", ctx.Status(),
			"durationMs", time.Since(start).Milliseconds())
	}
}

// MultipartGuard returns a middleware function for the upload operations.
// It reads the multipart body before huma does and answers 400 with the
// upload's validation message when there is no readable form. The parsed form is cached on the request, so the operation
// handler sees it without reading the body again.
//
// It runs as an operation middleware, i.e. after BearerTokenAuth, so an
// unauthorized request is rejected before its body is touched.
func MultipartGuard(api huma.API, maxBytes int64) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !upload.IsMultipart(ctx.Header("Content-Type")) {
			_ = huma.WriteErr(api, ctx, http.StatusBadRequest, "No file part")
			return
		}

		_ = ctx.SetReadDeadline(time.Now().Add(uploadReadTimeout))
		if _, err := ctx.GetMultipartForm(); err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusBadRequest, upload.FormError(err, maxBytes).Message)
			return
		}

		next(ctx)
	}
}
