package upload

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/mpilhlt/dhamps-gist/internal/generator"
	"github.com/mpilhlt/dhamps-gist/internal/textclean"
)

// Pipeline turns an uploaded multipart form into cleaned text.
// It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	Generator generator.Generator
	// Timeout bounds a single call to Generator. Zero means no limit.
	Timeout time.Duration
	// MaxBytes is the largest accepted file. Zero means no limit.
	MaxBytes int64
	Log      *slog.Logger
}

// Run validates the upload in form, hands its content to the generator
// together with the kind's instruction and returns the cleaned answer.
//
// Errors are a *ValidationError, a *generator.UploadError or a
// *generator.GenerationError. Failures to read the upload itself are
// returned as is.
func (p *Pipeline) Run(ctx context.Context, form *multipart.Form, kind Kind) (string, error) {
	if form != nil {
		defer func() {
			if err := form.RemoveAll(); err != nil {
				p.Logger().WarnContext(ctx, "Failed to remove multipart temp files",
					"error", err)
			}
		}()
	}

	header, err := Validate(form, kind, p.MaxBytes)
	if err != nil {
		return "", err
	}

	payload, err := Prepare(header, kind)
	if err != nil {
		return "", err
	}
	p.Logger().DebugContext(ctx, "Upload is prepared",
		"kind", kind.String(),
		"filename", payload.Filename,
		"mimeType", payload.MIMEType,
		"sizeBytes", len(payload.Data))

	genCtx := ctx
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := p.Generator.Generate(genCtx, payload, kind.Instruction())
	if err != nil {
		return "", classify(err)
	}
	p.Logger().DebugContext(ctx, "Text is generated",
		"kind", kind.String(),
		"durationMs", time.Since(start).Milliseconds(),
		"chars", len(text))

	return textclean.Clean(text), nil
}

// classify makes sure every generator failure carries one of the two
// remote error types.
func classify(err error) error {
	var uploadErr *generator.UploadError
	var genErr *generator.GenerationError
	if errors.As(err, &uploadErr) || errors.As(err, &genErr) {
		return err
	}
	return &generator.GenerationError{Err: err}
}

// Logger returns Log, or the default logger if Log is nil.
func (p *Pipeline) Logger() *slog.Logger {
	if p.Log == nil {
		return slog.Default()
	}
	return p.Log
}
