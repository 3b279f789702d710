package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	defaultGeminiModel = "gemini-2.5-flash"

	filePollInterval  = time.Second
	fileDeleteTimeout = 10 * time.Second
)

// Gemini uploads payloads through the Gemini Files API and asks a Gemini
// model about the uploaded file.
type Gemini struct {
	client       *genai.Client
	model        string
	pollInterval time.Duration
	log          *slog.Logger
}

// NewGemini builds a Gemini generator. An empty model selects the default,
// a nil log the default logger.
func NewGemini(ctx context.Context, apiKey string, model string, log *slog.Logger) (*Gemini, error) {
	return newGemini(ctx, &genai.ClientConfig{APIKey: apiKey}, model, log)
}

func newGemini(ctx context.Context, cfg *genai.ClientConfig, model string, log *slog.Logger) (*Gemini, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("api key is empty")
	}
	if model == "" {
		model = defaultGeminiModel
	}
	if log == nil {
		log = slog.Default()
	}

	cfg.Backend = genai.BackendGeminiAPI
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	return &Gemini{
		client:       client,
		model:        model,
		pollInterval: filePollInterval,
		log:          log,
	}, nil
}

// Generate uploads the payload, waits until the service has processed it
// and returns the model's answer to instruction. The uploaded file is
// deleted again before Generate returns.
func (g *Gemini) Generate(ctx context.Context, payload Payload, instruction string) (string, error) {
	file, err := g.client.Files.Upload(ctx, bytes.NewReader(payload.Data), &genai.UploadFileConfig{
		MIMEType:    payload.MIMEType,
		DisplayName: payload.Filename,
	})
	if err != nil {
		return "", &UploadError{Err: err}
	}
	defer g.deleteFile(ctx, file.Name)

	file, err = g.waitActive(ctx, file)
	if err != nil {
		return "", &UploadError{Err: err}
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromURI(file.URI, file.MIMEType),
			genai.NewPartFromText(instruction),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", &GenerationError{Err: errors.New("output text is missing")}
	}
	return text, nil
}

func (g *Gemini) waitActive(ctx context.Context, file *genai.File) (*genai.File, error) {
	for file.State == genai.FileStateProcessing {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.pollInterval):
		}

		var err error
		file, err = g.client.Files.Get(ctx, file.Name, nil)
		if err != nil {
			return nil, fmt.Errorf("get file state: %w", err)
		}
	}
	if file.State == genai.FileStateFailed {
		return nil, fmt.Errorf("file %s could not be processed", file.Name)
	}
	return file, nil
}

// deleteFile runs even when ctx is already done, so it gets its own deadline.
func (g *Gemini) deleteFile(ctx context.Context, name string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fileDeleteTimeout)
	defer cancel()

	if _, err := g.client.Files.Delete(ctx, name, nil); err != nil {
		g.log.WarnContext(ctx, "Failed to delete uploaded file",
			"error", err,
			"file", name)
	}
}
