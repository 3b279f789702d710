// Package generator talks to the remote generative-language services that
// turn an uploaded document or image into text.
package generator

import (
	"context"
	"fmt"
)

// Supported providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Payload pairs the raw bytes of an upload with their MIME type.
type Payload struct {
	// Data is the complete file content.
	Data []byte
	// MIMEType is one of application/pdf, image/png or image/jpeg.
	MIMEType string
	// Filename is the name the client uploaded the file under. Providers
	// use it as a display name only.
	Filename string
}

// Generator produces text for a payload following a fixed instruction.
type Generator interface {
	Generate(ctx context.Context, payload Payload, instruction string) (string, error)
}

// Func adapts an ordinary function to the Generator interface.
type Func func(ctx context.Context, payload Payload, instruction string) (string, error)

// Generate calls f(ctx, payload, instruction).
func (f Func) Generate(ctx context.Context, payload Payload, instruction string) (string, error) {
	return f(ctx, payload, instruction)
}

// DefaultModel returns the model used for a provider when none is configured.
func DefaultModel(provider string) (string, error) {
	switch provider {
	case ProviderGemini:
		return defaultGeminiModel, nil
	case ProviderOpenAI:
		return defaultOpenAIModel, nil
	default:
		return "", fmt.Errorf("unknown provider %q", provider)
	}
}
