package generator

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

const (
	defaultOpenAIModel = string(openai.ChatModelGPT5Mini2025_08_07)

	maxOutputTokens int64 = 4096
)

// OpenAI sends payloads inline to OpenAI's Responses API.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI builds an OpenAI generator. An empty model selects the default.
// Extra request options are applied to every call.
func NewOpenAI(apiKey string, model string, opts ...option.RequestOption) (*OpenAI, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("api key is empty")
	}
	if model == "" {
		model = defaultOpenAIModel
	}

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAI{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Generate sends the payload as a data URL next to instruction. Images go
// in as input_image parts, everything else as input_file parts.
func (o *OpenAI) Generate(ctx context.Context, payload Payload, instruction string) (string, error) {
	dataURL := "data:" + payload.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(payload.Data)

	var filePart responses.ResponseInputContentUnionParam
	if strings.HasPrefix(payload.MIMEType, "image/") {
		filePart.OfInputImage = &responses.ResponseInputImageParam{
			ImageURL: openai.String(dataURL),
			Detail:   responses.ResponseInputImageDetailAuto,
		}
	} else {
		filePart.OfInputFile = &responses.ResponseInputFileParam{
			FileData: openai.String(dataURL),
			Filename: openai.String(payload.Filename),
		}
	}

	resp, err := o.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           o.model,
		MaxOutputTokens: openai.Int(maxOutputTokens),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				{
					OfMessage: &responses.EasyInputMessageParam{
						Role: responses.EasyInputMessageRoleUser,
						Content: responses.EasyInputMessageContentUnionParam{
							OfInputItemContentList: responses.ResponseInputMessageContentListParam{
								filePart,
								{OfInputText: &responses.ResponseInputTextParam{Text: instruction}},
							},
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", &GenerationError{Err: fmt.Errorf("do request: %w", err)}
	}

	if resp.Status == "incomplete" {
		return "", &GenerationError{Err: fmt.Errorf(
			"response is incomplete (reason = %s)",
			resp.IncompleteDetails.Reason,
		)}
	}

	text := resp.OutputText()
	if strings.TrimSpace(text) == "" {
		return "", &GenerationError{Err: fmt.Errorf("output text is missing (status = %s)", resp.Status)}
	}
	return text, nil
}
