package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/ripplelabs/ripple-api/pkg/ai"
)

const (
	NAME = "openai"
)

type Driver struct {
	client *openai.Client
	model  ai.ModelName
}

func New(token, proxy string, model ai.ModelName) *Driver {
	cfg := openai.DefaultConfig(token)
	if proxy != "" {
		cfg.BaseURL = proxy
	}

	if model.ChatModel == "" {
		model.ChatModel = openai.GPT4oMini
	}
	if model.ImageModel == "" {
		model.ImageModel = openai.CreateImageModelDallE3
	}

	return &Driver{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (s *Driver) DailyPrompt(ctx context.Context) (string, error) {
	slog.Debug("DailyPrompt", slog.String("driver", NAME))
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model.ChatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: ai.PROMPT_DAILY,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

type suggestTagsResult struct {
	Tags []string `json:"tags"`
}

func (s *Driver) SuggestTags(ctx context.Context, content string) ([]string, error) {
	slog.Debug("SuggestTags", slog.String("driver", NAME))
	params := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"tags": {
				Type:        jsonschema.Array,
				Description: "Emotion or theme tags describing the journal entry, no # prefix",
				Items: &jsonschema.Definition{
					Type: jsonschema.String,
				},
			},
		},
		Required: []string{"tags"},
	}

	f := openai.FunctionDefinition{
		Name:        "suggest_tags",
		Description: "Suggest topic tags for a journal entry",
		Parameters:  params,
	}
	t := openai.Tool{
		Type:     openai.ToolTypeFunction,
		Function: &f,
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model.ChatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(ai.PROMPT_SUGGEST_TAGS, content),
			},
		},
		Tools:      []openai.Tool{t},
		ToolChoice: openai.ToolChoice{Type: openai.ToolTypeFunction, Function: openai.ToolFunction{Name: f.Name}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("model returned no tool call")
	}

	var result suggestTagsResult
	if err = json.Unmarshal([]byte(resp.Choices[0].Message.ToolCalls[0].Function.Arguments), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tool call arguments: %w", err)
	}

	return lo.Slice(result.Tags, 0, ai.MAX_SUGGESTED_TAGS), nil
}

func (s *Driver) GenerateCover(ctx context.Context, title, snippet string) ([]byte, error) {
	slog.Debug("GenerateCover", slog.String("driver", NAME))
	resp, err := s.client.CreateImage(ctx, openai.ImageRequest{
		Model:          s.model.ImageModel,
		Prompt:         fmt.Sprintf(ai.PROMPT_COVER, title, snippet),
		Size:           openai.CreateImageSize1792x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
		N:              1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("empty image response")
	}

	raw, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image payload: %w", err)
	}
	return raw, nil
}
