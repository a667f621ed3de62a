package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/samber/lo"
	"google.golang.org/api/option"

	"github.com/ripplelabs/ripple-api/pkg/ai"
)

const (
	NAME = "gemini"

	defaultModel = "gemini-1.5-flash"
)

// Driver talks to Gemini, the assist backend the first client build shipped
// with. It has no image model wired, cover generation reports unsupported.
type Driver struct {
	client *genai.Client
	model  string
}

func New(token string, model string) (*Driver, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(token))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	return &Driver{
		client: client,
		model:  model,
	}, nil
}

func (s *Driver) generate(ctx context.Context, mimeType, prompt string) (string, error) {
	model := s.client.GenerativeModel(s.model)
	if mimeType != "" {
		model.ResponseMIMEType = mimeType
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty generation response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String()), nil
}

func (s *Driver) DailyPrompt(ctx context.Context) (string, error) {
	slog.Debug("DailyPrompt", slog.String("driver", NAME))
	return s.generate(ctx, "", ai.PROMPT_DAILY)
}

func (s *Driver) SuggestTags(ctx context.Context, content string) ([]string, error) {
	slog.Debug("SuggestTags", slog.String("driver", NAME))
	raw, err := s.generate(ctx, "application/json", fmt.Sprintf(ai.PROMPT_SUGGEST_TAGS, content))
	if err != nil {
		return nil, err
	}

	var tags []string
	if err = json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal suggested tags: %w", err)
	}
	return lo.Slice(tags, 0, ai.MAX_SUGGESTED_TAGS), nil
}

func (s *Driver) GenerateCover(ctx context.Context, title, snippet string) ([]byte, error) {
	return nil, ai.ErrCoverUnsupported
}
