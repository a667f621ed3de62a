package ai

import (
	"context"
	"errors"
)

type ModelName struct {
	ChatModel  string
	ImageModel string
}

// AssistDriver is the composer-assist surface. Every call is best effort;
// callers fall back to static content on error and never surface AI failures
// to the user.
type AssistDriver interface {
	DailyPrompt(ctx context.Context) (string, error)
	SuggestTags(ctx context.Context, content string) ([]string, error)
	GenerateCover(ctx context.Context, title, snippet string) ([]byte, error)
}

// ErrCoverUnsupported marks drivers without an image model. The journal keeps
// a null cover in that case.
var ErrCoverUnsupported = errors.New("cover image generation is not supported by this driver")

const (
	PROMPT_DAILY = "Generate one deeply reflective, short, and evocative daily journal prompt. Max 15 words."

	PROMPT_SUGGEST_TAGS = `Based on this journal content, suggest 3 relevant emotion or theme tags (without # prefix). Content: "%s"`

	PROMPT_COVER = `A beautiful, atmospheric, artistic photography or abstract painting representing the themes of this journal entry.
Title: "%s".
Snippet: "%s".
No text in image. High resolution, professional composition.`

	FALLBACK_DAILY_PROMPT = "What are you holding onto that you need to let go of?"

	MAX_SUGGESTED_TAGS = 3
	COVER_SNIPPET_LEN  = 100
)

func FallbackTags() []string {
	return []string{"reflection", "thoughts"}
}
