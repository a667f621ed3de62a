package v1

import (
	"context"
	"log/slog"
	"time"

	"github.com/ripplelabs/ripple-api/internal/core"
	"github.com/ripplelabs/ripple-api/pkg/ai"
	"github.com/ripplelabs/ripple-api/pkg/utils"
)

type ToolsLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewToolsLogic(ctx context.Context, core *core.Core) *ToolsLogic {
	return &ToolsLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: setupUserInfo(ctx, core),
	}
}

const dailyPromptCacheKey = "ai:daily_prompt:"

// DailyPrompt returns the reflective prompt of the day. One model call per
// day, every caller after that reads the cached value, and any failure falls
// back to the static prompt.
func (l *ToolsLogic) DailyPrompt() string {
	cacheKey := dailyPromptCacheKey + time.Now().Format(time.DateOnly)

	cache := l.core.Cache()
	if cache != nil {
		if cached, err := cache.Get(l.ctx, cacheKey); err == nil && cached != "" {
			return cached
		}
	}

	prompt, err := l.core.Srv().AI().DailyPrompt(l.ctx)
	if err != nil || prompt == "" {
		if err != nil {
			slog.Error("failed to generate daily prompt", slog.String("error", err.Error()))
		}
		return ai.FALLBACK_DAILY_PROMPT
	}

	if cache != nil {
		if err = cache.SetEx(l.ctx, cacheKey, prompt, time.Hour*24); err != nil {
			slog.Error("failed to cache daily prompt", slog.String("error", err.Error()))
		}
	}
	return prompt
}

// SuggestTags asks the model for tags describing the draft and normalizes the
// answer like any user supplied tag. Model failure yields the static pair.
func (l *ToolsLogic) SuggestTags(content string, contentType string) []string {
	plain := content
	if contentType == "blocks" {
		if md, err := utils.ConvertEditorJSBlocksToMarkdown(content); err == nil {
			plain = md
		}
	}

	tags, err := l.core.Srv().AI().SuggestTags(l.ctx, plain)
	if err != nil || len(tags) == 0 {
		if err != nil {
			slog.Error("failed to suggest tags", slog.String("error", err.Error()))
		}
		return ai.FallbackTags()
	}
	return utils.NormalizeTags(tags)
}
