package srv

import (
	"context"
	"log/slog"
	"os"

	"github.com/ripplelabs/ripple-api/pkg/ai"
	"github.com/ripplelabs/ripple-api/pkg/ai/gemini"
	"github.com/ripplelabs/ripple-api/pkg/ai/openai"
)

type AIConfig struct {
	Gemini Gemini `toml:"gemini"`
	Openai Openai `toml:"openai"`
	// Usage list
	// prompt
	// tags
	// cover
	Usage map[string]string `toml:"usage"`
}

func (c *AIConfig) FromENV() {
	c.Usage = make(map[string]string)
	c.Usage["prompt"] = os.Getenv("RIPPLE_API_AI_USAGE_PROMPT")
	c.Usage["tags"] = os.Getenv("RIPPLE_API_AI_USAGE_TAGS")
	c.Usage["cover"] = os.Getenv("RIPPLE_API_AI_USAGE_COVER")

	c.Gemini.FromENV()
	c.Openai.FromENV()
}

type Gemini struct {
	Token string `toml:"token"`
	Model string `toml:"model"`
}

func (c *Gemini) FromENV() {
	c.Token = os.Getenv("RIPPLE_API_AI_GEMINI_TOKEN")
	c.Model = os.Getenv("RIPPLE_API_AI_GEMINI_MODEL")
}

func (cfg *Gemini) Install(root *AI) {
	if cfg.Token == "" {
		return
	}
	driver, err := gemini.New(cfg.Token, cfg.Model)
	if err != nil {
		slog.Error("failed to install gemini driver", slog.String("error", err.Error()))
		return
	}
	installAI(root, gemini.NAME, driver)
}

type Openai struct {
	Token      string `toml:"token"`
	Endpoint   string `toml:"endpoint"`
	ChatModel  string `toml:"chat_model"`
	ImageModel string `toml:"image_model"`
}

func (c *Openai) FromENV() {
	c.Token = os.Getenv("RIPPLE_API_AI_OPENAI_TOKEN")
	c.Endpoint = os.Getenv("RIPPLE_API_AI_OPENAI_ENDPOINT")
}

func (cfg *Openai) Install(root *AI) {
	if cfg.Token == "" {
		return
	}
	installAI(root, openai.NAME, openai.New(cfg.Token, cfg.Endpoint, ai.ModelName{
		ChatModel:  cfg.ChatModel,
		ImageModel: cfg.ImageModel,
	}))
}

// AI routes each assist usage to a configured driver. All methods are best
// effort, callers substitute static fallbacks on error.
type AI struct {
	drivers map[string]ai.AssistDriver
	usage   map[string]ai.AssistDriver

	assistDefault ai.AssistDriver
}

func (s *AI) DailyPrompt(ctx context.Context) (string, error) {
	if d := s.usage["prompt"]; d != nil {
		return d.DailyPrompt(ctx)
	}
	return s.assistDefault.DailyPrompt(ctx)
}

func (s *AI) SuggestTags(ctx context.Context, content string) ([]string, error) {
	if d := s.usage["tags"]; d != nil {
		return d.SuggestTags(ctx, content)
	}
	return s.assistDefault.SuggestTags(ctx, content)
}

func (s *AI) GenerateCover(ctx context.Context, title, snippet string) ([]byte, error) {
	if d := s.usage["cover"]; d != nil {
		return d.GenerateCover(ctx, title, snippet)
	}
	return s.assistDefault.GenerateCover(ctx, title, snippet)
}

func installAI(a *AI, name string, driver ai.AssistDriver) {
	a.drivers[name] = driver
}

func SetupAI(cfg AIConfig) (*AI, error) {
	a := &AI{
		drivers: make(map[string]ai.AssistDriver),
		usage:   make(map[string]ai.AssistDriver),
	}

	cfg.Openai.Install(a)
	cfg.Gemini.Install(a)

	for k, v := range cfg.Usage {
		if d := a.drivers[v]; d != nil {
			a.usage[k] = d
		}
	}

	for _, v := range a.drivers {
		a.assistDefault = v
		break
	}

	if a.assistDefault == nil {
		panic("AI assist driver must be set")
	}

	return a, nil
}

func ApplyAI(cfg AIConfig) ApplyFunc {
	return func(s *Srv) {
		s.ai, _ = SetupAI(cfg)
	}
}
