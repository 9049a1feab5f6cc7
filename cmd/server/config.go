package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/VickGidi/Victory-furniture-bot/internal/bot"
	"github.com/VickGidi/Victory-furniture-bot/internal/services"
)

type config struct {
	Port          string `yaml:"port"`
	KnowledgeBase string `yaml:"knowledgeBase"`
	SystemPrompt  string `yaml:"systemPrompt"`

	FallbackLLM *fallbackLLMConfig `yaml:"fallbackLLM"`
}

type fallbackLLMConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	Host     string `yaml:"host"`
	BaseURL  string `yaml:"baseURL"`
	APIKey   string `yaml:"apiKey"`
}

const defaultSystemPrompt = "You are the friendly assistant for Victory Furniture, a Kenyan furniture " +
	"retailer. Answer briefly and helpfully, and point shoppers to our branches when unsure."

func (c config) port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	if c.Port != "" {
		return c.Port
	}
	return "5000"
}

func (c config) systemPrompt() string {
	if c.SystemPrompt != "" {
		return c.SystemPrompt
	}
	return defaultSystemPrompt
}

// fallbackLLM builds the optional LLM the engine consults when no intent rule matches. A nil
// return with nil error means no fallback is configured.
func (c config) fallbackLLM(logger *slog.Logger) (bot.FallbackLLM, error) {
	if c.FallbackLLM == nil {
		return nil, nil
	}

	cfg := c.FallbackLLM
	if cfg.Model == "" {
		return nil, fmt.Errorf("fallbackLLM model is required")
	}

	switch cfg.Provider {
	case "ollama":
		host := cfg.Host
		if host == "" {
			host = os.Getenv("OLLAMA_HOST")
		}
		return services.NewOllama(host, cfg.Model, c.systemPrompt()), nil
	case "openai":
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		return services.NewOpenAI(apiKey, cfg.BaseURL, cfg.Model, c.systemPrompt(), logger), nil
	default:
		return nil, fmt.Errorf("unknown fallbackLLM provider: %s", cfg.Provider)
	}
}
