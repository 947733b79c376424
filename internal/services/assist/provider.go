// Package assist generates dating helper content: compatibility readings,
// date idea drafts, reply suggestions, profile feedback and background art.
// The backing provider is chosen once at startup, either the Gemini API or
// canned responses when no key is configured.
package assist

import (
	"context"
	"strings"
)

type Compatibility struct {
	Vibe  string `json:"vibe"`
	Score int    `json:"score"`
}

type DateIdeaDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type ProfileFeedback struct {
	Feedback string `json:"feedback"`
	Vibe     string `json:"vibe"`
}

type Provider interface {
	Compatibility(ctx context.Context, bioA, bioB string) (Compatibility, error)
	DateIdeaDraft(ctx context.Context, interests []string) (DateIdeaDraft, error)
	ChatSuggestions(ctx context.Context, chatTranscript string) ([]string, error)
	ProfileFeedback(ctx context.Context, bio string) (ProfileFeedback, error)
	BackgroundImage(ctx context.Context, theme string) (string, error)
}

type Config struct {
	APIKey     string
	Model      string
	ImageModel string
}

// New picks the provider for the lifetime of the process: Gemini when an
// API key is configured, canned responses otherwise.
func New(ctx context.Context, cfg Config) (Provider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return NewStaticProvider(), nil
	}
	return NewGeminiProvider(ctx, cfg)
}
