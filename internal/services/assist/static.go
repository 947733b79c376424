package assist

import (
	"context"
	"fmt"
	"math/rand"
)

// StaticProvider answers every request with fixed demo content so the app
// stays usable without an API key.
type StaticProvider struct{}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

func (p *StaticProvider) Compatibility(ctx context.Context, bioA, bioB string) (Compatibility, error) {
	return Compatibility{Vibe: "Adventurous Soul", Score: 85}, nil
}

func (p *StaticProvider) DateIdeaDraft(ctx context.Context, interests []string) (DateIdeaDraft, error) {
	return DateIdeaDraft{
		Title:       "Explore a Hidden Bookstore Cafe",
		Description: "Let's get lost among shelves of old books and chat over artisanal coffee. A perfect, cozy afternoon escape.",
		Location:    "Downtown Arts District",
	}, nil
}

func (p *StaticProvider) ChatSuggestions(ctx context.Context, chatTranscript string) ([]string, error) {
	return []string{
		"Ask about their favorite book genre.",
		"Mention a cool cafe you know.",
		"Challenge them to a literature quiz!",
	}, nil
}

func (p *StaticProvider) ProfileFeedback(ctx context.Context, bio string) (ProfileFeedback, error) {
	return ProfileFeedback{
		Feedback: "Your bio is great! To make it even more engaging, maybe add a specific question to prompt conversation, like 'What's the best concert you've ever been to?'",
		Vibe:     "Upbeat & Welcoming",
	}, nil
}

func (p *StaticProvider) BackgroundImage(ctx context.Context, theme string) (string, error) {
	return fmt.Sprintf("https://picsum.photos/id/%d/1920/1080", rand.Intn(200)), nil
}
