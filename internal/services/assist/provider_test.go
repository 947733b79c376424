package assist

import (
	"context"
	"strings"
	"testing"
)

func TestNewWithoutKeyReturnsStaticProvider(t *testing.T) {
	p, err := New(context.Background(), Config{})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if _, ok := p.(*StaticProvider); !ok {
		t.Fatalf("expected static provider, got %T", p)
	}
}

func TestStaticProviderAnswersEverything(t *testing.T) {
	p := NewStaticProvider()
	ctx := context.Background()

	comp, err := p.Compatibility(ctx, "loves hiking", "loves reading")
	if err != nil {
		t.Fatalf("compatibility: %v", err)
	}
	if comp.Vibe == "" || comp.Score <= 0 || comp.Score > 100 {
		t.Fatalf("unexpected compatibility: %+v", comp)
	}

	draft, err := p.DateIdeaDraft(ctx, []string{"coffee", "books"})
	if err != nil {
		t.Fatalf("date idea draft: %v", err)
	}
	if draft.Title == "" || draft.Description == "" || draft.Location == "" {
		t.Fatalf("incomplete draft: %+v", draft)
	}

	suggestions, err := p.ChatSuggestions(ctx, "them: hi\nme: hey")
	if err != nil {
		t.Fatalf("chat suggestions: %v", err)
	}
	if len(suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(suggestions))
	}

	fb, err := p.ProfileFeedback(ctx, "I like long walks.")
	if err != nil {
		t.Fatalf("profile feedback: %v", err)
	}
	if fb.Feedback == "" || fb.Vibe == "" {
		t.Fatalf("incomplete feedback: %+v", fb)
	}

	url, err := p.BackgroundImage(ctx, "sunset beach")
	if err != nil {
		t.Fatalf("background image: %v", err)
	}
	if !strings.HasPrefix(url, "https://picsum.photos/") {
		t.Fatalf("unexpected background url: %q", url)
	}
}
