package assist

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultModel      = "gemini-2.5-flash"
	defaultImageModel = "imagen-4.0-generate-001"
)

// GeminiProvider calls the Gemini API with JSON response schemas. Any API
// failure falls back to the canned responses so the demo never breaks on a
// flaky upstream.
type GeminiProvider struct {
	client     *genai.Client
	model      string
	imageModel string
	fallback   *StaticProvider
}

func NewGeminiProvider(ctx context.Context, cfg Config) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	imageModel := cfg.ImageModel
	if imageModel == "" {
		imageModel = defaultImageModel
	}

	return &GeminiProvider{
		client:     client,
		model:      model,
		imageModel: imageModel,
		fallback:   NewStaticProvider(),
	}, nil
}

func (p *GeminiProvider) generateJSON(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return fmt.Errorf("generate content: %w", err)
	}
	if err := json.Unmarshal([]byte(resp.Text()), out); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}
	return nil
}

func (p *GeminiProvider) Compatibility(ctx context.Context, bioA, bioB string) (Compatibility, error) {
	prompt := fmt.Sprintf(`Analyze the compatibility between two people based on their dating profiles.
User 1 bio: %q
User 2 bio: %q
Provide a "vibe" for User 2 from User 1's perspective and a compatibility score between 0 and 100.`, bioA, bioB)

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"vibe":  {Type: genai.TypeString},
			"score": {Type: genai.TypeNumber},
		},
	}

	var out Compatibility
	if err := p.generateJSON(ctx, prompt, schema, &out); err != nil {
		return p.fallback.Compatibility(ctx, bioA, bioB)
	}
	return out, nil
}

func (p *GeminiProvider) DateIdeaDraft(ctx context.Context, interests []string) (DateIdeaDraft, error) {
	prompt := fmt.Sprintf("Generate a creative and fun date idea for someone whose interests include: %s. Provide a title, a short, appealing description, and a suggested location type.", strings.Join(interests, ", "))

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":       {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
			"location":    {Type: genai.TypeString},
		},
	}

	var out DateIdeaDraft
	if err := p.generateJSON(ctx, prompt, schema, &out); err != nil {
		return p.fallback.DateIdeaDraft(ctx, interests)
	}
	return out, nil
}

func (p *GeminiProvider) ChatSuggestions(ctx context.Context, chatTranscript string) ([]string, error) {
	prompt := fmt.Sprintf(`You are an AI Wingman. Based on the following chat conversation, suggest three distinct, creative, and engaging replies for "Me". Keep them short and playful.
Conversation:
%s
Me: ...`, chatTranscript)

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"suggestions": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
	}

	var out struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := p.generateJSON(ctx, prompt, schema, &out); err != nil {
		return p.fallback.ChatSuggestions(ctx, chatTranscript)
	}
	return out.Suggestions, nil
}

func (p *GeminiProvider) ProfileFeedback(ctx context.Context, bio string) (ProfileFeedback, error) {
	prompt := fmt.Sprintf(`Analyze this dating profile bio: %q. Provide constructive feedback on how to improve it and also suggest a short, catchy "vibe" (2-3 words) that summarizes the personality.`, bio)

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"feedback": {Type: genai.TypeString},
			"vibe":     {Type: genai.TypeString},
		},
	}

	var out ProfileFeedback
	if err := p.generateJSON(ctx, prompt, schema, &out); err != nil {
		return p.fallback.ProfileFeedback(ctx, bio)
	}
	return out, nil
}

func (p *GeminiProvider) BackgroundImage(ctx context.Context, theme string) (string, error) {
	prompt := fmt.Sprintf("An atmospheric, aesthetic, abstract background image for a mobile app. Theme: %s. Use a beautiful color palette.", theme)

	resp, err := p.client.Models.GenerateImages(ctx, p.imageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: "image/jpeg",
		AspectRatio:    "9:16",
	})
	if err != nil || len(resp.GeneratedImages) == 0 {
		return p.fallback.BackgroundImage(ctx, theme)
	}

	img := resp.GeneratedImages[0]
	if img.Image == nil || len(img.Image.ImageBytes) == 0 {
		return p.fallback.BackgroundImage(ctx, theme)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(img.Image.ImageBytes), nil
}
