package dto

type CompatibilityRequest struct {
	Bio1 string `json:"bio1"`
	Bio2 string `json:"bio2"`
}

type CompatibilityResponse struct {
	Vibe  string `json:"vibe"`
	Score int    `json:"score"`
}

type DateIdeaDraftRequest struct {
	Interests []string `json:"interests"`
}

type DateIdeaDraftResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type ChatSuggestionsRequest struct {
	Transcript string `json:"transcript"`
}

type ChatSuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type ProfileFeedbackRequest struct {
	Bio string `json:"bio"`
}

type ProfileFeedbackResponse struct {
	Feedback string `json:"feedback"`
	Vibe     string `json:"vibe"`
}

type BackgroundRequest struct {
	Prompt string `json:"prompt"`
}

type BackgroundResponse struct {
	URL string `json:"url"`
}
