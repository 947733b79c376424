package handlers

import (
	"net/http"
	"strings"

	assistsvc "github.com/nrattyp233/create-a-date1/internal/services/assist"
	"github.com/nrattyp233/create-a-date1/internal/transport/http/dto"
	httperrors "github.com/nrattyp233/create-a-date1/internal/transport/http/errors"
)

type AssistHandler struct {
	provider assistsvc.Provider
}

func NewAssistHandler(provider assistsvc.Provider) *AssistHandler {
	return &AssistHandler{provider: provider}
}

func (h *AssistHandler) Compatibility(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		writeInternal(w, "ASSIST_UNAVAILABLE", "assist provider is unavailable")
		return
	}

	var req dto.CompatibilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	result, err := h.provider.Compatibility(r.Context(), req.Bio1, req.Bio2)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to analyze compatibility")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.CompatibilityResponse{
		Vibe:  result.Vibe,
		Score: result.Score,
	})
}

func (h *AssistHandler) DateIdeaDraft(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		writeInternal(w, "ASSIST_UNAVAILABLE", "assist provider is unavailable")
		return
	}

	var req dto.DateIdeaDraftRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	draft, err := h.provider.DateIdeaDraft(r.Context(), req.Interests)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to draft date idea")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.DateIdeaDraftResponse{
		Title:       draft.Title,
		Description: draft.Description,
		Location:    draft.Location,
	})
}

func (h *AssistHandler) ChatSuggestions(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		writeInternal(w, "ASSIST_UNAVAILABLE", "assist provider is unavailable")
		return
	}

	var req dto.ChatSuggestionsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	suggestions, err := h.provider.ChatSuggestions(r.Context(), req.Transcript)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to suggest replies")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ChatSuggestionsResponse{Suggestions: suggestions})
}

func (h *AssistHandler) ProfileFeedback(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		writeInternal(w, "ASSIST_UNAVAILABLE", "assist provider is unavailable")
		return
	}

	var req dto.ProfileFeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Bio) == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "bio is required")
		return
	}

	feedback, err := h.provider.ProfileFeedback(r.Context(), req.Bio)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to review profile")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ProfileFeedbackResponse{
		Feedback: feedback.Feedback,
		Vibe:     feedback.Vibe,
	})
}

func (h *AssistHandler) Background(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		writeInternal(w, "ASSIST_UNAVAILABLE", "assist provider is unavailable")
		return
	}

	var req dto.BackgroundRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	url, err := h.provider.BackgroundImage(r.Context(), req.Prompt)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to generate background")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.BackgroundResponse{URL: url})
}
