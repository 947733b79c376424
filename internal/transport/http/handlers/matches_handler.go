package handlers

import (
	"errors"
	"net/http"
	"strings"

	chatsvc "github.com/nrattyp233/create-a-date1/internal/services/chat"
	"github.com/nrattyp233/create-a-date1/internal/transport/http/dto"
	httperrors "github.com/nrattyp233/create-a-date1/internal/transport/http/errors"
)

type MatchesHandler struct {
	service *chatsvc.Service
}

func NewMatchesHandler(service *chatsvc.Service) *MatchesHandler {
	return &MatchesHandler{service: service}
}

func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CHAT_SERVICE_UNAVAILABLE", "chat service is unavailable")
		return
	}

	userID, err := pathID(r, "userId")
	if err != nil || userID < 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	views, err := h.service.ListMatches(r.Context(), userID)
	if err != nil {
		if !writeStoreError(w, err) {
			writeInternal(w, "INTERNAL_ERROR", "failed to list matches")
		}
		return
	}

	out := make([]dto.MatchResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dto.MapMatch(v))
	}
	httperrors.Write(w, http.StatusOK, out)
}

func (h *MatchesHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CHAT_SERVICE_UNAVAILABLE", "chat service is unavailable")
		return
	}

	var req dto.MessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "text is required")
		return
	}

	msg, err := h.service.SendMessage(r.Context(), req.MatchID, req.SenderID, req.Text)
	if err != nil {
		h.writeChatError(w, err, "failed to send message")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MapMessage(msg))
}

func (h *MatchesHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CHAT_SERVICE_UNAVAILABLE", "chat service is unavailable")
		return
	}

	matchID, err := pathID(r, "matchId")
	if err != nil || matchID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid match id")
		return
	}

	var req dto.MarkReadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	if err := h.service.MarkRead(r.Context(), matchID, req.UserID); err != nil {
		h.writeChatError(w, err, "failed to mark match read")
		return
	}

	httperrors.Write(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}

func (h *MatchesHandler) writeChatError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, chatsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, chatsvc.ErrUnauthorized):
		writeForbidden(w, "NOT_A_PARTICIPANT", "user is not a participant of this match")
	case writeStoreError(w, err):
	default:
		writeInternal(w, "INTERNAL_ERROR", fallback)
	}
}
