package handlers

import (
	"net/http"

	feedsvc "github.com/nrattyp233/create-a-date1/internal/services/feed"
	"github.com/nrattyp233/create-a-date1/internal/transport/http/dto"
	httperrors "github.com/nrattyp233/create-a-date1/internal/transport/http/errors"
)

type FeedHandler struct {
	service *feedsvc.Service
}

func NewFeedHandler(service *feedsvc.Service) *FeedHandler {
	return &FeedHandler{service: service}
}

func (h *FeedHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "FEED_SERVICE_UNAVAILABLE", "feed service is unavailable")
		return
	}

	userID, err := pathID(r, "userId")
	if err != nil || userID < 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	users, err := h.service.Candidates(r.Context(), userID)
	if err != nil {
		if !writeStoreError(w, err) {
			writeInternal(w, "INTERNAL_ERROR", "failed to load feed")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MapUsers(users))
}
