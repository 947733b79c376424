package handlers

import (
	"errors"
	"net/http"

	marketplacesvc "github.com/nrattyp233/create-a-date1/internal/services/marketplace"
	"github.com/nrattyp233/create-a-date1/internal/transport/http/dto"
	httperrors "github.com/nrattyp233/create-a-date1/internal/transport/http/errors"
)

type DateIdeaHandler struct {
	service *marketplacesvc.Service
}

func NewDateIdeaHandler(service *marketplacesvc.Service) *DateIdeaHandler {
	return &DateIdeaHandler{service: service}
}

func (h *DateIdeaHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MARKETPLACE_SERVICE_UNAVAILABLE", "marketplace service is unavailable")
		return
	}

	views, err := h.service.List(r.Context())
	if err != nil {
		if !writeStoreError(w, err) {
			writeInternal(w, "INTERNAL_ERROR", "failed to list date ideas")
		}
		return
	}

	out := make([]dto.DateIdeaResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dto.MapDateIdea(v))
	}
	httperrors.Write(w, http.StatusOK, out)
}

func (h *DateIdeaHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MARKETPLACE_SERVICE_UNAVAILABLE", "marketplace service is unavailable")
		return
	}

	var req dto.DateIdeaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	idea, err := h.service.Create(r.Context(), req.CreatorID, req.Title, req.Description, req.Location)
	if err != nil {
		switch {
		case errors.Is(err, marketplacesvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "title, description and location are required")
		case writeStoreError(w, err):
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to create date idea")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, struct {
		ID int64 `json:"id"`
	}{ID: idea.ID})
}

func (h *DateIdeaHandler) Apply(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MARKETPLACE_SERVICE_UNAVAILABLE", "marketplace service is unavailable")
		return
	}

	ideaID, err := pathID(r, "id")
	if err != nil || ideaID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid date idea id")
		return
	}

	var req dto.ApplyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	if _, err := h.service.Apply(r.Context(), ideaID, req.UserID); err != nil {
		switch {
		case errors.Is(err, marketplacesvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid apply request")
		case errors.Is(err, marketplacesvc.ErrOwnIdea):
			writeForbidden(w, "OWN_IDEA", "cannot apply to your own date idea")
		case writeStoreError(w, err):
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to apply to date idea")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}
