package handlers

import (
	"errors"
	"net/http"

	mediasvc "github.com/nrattyp233/create-a-date1/internal/services/media"
	userssvc "github.com/nrattyp233/create-a-date1/internal/services/users"
	"github.com/nrattyp233/create-a-date1/internal/transport/http/dto"
	httperrors "github.com/nrattyp233/create-a-date1/internal/transport/http/errors"
)

const maxPhotoUploadBytes = 10 << 20

type ProfileHandler struct {
	users *userssvc.Service
	media *mediasvc.Service
}

func NewProfileHandler(users *userssvc.Service, media *mediasvc.Service) *ProfileHandler {
	return &ProfileHandler{
		users: users,
		media: media,
	}
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h.users == nil {
		writeInternal(w, "USERS_SERVICE_UNAVAILABLE", "users service is unavailable")
		return
	}

	userID, err := pathID(r, "id")
	if err != nil || userID < 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	var req dto.ProfileUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, userssvc.ProfilePatch{
		Name:      req.Name,
		Age:       req.Age,
		Bio:       req.Bio,
		Vibe:      req.Vibe,
		Photos:    req.Photos,
		Interests: req.Interests,
	})
	if err != nil {
		switch {
		case errors.Is(err, userssvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid profile fields")
		case writeStoreError(w, err):
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to update profile")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MapUser(user))
}

// UploadPhoto accepts a multipart form with a "photo" file field.
func (h *ProfileHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if h.media == nil {
		writeNotFound(w, "MEDIA_DISABLED", "photo uploads are not configured")
		return
	}

	userID, err := pathID(r, "id")
	if err != nil || userID < 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoUploadBytes)
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "photo file is required")
		return
	}
	defer file.Close()

	url, err := h.media.UploadPhoto(r.Context(), userID, header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		switch {
		case errors.Is(err, mediasvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid photo upload")
		case errors.Is(err, mediasvc.ErrPhotoLimitReached):
			httperrors.Write(w, http.StatusConflict, httperrors.APIError{
				Code:    "PHOTO_LIMIT_REACHED",
				Message: "photo limit reached",
			})
		case writeStoreError(w, err):
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to upload photo")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.PhotoUploadResponse{URL: url})
}
