package handlers

import (
	"errors"
	"net/http"

	userssvc "github.com/nrattyp233/create-a-date1/internal/services/users"
	"github.com/nrattyp233/create-a-date1/internal/transport/http/dto"
	httperrors "github.com/nrattyp233/create-a-date1/internal/transport/http/errors"
)

// AuthHandler performs the demo login: the client picks a profile id and
// gets the profile back, no credentials involved.
type AuthHandler struct {
	users *userssvc.Service
}

func NewAuthHandler(users *userssvc.Service) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.users == nil {
		writeInternal(w, "USERS_SERVICE_UNAVAILABLE", "users service is unavailable")
		return
	}

	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	user, err := h.users.Login(r.Context(), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, userssvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		case writeStoreError(w, err):
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to log in")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MapUser(user))
}
