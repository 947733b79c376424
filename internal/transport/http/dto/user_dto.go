package dto

import (
	"github.com/nrattyp233/create-a-date1/internal/domain/model"
)

// UserResponse is the wire shape of a profile. The client API uses
// camelCase keys.
type UserResponse struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	Bio       string   `json:"bio"`
	Vibe      string   `json:"vibe"`
	Photos    []string `json:"photos"`
	Interests []string `json:"interests"`
}

func MapUser(u model.User) UserResponse {
	photos := u.Photos
	if photos == nil {
		photos = []string{}
	}
	interests := u.Interests
	if interests == nil {
		interests = []string{}
	}
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Age:       u.Age,
		Bio:       u.Bio,
		Vibe:      u.Vibe,
		Photos:    photos,
		Interests: interests,
	}
}

func MapUsers(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, MapUser(u))
	}
	return out
}

type LoginRequest struct {
	UserID int64 `json:"userId"`
}

type ProfileUpdateRequest struct {
	Name      *string   `json:"name"`
	Age       *int      `json:"age"`
	Bio       *string   `json:"bio"`
	Vibe      *string   `json:"vibe"`
	Photos    *[]string `json:"photos"`
	Interests *[]string `json:"interests"`
}

type PhotoUploadResponse struct {
	URL string `json:"url"`
}
