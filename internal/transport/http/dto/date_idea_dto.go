package dto

import (
	"time"

	marketplacesvc "github.com/nrattyp233/create-a-date1/internal/services/marketplace"
)

type DateIdeaRequest struct {
	CreatorID   int64  `json:"creatorId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type ApplyRequest struct {
	UserID int64 `json:"userId"`
}

type DateIdeaResponse struct {
	ID          int64          `json:"id"`
	Creator     UserResponse   `json:"creator"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Applicants  []UserResponse `json:"applicants"`
	CreatedAt   string         `json:"createdAt"`
}

func MapDateIdea(v marketplacesvc.DateIdeaView) DateIdeaResponse {
	return DateIdeaResponse{
		ID:          v.Idea.ID,
		Creator:     MapUser(v.Creator),
		Title:       v.Idea.Title,
		Description: v.Idea.Description,
		Location:    v.Idea.Location,
		Applicants:  MapUsers(v.Applicants),
		CreatedAt:   v.Idea.CreatedAt.UTC().Format(time.RFC3339),
	}
}
