package model

import "time"

type DateIdea struct {
	ID           int64     `json:"id"`
	CreatorID    int64     `json:"creator_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	ApplicantIDs []int64   `json:"applicant_ids"`
	CreatedAt    time.Time `json:"created_at"`
}

func (d DateIdea) HasApplicant(userID int64) bool {
	for _, id := range d.ApplicantIDs {
		if id == userID {
			return true
		}
	}
	return false
}
