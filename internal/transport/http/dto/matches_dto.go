package dto

import (
	"time"

	"github.com/nrattyp233/create-a-date1/internal/domain/model"
	chatsvc "github.com/nrattyp233/create-a-date1/internal/services/chat"
)

type MessageResponse struct {
	ID        int64  `json:"id"`
	MatchID   int64  `json:"matchId"`
	SenderID  int64  `json:"senderId"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

func MapMessage(m model.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		MatchID:   m.MatchID,
		SenderID:  m.SenderID,
		Text:      m.Text,
		Timestamp: m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type MatchResponse struct {
	ID          int64             `json:"id"`
	User        UserResponse      `json:"user"`
	LastMessage string            `json:"lastMessage"`
	Timestamp   string            `json:"timestamp"`
	Unread      bool              `json:"unread"`
	ChatHistory []MessageResponse `json:"chatHistory"`
}

func MapMatch(v chatsvc.MatchView) MatchResponse {
	history := make([]MessageResponse, 0, len(v.ChatHistory))
	for _, m := range v.ChatHistory {
		history = append(history, MapMessage(m))
	}
	return MatchResponse{
		ID:          v.ID,
		User:        MapUser(v.User),
		LastMessage: v.LastMessage,
		Timestamp:   v.Timestamp.UTC().Format(time.RFC3339),
		Unread:      v.Unread,
		ChatHistory: history,
	}
}

type MessageRequest struct {
	MatchID  int64  `json:"matchId"`
	SenderID int64  `json:"senderId"`
	Text     string `json:"text"`
}

type MarkReadRequest struct {
	UserID int64 `json:"userId"`
}
