package model

import "time"

// Match is a confirmed mutual right-swipe, stored once per canonical pair
// (UserAID < UserBID). Unread is tracked per participant so marking a chat
// read for one side never clears the other side's indicator.
type Match struct {
	ID            int64     `json:"id"`
	UserAID       int64     `json:"user_a_id"`
	UserBID       int64     `json:"user_b_id"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	UnreadA       bool      `json:"unread_a"`
	UnreadB       bool      `json:"unread_b"`
	MatchedAt     time.Time `json:"matched_at"`
}

// CanonicalPair orders two user ids so the smaller one always comes first.
func CanonicalPair(x, y int64) (int64, int64) {
	if x > y {
		return y, x
	}
	return x, y
}

func (m Match) HasParticipant(userID int64) bool {
	return m.UserAID == userID || m.UserBID == userID
}

// Other returns the participant that is not userID.
func (m Match) Other(userID int64) int64 {
	if m.UserAID == userID {
		return m.UserBID
	}
	return m.UserAID
}

func (m Match) UnreadFor(userID int64) bool {
	if m.UserAID == userID {
		return m.UnreadA
	}
	if m.UserBID == userID {
		return m.UnreadB
	}
	return false
}
