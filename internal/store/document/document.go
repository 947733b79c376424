// Package document holds the canonical entity collections in one flat
// document, the schema shared by the in-process and file-backed drivers.
package document

import (
	"context"
	"time"

	"github.com/nrattyp233/create-a-date1/internal/domain/enums"
	"github.com/nrattyp233/create-a-date1/internal/domain/model"
	"github.com/nrattyp233/create-a-date1/internal/store"
)

type Document struct {
	Users     []model.User     `json:"users"`
	Swipes    []model.Swipe    `json:"swipes"`
	Matches   []model.Match    `json:"matches"`
	Messages  []model.Message  `json:"messages"`
	DateIdeas []model.DateIdea `json:"dateIdeas"`
}

func New() *Document {
	return &Document{
		Users:     []model.User{},
		Swipes:    []model.Swipe{},
		Matches:   []model.Match{},
		Messages:  []model.Message{},
		DateIdeas: []model.DateIdea{},
	}
}

// Clone deep-copies the document so a failed mutation can be discarded
// without touching the live state.
func (d *Document) Clone() *Document {
	out := &Document{
		Users:     make([]model.User, len(d.Users)),
		Swipes:    append([]model.Swipe{}, d.Swipes...),
		Matches:   append([]model.Match{}, d.Matches...),
		Messages:  append([]model.Message{}, d.Messages...),
		DateIdeas: make([]model.DateIdea, len(d.DateIdeas)),
	}
	for i, u := range d.Users {
		out.Users[i] = copyUser(u)
	}
	for i, idea := range d.DateIdeas {
		out.DateIdeas[i] = copyDateIdea(idea)
	}
	return out
}

func copyUser(u model.User) model.User {
	u.Photos = append([]string{}, u.Photos...)
	u.Interests = append([]string{}, u.Interests...)
	return u
}

func copyDateIdea(d model.DateIdea) model.DateIdea {
	d.ApplicantIDs = append([]int64{}, d.ApplicantIDs...)
	return d
}

// Tx implements the store capability surface over a single document. Callers
// are responsible for serializing access to the underlying document.
type Tx struct {
	doc *Document
}

func NewTx(doc *Document) *Tx {
	return &Tx{doc: doc}
}

func (t *Tx) GetUser(_ context.Context, id int64) (model.User, error) {
	for _, u := range t.doc.Users {
		if u.ID == id {
			return copyUser(u), nil
		}
	}
	return model.User{}, store.ErrNotFound
}

func (t *Tx) ListUsers(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(t.doc.Users))
	for _, u := range t.doc.Users {
		out = append(out, copyUser(u))
	}
	return out, nil
}

func (t *Tx) ListSwipesBySwiper(_ context.Context, swiperID int64) ([]model.Swipe, error) {
	out := make([]model.Swipe, 0)
	for _, s := range t.doc.Swipes {
		if s.SwiperID == swiperID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (t *Tx) RightSwipeExists(_ context.Context, swiperID, swipedID int64) (bool, error) {
	for _, s := range t.doc.Swipes {
		if s.SwiperID == swiperID && s.SwipedID == swipedID && s.Direction == enums.SwipeRight {
			return true, nil
		}
	}
	return false, nil
}

func (t *Tx) GetMatch(_ context.Context, id int64) (model.Match, error) {
	for _, m := range t.doc.Matches {
		if m.ID == id {
			return m, nil
		}
	}
	return model.Match{}, store.ErrNotFound
}

func (t *Tx) ListMatchesForUser(_ context.Context, userID int64) ([]model.Match, error) {
	out := make([]model.Match, 0)
	for _, m := range t.doc.Matches {
		if m.HasParticipant(userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (t *Tx) ListMessages(_ context.Context, matchID int64) ([]model.Message, error) {
	out := make([]model.Message, 0)
	for _, msg := range t.doc.Messages {
		if msg.MatchID == matchID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (t *Tx) GetDateIdea(_ context.Context, id int64) (model.DateIdea, error) {
	for _, d := range t.doc.DateIdeas {
		if d.ID == id {
			return copyDateIdea(d), nil
		}
	}
	return model.DateIdea{}, store.ErrNotFound
}

func (t *Tx) ListDateIdeas(_ context.Context) ([]model.DateIdea, error) {
	out := make([]model.DateIdea, 0, len(t.doc.DateIdeas))
	for _, d := range t.doc.DateIdeas {
		out = append(out, copyDateIdea(d))
	}
	return out, nil
}

func (t *Tx) CreateUser(_ context.Context, u model.User) (model.User, error) {
	if t.userIDTaken(u.ID) {
		u.ID = nextID(userIDs(t.doc.Users))
	}
	u = copyUser(u)
	if u.Photos == nil {
		u.Photos = []string{}
	}
	if u.Interests == nil {
		u.Interests = []string{}
	}
	t.doc.Users = append(t.doc.Users, u)
	return copyUser(u), nil
}

func (t *Tx) UpdateUser(_ context.Context, id int64, patch store.ProfilePatch) (model.User, error) {
	for i, u := range t.doc.Users {
		if u.ID != id {
			continue
		}
		if patch.Name != nil {
			u.Name = *patch.Name
		}
		if patch.Age != nil {
			u.Age = *patch.Age
		}
		if patch.Bio != nil {
			u.Bio = *patch.Bio
		}
		if patch.Vibe != nil {
			u.Vibe = *patch.Vibe
		}
		if patch.Photos != nil {
			u.Photos = append([]string{}, (*patch.Photos)...)
		}
		if patch.Interests != nil {
			u.Interests = append([]string{}, (*patch.Interests)...)
		}
		u.UpdatedAt = time.Now().UTC()
		t.doc.Users[i] = u
		return copyUser(u), nil
	}
	return model.User{}, store.ErrNotFound
}

func (t *Tx) AppendSwipe(_ context.Context, swiperID, swipedID int64, direction enums.SwipeDirection, now time.Time) (model.Swipe, error) {
	s := model.Swipe{
		ID:        nextID(swipeIDs(t.doc.Swipes)),
		SwiperID:  swiperID,
		SwipedID:  swipedID,
		Direction: direction,
		CreatedAt: now.UTC(),
	}
	t.doc.Swipes = append(t.doc.Swipes, s)
	return s, nil
}

func (t *Tx) CreateMatch(_ context.Context, userAID, userBID int64, now time.Time) (model.Match, bool, error) {
	userAID, userBID = model.CanonicalPair(userAID, userBID)
	for _, m := range t.doc.Matches {
		if m.UserAID == userAID && m.UserBID == userBID {
			return m, false, nil
		}
	}
	m := model.Match{
		ID:        nextID(matchIDs(t.doc.Matches)),
		UserAID:   userAID,
		UserBID:   userBID,
		MatchedAt: now.UTC(),
	}
	t.doc.Matches = append(t.doc.Matches, m)
	return m, true, nil
}

func (t *Tx) AppendMessage(ctx context.Context, matchID, senderID int64, text string, now time.Time) (model.Message, error) {
	idx := -1
	for i, m := range t.doc.Matches {
		if m.ID == matchID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return model.Message{}, store.ErrNotFound
	}

	ts := now.UTC()
	msgs, _ := t.ListMessages(ctx, matchID)
	if n := len(msgs); n > 0 && ts.Before(msgs[n-1].CreatedAt) {
		ts = msgs[n-1].CreatedAt
	}

	msg := model.Message{
		ID:        nextID(messageIDs(t.doc.Messages)),
		MatchID:   matchID,
		SenderID:  senderID,
		Text:      text,
		CreatedAt: ts,
	}
	t.doc.Messages = append(t.doc.Messages, msg)

	m := t.doc.Matches[idx]
	m.LastMessage = msg.Text
	m.LastMessageAt = msg.CreatedAt
	if senderID == m.UserAID {
		m.UnreadB = true
	} else {
		m.UnreadA = true
	}
	t.doc.Matches[idx] = m

	return msg, nil
}

func (t *Tx) MarkRead(_ context.Context, matchID, readerID int64) error {
	for i, m := range t.doc.Matches {
		if m.ID != matchID {
			continue
		}
		if m.UserAID == readerID {
			m.UnreadA = false
		}
		if m.UserBID == readerID {
			m.UnreadB = false
		}
		t.doc.Matches[i] = m
		return nil
	}
	return store.ErrNotFound
}

func (t *Tx) CreateDateIdea(_ context.Context, creatorID int64, title, description, location string, now time.Time) (model.DateIdea, error) {
	d := model.DateIdea{
		ID:           nextID(dateIdeaIDs(t.doc.DateIdeas)),
		CreatorID:    creatorID,
		Title:        title,
		Description:  description,
		Location:     location,
		ApplicantIDs: []int64{},
		CreatedAt:    now.UTC(),
	}
	t.doc.DateIdeas = append(t.doc.DateIdeas, d)
	return copyDateIdea(d), nil
}

func (t *Tx) AddApplicant(_ context.Context, ideaID, userID int64) (model.DateIdea, bool, error) {
	for i, d := range t.doc.DateIdeas {
		if d.ID != ideaID {
			continue
		}
		if d.HasApplicant(userID) {
			return copyDateIdea(d), false, nil
		}
		d.ApplicantIDs = append(d.ApplicantIDs, userID)
		t.doc.DateIdeas[i] = d
		return copyDateIdea(d), true, nil
	}
	return model.DateIdea{}, false, store.ErrNotFound
}

func (t *Tx) userIDTaken(id int64) bool {
	for _, u := range t.doc.Users {
		if u.ID == id {
			return true
		}
	}
	return false
}

// nextID mirrors the max-plus-one id assignment of the persisted layout.
func nextID(ids []int64) int64 {
	var max int64
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}

func userIDs(users []model.User) []int64 {
	out := make([]int64, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func swipeIDs(swipes []model.Swipe) []int64 {
	out := make([]int64, len(swipes))
	for i, s := range swipes {
		out[i] = s.ID
	}
	return out
}

func matchIDs(matches []model.Match) []int64 {
	out := make([]int64, len(matches))
	for i, m := range matches {
		out[i] = m.ID
	}
	return out
}

func messageIDs(messages []model.Message) []int64 {
	out := make([]int64, len(messages))
	for i, m := range messages {
		out[i] = m.ID
	}
	return out
}

func dateIdeaIDs(ideas []model.DateIdea) []int64 {
	out := make([]int64, len(ideas))
	for i, d := range ideas {
		out[i] = d.ID
	}
	return out
}
