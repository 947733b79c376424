// Package sheets is the remote-service storage driver. Entities are proxied
// through an external tabular rows API (PostgREST dialect): the remote side
// has no query language, so every higher-level operation fetches raw rows and
// filters client-side. This variant is a documented fallback, not the primary
// deployment — mutations are serialized with a client-side lock and there is
// no server-side atomicity.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nrattyp233/create-a-date1/internal/domain/enums"
	"github.com/nrattyp233/create-a-date1/internal/domain/model"
	"github.com/nrattyp233/create-a-date1/internal/store"
)

type Config struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

type Store struct {
	mu      sync.Mutex
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("sheets base url is required")
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Store{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    client,
	}, nil
}

type userRow struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Bio       string    `json:"bio"`
	Vibe      string    `json:"vibe"`
	Photos    []string  `json:"photos"`
	Interests []string  `json:"interests"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type swipeRow struct {
	ID        int64     `json:"id"`
	SwiperID  int64     `json:"swiper_id"`
	SwipedID  int64     `json:"swiped_id"`
	Direction string    `json:"direction"`
	CreatedAt time.Time `json:"created_at"`
}

type matchRow struct {
	ID            int64     `json:"id"`
	UserAID       int64     `json:"user_a_id"`
	UserBID       int64     `json:"user_b_id"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	UnreadA       bool      `json:"unread_a"`
	UnreadB       bool      `json:"unread_b"`
	MatchedAt     time.Time `json:"matched_at"`
}

type messageRow struct {
	ID        int64     `json:"id"`
	MatchID   int64     `json:"match_id"`
	SenderID  int64     `json:"sender_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type dateIdeaRow struct {
	ID           int64     `json:"id"`
	CreatorID    int64     `json:"creator_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	ApplicantIDs []int64   `json:"applicant_ids"`
	CreatedAt    time.Time `json:"created_at"`
}

func (s *Store) do(ctx context.Context, method, table string, query url.Values, body, out any) error {
	endpoint := s.baseURL + "/rest/v1/" + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s row: %w", table, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return fmt.Errorf("build %s request: %w", table, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=minimal")
	}
	if s.apiKey != "" {
		req.Header.Set("apikey", s.apiKey)
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %v: %w", method, table, err, store.ErrBackendUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s: %w", method, table, resp.StatusCode, strings.TrimSpace(string(detail)), store.ErrBackendUnavailable)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s rows: %v: %w", table, err, store.ErrBackendUnavailable)
		}
	}
	return nil
}

func (s *Store) list(ctx context.Context, table string, out any) error {
	q := url.Values{}
	q.Set("select", "*")
	return s.do(ctx, http.MethodGet, table, q, nil, out)
}

func (s *Store) insert(ctx context.Context, table string, row any) error {
	return s.do(ctx, http.MethodPost, table, nil, row, nil)
}

func (s *Store) update(ctx context.Context, table string, id int64, row any) error {
	q := url.Values{}
	q.Set("id", "eq."+strconv.FormatInt(id, 10))
	return s.do(ctx, http.MethodPatch, table, q, row, nil)
}

func (s *Store) users(ctx context.Context) ([]userRow, error) {
	var rows []userRow
	if err := s.list(ctx, "users", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) swipes(ctx context.Context) ([]swipeRow, error) {
	var rows []swipeRow
	if err := s.list(ctx, "swipes", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) matches(ctx context.Context) ([]matchRow, error) {
	var rows []matchRow
	if err := s.list(ctx, "matches", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) messages(ctx context.Context) ([]messageRow, error) {
	var rows []messageRow
	if err := s.list(ctx, "messages", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) dateIdeas(ctx context.Context) ([]dateIdeaRow, error) {
	var rows []dateIdeaRow
	if err := s.list(ctx, "date_ideas", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (model.User, error) {
	rows, err := s.users(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, r := range rows {
		if r.ID == id {
			return userFromRow(r), nil
		}
	}
	return model.User{}, store.ErrNotFound
}

func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.users(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.User, 0, len(rows))
	for _, r := range rows {
		out = append(out, userFromRow(r))
	}
	return out, nil
}

func (s *Store) ListSwipesBySwiper(ctx context.Context, swiperID int64) ([]model.Swipe, error) {
	rows, err := s.swipes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Swipe, 0)
	for _, r := range rows {
		if r.SwiperID == swiperID {
			out = append(out, swipeFromRow(r))
		}
	}
	return out, nil
}

func (s *Store) RightSwipeExists(ctx context.Context, swiperID, swipedID int64) (bool, error) {
	rows, err := s.swipes(ctx)
	if err != nil {
		return false, err
	}
	for _, r := range rows {
		if r.SwiperID == swiperID && r.SwipedID == swipedID && enums.SwipeDirection(r.Direction) == enums.SwipeRight {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) GetMatch(ctx context.Context, id int64) (model.Match, error) {
	rows, err := s.matches(ctx)
	if err != nil {
		return model.Match{}, err
	}
	for _, r := range rows {
		if r.ID == id {
			return matchFromRow(r), nil
		}
	}
	return model.Match{}, store.ErrNotFound
}

func (s *Store) ListMatchesForUser(ctx context.Context, userID int64) ([]model.Match, error) {
	rows, err := s.matches(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Match, 0)
	for _, r := range rows {
		m := matchFromRow(r)
		if m.HasParticipant(userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Store) ListMessages(ctx context.Context, matchID int64) ([]model.Message, error) {
	rows, err := s.messages(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Message, 0)
	for _, r := range rows {
		if r.MatchID == matchID {
			out = append(out, messageFromRow(r))
		}
	}
	return out, nil
}

func (s *Store) GetDateIdea(ctx context.Context, id int64) (model.DateIdea, error) {
	rows, err := s.dateIdeas(ctx)
	if err != nil {
		return model.DateIdea{}, err
	}
	for _, r := range rows {
		if r.ID == id {
			return dateIdeaFromRow(r), nil
		}
	}
	return model.DateIdea{}, store.ErrNotFound
}

func (s *Store) ListDateIdeas(ctx context.Context) ([]model.DateIdea, error) {
	rows, err := s.dateIdeas(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.DateIdea, 0, len(rows))
	for _, r := range rows {
		out = append(out, dateIdeaFromRow(r))
	}
	return out, nil
}

// Mutate serializes writers within this process only; the remote service
// offers no transaction, so a mid-sequence failure can leave partial state.
func (s *Store) Mutate(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, &tx{s: s})
}

func (s *Store) Close() {}

type tx struct {
	s *Store
}

func (t *tx) GetUser(ctx context.Context, id int64) (model.User, error) {
	return t.s.GetUser(ctx, id)
}

func (t *tx) ListUsers(ctx context.Context) ([]model.User, error) {
	return t.s.ListUsers(ctx)
}

func (t *tx) ListSwipesBySwiper(ctx context.Context, swiperID int64) ([]model.Swipe, error) {
	return t.s.ListSwipesBySwiper(ctx, swiperID)
}

func (t *tx) RightSwipeExists(ctx context.Context, swiperID, swipedID int64) (bool, error) {
	return t.s.RightSwipeExists(ctx, swiperID, swipedID)
}

func (t *tx) GetMatch(ctx context.Context, id int64) (model.Match, error) {
	return t.s.GetMatch(ctx, id)
}

func (t *tx) ListMatchesForUser(ctx context.Context, userID int64) ([]model.Match, error) {
	return t.s.ListMatchesForUser(ctx, userID)
}

func (t *tx) ListMessages(ctx context.Context, matchID int64) ([]model.Message, error) {
	return t.s.ListMessages(ctx, matchID)
}

func (t *tx) GetDateIdea(ctx context.Context, id int64) (model.DateIdea, error) {
	return t.s.GetDateIdea(ctx, id)
}

func (t *tx) ListDateIdeas(ctx context.Context) ([]model.DateIdea, error) {
	return t.s.ListDateIdeas(ctx)
}

func (t *tx) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	rows, err := t.s.users(ctx)
	if err != nil {
		return model.User{}, err
	}
	taken := false
	var max int64
	for _, r := range rows {
		if r.ID == u.ID {
			taken = true
		}
		if r.ID > max {
			max = r.ID
		}
	}
	if taken {
		u.ID = max + 1
	}
	if u.Photos == nil {
		u.Photos = []string{}
	}
	if u.Interests == nil {
		u.Interests = []string{}
	}
	if err := t.s.insert(ctx, "users", userToRow(u)); err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (t *tx) UpdateUser(ctx context.Context, id int64, patch store.ProfilePatch) (model.User, error) {
	u, err := t.s.GetUser(ctx, id)
	if err != nil {
		return model.User{}, err
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
	if err := t.s.update(ctx, "users", id, userToRow(u)); err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (t *tx) AppendSwipe(ctx context.Context, swiperID, swipedID int64, direction enums.SwipeDirection, now time.Time) (model.Swipe, error) {
	rows, err := t.s.swipes(ctx)
	if err != nil {
		return model.Swipe{}, err
	}
	var max int64
	for _, r := range rows {
		if r.ID > max {
			max = r.ID
		}
	}
	sw := model.Swipe{
		ID:        max + 1,
		SwiperID:  swiperID,
		SwipedID:  swipedID,
		Direction: direction,
		CreatedAt: now.UTC(),
	}
	if err := t.s.insert(ctx, "swipes", swipeToRow(sw)); err != nil {
		return model.Swipe{}, err
	}
	return sw, nil
}

func (t *tx) CreateMatch(ctx context.Context, userAID, userBID int64, now time.Time) (model.Match, bool, error) {
	userAID, userBID = model.CanonicalPair(userAID, userBID)
	rows, err := t.s.matches(ctx)
	if err != nil {
		return model.Match{}, false, err
	}
	var max int64
	for _, r := range rows {
		if r.UserAID == userAID && r.UserBID == userBID {
			return matchFromRow(r), false, nil
		}
		if r.ID > max {
			max = r.ID
		}
	}
	m := model.Match{
		ID:        max + 1,
		UserAID:   userAID,
		UserBID:   userBID,
		MatchedAt: now.UTC(),
	}
	if err := t.s.insert(ctx, "matches", matchToRow(m)); err != nil {
		return model.Match{}, false, err
	}
	return m, true, nil
}

func (t *tx) AppendMessage(ctx context.Context, matchID, senderID int64, text string, now time.Time) (model.Message, error) {
	m, err := t.s.GetMatch(ctx, matchID)
	if err != nil {
		return model.Message{}, err
	}

	rows, err := t.s.messages(ctx)
	if err != nil {
		return model.Message{}, err
	}
	ts := now.UTC()
	var max int64
	for _, r := range rows {
		if r.ID > max {
			max = r.ID
		}
		if r.MatchID == matchID && ts.Before(r.CreatedAt) {
			ts = r.CreatedAt
		}
	}

	msg := model.Message{
		ID:        max + 1,
		MatchID:   matchID,
		SenderID:  senderID,
		Text:      text,
		CreatedAt: ts,
	}
	if err := t.s.insert(ctx, "messages", messageToRow(msg)); err != nil {
		return model.Message{}, err
	}

	m.LastMessage = msg.Text
	m.LastMessageAt = msg.CreatedAt
	if senderID == m.UserAID {
		m.UnreadB = true
	} else {
		m.UnreadA = true
	}
	if err := t.s.update(ctx, "matches", matchID, matchToRow(m)); err != nil {
		return model.Message{}, err
	}
	return msg, nil
}

func (t *tx) MarkRead(ctx context.Context, matchID, readerID int64) error {
	m, err := t.s.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if m.UserAID == readerID {
		m.UnreadA = false
	}
	if m.UserBID == readerID {
		m.UnreadB = false
	}
	return t.s.update(ctx, "matches", matchID, matchToRow(m))
}

func (t *tx) CreateDateIdea(ctx context.Context, creatorID int64, title, description, location string, now time.Time) (model.DateIdea, error) {
	rows, err := t.s.dateIdeas(ctx)
	if err != nil {
		return model.DateIdea{}, err
	}
	var max int64
	for _, r := range rows {
		if r.ID > max {
			max = r.ID
		}
	}
	d := model.DateIdea{
		ID:           max + 1,
		CreatorID:    creatorID,
		Title:        title,
		Description:  description,
		Location:     location,
		ApplicantIDs: []int64{},
		CreatedAt:    now.UTC(),
	}
	if err := t.s.insert(ctx, "date_ideas", dateIdeaToRow(d)); err != nil {
		return model.DateIdea{}, err
	}
	return d, nil
}

func (t *tx) AddApplicant(ctx context.Context, ideaID, userID int64) (model.DateIdea, bool, error) {
	d, err := t.s.GetDateIdea(ctx, ideaID)
	if err != nil {
		return model.DateIdea{}, false, err
	}
	if d.HasApplicant(userID) {
		return d, false, nil
	}
	d.ApplicantIDs = append(d.ApplicantIDs, userID)
	if err := t.s.update(ctx, "date_ideas", ideaID, dateIdeaToRow(d)); err != nil {
		return model.DateIdea{}, false, err
	}
	return d, true, nil
}

func userFromRow(r userRow) model.User {
	photos := r.Photos
	if photos == nil {
		photos = []string{}
	}
	interests := r.Interests
	if interests == nil {
		interests = []string{}
	}
	return model.User{
		ID:        r.ID,
		Name:      r.Name,
		Age:       r.Age,
		Bio:       r.Bio,
		Vibe:      r.Vibe,
		Photos:    photos,
		Interests: interests,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func userToRow(u model.User) userRow {
	return userRow{
		ID:        u.ID,
		Name:      u.Name,
		Age:       u.Age,
		Bio:       u.Bio,
		Vibe:      u.Vibe,
		Photos:    u.Photos,
		Interests: u.Interests,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func swipeFromRow(r swipeRow) model.Swipe {
	return model.Swipe{
		ID:        r.ID,
		SwiperID:  r.SwiperID,
		SwipedID:  r.SwipedID,
		Direction: enums.SwipeDirection(r.Direction),
		CreatedAt: r.CreatedAt,
	}
}

func swipeToRow(s model.Swipe) swipeRow {
	return swipeRow{
		ID:        s.ID,
		SwiperID:  s.SwiperID,
		SwipedID:  s.SwipedID,
		Direction: string(s.Direction),
		CreatedAt: s.CreatedAt,
	}
}

func matchFromRow(r matchRow) model.Match {
	return model.Match(r)
}

func matchToRow(m model.Match) matchRow {
	return matchRow(m)
}

func messageFromRow(r messageRow) model.Message {
	return model.Message(r)
}

func messageToRow(m model.Message) messageRow {
	return messageRow(m)
}

func dateIdeaFromRow(r dateIdeaRow) model.DateIdea {
	applicants := r.ApplicantIDs
	if applicants == nil {
		applicants = []int64{}
	}
	return model.DateIdea{
		ID:           r.ID,
		CreatorID:    r.CreatorID,
		Title:        r.Title,
		Description:  r.Description,
		Location:     r.Location,
		ApplicantIDs: applicants,
		CreatedAt:    r.CreatedAt,
	}
}

func dateIdeaToRow(d model.DateIdea) dateIdeaRow {
	return dateIdeaRow(d)
}
