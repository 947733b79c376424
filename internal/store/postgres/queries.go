package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nrattyp233/create-a-date1/internal/domain/enums"
	"github.com/nrattyp233/create-a-date1/internal/domain/model"
	"github.com/nrattyp233/create-a-date1/internal/store"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so read queries can
// run inside and outside a mutation.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type tx struct {
	q querier
}

func getUser(ctx context.Context, q querier, id int64) (model.User, error) {
	var u model.User
	err := q.QueryRow(ctx, `
SELECT id, name, age, bio, vibe, photos, interests, created_at, updated_at
FROM users
WHERE id = $1
`, id).Scan(&u.ID, &u.Name, &u.Age, &u.Bio, &u.Vibe, &u.Photos, &u.Interests, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, store.ErrNotFound
		}
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func listUsers(ctx context.Context, q querier) ([]model.User, error) {
	rows, err := q.Query(ctx, `
SELECT id, name, age, bio, vibe, photos, interests, created_at, updated_at
FROM users
ORDER BY id
`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Age, &u.Bio, &u.Vibe, &u.Photos, &u.Interests, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		items = append(items, u)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate users: %w", rows.Err())
	}
	return items, nil
}

func listSwipesBySwiper(ctx context.Context, q querier, swiperID int64) ([]model.Swipe, error) {
	rows, err := q.Query(ctx, `
SELECT id, swiper_id, swiped_id, direction, created_at
FROM swipes
WHERE swiper_id = $1
ORDER BY id
`, swiperID)
	if err != nil {
		return nil, fmt.Errorf("list swipes: %w", err)
	}
	defer rows.Close()

	items := make([]model.Swipe, 0)
	for rows.Next() {
		var sw model.Swipe
		var direction string
		if err := rows.Scan(&sw.ID, &sw.SwiperID, &sw.SwipedID, &direction, &sw.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan swipe: %w", err)
		}
		sw.Direction = enums.SwipeDirection(direction)
		items = append(items, sw)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate swipes: %w", rows.Err())
	}
	return items, nil
}

func rightSwipeExists(ctx context.Context, q querier, swiperID, swipedID int64) (bool, error) {
	var one int
	err := q.QueryRow(ctx, `
SELECT 1
FROM swipes
WHERE swiper_id = $1 AND swiped_id = $2 AND direction = $3
LIMIT 1
`, swiperID, swipedID, string(enums.SwipeRight)).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup reciprocal swipe: %w", err)
	}
	return true, nil
}

func scanMatch(row pgx.Row) (model.Match, error) {
	var m model.Match
	var lastMessageAt *time.Time
	err := row.Scan(&m.ID, &m.UserAID, &m.UserBID, &m.LastMessage, &lastMessageAt, &m.UnreadA, &m.UnreadB, &m.MatchedAt)
	if err != nil {
		return model.Match{}, err
	}
	if lastMessageAt != nil {
		m.LastMessageAt = *lastMessageAt
	}
	return m, nil
}

func getMatch(ctx context.Context, q querier, id int64) (model.Match, error) {
	m, err := scanMatch(q.QueryRow(ctx, `
SELECT id, user_a_id, user_b_id, last_message, last_message_at, unread_a, unread_b, matched_at
FROM matches
WHERE id = $1
`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, store.ErrNotFound
		}
		return model.Match{}, fmt.Errorf("get match: %w", err)
	}
	return m, nil
}

func listMatchesForUser(ctx context.Context, q querier, userID int64) ([]model.Match, error) {
	rows, err := q.Query(ctx, `
SELECT id, user_a_id, user_b_id, last_message, last_message_at, unread_a, unread_b, matched_at
FROM matches
WHERE user_a_id = $1 OR user_b_id = $1
ORDER BY id
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	items := make([]model.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		items = append(items, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate matches: %w", rows.Err())
	}
	return items, nil
}

func listMessages(ctx context.Context, q querier, matchID int64) ([]model.Message, error) {
	rows, err := q.Query(ctx, `
SELECT id, match_id, sender_id, text, created_at
FROM messages
WHERE match_id = $1
ORDER BY id
`, matchID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	items := make([]model.Message, 0)
	for rows.Next() {
		var msg model.Message
		if err := rows.Scan(&msg.ID, &msg.MatchID, &msg.SenderID, &msg.Text, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		items = append(items, msg)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate messages: %w", rows.Err())
	}
	return items, nil
}

func getDateIdea(ctx context.Context, q querier, id int64) (model.DateIdea, error) {
	var d model.DateIdea
	err := q.QueryRow(ctx, `
SELECT id, creator_id, title, description, location, applicant_ids, created_at
FROM date_ideas
WHERE id = $1
`, id).Scan(&d.ID, &d.CreatorID, &d.Title, &d.Description, &d.Location, &d.ApplicantIDs, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.DateIdea{}, store.ErrNotFound
		}
		return model.DateIdea{}, fmt.Errorf("get date idea: %w", err)
	}
	return d, nil
}

func listDateIdeas(ctx context.Context, q querier) ([]model.DateIdea, error) {
	rows, err := q.Query(ctx, `
SELECT id, creator_id, title, description, location, applicant_ids, created_at
FROM date_ideas
ORDER BY id
`)
	if err != nil {
		return nil, fmt.Errorf("list date ideas: %w", err)
	}
	defer rows.Close()

	items := make([]model.DateIdea, 0)
	for rows.Next() {
		var d model.DateIdea
		if err := rows.Scan(&d.ID, &d.CreatorID, &d.Title, &d.Description, &d.Location, &d.ApplicantIDs, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan date idea: %w", err)
		}
		items = append(items, d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate date ideas: %w", rows.Err())
	}
	return items, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (model.User, error) {
	return getUser(ctx, s.pool, id)
}

func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	return listUsers(ctx, s.pool)
}

func (s *Store) ListSwipesBySwiper(ctx context.Context, swiperID int64) ([]model.Swipe, error) {
	return listSwipesBySwiper(ctx, s.pool, swiperID)
}

func (s *Store) RightSwipeExists(ctx context.Context, swiperID, swipedID int64) (bool, error) {
	return rightSwipeExists(ctx, s.pool, swiperID, swipedID)
}

func (s *Store) GetMatch(ctx context.Context, id int64) (model.Match, error) {
	return getMatch(ctx, s.pool, id)
}

func (s *Store) ListMatchesForUser(ctx context.Context, userID int64) ([]model.Match, error) {
	return listMatchesForUser(ctx, s.pool, userID)
}

func (s *Store) ListMessages(ctx context.Context, matchID int64) ([]model.Message, error) {
	return listMessages(ctx, s.pool, matchID)
}

func (s *Store) GetDateIdea(ctx context.Context, id int64) (model.DateIdea, error) {
	return getDateIdea(ctx, s.pool, id)
}

func (s *Store) ListDateIdeas(ctx context.Context) ([]model.DateIdea, error) {
	return listDateIdeas(ctx, s.pool)
}

func (t *tx) GetUser(ctx context.Context, id int64) (model.User, error) {
	return getUser(ctx, t.q, id)
}

func (t *tx) ListUsers(ctx context.Context) ([]model.User, error) {
	return listUsers(ctx, t.q)
}

func (t *tx) ListSwipesBySwiper(ctx context.Context, swiperID int64) ([]model.Swipe, error) {
	return listSwipesBySwiper(ctx, t.q, swiperID)
}

func (t *tx) RightSwipeExists(ctx context.Context, swiperID, swipedID int64) (bool, error) {
	return rightSwipeExists(ctx, t.q, swiperID, swipedID)
}

func (t *tx) GetMatch(ctx context.Context, id int64) (model.Match, error) {
	return getMatch(ctx, t.q, id)
}

func (t *tx) ListMatchesForUser(ctx context.Context, userID int64) ([]model.Match, error) {
	return listMatchesForUser(ctx, t.q, userID)
}

func (t *tx) ListMessages(ctx context.Context, matchID int64) ([]model.Message, error) {
	return listMessages(ctx, t.q, matchID)
}

func (t *tx) GetDateIdea(ctx context.Context, id int64) (model.DateIdea, error) {
	return getDateIdea(ctx, t.q, id)
}

func (t *tx) ListDateIdeas(ctx context.Context) ([]model.DateIdea, error) {
	return listDateIdeas(ctx, t.q)
}

func (t *tx) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	if u.Photos == nil {
		u.Photos = []string{}
	}
	if u.Interests == nil {
		u.Interests = []string{}
	}

	var taken bool
	if err := t.q.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)
`, u.ID).Scan(&taken); err != nil {
		return model.User{}, fmt.Errorf("check user id: %w", err)
	}
	if taken {
		if err := t.q.QueryRow(ctx, `
SELECT COALESCE(MAX(id), 0) + 1 FROM users
`).Scan(&u.ID); err != nil {
			return model.User{}, fmt.Errorf("next user id: %w", err)
		}
	}

	err := t.q.QueryRow(ctx, `
INSERT INTO users (id, name, age, bio, vibe, photos, interests, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
RETURNING id
`, u.ID, u.Name, u.Age, u.Bio, u.Vibe, u.Photos, u.Interests, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (t *tx) UpdateUser(ctx context.Context, id int64, patch store.ProfilePatch) (model.User, error) {
	u, err := getUser(ctx, t.q, id)
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

	err = t.q.QueryRow(ctx, `
UPDATE users
SET name = $2, age = $3, bio = $4, vibe = $5, photos = $6, interests = $7, updated_at = NOW()
WHERE id = $1
RETURNING updated_at
`, id, u.Name, u.Age, u.Bio, u.Vibe, u.Photos, u.Interests).Scan(&u.UpdatedAt)
	if err != nil {
		return model.User{}, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

func (t *tx) AppendSwipe(ctx context.Context, swiperID, swipedID int64, direction enums.SwipeDirection, now time.Time) (model.Swipe, error) {
	sw := model.Swipe{
		SwiperID:  swiperID,
		SwipedID:  swipedID,
		Direction: direction,
		CreatedAt: now.UTC(),
	}
	err := t.q.QueryRow(ctx, `
INSERT INTO swipes (id, swiper_id, swiped_id, direction, created_at)
VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM swipes), $1, $2, $3, $4)
RETURNING id
`, swiperID, swipedID, string(direction), sw.CreatedAt).Scan(&sw.ID)
	if err != nil {
		return model.Swipe{}, fmt.Errorf("insert swipe: %w", err)
	}
	return sw, nil
}

func (t *tx) CreateMatch(ctx context.Context, userAID, userBID int64, now time.Time) (model.Match, bool, error) {
	userAID, userBID = model.CanonicalPair(userAID, userBID)

	m := model.Match{
		UserAID:   userAID,
		UserBID:   userBID,
		MatchedAt: now.UTC(),
	}
	err := t.q.QueryRow(ctx, `
INSERT INTO matches (id, user_a_id, user_b_id, matched_at)
VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM matches), $1, $2, $3)
ON CONFLICT (user_a_id, user_b_id) DO NOTHING
RETURNING id
`, userAID, userBID, m.MatchedAt).Scan(&m.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := scanMatch(t.q.QueryRow(ctx, `
SELECT id, user_a_id, user_b_id, last_message, last_message_at, unread_a, unread_b, matched_at
FROM matches
WHERE user_a_id = $1 AND user_b_id = $2
`, userAID, userBID))
			if err != nil {
				return model.Match{}, false, fmt.Errorf("get existing match: %w", err)
			}
			return existing, false, nil
		}
		return model.Match{}, false, fmt.Errorf("create match: %w", err)
	}
	return m, true, nil
}

func (t *tx) AppendMessage(ctx context.Context, matchID, senderID int64, text string, now time.Time) (model.Message, error) {
	m, err := getMatch(ctx, t.q, matchID)
	if err != nil {
		return model.Message{}, err
	}

	msg := model.Message{
		MatchID:  matchID,
		SenderID: senderID,
		Text:     text,
	}
	err = t.q.QueryRow(ctx, `
INSERT INTO messages (id, match_id, sender_id, text, created_at)
VALUES (
	(SELECT COALESCE(MAX(id), 0) + 1 FROM messages),
	$1, $2, $3,
	GREATEST($4::timestamptz, COALESCE((SELECT MAX(created_at) FROM messages WHERE match_id = $1), $4::timestamptz))
)
RETURNING id, created_at
`, matchID, senderID, text, now.UTC()).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return model.Message{}, fmt.Errorf("insert message: %w", err)
	}

	unreadA := m.UnreadA
	unreadB := m.UnreadB
	if senderID == m.UserAID {
		unreadB = true
	} else {
		unreadA = true
	}
	var id int64
	err = t.q.QueryRow(ctx, `
UPDATE matches
SET last_message = $2, last_message_at = $3, unread_a = $4, unread_b = $5
WHERE id = $1
RETURNING id
`, matchID, msg.Text, msg.CreatedAt, unreadA, unreadB).Scan(&id)
	if err != nil {
		return model.Message{}, fmt.Errorf("update match preview: %w", err)
	}
	return msg, nil
}

func (t *tx) MarkRead(ctx context.Context, matchID, readerID int64) error {
	m, err := getMatch(ctx, t.q, matchID)
	if err != nil {
		return err
	}
	if m.UserAID == readerID {
		m.UnreadA = false
	}
	if m.UserBID == readerID {
		m.UnreadB = false
	}

	var id int64
	err = t.q.QueryRow(ctx, `
UPDATE matches
SET unread_a = $2, unread_b = $3
WHERE id = $1
RETURNING id
`, matchID, m.UnreadA, m.UnreadB).Scan(&id)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

func (t *tx) CreateDateIdea(ctx context.Context, creatorID int64, title, description, location string, now time.Time) (model.DateIdea, error) {
	d := model.DateIdea{
		CreatorID:    creatorID,
		Title:        title,
		Description:  description,
		Location:     location,
		ApplicantIDs: []int64{},
		CreatedAt:    now.UTC(),
	}
	err := t.q.QueryRow(ctx, `
INSERT INTO date_ideas (id, creator_id, title, description, location, applicant_ids, created_at)
VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM date_ideas), $1, $2, $3, $4, $5, $6)
RETURNING id
`, creatorID, title, description, location, d.ApplicantIDs, d.CreatedAt).Scan(&d.ID)
	if err != nil {
		return model.DateIdea{}, fmt.Errorf("insert date idea: %w", err)
	}
	return d, nil
}

func (t *tx) AddApplicant(ctx context.Context, ideaID, userID int64) (model.DateIdea, bool, error) {
	d, err := getDateIdea(ctx, t.q, ideaID)
	if err != nil {
		return model.DateIdea{}, false, err
	}
	if d.HasApplicant(userID) {
		return d, false, nil
	}
	d.ApplicantIDs = append(d.ApplicantIDs, userID)

	var id int64
	err = t.q.QueryRow(ctx, `
UPDATE date_ideas
SET applicant_ids = $2
WHERE id = $1
RETURNING id
`, ideaID, d.ApplicantIDs).Scan(&id)
	if err != nil {
		return model.DateIdea{}, false, fmt.Errorf("add applicant: %w", err)
	}
	return d, true, nil
}
