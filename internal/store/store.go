// Package store defines the persistence capability interface shared by all
// storage drivers. The rest of the system depends only on Store and never on
// a concrete backend; the driver is chosen once at startup from configuration.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/nrattyp233/create-a-date1/internal/domain/enums"
	"github.com/nrattyp233/create-a-date1/internal/domain/model"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrBackendUnavailable = errors.New("storage backend unavailable")
)

// ProfilePatch carries a partial profile update; nil fields are left as-is.
type ProfilePatch struct {
	Name      *string
	Age       *int
	Bio       *string
	Vibe      *string
	Photos    *[]string
	Interests *[]string
}

type Reader interface {
	GetUser(ctx context.Context, id int64) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)

	ListSwipesBySwiper(ctx context.Context, swiperID int64) ([]model.Swipe, error)
	RightSwipeExists(ctx context.Context, swiperID, swipedID int64) (bool, error)

	GetMatch(ctx context.Context, id int64) (model.Match, error)
	ListMatchesForUser(ctx context.Context, userID int64) ([]model.Match, error)
	ListMessages(ctx context.Context, matchID int64) ([]model.Message, error)

	GetDateIdea(ctx context.Context, id int64) (model.DateIdea, error)
	ListDateIdeas(ctx context.Context) ([]model.DateIdea, error)
}

// Tx is the mutating view of the store, only reachable through Store.Mutate.
type Tx interface {
	Reader

	// CreateUser honors u.ID when it names a free slot, otherwise assigns one.
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	UpdateUser(ctx context.Context, id int64, patch ProfilePatch) (model.User, error)

	AppendSwipe(ctx context.Context, swiperID, swipedID int64, direction enums.SwipeDirection, now time.Time) (model.Swipe, error)

	// CreateMatch records the canonical pair (userAID < userBID) at most once.
	// The boolean reports whether a new match row was created.
	CreateMatch(ctx context.Context, userAID, userBID int64, now time.Time) (model.Match, bool, error)

	// AppendMessage stores the message, refreshes the match's denormalized
	// last-message fields and flags the recipient side unread. The stored
	// timestamp never goes backwards within a match.
	AppendMessage(ctx context.Context, matchID, senderID int64, text string, now time.Time) (model.Message, error)
	MarkRead(ctx context.Context, matchID, readerID int64) error

	CreateDateIdea(ctx context.Context, creatorID int64, title, description, location string, now time.Time) (model.DateIdea, error)

	// AddApplicant is idempotent; the boolean reports whether the set grew.
	AddApplicant(ctx context.Context, ideaID, userID int64) (model.DateIdea, bool, error)
}

type Store interface {
	Reader

	// Mutate runs fn inside the driver's write serialization window. A failed
	// fn leaves the store unchanged.
	Mutate(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	Close()
}
