// Package swipes records swipe decisions and promotes mutual right swipes
// into matches. Match detection lives here, not in the storage drivers, so
// every backend shares one implementation.
package swipes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nrattyp233/create-a-date1/internal/domain/enums"
	"github.com/nrattyp233/create-a-date1/internal/domain/model"
	"github.com/nrattyp233/create-a-date1/internal/store"
)

var (
	ErrValidation           = errors.New("validation error")
	ErrUnsupportedDirection = errors.New("unsupported swipe direction")
)

// TooFastError reports a throttled swipe and how long to back off.
type TooFastError struct {
	RetryAfterSec int64
}

func (e TooFastError) Error() string {
	return fmt.Sprintf("too many swipes, retry after %d seconds", e.RetryAfterSec)
}

type RateLimiter interface {
	AllowSwipe(ctx context.Context, userID int64) (int64, bool, error)
}

type Result struct {
	Swipe        model.Swipe
	MatchCreated bool
	Match        model.Match
}

type Service struct {
	store       store.Store
	rateLimiter RateLimiter
	now         func() time.Time
}

type Dependencies struct {
	Store       store.Store
	RateLimiter RateLimiter
}

func NewService(deps Dependencies) *Service {
	return &Service{
		store:       deps.Store,
		rateLimiter: deps.RateLimiter,
		now:         time.Now,
	}
}

// Swipe appends the decision for swiperID on swipedID. A right swipe that
// completes a reciprocal pair creates the match; repeating it changes
// nothing, the pair is stored once in canonical order.
func (s *Service) Swipe(ctx context.Context, swiperID, swipedID int64, direction string) (Result, error) {
	if swiperID < 0 || swipedID < 0 || swiperID == swipedID {
		return Result{}, ErrValidation
	}
	if s.store == nil {
		return Result{}, fmt.Errorf("swipe dependencies are not configured")
	}

	dir, ok := enums.ParseSwipeDirection(direction)
	if !ok {
		return Result{}, ErrUnsupportedDirection
	}

	if s.rateLimiter != nil {
		retryAfter, allowed, err := s.rateLimiter.AllowSwipe(ctx, swiperID)
		if err != nil {
			return Result{}, fmt.Errorf("apply swipe rate limiter: %w", err)
		}
		if !allowed {
			return Result{}, TooFastError{RetryAfterSec: retryAfter}
		}
	}

	now := s.now().UTC()

	var result Result
	if err := s.store.Mutate(ctx, func(txCtx context.Context, tx store.Tx) error {
		if _, err := tx.GetUser(txCtx, swiperID); err != nil {
			return err
		}
		if _, err := tx.GetUser(txCtx, swipedID); err != nil {
			return err
		}

		sw, err := tx.AppendSwipe(txCtx, swiperID, swipedID, dir, now)
		if err != nil {
			return err
		}
		result.Swipe = sw

		if dir != enums.SwipeRight {
			return nil
		}

		reciprocal, err := tx.RightSwipeExists(txCtx, swipedID, swiperID)
		if err != nil {
			return err
		}
		if !reciprocal {
			return nil
		}

		match, created, err := tx.CreateMatch(txCtx, swiperID, swipedID, now)
		if err != nil {
			return err
		}
		result.Match = match
		result.MatchCreated = created
		return nil
	}); err != nil {
		return Result{}, err
	}

	return result, nil
}
