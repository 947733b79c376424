// Package feed selects swipe candidates for a viewer.
package feed

import (
	"context"
	"fmt"

	"github.com/nrattyp233/create-a-date1/internal/domain/model"
	"github.com/nrattyp233/create-a-date1/internal/store"
)

type Service struct {
	store store.Reader
}

func NewService(st store.Reader) *Service {
	return &Service{store: st}
}

// Candidates returns every user the viewer has not swiped on yet, excluding
// the viewer, in stored order. Users the viewer swiped left on never
// reappear.
func (s *Service) Candidates(ctx context.Context, viewerID int64) ([]model.User, error) {
	if viewerID < 0 {
		return nil, fmt.Errorf("invalid viewer id")
	}
	if s.store == nil {
		return nil, fmt.Errorf("feed store is not configured")
	}

	if _, err := s.store.GetUser(ctx, viewerID); err != nil {
		return nil, err
	}

	swipes, err := s.store.ListSwipesBySwiper(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{}, len(swipes))
	for _, sw := range swipes {
		seen[sw.SwipedID] = struct{}{}
	}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]model.User, 0, len(users))
	for _, u := range users {
		if u.ID == viewerID {
			continue
		}
		if _, ok := seen[u.ID]; ok {
			continue
		}
		items = append(items, u)
	}

	return items, nil
}
