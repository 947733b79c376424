// Package marketplace manages the date-idea board: posting ideas and
// applying to them.
package marketplace

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/nrattyp233/create-a-date1/internal/domain/model"
	"github.com/nrattyp233/create-a-date1/internal/pkg/validate"
	"github.com/nrattyp233/create-a-date1/internal/store"
)

var (
	ErrValidation = errors.New("validation error")
	ErrOwnIdea    = errors.New("cannot apply to own date idea")
)

// DateIdeaView embeds the creator and applicant profiles for display.
type DateIdeaView struct {
	Idea       model.DateIdea
	Creator    model.User
	Applicants []model.User
}

type Service struct {
	store store.Store
	now   func() time.Time
}

func NewService(st store.Store) *Service {
	return &Service{
		store: st,
		now:   time.Now,
	}
}

// List returns all date ideas newest first with creator and applicants
// resolved. Applicants that no longer exist are dropped from the view.
func (s *Service) List(ctx context.Context) ([]DateIdeaView, error) {
	if s.store == nil {
		return nil, fmt.Errorf("marketplace store is not configured")
	}

	ideas, err := s.store.ListDateIdeas(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]DateIdeaView, 0, len(ideas))
	for _, idea := range ideas {
		creator, err := s.store.GetUser(ctx, idea.CreatorID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}

		applicants := make([]model.User, 0, len(idea.ApplicantIDs))
		for _, id := range idea.ApplicantIDs {
			u, err := s.store.GetUser(ctx, id)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					continue
				}
				return nil, err
			}
			applicants = append(applicants, u)
		}

		views = append(views, DateIdeaView{
			Idea:       idea,
			Creator:    creator,
			Applicants: applicants,
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Idea.ID > views[j].Idea.ID
	})

	return views, nil
}

// Create posts a new date idea. Title, description and location are all
// required.
func (s *Service) Create(ctx context.Context, creatorID int64, title, description, location string) (model.DateIdea, error) {
	if creatorID < 0 {
		return model.DateIdea{}, ErrValidation
	}
	if !validate.Required(title) || !validate.Required(description) || !validate.Required(location) {
		return model.DateIdea{}, ErrValidation
	}
	if s.store == nil {
		return model.DateIdea{}, fmt.Errorf("marketplace store is not configured")
	}

	now := s.now().UTC()

	var idea model.DateIdea
	if err := s.store.Mutate(ctx, func(txCtx context.Context, tx store.Tx) error {
		if _, err := tx.GetUser(txCtx, creatorID); err != nil {
			return err
		}
		var err error
		idea, err = tx.CreateDateIdea(txCtx, creatorID, title, description, location, now)
		return err
	}); err != nil {
		return model.DateIdea{}, err
	}

	return idea, nil
}

// Apply records userID's interest in an idea. Creators cannot apply to
// their own ideas; applying twice is a no-op.
func (s *Service) Apply(ctx context.Context, ideaID, userID int64) (model.DateIdea, error) {
	if ideaID <= 0 || userID < 0 {
		return model.DateIdea{}, ErrValidation
	}
	if s.store == nil {
		return model.DateIdea{}, fmt.Errorf("marketplace store is not configured")
	}

	var idea model.DateIdea
	if err := s.store.Mutate(ctx, func(txCtx context.Context, tx store.Tx) error {
		d, err := tx.GetDateIdea(txCtx, ideaID)
		if err != nil {
			return err
		}
		if d.CreatorID == userID {
			return ErrOwnIdea
		}
		if _, err := tx.GetUser(txCtx, userID); err != nil {
			return err
		}

		idea, _, err = tx.AddApplicant(txCtx, ideaID, userID)
		return err
	}); err != nil {
		return model.DateIdea{}, err
	}

	return idea, nil
}
