// Package users covers demo login and profile editing.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nrattyp233/create-a-date1/internal/domain/model"
	"github.com/nrattyp233/create-a-date1/internal/store"
)

var ErrValidation = errors.New("validation error")

// ProfilePatch carries the editable profile fields; nil means unchanged.
type ProfilePatch struct {
	Name      *string
	Age       *int
	Bio       *string
	Vibe      *string
	Photos    *[]string
	Interests *[]string
}

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Login resolves a demo identity by id. There is no credential check, the
// demo trusts the selected profile.
func (s *Service) Login(ctx context.Context, userID int64) (model.User, error) {
	if userID < 0 {
		return model.User{}, ErrValidation
	}
	if s.store == nil {
		return model.User{}, fmt.Errorf("users store is not configured")
	}
	return s.store.GetUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID int64) (model.User, error) {
	return s.Login(ctx, userID)
}

// UpdateProfile applies the set fields of patch to the user.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, patch ProfilePatch) (model.User, error) {
	if userID < 0 {
		return model.User{}, ErrValidation
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return model.User{}, ErrValidation
	}
	if patch.Age != nil && (*patch.Age < 18 || *patch.Age > 120) {
		return model.User{}, ErrValidation
	}
	if s.store == nil {
		return model.User{}, fmt.Errorf("users store is not configured")
	}

	var updated model.User
	if err := s.store.Mutate(ctx, func(txCtx context.Context, tx store.Tx) error {
		var err error
		updated, err = tx.UpdateUser(txCtx, userID, store.ProfilePatch{
			Name:      patch.Name,
			Age:       patch.Age,
			Bio:       patch.Bio,
			Vibe:      patch.Vibe,
			Photos:    patch.Photos,
			Interests: patch.Interests,
		})
		return err
	}); err != nil {
		return model.User{}, err
	}

	return updated, nil
}
