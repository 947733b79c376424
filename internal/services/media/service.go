// Package media handles profile photo uploads into object storage and links
// the resulting URLs to the owner's profile.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nrattyp233/create-a-date1/internal/store"
)

var ErrValidation = errors.New("validation error")

const (
	signedURLTTL     = 24 * time.Hour
	maxPhotosPerUser = 6
)

var ErrPhotoLimitReached = errors.New("photo limit reached")

type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	PutPhoto(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type Config struct {
	Bucket        string
	PublicBaseURL string
}

type Service struct {
	store   store.Store
	storage ObjectStorage
	cfg     Config
}

func NewService(st store.Store, storage ObjectStorage, cfg Config) *Service {
	return &Service{
		store:   st,
		storage: storage,
		cfg:     cfg,
	}
}

// UploadPhoto stores the image and appends its URL to the user's photos.
// The upload is removed again if the profile update fails.
func (s *Service) UploadPhoto(ctx context.Context, userID int64, fileName, contentType string, body io.Reader, size int64) (string, error) {
	if userID < 0 || body == nil || size <= 0 {
		return "", ErrValidation
	}
	if s.store == nil || s.storage == nil {
		return "", fmt.Errorf("media dependencies are not configured")
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return "", fmt.Errorf("ensure bucket: %w", err)
	}

	objectKey := buildPhotoObjectKey(userID, fileName)

	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}

	if err := s.storage.PutPhoto(ctx, objectKey, body, size, contentType); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	photoURL, err := s.resolveURL(ctx, objectKey)
	if err != nil {
		_ = s.storage.Delete(ctx, objectKey)
		return "", err
	}

	if err := s.store.Mutate(ctx, func(txCtx context.Context, tx store.Tx) error {
		u, err := tx.GetUser(txCtx, userID)
		if err != nil {
			return err
		}
		if len(u.Photos) >= maxPhotosPerUser {
			return ErrPhotoLimitReached
		}

		photos := append(append([]string{}, u.Photos...), photoURL)
		_, err = tx.UpdateUser(txCtx, userID, store.ProfilePatch{Photos: &photos})
		return err
	}); err != nil {
		_ = s.storage.Delete(ctx, objectKey)
		return "", err
	}

	return photoURL, nil
}

func (s *Service) resolveURL(ctx context.Context, objectKey string) (string, error) {
	if base := strings.TrimRight(s.cfg.PublicBaseURL, "/"); base != "" {
		return base + "/" + s.cfg.Bucket + "/" + objectKey, nil
	}

	u, err := s.storage.PresignGet(ctx, objectKey, signedURLTTL)
	if err != nil {
		return "", fmt.Errorf("presign photo url: %w", err)
	}
	return u, nil
}

func buildPhotoObjectKey(userID int64, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		ext = ".jpg"
	}
	return fmt.Sprintf("photos/%d/%s%s", userID, uuid.NewString(), ext)
}
