package user

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/go-contacts-api/internal/domain"
)

type AvatarInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

// Service handles the authenticated user's own profile.
type Service interface {
	UpdateAvatar(ctx context.Context, u *domain.User, input AvatarInput) (string, error)
}

type userStore interface {
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	users   userStore
	objects objectStore
}

func NewService(users userStore, objects objectStore) Service {
	return &service{users: users, objects: objects}
}

// UpdateAvatar uploads the image to the object store, records the returned
// URL on the user and removes the previous avatar object best-effort.
func (s *service) UpdateAvatar(ctx context.Context, u *domain.User, input AvatarInput) (string, error) {
	key := fmt.Sprintf("avatars/%s/%d-%s", u.UserID, time.Now().UTC().Unix(), sanitizeFilename(input.Filename))
	url, err := s.objects.Upload(ctx, key, input.Reader, input.ContentType)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", domain.ErrUpstream)
	}
	if err := s.users.Update(ctx, u.UserID, map[string]interface{}{
		"avatar_url": url,
		"avatar_key": key,
	}); err != nil {
		return "", err
	}
	if u.AvatarKey != "" && u.AvatarKey != key {
		if err := s.objects.Delete(ctx, u.AvatarKey); err != nil {
			slog.Warn("failed to delete previous avatar", "user_id", u.UserID, "key", u.AvatarKey, "err", err)
		}
	}
	return url, nil
}

func sanitizeFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.ReplaceAll(base, " ", "_")
}
