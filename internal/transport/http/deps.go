package http

import (
	"context"
	"io"

	"github.com/go-contacts-api/internal/domain"
	jwtinfra "github.com/go-contacts-api/internal/infrastructure/jwt"
	"github.com/go-contacts-api/internal/infrastructure/smtp"
)

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

// ContactRepository is the minimal interface the router requires from a contact store.
type ContactRepository interface {
	Put(ctx context.Context, c *domain.Contact) error
	Get(ctx context.Context, contactID string) (*domain.Contact, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Contact, error)
	GetByEmail(ctx context.Context, email string) (*domain.Contact, error)
	Update(ctx context.Context, contactID string, updates map[string]interface{}) error
	Delete(ctx context.Context, contactID string) error
}

// ObjectStore is the minimal interface the router requires from an object
// storage backend.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    UserRepository
	ContactRepo ContactRepository
	AvatarStore ObjectStore
	Mailer      smtp.Mailer
	Tokens      *jwtinfra.Provider
}
