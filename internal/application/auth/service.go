package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-contacts-api/internal/domain"
	"github.com/go-contacts-api/internal/pkg/id"
	"github.com/go-contacts-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

// Service drives registration, email verification and login.
type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) error
	Verify(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (string, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type tokenProvider interface {
	Sign(subject string) (string, error)
	Verify(token string) (string, error)
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type service struct {
	users   userStore
	tokens  tokenProvider
	mailer  mailer
	baseURL string
}

func NewService(users userStore, tokens tokenProvider, m mailer, baseURL string) Service {
	return &service{users: users, tokens: tokens, mailer: m, baseURL: baseURL}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Verified:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		return err
	}
	token, err := s.tokens.Sign(u.Email)
	if err != nil {
		return err
	}
	body := fmt.Sprintf("Click the link to verify your email: %s/verify/%s", s.baseURL, token)
	if err := s.mailer.SendEmail(u.Email, "Verify your email", body); err != nil {
		return fmt.Errorf("send verification email: %w", domain.ErrUpstream)
	}
	return nil
}

// Verify flips the verified flag for the token's subject. A bad signature,
// an expired token and an unknown subject all produce the same error.
// Re-verifying an already-verified user succeeds silently.
func (s *service) Verify(ctx context.Context, token string) error {
	email, err := s.tokens.Verify(token)
	if err != nil {
		return fmt.Errorf("invalid token: %w", domain.ErrBadRequest)
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("invalid token: %w", domain.ErrBadRequest)
	}
	if u.Verified {
		return nil
	}
	return s.users.Update(ctx, u.UserID, map[string]interface{}{"verified": true})
}

// Login checks credentials and mints an access token. Unknown email and
// wrong password are indistinguishable to the caller. The verified flag is
// not checked here.
func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	return s.tokens.Sign(u.Email)
}
