package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/go-contacts-api/internal/domain"
	"github.com/go-contacts-api/internal/pkg/dates"
	"github.com/go-contacts-api/internal/pkg/id"
	"github.com/go-contacts-api/internal/pkg/validate"
)

// DefaultBirthdayWindowDays is the window for the upcoming-birthdays query.
const DefaultBirthdayWindowDays = 7

// Service owns contact records. Every operation takes the caller's user id
// explicitly; there is no ambient "current user". A contact that exists but
// belongs to a different owner is reported exactly like a missing one.
type Service interface {
	Create(ctx context.Context, ownerID string, req domain.ContactRequest) (*domain.Contact, error)
	List(ctx context.Context, ownerID string) ([]domain.Contact, error)
	Get(ctx context.Context, ownerID, contactID string) (*domain.Contact, error)
	Update(ctx context.Context, ownerID, contactID string, req domain.ContactRequest) (*domain.Contact, error)
	Delete(ctx context.Context, ownerID, contactID string) (*domain.Contact, error)
	UpcomingBirthdays(ctx context.Context, ownerID string, windowDays int) ([]domain.Contact, error)
}

type contactStore interface {
	Put(ctx context.Context, c *domain.Contact) error
	Get(ctx context.Context, contactID string) (*domain.Contact, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Contact, error)
	GetByEmail(ctx context.Context, email string) (*domain.Contact, error)
	Update(ctx context.Context, contactID string, updates map[string]interface{}) error
	Delete(ctx context.Context, contactID string) error
}

type service struct {
	repo contactStore
}

func NewService(repo contactStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, ownerID string, req domain.ContactRequest) (*domain.Contact, error) {
	if err := s.checkFields(req); err != nil {
		return nil, err
	}
	if other, err := s.repo.GetByEmail(ctx, req.Email); err == nil && other != nil {
		return nil, fmt.Errorf("contact email already in use: %w", domain.ErrBadRequest)
	}
	now := time.Now().UTC()
	c := &domain.Contact{
		ContactID:      id.New(),
		OwnerID:        ownerID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Birthday:       req.Birthday,
		AdditionalInfo: req.AdditionalInfo,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) Get(ctx context.Context, ownerID, contactID string) (*domain.Contact, error) {
	return s.getOwned(ctx, ownerID, contactID)
}

// Update replaces all mutable fields wholesale. The owner is never part of
// the update set.
func (s *service) Update(ctx context.Context, ownerID, contactID string, req domain.ContactRequest) (*domain.Contact, error) {
	if err := s.checkFields(req); err != nil {
		return nil, err
	}
	c, err := s.getOwned(ctx, ownerID, contactID)
	if err != nil {
		return nil, err
	}
	if other, err := s.repo.GetByEmail(ctx, req.Email); err == nil && other != nil && other.ContactID != c.ContactID {
		return nil, fmt.Errorf("contact email already in use: %w", domain.ErrBadRequest)
	}
	updates := map[string]interface{}{
		"first_name":      req.FirstName,
		"last_name":       req.LastName,
		"email":           req.Email,
		"phone":           req.Phone,
		"birthday":        req.Birthday,
		"additional_info": req.AdditionalInfo,
	}
	if err := s.repo.Update(ctx, contactID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, contactID)
}

// Delete removes the contact and returns its prior state.
func (s *service) Delete(ctx context.Context, ownerID, contactID string) (*domain.Contact, error) {
	c, err := s.getOwned(ctx, ownerID, contactID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, contactID); err != nil {
		return nil, err
	}
	return c, nil
}

// UpcomingBirthdays returns the caller's contacts whose birthday month/day
// falls within [today, today+windowDays] inclusive, wrapping across the year
// boundary. Contacts with unparseable birthdays are skipped.
func (s *service) UpcomingBirthdays(ctx context.Context, ownerID string, windowDays int) ([]domain.Contact, error) {
	if windowDays < 1 {
		windowDays = DefaultBirthdayWindowDays
	}
	contacts, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	upcoming := make([]domain.Contact, 0, len(contacts))
	for _, c := range contacts {
		bday, err := dates.Parse(c.Birthday)
		if err != nil {
			continue
		}
		if dates.InWindow(bday, today, windowDays) {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming, nil
}

// getOwned loads a contact and enforces ownership. Absent and foreign-owned
// contacts produce the identical error.
func (s *service) getOwned(ctx context.Context, ownerID, contactID string) (*domain.Contact, error) {
	c, err := s.repo.Get(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("contact not found: %w", domain.ErrNotFound)
	}
	if c.OwnerID != ownerID {
		return nil, fmt.Errorf("contact not found: %w", domain.ErrNotFound)
	}
	return c, nil
}

func (s *service) checkFields(req domain.ContactRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if _, err := dates.Parse(req.Birthday); err != nil {
		return fmt.Errorf("birthday must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
	}
	return nil
}
