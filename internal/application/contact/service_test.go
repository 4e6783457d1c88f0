package contact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-contacts-api/internal/domain"
	"github.com/go-contacts-api/internal/pkg/dates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockContactStore struct{ mock.Mock }

func (m *mockContactStore) Put(ctx context.Context, c *domain.Contact) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockContactStore) Get(ctx context.Context, contactID string) (*domain.Contact, error) {
	args := m.Called(ctx, contactID)
	if c, _ := args.Get(0).(*domain.Contact); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockContactStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	args := m.Called(ctx, ownerID)
	if cs, _ := args.Get(0).([]domain.Contact); cs != nil {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockContactStore) GetByEmail(ctx context.Context, email string) (*domain.Contact, error) {
	args := m.Called(ctx, email)
	if c, _ := args.Get(0).(*domain.Contact); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockContactStore) Update(ctx context.Context, contactID string, updates map[string]interface{}) error {
	return m.Called(ctx, contactID, updates).Error(0)
}
func (m *mockContactStore) Delete(ctx context.Context, contactID string) error {
	return m.Called(ctx, contactID).Error(0)
}

// --- helpers ---

func baseReq() domain.ContactRequest {
	return domain.ContactRequest{
		FirstName: "Bob",
		LastName:  "Jones",
		Email:     "bob@example.com",
		Phone:     "+1234567890",
		Birthday:  "1990-06-15",
	}
}

func ownedContact(ownerID string) *domain.Contact {
	return &domain.Contact{
		ContactID: "c1",
		OwnerID:   ownerID,
		FirstName: "Bob",
		LastName:  "Jones",
		Email:     "bob@example.com",
		Phone:     "+1234567890",
		Birthday:  "1990-06-15",
	}
}

// --- Create tests ---

func TestCreate_MissingFields(t *testing.T) {
	svc := NewService(&mockContactStore{})
	_, err := svc.Create(context.Background(), "owner-a", domain.ContactRequest{FirstName: "Bob"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCreate_InvalidBirthday(t *testing.T) {
	svc := NewService(&mockContactStore{})
	req := baseReq()
	req.Birthday = "15/06/1990"
	_, err := svc.Create(context.Background(), "owner-a", req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCreate_DuplicateContactEmail(t *testing.T) {
	cs := &mockContactStore{}
	cs.On("GetByEmail", mock.Anything, "bob@example.com").Return(ownedContact("owner-b"), nil)

	svc := NewService(cs)
	_, err := svc.Create(context.Background(), "owner-a", baseReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCreate_HappyPath_SetsOwnerFromCaller(t *testing.T) {
	cs := &mockContactStore{}
	cs.On("GetByEmail", mock.Anything, "bob@example.com").Return(nil, domain.ErrNotFound)
	cs.On("Put", mock.Anything, mock.AnythingOfType("*domain.Contact")).Return(nil)

	svc := NewService(cs)
	c, err := svc.Create(context.Background(), "owner-a", baseReq())

	require.NoError(t, err)
	assert.Equal(t, "owner-a", c.OwnerID)
	assert.NotEmpty(t, c.ContactID)
	assert.Equal(t, "Bob", c.FirstName)
	cs.AssertExpectations(t)
}

// --- ownership isolation ---

func TestGet_ForeignOwner_LooksLikeMissing(t *testing.T) {
	cs := &mockContactStore{}
	cs.On("Get", mock.Anything, "c1").Return(ownedContact("owner-a"), nil)

	svc := NewService(cs)
	_, foreign := svc.Get(context.Background(), "owner-b", "c1")

	cs2 := &mockContactStore{}
	cs2.On("Get", mock.Anything, "nope").Return(nil, errors.New("contact not found"))
	_, missing := NewService(cs2).Get(context.Background(), "owner-b", "nope")

	require.Error(t, foreign)
	require.Error(t, missing)
	assert.True(t, errors.Is(foreign, domain.ErrNotFound))
	assert.Equal(t, foreign.Error(), missing.Error())
}

func TestUpdate_ForeignOwner_NotFound(t *testing.T) {
	cs := &mockContactStore{}
	cs.On("Get", mock.Anything, "c1").Return(ownedContact("owner-a"), nil)

	svc := NewService(cs)
	_, err := svc.Update(context.Background(), "owner-b", "c1", baseReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDelete_ForeignOwner_NotFound(t *testing.T) {
	cs := &mockContactStore{}
	cs.On("Get", mock.Anything, "c1").Return(ownedContact("owner-a"), nil)

	svc := NewService(cs)
	_, err := svc.Delete(context.Background(), "owner-b", "c1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// --- Update tests ---

func TestUpdate_ReplacesAllMutableFields(t *testing.T) {
	cs := &mockContactStore{}
	cs.On("Get", mock.Anything, "c1").Return(ownedContact("owner-a"), nil)
	cs.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, domain.ErrNotFound)
	cs.On("Update", mock.Anything, "c1", mock.Anything).Return(nil)

	svc := NewService(cs)
	req := baseReq()
	req.Email = "new@example.com"
	req.FirstName = "Robert"
	_, err := svc.Update(context.Background(), "owner-a", "c1", req)

	require.NoError(t, err)
	updates := cs.Calls[2].Arguments.Get(2).(map[string]interface{})
	assert.Equal(t, "Robert", updates["first_name"])
	assert.Equal(t, "new@example.com", updates["email"])
	// Owner must never appear in the update set.
	_, hasOwner := updates["owner_id"]
	assert.False(t, hasOwner)
}

func TestUpdate_SameEmailOnSameContact_Allowed(t *testing.T) {
	existing := ownedContact("owner-a")
	cs := &mockContactStore{}
	cs.On("Get", mock.Anything, "c1").Return(existing, nil)
	cs.On("GetByEmail", mock.Anything, "bob@example.com").Return(existing, nil)
	cs.On("Update", mock.Anything, "c1", mock.Anything).Return(nil)

	svc := NewService(cs)
	_, err := svc.Update(context.Background(), "owner-a", "c1", baseReq())
	require.NoError(t, err)
}

// --- Delete tests ---

func TestDelete_ReturnsPriorState(t *testing.T) {
	existing := ownedContact("owner-a")
	cs := &mockContactStore{}
	cs.On("Get", mock.Anything, "c1").Return(existing, nil)
	cs.On("Delete", mock.Anything, "c1").Return(nil)

	svc := NewService(cs)
	c, err := svc.Delete(context.Background(), "owner-a", "c1")

	require.NoError(t, err)
	assert.Equal(t, existing, c)
	cs.AssertExpectations(t)
}

// --- UpcomingBirthdays tests ---

func birthdayOffset(days int) string {
	return dates.Format(time.Now().UTC().AddDate(0, 0, days).AddDate(-30, 0, 0))
}

func TestUpcomingBirthdays_FiltersToWindow(t *testing.T) {
	cs := &mockContactStore{}
	cs.On("ListByOwner", mock.Anything, "owner-a").Return([]domain.Contact{
		{ContactID: "soon", OwnerID: "owner-a", Birthday: birthdayOffset(3)},
		{ContactID: "today", OwnerID: "owner-a", Birthday: birthdayOffset(0)},
		{ContactID: "edge", OwnerID: "owner-a", Birthday: birthdayOffset(7)},
		{ContactID: "late", OwnerID: "owner-a", Birthday: birthdayOffset(30)},
		{ContactID: "garbage", OwnerID: "owner-a", Birthday: "not-a-date"},
	}, nil)

	svc := NewService(cs)
	got, err := svc.UpcomingBirthdays(context.Background(), "owner-a", 7)

	require.NoError(t, err)
	ids := make([]string, len(got))
	for i, c := range got {
		ids[i] = c.ContactID
	}
	assert.ElementsMatch(t, []string{"soon", "today", "edge"}, ids)
}

func TestUpcomingBirthdays_DefaultsWindow(t *testing.T) {
	cs := &mockContactStore{}
	cs.On("ListByOwner", mock.Anything, "owner-a").Return([]domain.Contact{}, nil)

	svc := NewService(cs)
	got, err := svc.UpcomingBirthdays(context.Background(), "owner-a", 0)

	require.NoError(t, err)
	assert.Empty(t, got)
}
