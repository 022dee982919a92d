package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stanislausjustin/user-service/models"
)

func newUser(email string) *models.User {
	return &models.User{
		PersonalInfo: models.PersonalInfo{
			PersonalID: "2702342742",
			Name:       "Test User",
			Email:      email,
			Password:   "$2a$10$hash",
			Roles:      []models.Role{models.RoleUser},
			Status:     models.StatusActive,
		},
		JoinedAt: time.Now().UTC(),
	}
}

func TestMemoryStore_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	u := newUser("a@example.com")
	require.NoError(t, s.Create(ctx, u))
	require.False(t, u.ID.IsZero(), "Create assigns an id")

	byID, err := s.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "a@example.com", byID.PersonalInfo.Email)

	byEmail, err := s.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	_, err = s.FindByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Create(ctx, newUser("a@example.com")))
	err := s.Create(ctx, newUser("a@example.com"))
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMemoryStore_FindByEmailAndOTP(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	s := NewMemoryStore()
	u := newUser("a@example.com")
	u.OTP = "123456"
	u.OTPExpiresAt = now.Add(10 * time.Minute)
	require.NoError(t, s.Create(ctx, u))

	found, err := s.FindByEmailAndOTP(ctx, "a@example.com", "123456", now)
	require.NoError(t, err)
	require.Equal(t, u.ID, found.ID)

	_, err = s.FindByEmailAndOTP(ctx, "a@example.com", "654321", now)
	require.ErrorIs(t, err, ErrNotFound)

	// at or past the expiry instant the code is no longer valid
	_, err = s.FindByEmailAndOTP(ctx, "a@example.com", "123456", u.OTPExpiresAt)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_UpdateByID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	u := newUser("a@example.com")
	u.OTP = "123456"
	u.OTPExpiresAt = time.Now().UTC().Add(10 * time.Minute)
	require.NoError(t, s.Create(ctx, u))

	name := "New Name"
	verified := true
	updated, err := s.UpdateByID(ctx, u.ID, UserUpdate{
		Name:     &name,
		Verified: &verified,
		ClearOTP: true,
	})
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.PersonalInfo.Name)
	require.True(t, updated.IsVerified)
	require.Empty(t, updated.OTP)
	require.True(t, updated.OTPExpiresAt.IsZero())

	// untouched fields stay put
	require.Equal(t, "a@example.com", updated.PersonalInfo.Email)
	require.Equal(t, "$2a$10$hash", updated.PersonalInfo.Password)

	_, err = s.UpdateByID(ctx, primitive.NewObjectID(), UserUpdate{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_DeleteByID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	u := newUser("a@example.com")
	require.NoError(t, s.Create(ctx, u))

	require.NoError(t, s.DeleteByID(ctx, u.ID))
	_, err := s.FindByID(ctx, u.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// deleting an unknown id is not an error
	require.NoError(t, s.DeleteByID(ctx, primitive.NewObjectID()))
}

func TestMemoryStore_FindAll(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Create(ctx, newUser("a@example.com")))
	require.NoError(t, s.Create(ctx, newUser("b@example.com")))

	users, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func TestUserUpdate_Empty(t *testing.T) {
	require.True(t, (&UserUpdate{}).Empty())

	name := "x"
	require.False(t, (&UserUpdate{Name: &name}).Empty())
	require.False(t, (&UserUpdate{ClearOTP: true}).Empty())
}
