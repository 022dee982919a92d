package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stanislausjustin/user-service/models"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned by Create when the email is taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserUpdate is a partial update of a user record. Nil fields are left
// untouched. Email and the password hash are deliberately absent: neither
// is mutable through any update path.
type UserUpdate struct {
	Name        *string
	Address     *string
	Phone       *string
	SocialLinks *models.SocialLinks
	Status      *string
	Roles       *[]models.Role
	Verified    *bool
	// ClearOTP removes the otp and otp_expires_at fields.
	ClearOTP bool
}

// Empty reports whether the update would change nothing.
func (u *UserUpdate) Empty() bool {
	return u.Name == nil && u.Address == nil && u.Phone == nil &&
		u.SocialLinks == nil && u.Status == nil && u.Roles == nil &&
		u.Verified == nil && !u.ClearOTP
}

// UserStore is the directory of user records. Implementations must keep
// email unique and apply each operation atomically per record.
type UserStore interface {
	// Create inserts a new user. Returns ErrDuplicateEmail if a record
	// with the same email already exists.
	Create(ctx context.Context, user *models.User) error

	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByEmailAndOTP matches a user on email, the exact code, and an
	// otp_expires_at strictly after now. Anything else is ErrNotFound.
	FindByEmailAndOTP(ctx context.Context, email, otp string, now time.Time) (*models.User, error)

	// UpdateByID applies a partial update and returns the updated record.
	UpdateByID(ctx context.Context, id primitive.ObjectID, update UserUpdate) (*models.User, error)

	// DeleteByID removes a user. Deleting an unknown id is not an error.
	DeleteByID(ctx context.Context, id primitive.ObjectID) error

	FindAll(ctx context.Context) ([]models.User, error)
}
