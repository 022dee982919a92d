package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stanislausjustin/user-service/models"
)

// MemoryStore is a map-backed UserStore used in tests so handlers can run
// without a live MongoDB.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *MemoryStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.PersonalInfo.Email == user.PersonalInfo.Email {
			return ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.PersonalInfo.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindByEmailAndOTP(ctx context.Context, email, otp string, now time.Time) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.PersonalInfo.Email == email && u.OTP != "" && u.OTP == otp && u.OTPExpiresAt.After(now) {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UpdateByID(ctx context.Context, id primitive.ObjectID, update UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	if update.Name != nil {
		u.PersonalInfo.Name = *update.Name
	}
	if update.Address != nil {
		u.PersonalInfo.Address = *update.Address
	}
	if update.Phone != nil {
		u.PersonalInfo.Phone = *update.Phone
	}
	if update.SocialLinks != nil {
		u.SocialLinks = *update.SocialLinks
	}
	if update.Status != nil {
		u.PersonalInfo.Status = *update.Status
	}
	if update.Roles != nil {
		u.PersonalInfo.Roles = *update.Roles
	}
	if update.Verified != nil {
		u.IsVerified = *update.Verified
	}
	if update.ClearOTP {
		u.OTP = ""
		u.OTPExpiresAt = time.Time{}
	}

	s.users[id] = u
	return &u, nil
}

func (s *MemoryStore) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	return nil
}

func (s *MemoryStore) FindAll(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}
