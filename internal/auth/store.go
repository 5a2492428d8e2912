package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Store persists users and sessions. It never hashes passwords itself; the
// caller supplies digests, so hashing stays swappable in tests.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// NormalizeEmail is the canonical form stored and queried everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, "email = ?", NormalizeEmail(email)).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *User) error {
	user.Email = NormalizeEmail(user.Email)
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateIdentity
	}
	return err
}

func (s *Store) UpdateUserStatus(ctx context.Context, id string, active bool) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&user).Update("active", active).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, id string, passwordHash string) error {
	return s.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&User{}, "id = ?", id).Error
}

func (s *Store) CreateSession(ctx context.Context, session *Session) error {
	return s.db.WithContext(ctx).Create(session).Error
}

func (s *Store) FindSessionByToken(ctx context.Context, token string) (*Session, error) {
	var session Session
	err := s.db.WithContext(ctx).First(&session, "token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Delete(&Session{}, "token = ?", token).Error
}

func (s *Store) DeleteUserSessions(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Delete(&Session{}, "user_id = ?", userID).Error
}
