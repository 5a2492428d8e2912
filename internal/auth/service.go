package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FolioForge/portfolio-backend/internal/utils"
)

// UserStore is the credential-store contract the service depends on.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByID(ctx context.Context, id string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUserStatus(ctx context.Context, id string, active bool) (*User, error)
	UpdateUserPassword(ctx context.Context, id string, passwordHash string) error
	DeleteUser(ctx context.Context, id string) error
}

// SessionStore persists issued tokens for server-side lookup.
type SessionStore interface {
	CreateSession(ctx context.Context, session *Session) error
	FindSessionByToken(ctx context.Context, token string) (*Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteUserSessions(ctx context.Context, userID string) error
}

// Service owns the token lifecycle: issuing at login, verifying on every
// request, invalidating at logout. Store handles and configuration are
// injected; the package keeps no globals.
type Service struct {
	users    UserStore
	sessions SessionStore
	hasher   Hasher
	cfg      Config
}

func NewService(users UserStore, sessions SessionStore, hasher Hasher, cfg Config) *Service {
	return &Service{users: users, sessions: sessions, hasher: hasher, cfg: cfg}
}

// newToken returns 256 bits from crypto/rand, hex-encoded. Opaque:
// validity is settled by server-side lookup, so there is no signing secret to
// manage or rotate.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Login checks credentials and issues a fresh session. Every failure mode
// (unknown email, wrong password, disabled account) collapses to
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, *User, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	if !user.Active {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.Issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// Issue mints a session for the user with the configured fixed TTL.
func (s *Service) Issue(ctx context.Context, user *User) (*Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &Session{
		Token:     token,
		UserID:    user.ID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}
	return session, nil
}

// Verify resolves a presented token to an identity. Order matters: lookup
// (absence is ErrInvalidToken), then expiry, then user re-resolution so a
// token cannot outlive its account's deactivation. Lookups run under the
// configured timeout and a slow store fails closed.
func (s *Service) Verify(ctx context.Context, token string) (utils.Identity, error) {
	if token == "" {
		return utils.Identity{}, ErrInvalidToken
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.LookupTimeout)
	defer cancel()

	session, err := s.sessions.FindSessionByToken(ctx, token)
	if err != nil {
		return utils.Identity{}, ErrInvalidToken
	}

	if time.Now().After(session.ExpiresAt) {
		return utils.Identity{}, ErrExpiredToken
	}

	user, err := s.users.FindUserByID(ctx, session.UserID)
	if err != nil || !user.Active {
		return utils.Identity{}, ErrUserInactive
	}

	return utils.Identity{UserID: user.ID, Role: user.Role}, nil
}

// Logout deletes the stored session. The token is dead server-side from this
// point regardless of what the client keeps.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.DeleteSession(ctx, token)
}

// Register creates a user from an already-validated request. The plaintext
// never touches the store.
func (s *Service) Register(ctx context.Context, email, password, displayName, role string) (*User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	if role != RoleAdmin {
		role = RoleUser
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         role,
		Active:       true,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword re-checks the current password before swapping in the new
// digest, then drops the user's other sessions so stolen tokens die with the
// old password.
func (s *Service) UpdatePassword(ctx context.Context, userID, current, updated string) error {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return ErrInvalidCredentials
	}

	if !s.hasher.Verify(current, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(updated)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if err := s.users.UpdateUserPassword(ctx, userID, hash); err != nil {
		return err
	}
	return s.sessions.DeleteUserSessions(ctx, userID)
}

// GetUser looks up a user by id for the /me endpoint.
func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.users.FindUserByID(ctx, id)
}

// DeleteUser removes an account and its sessions. Normal operation prefers
// SetUserStatus; hard deletion is for spam accounts and takedown requests.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if err := s.sessions.DeleteUserSessions(ctx, id); err != nil {
		return err
	}
	return s.users.DeleteUser(ctx, id)
}

// SetUserStatus flips the active flag. Deactivation does not delete sessions;
// Verify rejects them with ErrUserInactive on the next request anyway, and
// re-activation restores them without a forced re-login.
func (s *Service) SetUserStatus(ctx context.Context, id string, active bool) (*User, error) {
	return s.users.UpdateUserStatus(ctx, id, active)
}
