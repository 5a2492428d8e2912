package auth_test

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/FolioForge/portfolio-backend/internal/auth"
)

// fakeStore is an in-memory UserStore + SessionStore for unit tests. An
// optional delay simulates a slow database so the fail-closed timeout path
// can be exercised.
type fakeStore struct {
	mu       sync.Mutex
	users    map[string]*auth.User    // by id
	sessions map[string]*auth.Session // by token
	delay    time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*auth.User),
		sessions: make(map[string]*auth.Session),
	}
}

// wait blocks for the configured delay, honoring context cancellation.
func (f *fakeStore) wait(ctx context.Context) error {
	if f.delay == 0 {
		return nil
	}
	select {
	case <-time.After(f.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeStore) FindUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	normalized := auth.NormalizeEmail(email)
	for _, u := range f.users {
		if u.Email == normalized {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) FindUserByID(ctx context.Context, id string) (*auth.User, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStore) CreateUser(ctx context.Context, user *auth.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.Email = auth.NormalizeEmail(user.Email)
	for _, u := range f.users {
		if u.Email == user.Email {
			return auth.ErrDuplicateIdentity
		}
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeStore) UpdateUserStatus(ctx context.Context, id string, active bool) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	u.Active = active
	copied := *u
	return &copied, nil
}

func (f *fakeStore) UpdateUserPassword(ctx context.Context, id string, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeStore) DeleteUser(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

func (f *fakeStore) CreateSession(ctx context.Context, session *auth.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *session
	f.sessions[session.Token] = &copied
	return nil
}

func (f *fakeStore) FindSessionByToken(ctx context.Context, token string) (*auth.Session, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStore) DeleteSession(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

func (f *fakeStore) DeleteUserSessions(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for token, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, token)
		}
	}
	return nil
}

// expireSession backdates a stored session for expiry tests.
func (f *fakeStore) expireSession(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[token]; ok {
		s.ExpiresAt = time.Now().Add(-1 * time.Hour)
	}
}
