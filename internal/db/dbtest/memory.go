// Package dbtest provides in-process stores with the same rules as the real
// ones, for service and handler tests.
package dbtest

import (
	"context"
	"sync"
	"time"
	"user_auth/internal/domain"
)

// MemoryUserStore is an in-process credential store with the same uniqueness
// rules as the MySQL table.
type MemoryUserStore struct {
	mu      sync.Mutex
	nextID  uint
	users   map[uint]domain.User
	Inserts int // Successful Create calls
	Err     error
}

// NewMemoryUserStore creates an empty MemoryUserStore
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[uint]domain.User)}
}

func (m *MemoryUserStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return m.find(func(u domain.User) bool { return u.Username == username })
}

func (m *MemoryUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return m.find(func(u domain.User) bool { return u.Email == email })
}

func (m *MemoryUserStore) FindPublicByID(_ context.Context, id uint) (*domain.PublicUser, error) {
	u, err := m.find(func(u domain.User) bool { return u.ID == id })
	if u == nil || err != nil {
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

func (m *MemoryUserStore) Create(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return domain.ErrUsernameExists
		}
		if existing.Email == u.Email {
			return domain.ErrEmailExists
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	m.users[u.ID] = *u
	m.Inserts++
	return nil
}

// Delete removes a user row, as if it vanished behind the service's back
func (m *MemoryUserStore) Delete(id uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
}

func (m *MemoryUserStore) find(match func(domain.User) bool) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, nil
}

// MemoryProfileStore is an in-process profile store with replace-on-upsert semantics
type MemoryProfileStore struct {
	mu       sync.Mutex
	profiles map[uint]domain.Profile
	Err      error
}

// NewMemoryProfileStore creates an empty MemoryProfileStore
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[uint]domain.Profile)}
}

func (m *MemoryProfileStore) FindByUserID(_ context.Context, userID uint) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *MemoryProfileStore) Upsert(_ context.Context, userID uint, upd domain.ProfileUpdate) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	now := time.Now()
	p, ok := m.profiles[userID]
	if !ok {
		p = domain.Profile{UserID: userID, CreatedAt: now}
	}
	p.Age, p.DOB, p.Contact = upd.Age, upd.DOB, upd.Contact
	p.UpdatedAt = now
	m.profiles[userID] = p
	return &p, nil
}
