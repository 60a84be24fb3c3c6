// ABOUTME: In-memory Storage implementation for tests
// ABOUTME: Plaintext credential map with optional injected failures

package store

import (
	"context"
	"sync"
)

// MockStorage is an in-memory Storage for tests. Passwords are kept in
// plaintext; it is never used outside _test code paths.
type MockStorage struct {
	mu    sync.Mutex
	users map[string]string

	// Err, when set, is returned by every mutating call to simulate a
	// failing backend.
	Err error
}

// NewMockStorage creates an empty in-memory store.
func NewMockStorage() *MockStorage {
	return &MockStorage{users: make(map[string]string)}
}

func (m *MockStorage) RegisterUser(_ context.Context, username, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.users[username]; ok {
		return ErrUserExists
	}
	m.users[username] = password
	return nil
}

func (m *MockStorage) ValidateUser(_ context.Context, username, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.users[username]
	if !ok {
		return ErrUserNotFound
	}
	if stored != password {
		return ErrWrongPassword
	}
	return nil
}

func (m *MockStorage) ChangePassword(_ context.Context, username, newPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.users[username]; !ok {
		return ErrUserNotFound
	}
	m.users[username] = newPassword
	return nil
}

func (m *MockStorage) HasUser(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[username]
	return ok, nil
}

func (m *MockStorage) Close() error { return nil }

// Password returns the stored plaintext password for assertions.
func (m *MockStorage) Password(username string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[username]
}
