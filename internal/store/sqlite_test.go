// ABOUTME: Tests for the SQLite credential store
// ABOUTME: Uses a temp-dir database per test for isolation

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_RegisterAndValidate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.RegisterUser(ctx, "alice", "password123"); err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}

	if err := s.ValidateUser(ctx, "alice", "password123"); err != nil {
		t.Errorf("ValidateUser() error = %v", err)
	}

	if err := s.ValidateUser(ctx, "alice", "wrong"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("ValidateUser() error = %v, want ErrWrongPassword", err)
	}

	if err := s.ValidateUser(ctx, "nobody", "password123"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("ValidateUser() error = %v, want ErrUserNotFound", err)
	}
}

func TestSQLiteStore_DuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.RegisterUser(ctx, "alice", "password123"); err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}
	if err := s.RegisterUser(ctx, "alice", "other"); !errors.Is(err, ErrUserExists) {
		t.Errorf("RegisterUser() error = %v, want ErrUserExists", err)
	}
}

func TestSQLiteStore_ChangePassword(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.RegisterUser(ctx, "alice", "old-password"); err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}

	if err := s.ChangePassword(ctx, "alice", "new-password"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	if err := s.ValidateUser(ctx, "alice", "new-password"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
	if err := s.ValidateUser(ctx, "alice", "old-password"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("old password still accepted: %v", err)
	}
}

func TestSQLiteStore_ChangePasswordUnknownUser(t *testing.T) {
	s := newTestStore(t)

	err := s.ChangePassword(context.Background(), "nobody", "new-password")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("ChangePassword() error = %v, want ErrUserNotFound", err)
	}
}

func TestSQLiteStore_HasUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ok, err := s.HasUser(ctx, "alice")
	if err != nil || ok {
		t.Errorf("HasUser() = %v, %v before registration", ok, err)
	}

	if err := s.RegisterUser(ctx, "alice", "password123"); err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}

	ok, err = s.HasUser(ctx, "alice")
	if err != nil || !ok {
		t.Errorf("HasUser() = %v, %v after registration", ok, err)
	}
}
