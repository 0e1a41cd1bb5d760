// Package testutil opens throwaway SQLite databases for package tests.
package testutil

import (
	"testing"

	"blogify/internal/config"
	"blogify/internal/core/ids"
	"blogify/internal/core/user"

	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory database that is closed with the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(config.DriverSQLite, ":memory:", false)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = config.CloseDB(db) })
	return db
}

// CreateUser inserts an account with a placeholder password hash.
func CreateUser(t testing.TB, db *gorm.DB, username string) *user.User {
	t.Helper()
	u := &user.User{
		ID:       ids.New(),
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}
