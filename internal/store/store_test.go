package store

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "minitwit_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return New(db)
}

func mustCreateUser(t *testing.T, s *Store, username string) uint {
	t.Helper()
	user, err := s.Users.Create(username, username+"@example.com", "hash")
	if err != nil {
		t.Fatalf("Failed to create user %q: %v", username, err)
	}
	return user.UserID
}
