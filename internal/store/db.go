package store

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/MiniTwit-FS/MiniTwit-FS/internal/models"
)

// Open connects to the database. With DB_HOST set it targets PostgreSQL,
// otherwise it falls back to a local SQLite file (path from DATABASE).
func Open(logger *logrus.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		dbPath := os.Getenv("DATABASE")
		if dbPath == "" {
			dbPath = "minitwit.db"
		}
		logger.WithField("path", dbPath).Info("Connecting to SQLite database")
		return gorm.Open(sqlite.Open(dbPath), cfg)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=require",
		host,
		os.Getenv("DB_PORT"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
	)
	logger.WithField("host", host).Info("Connecting to PostgreSQL database")
	return gorm.Open(postgres.Open(dsn), cfg)
}

// Migrate creates or updates the three tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Follower{}, &models.Message{})
}

// Store bundles the three record stores over one connection.
type Store struct {
	db       *gorm.DB
	Users    *UserStore
	Follows  *FollowStore
	Messages *MessageStore
}

func New(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		Users:    &UserStore{db: db},
		Follows:  &FollowStore{db: db},
		Messages: &MessageStore{db: db},
	}
}

// Reset wipes all users, follow edges and messages. Administrative only;
// backs /drop/all and the test suites.
func (s *Store) Reset() error {
	for _, model := range []interface{}{&models.Follower{}, &models.Message{}, &models.User{}} {
		if err := s.db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
