package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/MiniTwit-FS/MiniTwit-FS/internal/apperr"
	"github.com/MiniTwit-FS/MiniTwit-FS/internal/models"
)

// UserStore is CRUD over user records. Usernames are unique; there is no
// update path, users only come into existence through registration.
type UserStore struct {
	db *gorm.DB
}

// Create inserts a new user. The password must already be hashed by the
// caller; raw passwords never reach the store.
func (s *UserStore) Create(username, email, pwHash string) (*models.User, error) {
	var existing models.User
	err := s.db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("The username is already taken")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{Username: username, Email: email, PWHash: pwHash}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) ByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) ByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Where("user_id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernamesByIDs resolves a batch of author ids to usernames in one query.
// Missing ids are simply absent from the result map.
func (s *UserStore) UsernamesByIDs(ids []uint) (map[uint]string, error) {
	if len(ids) == 0 {
		return map[uint]string{}, nil
	}
	var users []models.User
	if err := s.db.Where("user_id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.UserID] = u.Username
	}
	return names, nil
}
