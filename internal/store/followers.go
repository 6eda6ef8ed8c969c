package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/MiniTwit-FS/MiniTwit-FS/internal/apperr"
	"github.com/MiniTwit-FS/MiniTwit-FS/internal/models"
)

// FollowStore manages the directed follow graph. Edges are unique per
// (who, whom) pair and self-loops are rejected.
type FollowStore struct {
	db *gorm.DB
}

// Follow inserts the edge who -> whom. Following a user twice is a no-op;
// the composite primary key backstops racing inserts, so a duplicate-key
// failure is also treated as success.
func (s *FollowStore) Follow(whoID, whomID uint) error {
	if whoID == whomID {
		return apperr.Conflict("You cannot follow yourself")
	}

	following, err := s.IsFollowing(whoID, whomID)
	if err != nil {
		return err
	}
	if following {
		return nil
	}

	err = s.db.Create(&models.Follower{WhoID: whoID, WhomID: whomID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// Unfollow removes the edge who -> whom if present. Removing a missing edge
// is not an error.
func (s *FollowStore) Unfollow(whoID, whomID uint) error {
	return s.db.
		Where("who_id = ? AND whom_id = ?", whoID, whomID).
		Delete(&models.Follower{}).Error
}

func (s *FollowStore) IsFollowing(whoID, whomID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Follower{}).
		Where("who_id = ? AND whom_id = ?", whoID, whomID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FolloweesOf returns the ids of every user whoID follows. The result is an
// unordered filter set for timeline composition.
func (s *FollowStore) FolloweesOf(whoID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Follower{}).
		Where("who_id = ?", whoID).
		Pluck("whom_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// FollowerNamesOf returns usernames of the users whoID follows, capped at
// limit. Backs the GET /fllws/{username} endpoint.
func (s *FollowStore) FollowerNamesOf(whoID uint, limit int) ([]string, error) {
	var names []string
	err := s.db.
		Table("users").
		Select("users.username").
		Joins("INNER JOIN followers ON followers.whom_id = users.user_id").
		Where("followers.who_id = ?", whoID).
		Limit(limit).
		Pluck("username", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
