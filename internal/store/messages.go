package store

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/MiniTwit-FS/MiniTwit-FS/internal/apperr"
	"github.com/MiniTwit-FS/MiniTwit-FS/internal/models"
)

// DefaultLimit caps feed queries when the caller does not ask for a
// specific number of rows.
const DefaultLimit = 100

// MessageStore is the append-only message log. Messages are never edited or
// deleted; moderation hides them by setting the flagged column.
type MessageStore struct {
	db *gorm.DB
}

// Append records a new message with the current time. Blank text is
// rejected before touching the database.
func (s *MessageStore) Append(authorID uint, text string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Validation("You have to enter a message")
	}

	msg := models.Message{
		AuthorID: authorID,
		Text:     text,
		PubDate:  time.Now().Unix(),
		Flagged:  false,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// QueryByAuthors returns messages by the given authors, newest first with
// ties broken by id descending. A nil author set means every author.
// Flagged messages are excluded unless includeFlagged is set.
func (s *MessageStore) QueryByAuthors(authorIDs []uint, includeFlagged bool, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := s.db.Model(&models.Message{})
	if !includeFlagged {
		q = q.Where("flagged = ?", false)
	}
	if authorIDs != nil {
		q = q.Where("author_id IN ?", authorIDs)
	}

	var msgs []models.Message
	err := q.Order("pub_date DESC").Order("message_id DESC").Limit(limit).Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// Flag marks a message hidden. The moderation hook; not exposed over HTTP.
func (s *MessageStore) Flag(messageID uint) error {
	res := s.db.Model(&models.Message{}).
		Where("message_id = ?", messageID).
		Update("flagged", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Message not found")
	}
	return nil
}
