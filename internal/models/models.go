package models

import "time"

// User is a registered account. Usernames are unique and immutable.
type User struct {
	UserID   uint   `gorm:"column:user_id;primaryKey" json:"user_id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"not null" json:"email"`
	PWHash   string `gorm:"not null" json:"-"`
}

// Follower is a directed edge: Who follows Whom. The composite primary key
// doubles as the unique constraint that keeps concurrent follows from
// inserting duplicate edges.
type Follower struct {
	WhoID  uint `gorm:"column:who_id;primaryKey" json:"who_id"`
	WhomID uint `gorm:"column:whom_id;primaryKey" json:"whom_id"`
}

// Message is an append-only post. Flagged messages stay in the table but are
// hidden from every feed.
type Message struct {
	MessageID uint   `gorm:"column:message_id;primaryKey" json:"message_id"`
	AuthorID  uint   `gorm:"column:author_id;not null" json:"author_id"`
	Text      string `gorm:"not null" json:"text"`
	PubDate   int64  `gorm:"column:pub_date" json:"pub_date"`
	Flagged   bool   `gorm:"default:false" json:"flagged"`
}

// TimelineEntry is the DTO the composer hands to the API layer: a message
// joined with its author's username. Text is the raw stored text; escaping
// is the presentation layer's job.
type TimelineEntry struct {
	MessageID uint   `json:"message_id"`
	Username  string `json:"user"`
	Text      string `json:"content"`
	PubDate   int64  `json:"pub_date"`
}

// FormatPubDate renders a unix timestamp the way the UI displays it.
func FormatPubDate(ts int64) string {
	return time.Unix(ts, 0).Format("Jan 2, 2006 at 3:04PM")
}
