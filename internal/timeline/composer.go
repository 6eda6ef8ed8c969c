// Package timeline resolves which messages a viewer sees and in what order.
package timeline

import (
	"github.com/MiniTwit-FS/MiniTwit-FS/internal/models"
	"github.com/MiniTwit-FS/MiniTwit-FS/internal/store"
)

// Composer combines the message log with the follow graph into ordered,
// capped feeds. All three feeds share the same ordering: pub_date
// descending, message id descending on ties.
type Composer struct {
	users    *store.UserStore
	follows  *store.FollowStore
	messages *store.MessageStore
}

func New(s *store.Store) *Composer {
	return &Composer{users: s.Users, follows: s.Follows, messages: s.Messages}
}

// Global returns the public timeline: every user's non-flagged messages.
func (c *Composer) Global(limit int) ([]models.TimelineEntry, error) {
	msgs, err := c.messages.QueryByAuthors(nil, false, limit)
	if err != nil {
		return nil, err
	}
	return c.join(msgs)
}

// Personal returns the viewer's feed: own messages plus followees'.
func (c *Composer) Personal(viewerID uint, limit int) ([]models.TimelineEntry, error) {
	if _, err := c.users.ByID(viewerID); err != nil {
		return nil, err
	}

	followees, err := c.follows.FolloweesOf(viewerID)
	if err != nil {
		return nil, err
	}
	authors := append([]uint{viewerID}, followees...)

	msgs, err := c.messages.QueryByAuthors(authors, false, limit)
	if err != nil {
		return nil, err
	}
	return c.join(msgs)
}

// User returns a single user's own messages, regardless of who is asking.
// Followees never leak into this feed.
func (c *Composer) User(username string, limit int) ([]models.TimelineEntry, error) {
	target, err := c.users.ByUsername(username)
	if err != nil {
		return nil, err
	}

	msgs, err := c.messages.QueryByAuthors([]uint{target.UserID}, false, limit)
	if err != nil {
		return nil, err
	}
	return c.join(msgs)
}

// join attaches author usernames with one batched lookup. Messages whose
// author record has been purged are dropped rather than failing the feed.
func (c *Composer) join(msgs []models.Message) ([]models.TimelineEntry, error) {
	ids := make([]uint, 0, len(msgs))
	seen := make(map[uint]bool, len(msgs))
	for _, m := range msgs {
		if !seen[m.AuthorID] {
			seen[m.AuthorID] = true
			ids = append(ids, m.AuthorID)
		}
	}

	names, err := c.users.UsernamesByIDs(ids)
	if err != nil {
		return nil, err
	}

	entries := make([]models.TimelineEntry, 0, len(msgs))
	for _, m := range msgs {
		name, ok := names[m.AuthorID]
		if !ok {
			continue
		}
		entries = append(entries, models.TimelineEntry{
			MessageID: m.MessageID,
			Username:  name,
			Text:      m.Text,
			PubDate:   m.PubDate,
		})
	}
	return entries, nil
}
