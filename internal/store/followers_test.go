package store

import (
	"testing"

	"github.com/MiniTwit-FS/MiniTwit-FS/internal/apperr"
)

func TestFollowAndUnfollow(t *testing.T) {
	s := newTestStore(t)
	fooID := mustCreateUser(t, s, "foo")
	barID := mustCreateUser(t, s, "bar")

	if err := s.Follows.Follow(fooID, barID); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	following, err := s.Follows.IsFollowing(fooID, barID)
	if err != nil {
		t.Fatalf("IsFollowing failed: %v", err)
	}
	if !following {
		t.Error("Expected foo to follow bar")
	}

	// direction matters
	reverse, err := s.Follows.IsFollowing(barID, fooID)
	if err != nil {
		t.Fatalf("IsFollowing failed: %v", err)
	}
	if reverse {
		t.Error("Did not expect bar to follow foo")
	}

	if err := s.Follows.Unfollow(fooID, barID); err != nil {
		t.Fatalf("Unfollow failed: %v", err)
	}
	following, err = s.Follows.IsFollowing(fooID, barID)
	if err != nil {
		t.Fatalf("IsFollowing failed: %v", err)
	}
	if following {
		t.Error("Expected the edge to be gone after unfollow")
	}
}

func TestFollowSelf(t *testing.T) {
	s := newTestStore(t)
	fooID := mustCreateUser(t, s, "foo")

	err := s.Follows.Follow(fooID, fooID)
	if !apperr.IsConflict(err) {
		t.Fatalf("Expected a conflict error for self-follow, got %v", err)
	}
}

func TestFollowIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	fooID := mustCreateUser(t, s, "foo")
	barID := mustCreateUser(t, s, "bar")

	if err := s.Follows.Follow(fooID, barID); err != nil {
		t.Fatalf("First follow failed: %v", err)
	}
	if err := s.Follows.Follow(fooID, barID); err != nil {
		t.Fatalf("Second follow should be a no-op, got %v", err)
	}

	followees, err := s.Follows.FolloweesOf(fooID)
	if err != nil {
		t.Fatalf("FolloweesOf failed: %v", err)
	}
	if len(followees) != 1 {
		t.Errorf("Expected exactly one edge, got %d", len(followees))
	}
}

func TestUnfollowWithoutEdge(t *testing.T) {
	s := newTestStore(t)
	fooID := mustCreateUser(t, s, "foo")
	barID := mustCreateUser(t, s, "bar")

	if err := s.Follows.Unfollow(fooID, barID); err != nil {
		t.Fatalf("Unfollow without a prior follow should be a no-op, got %v", err)
	}
}

func TestFolloweesOf(t *testing.T) {
	s := newTestStore(t)
	fooID := mustCreateUser(t, s, "foo")
	barID := mustCreateUser(t, s, "bar")
	bazID := mustCreateUser(t, s, "baz")

	if err := s.Follows.Follow(fooID, barID); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	if err := s.Follows.Follow(fooID, bazID); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	followees, err := s.Follows.FolloweesOf(fooID)
	if err != nil {
		t.Fatalf("FolloweesOf failed: %v", err)
	}
	if len(followees) != 2 {
		t.Fatalf("Expected 2 followees, got %d", len(followees))
	}

	set := map[uint]bool{}
	for _, id := range followees {
		set[id] = true
	}
	if !set[barID] || !set[bazID] {
		t.Errorf("Unexpected followee set: %v", followees)
	}
}

func TestFollowerNamesOf(t *testing.T) {
	s := newTestStore(t)
	fooID := mustCreateUser(t, s, "foo")
	barID := mustCreateUser(t, s, "bar")

	if err := s.Follows.Follow(fooID, barID); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	names, err := s.Follows.FollowerNamesOf(fooID, 10)
	if err != nil {
		t.Fatalf("FollowerNamesOf failed: %v", err)
	}
	if len(names) != 1 || names[0] != "bar" {
		t.Errorf("Expected [bar], got %v", names)
	}
}
