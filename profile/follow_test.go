package profile

import (
	"context"
	"testing"

	"foodgram/models"
	"foodgram/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFollowStore struct {
	follows map[string]bool
}

func newFakeFollowStore() *fakeFollowStore {
	return &fakeFollowStore{follows: make(map[string]bool)}
}

func (s *fakeFollowStore) Following(_ context.Context, userID, authorID string) (bool, error) {
	return s.follows[userID+":"+authorID], nil
}

func (s *fakeFollowStore) Insert(_ context.Context, follow models.Follow) error {
	k := follow.UserID + ":" + follow.AuthorID
	if s.follows[k] {
		return validation.NewFieldError("errors", "Вы уже подписаны на пользователя", validation.ErrAlreadyExists)
	}
	s.follows[k] = true
	return nil
}

func (s *fakeFollowStore) Delete(_ context.Context, userID, authorID string) error {
	delete(s.follows, userID+":"+authorID)
	return nil
}

func TestFollowAuthor(t *testing.T) {
	store := newFakeFollowStore()

	require.NoError(t, FollowAuthor(context.Background(), store, "alice", "bob"))

	following, _ := store.Following(context.Background(), "alice", "bob")
	assert.True(t, following)

	// follow is directional
	following, _ = store.Following(context.Background(), "bob", "alice")
	assert.False(t, following)
}

func TestFollowAuthorTwiceFails(t *testing.T) {
	store := newFakeFollowStore()

	require.NoError(t, FollowAuthor(context.Background(), store, "alice", "bob"))
	err := FollowAuthor(context.Background(), store, "alice", "bob")
	assert.ErrorIs(t, err, validation.ErrAlreadyExists)
}

func TestSelfFollowAlwaysFails(t *testing.T) {
	store := newFakeFollowStore()

	err := FollowAuthor(context.Background(), store, "alice", "alice")
	assert.ErrorIs(t, err, validation.ErrSelfFollow)

	// still rejected when other memberships exist
	require.NoError(t, FollowAuthor(context.Background(), store, "alice", "bob"))
	err = FollowAuthor(context.Background(), store, "alice", "alice")
	assert.ErrorIs(t, err, validation.ErrSelfFollow)
}

func TestUnfollowAuthor(t *testing.T) {
	store := newFakeFollowStore()

	require.NoError(t, FollowAuthor(context.Background(), store, "alice", "bob"))
	require.NoError(t, UnfollowAuthor(context.Background(), store, "alice", "bob"))

	following, _ := store.Following(context.Background(), "alice", "bob")
	assert.False(t, following)
}

func TestUnfollowNotFollowing(t *testing.T) {
	store := newFakeFollowStore()

	err := UnfollowAuthor(context.Background(), store, "alice", "bob")
	assert.ErrorIs(t, err, validation.ErrNotAMember)
}
