package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yesaroun/taskboard/pkg/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedUser(t *testing.T, s *Store, email, nickname string) *User {
	t.Helper()
	u, err := s.Users.Create(context.Background(), email, "hashed-pw", nickname)
	require.NoError(t, err)
	return u
}

func seedPost(t *testing.T, s *Store, userID int64) *Post {
	t.Helper()
	p, err := s.Posts.Create(context.Background(), userID, "hello", "world")
	require.NoError(t, err)
	return p
}

func TestUserCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "a@b.com", "alice")
	assert.Equal(t, "a@b.com", u.Email)
	assert.Equal(t, "alice", u.Nickname)
	assert.Equal(t, "N", u.DelYN)

	byEmail, err := s.Users.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
}

func TestUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "a@b.com", "alice")
	_, err := s.Users.Create(ctx, "a@b.com", "pw", "alice2")
	require.Error(t, err)

	var conflict *errors.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "EMAIL_TAKEN", conflict.Code())
}

func TestUserSoftDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "a@b.com", "alice")
	require.NoError(t, s.Users.Delete(ctx, u.ID))

	_, err := s.Users.GetByID(ctx, u.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	// Deleting again reports not found.
	err = s.Users.Delete(ctx, u.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestPostLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "a@b.com", "alice")
	p := seedPost(t, s, u.ID)
	assert.Equal(t, "alice", p.Nickname)

	updated, err := s.Posts.Update(ctx, p.ID, u.ID, "new title", "new content")
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)

	require.NoError(t, s.Posts.Delete(ctx, p.ID, u.ID))
	_, err = s.Posts.GetByID(ctx, p.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestPostUpdateByNonAuthorForbidden(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	author := seedUser(t, s, "a@b.com", "alice")
	other := seedUser(t, s, "b@b.com", "bob")
	p := seedPost(t, s, author.ID)

	_, err := s.Posts.Update(ctx, p.ID, other.ID, "t", "c")
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	err = s.Posts.Delete(ctx, p.ID, other.ID)
	assert.True(t, errors.Is(err, errors.ErrForbidden))
}

func TestPostListCursorPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "a@b.com", "alice")
	for i := 0; i < 15; i++ {
		seedPost(t, s, u.ID)
	}

	page1, next, err := s.Posts.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, page1, 10)
	assert.Equal(t, page1[9].ID, next)

	// Newest first.
	assert.Greater(t, page1[0].ID, page1[9].ID)

	page2, next2, err := s.Posts.List(ctx, next, 10)
	require.NoError(t, err)
	require.Len(t, page2, 5)
	assert.Zero(t, next2)
	assert.Less(t, page2[0].ID, page1[9].ID)
}

func TestCommentCounterTracksCreateDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "a@b.com", "alice")
	p := seedPost(t, s, u.ID)

	c, err := s.Comments.Create(ctx, p.ID, u.ID, "first!")
	require.NoError(t, err)
	assert.Equal(t, "alice", c.Nickname)

	got, err := s.Posts.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.CommentCount)

	require.NoError(t, s.Comments.Delete(ctx, p.ID, c.ID, u.ID))
	got, err = s.Posts.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.CommentCount)
}

func TestCommentMustBelongToPost(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "a@b.com", "alice")
	p1 := seedPost(t, s, u.ID)
	p2 := seedPost(t, s, u.ID)

	c, err := s.Comments.Create(ctx, p1.ID, u.ID, "on the first post")
	require.NoError(t, err)

	_, err = s.Comments.Update(ctx, p2.ID, c.ID, u.ID, "edited")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	err = s.Comments.Delete(ctx, p2.ID, c.ID, u.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestCommentOnMissingPost(t *testing.T) {
	s := newTestStore(t)
	u := seedUser(t, s, "a@b.com", "alice")

	_, err := s.Comments.Create(context.Background(), 999, u.ID, "hi")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestLikeIsIdempotentPerUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "a@b.com", "alice")
	p := seedPost(t, s, u.ID)

	require.NoError(t, s.Likes.Like(ctx, p.ID, u.ID))
	err := s.Likes.Like(ctx, p.ID, u.ID)
	assert.True(t, errors.Is(err, errors.ErrAlreadyExists))

	got, err := s.Posts.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.LikeCount)

	liked, err := s.Likes.Liked(ctx, p.ID, u.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	require.NoError(t, s.Likes.Unlike(ctx, p.ID, u.ID))
	got, err = s.Posts.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.LikeCount)

	err = s.Likes.Unlike(ctx, p.ID, u.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestViewCountsOncePerUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "a@b.com", "alice")
	bob := seedUser(t, s, "b@b.com", "bob")
	p := seedPost(t, s, alice.ID)

	require.NoError(t, s.Views.Record(ctx, p.ID, alice.ID))
	require.NoError(t, s.Views.Record(ctx, p.ID, alice.ID))
	require.NoError(t, s.Views.Record(ctx, p.ID, bob.ID))

	got, err := s.Posts.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ViewCount)
}

func TestImageAttachLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "a@b.com", "alice")
	p := seedPost(t, s, u.ID)

	img1, err := s.Images.Create(ctx, u.ID, "cat.png", "uploads/abc.png", "image/png", 1234)
	require.NoError(t, err)
	img2, err := s.Images.Create(ctx, u.ID, "dog.png", "uploads/def.png", "image/png", 2345)
	require.NoError(t, err)
	assert.False(t, img1.PostID.Valid)

	require.NoError(t, s.Images.Attach(ctx, p.ID, u.ID, []int64{img2.ID, img1.ID}))

	images, err := s.Images.ListByPost(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, img2.ID, images[0].ID)
	assert.Equal(t, img1.ID, images[1].ID)

	path, err := s.Images.Delete(ctx, img1.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "uploads/abc.png", path)

	images, err = s.Images.ListByPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, images, 1)
}

func TestImageAttachOtherUsersImageForbidden(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "a@b.com", "alice")
	bob := seedUser(t, s, "b@b.com", "bob")
	p := seedPost(t, s, bob.ID)

	img, err := s.Images.Create(ctx, alice.ID, "cat.png", "uploads/abc.png", "image/png", 1)
	require.NoError(t, err)

	err = s.Images.Attach(ctx, p.ID, bob.ID, []int64{img.ID})
	assert.True(t, errors.Is(err, errors.ErrForbidden))
}
