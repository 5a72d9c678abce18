package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/blogapi/config"
	"github.com/cppla/blogapi/models"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := config.OpenDatabase(config.AppConfig{
		DBDriver:    config.DriverSQLite,
		DatabaseURI: "file::memory:",
		LogLevel:    "silent",
	})
	require.NoError(t, err)
	require.NoError(t, config.AutoMigrate(db, &models.User{}, &models.Post{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return New(db)
}

func seedUser(t *testing.T, s *GormStore, email string) *models.User {
	t.Helper()
	u := &models.User{FirstName: "Dave", Username: "dave", Email: email}
	require.NoError(t, s.SaveUser(context.Background(), u))
	return u
}

func seedPost(t *testing.T, s *GormStore, title, authorID string) *models.Post {
	t.Helper()
	p := &models.Post{Title: title, Description: "d", Body: models.Document(`{"a":1}`), AuthorID: authorID}
	require.NoError(t, s.SavePost(context.Background(), p))
	return p
}

func TestSaveUserAssignsIDAndTimestamps(t *testing.T) {
	s := newTestStore(t)
	u := seedUser(t, s, "dave@x.com")

	assert.Len(t, u.ID, 36)
	assert.False(t, u.CreatedAt.IsZero())
	assert.True(t, u.CreatedAt.Equal(u.UpdatedAt))

	got, err := s.FindUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "dave@x.com", got.Email)
	assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))
}

func TestSaveUserUpdateRefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, "dave@x.com")
	created := u.CreatedAt

	time.Sleep(10 * time.Millisecond)
	u.Image = "me.png"
	require.NoError(t, s.SaveUser(ctx, u))

	got, err := s.FindUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "me.png", got.Image)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.True(t, got.UpdatedAt.After(created))
}

func TestSaveUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, "dave@x.com")

	err := s.SaveUser(context.Background(), &models.User{FirstName: "Other", Username: "o", Email: "dave@x.com"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestSavePostUnknownAuthor(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.SavePost(ctx, &models.Post{Title: "t", Description: "d", Body: models.Document(`{}`), AuthorID: "6f1c1a2e-9d4b-4a8e-8f57-2b1d3c4e5f60"})
	assert.ErrorIs(t, err, ErrForeignKey)

	posts, err := s.ListPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestSavePostDuplicateTitle(t *testing.T) {
	s := newTestStore(t)
	u := seedUser(t, s, "dave@x.com")
	seedPost(t, s, "Hello", u.ID)

	err := s.SavePost(context.Background(), &models.Post{Title: "Hello", Description: "d", Body: models.Document(`1`), AuthorID: u.ID})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestPostBodyKeepsBytes(t *testing.T) {
	s := newTestStore(t)
	u := seedUser(t, s, "dave@x.com")
	body := `{ "b": [1, 2.50],   "a": "x" }`
	p := &models.Post{Title: "Raw", Description: "d", Body: models.Document(body), AuthorID: u.ID}
	require.NoError(t, s.SavePost(context.Background(), p))

	got, err := s.FindPost(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, body, string(got.Body))
	assert.Equal(t, 0, got.Views)
}

func TestDeleteUserWithPostsIsRestricted(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, "dave@x.com")
	seedPost(t, s, "Hello", u.ID)

	has, err := s.UserHasPosts(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, has)

	_, err = s.DeleteUser(ctx, u.ID)
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestDeleteReportsRemoval(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, "dave@x.com")
	p := seedPost(t, s, "Hello", u.ID)

	removed, err := s.DeletePost(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.DeletePost(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = s.FindPost(ctx, p.ID)
	assert.True(t, IsNotFound(err))

	removed, err = s.DeleteUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestExistsLookups(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, "dave@x.com")
	seedPost(t, s, "Hello", u.ID)

	ok, err := s.UserEmailExists(ctx, "dave@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.UserEmailExists(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.PostTitleExists(ctx, "Hello")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFindUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	a := seedUser(t, s, "a@x.com")
	b := seedUser(t, s, "b@x.com")

	found, err := s.FindUsers(ctx, []string{a.ID, b.ID, "6f1c1a2e-9d4b-4a8e-8f57-2b1d3c4e5f60"})
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, "a@x.com", found[a.ID].Email)

	empty, err := s.FindUsers(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListOrdering(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	a := seedUser(t, s, "a@x.com")
	time.Sleep(5 * time.Millisecond)
	b := seedUser(t, s, "b@x.com")
	older := seedPost(t, s, "older", a.ID)
	time.Sleep(5 * time.Millisecond)
	newer := seedPost(t, s, "newer", b.ID)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, a.ID, users[0].ID)

	posts, err := s.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, newer.ID, posts[0].ID)
	assert.Equal(t, older.ID, posts[1].ID)
}

func TestTransactionRollsBackAndKeepsCallerError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	boom := errors.New("boom")

	err := s.Transaction(ctx, func(tx Gateway) error {
		require.NoError(t, tx.SaveUser(ctx, &models.User{FirstName: "Tmp", Username: "tmp", Email: "tmp@x.com"}))
		return boom
	})
	assert.Same(t, boom, err)

	ok, err := s.UserEmailExists(ctx, "tmp@x.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTranslate(t *testing.T) {
	assert.Nil(t, translate(nil))
	assert.Same(t, ErrNotFound, translate(ErrNotFound))

	other := errors.New("connection refused")
	err := translate(other)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, ErrDuplicate)
}
