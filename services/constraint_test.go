package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/blogapi/dto"
	"github.com/cppla/blogapi/models"
	"github.com/cppla/blogapi/services"
	"github.com/cppla/blogapi/store"
)

// racingGateway answers every existence check with false, as if a concurrent writer
// slipped in between the check and the write. With ghostUsers set, unknown users are
// reported as present. Only the database constraints are left to reject the write.
type racingGateway struct {
	store.Gateway
	ghostUsers bool
}

func (g racingGateway) Transaction(ctx context.Context, fn func(tx store.Gateway) error) error {
	return g.Gateway.Transaction(ctx, func(tx store.Gateway) error {
		return fn(racingGateway{Gateway: tx, ghostUsers: g.ghostUsers})
	})
}

func (racingGateway) UserEmailExists(context.Context, string) (bool, error) { return false, nil }
func (racingGateway) PostTitleExists(context.Context, string) (bool, error) { return false, nil }
func (racingGateway) UserHasPosts(context.Context, string) (bool, error)    { return false, nil }

func (g racingGateway) FindUser(ctx context.Context, id string) (*models.User, error) {
	u, err := g.Gateway.FindUser(ctx, id)
	if g.ghostUsers && store.IsNotFound(err) {
		return &models.User{ID: id, FirstName: "Ghost"}, nil
	}
	return u, err
}

func TestDuplicateEmailDecidedByConstraint(t *testing.T) {
	f := newFixture(t)
	dave := f.createUser(t, "Dave", "dave@x.com")
	ann := f.createUser(t, "Ann", "ann@x.com")
	users := services.NewUserService(racingGateway{Gateway: f.store})

	_, err := users.Create(f.ctx, dto.CreateUser{FirstName: "Copy", Username: "copy", Email: "dave@x.com"})
	assert.ErrorIs(t, err, services.ErrDuplicateEmail)

	_, err = users.Update(f.ctx, ann.ID, dto.UserPatch{Email: strPtr("dave@x.com")})
	assert.ErrorIs(t, err, services.ErrDuplicateEmail)

	got, err := f.users.Get(f.ctx, dave.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dave", got.FirstName)
	all, err := f.users.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDuplicateTitleDecidedByConstraint(t *testing.T) {
	f := newFixture(t)
	u := f.createUser(t, "Dave", "dave@x.com")
	f.createPost(t, "Hello", u.ID)
	other := f.createPost(t, "Other", u.ID)
	posts := services.NewPostService(racingGateway{Gateway: f.store})

	_, err := posts.Create(f.ctx, dto.CreatePost{
		Title:       "Hello",
		Description: "Again",
		AuthorID:    u.ID,
		Body:        models.Document(`{}`),
	})
	assert.ErrorIs(t, err, services.ErrDuplicatePost)

	_, err = posts.Update(f.ctx, other.ID, dto.PostPatch{Title: strPtr("Hello")})
	assert.ErrorIs(t, err, services.ErrDuplicatePost)

	list, err := f.posts.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestVanishedAuthorDecidedByConstraint(t *testing.T) {
	f := newFixture(t)
	posts := services.NewPostService(racingGateway{Gateway: f.store, ghostUsers: true})

	_, err := posts.Create(f.ctx, dto.CreatePost{
		Title:       "Orphan",
		Description: "No author",
		AuthorID:    missingID,
		Body:        models.Document(`{}`),
	})
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	list, err := f.posts.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUserWithPostsDecidedByConstraint(t *testing.T) {
	f := newFixture(t)
	u := f.createUser(t, "Dave", "dave@x.com")
	f.createPost(t, "Hello", u.ID)
	users := services.NewUserService(racingGateway{Gateway: f.store})

	assert.ErrorIs(t, users.Delete(f.ctx, u.ID), services.ErrUserHasPosts)

	_, err := f.users.Get(f.ctx, u.ID)
	assert.NoError(t, err)
}
