package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/cppla/blogapi/dto"
	"github.com/cppla/blogapi/models"
	"github.com/cppla/blogapi/store"
	"github.com/cppla/blogapi/utils"
)

// PostService owns the business rules for posts and answers with display projections.
type PostService struct {
	store store.Gateway
}

// NewPostService creates a PostService on top of gw.
func NewPostService(gw store.Gateway) *PostService {
	return &PostService{store: gw}
}

// Create publishes a post for an existing author under a title nobody uses yet.
func (s *PostService) Create(ctx context.Context, in dto.CreatePost) (*dto.PostView, error) {
	if err := check(nil, in); err != nil {
		return nil, err
	}

	var view dto.PostView
	err := s.store.Transaction(ctx, func(tx store.Gateway) error {
		taken, err := tx.PostTitleExists(ctx, in.Title)
		if err != nil {
			return fmt.Errorf("check title: %w", err)
		}
		if taken {
			return ErrDuplicatePost
		}

		author, err := tx.FindUser(ctx, in.AuthorID)
		if err != nil {
			return lookupError(err, userNotFound(in.AuthorID), "load author")
		}

		post := dto.NewPost(in, author)
		if err := savePost(ctx, tx, post); err != nil {
			return err
		}
		view = dto.NewPostView(post, author)
		return nil
	})
	if err != nil {
		return nil, err
	}
	utils.Sugar.Infow("post created", "post_id", view.ID, "author_id", view.AuthorID)
	return &view, nil
}

// Get returns the projection of one post.
func (s *PostService) Get(ctx context.Context, id string) (*dto.PostView, error) {
	if fields := utils.ValidateID("id", id); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	post, err := s.store.FindPost(ctx, id)
	if err != nil {
		return nil, lookupError(err, postNotFound(id), "load post")
	}
	return project(ctx, s.store, post)
}

// List returns every post, newest first. Authors are fetched in one batch.
func (s *PostService) List(ctx context.Context) ([]dto.PostView, error) {
	posts, err := s.store.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.AuthorID)
	}
	authors, err := s.store.FindUsers(ctx, utils.Unique(ids))
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	return dto.NewPostViews(posts, authors), nil
}

// Update merges the supplied fields onto the stored post. A new title must be free.
func (s *PostService) Update(ctx context.Context, id string, patch dto.PostPatch) (*dto.PostView, error) {
	if err := check(utils.ValidateID("id", id), patch); err != nil {
		return nil, err
	}

	var view *dto.PostView
	err := s.store.Transaction(ctx, func(tx store.Gateway) error {
		post, err := tx.FindPost(ctx, id)
		if err != nil {
			return lookupError(err, postNotFound(id), "load post")
		}
		if patch.Title != nil && *patch.Title != post.Title {
			taken, err := tx.PostTitleExists(ctx, *patch.Title)
			if err != nil {
				return fmt.Errorf("check title: %w", err)
			}
			if taken {
				return ErrDuplicatePost
			}
		}
		dto.ApplyPostPatch(post, patch)
		if err := savePost(ctx, tx, post); err != nil {
			return err
		}
		view, err = project(ctx, tx, post)
		return err
	})
	if err != nil {
		return nil, err
	}
	utils.Sugar.Infow("post updated", "post_id", id)
	return view, nil
}

// Delete removes a post. Its author is kept.
func (s *PostService) Delete(ctx context.Context, id string) error {
	if fields := utils.ValidateID("id", id); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	removed, err := s.store.DeletePost(ctx, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if !removed {
		return postNotFound(id)
	}
	utils.Sugar.Infow("post deleted", "post_id", id)
	return nil
}

// project resolves the author of post and builds its projection.
func project(ctx context.Context, gw store.Gateway, post *models.Post) (*dto.PostView, error) {
	author, err := gw.FindUser(ctx, post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("load author %s of post %s: %w", post.AuthorID, post.ID, err)
	}
	view := dto.NewPostView(post, author)
	return &view, nil
}

// savePost persists p. A unique violation is a taken title; a foreign key violation
// means the author disappeared after it was resolved.
func savePost(ctx context.Context, tx store.Gateway, p *models.Post) error {
	err := tx.SavePost(ctx, p)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return ErrDuplicatePost
	case errors.Is(err, store.ErrForeignKey):
		return userNotFound(p.AuthorID)
	case err != nil:
		return fmt.Errorf("save post: %w", err)
	}
	return nil
}
