package dto

import (
	"time"

	"github.com/cppla/blogapi/models"
)

// CreatePost is the payload for publishing a post.
type CreatePost struct {
	Title       string          `json:"title" validate:"required,notblank,nomarkup,max=100"`
	Description string          `json:"description" validate:"required,notblank,nomarkup,max=255"`
	Image       string          `json:"image" validate:"max=500"`
	AuthorID    string          `json:"authorId" validate:"required,uuid"`
	Body        models.Document `json:"body" validate:"required,document"`
}

// PostPatch updates a post partially: nil fields are left untouched.
// The author of a post cannot be changed.
type PostPatch struct {
	Title       *string         `json:"title" validate:"omitempty,notblank,nomarkup,max=100"`
	Description *string         `json:"description" validate:"omitempty,notblank,nomarkup,max=255"`
	Image       *string         `json:"image" validate:"omitempty,max=500"`
	Body        models.Document `json:"body" validate:"omitempty,document"`
}

// PostView is the display-safe projection of a post: the author is reduced to its
// id and first name.
type PostView struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Views       int             `json:"views"`
	Body        models.Document `json:"body"`
	AuthorID    string          `json:"authorId"`
	AuthorName  string          `json:"authorName"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// NewPost maps a validated payload onto a fresh entity owned by author.
func NewPost(in CreatePost, author *models.User) *models.Post {
	return &models.Post{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		Views:       0,
		Body:        in.Body,
		AuthorID:    author.ID,
	}
}

// ApplyPostPatch merges the supplied fields onto p.
func ApplyPostPatch(p *models.Post, patch PostPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Body != nil {
		p.Body = patch.Body
	}
}

// NewPostView projects p for display, taking the author name from author.
func NewPostView(p *models.Post, author *models.User) PostView {
	return PostView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		Views:       p.Views,
		Body:        p.Body,
		AuthorID:    author.ID,
		AuthorName:  author.FirstName,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewPostViews projects posts in order. Authors are looked up by id; a post whose
// author is missing from the map keeps its author id with an empty name.
func NewPostViews(posts []models.Post, authors map[string]*models.User) []PostView {
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		author, ok := authors[posts[i].AuthorID]
		if !ok {
			author = &models.User{ID: posts[i].AuthorID}
		}
		views = append(views, NewPostView(&posts[i], author))
	}
	return views
}
