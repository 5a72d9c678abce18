package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/blogapi/dto"
	"github.com/cppla/blogapi/services"
	"github.com/cppla/blogapi/utils"
)

// PostController exposes the post operations over HTTP.
type PostController struct {
	posts *services.PostService
}

// NewPostController creates a new PostController instance.
func NewPostController(posts *services.PostService) *PostController {
	return &PostController{posts: posts}
}

// CreatePost publishes a new post and answers with its projection.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req dto.CreatePost
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40000, "invalid request payload")
		return
	}

	post, err := p.posts.Create(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Created(ctx, post)
}

// ListPosts returns every post projection.
func (p *PostController) ListPosts(ctx *gin.Context) {
	posts, err := p.posts.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, posts)
}

// GetPost returns a single post projection.
func (p *PostController) GetPost(ctx *gin.Context) {
	post, err := p.posts.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, post)
}

// UpdatePost applies a partial update.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	var req dto.PostPatch
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40000, "invalid request payload")
		return
	}

	post, err := p.posts.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, post)
}

// DeletePost removes a post.
func (p *PostController) DeletePost(ctx *gin.Context) {
	if err := p.posts.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "post deleted"})
}
