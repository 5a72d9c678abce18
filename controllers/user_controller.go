package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/blogapi/dto"
	"github.com/cppla/blogapi/services"
	"github.com/cppla/blogapi/utils"
)

// UserController exposes the user operations over HTTP.
type UserController struct {
	users *services.UserService
}

// NewUserController creates a new UserController instance.
func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// CreateUser registers a user.
func (u *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUser
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40000, "invalid request payload")
		return
	}

	user, err := u.users.Create(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Created(ctx, user)
}

// ListUsers returns every user.
func (u *UserController) ListUsers(ctx *gin.Context) {
	users, err := u.users.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, users)
}

// GetUser returns one user.
func (u *UserController) GetUser(ctx *gin.Context) {
	user, err := u.users.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, user)
}

// UpdateUser applies a partial update.
func (u *UserController) UpdateUser(ctx *gin.Context) {
	var req dto.UserPatch
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40000, "invalid request payload")
		return
	}

	user, err := u.users.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, user)
}

// DeleteUser removes a user without posts.
func (u *UserController) DeleteUser(ctx *gin.Context) {
	if err := u.users.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "user deleted"})
}
