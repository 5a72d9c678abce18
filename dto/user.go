// Package dto holds the inbound payloads and outbound projections of the API.
package dto

import (
	"strings"

	"github.com/cppla/blogapi/models"
)

// CreateUser is the payload for registering a user.
type CreateUser struct {
	FirstName string `json:"firstName" validate:"required,notblank,nomarkup,max=50"`
	LastName  string `json:"lastName" validate:"nomarkup,max=100"`
	Username  string `json:"username" validate:"required,notblank,nomarkup,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Image     string `json:"image" validate:"max=500"`
}

// UserPatch updates a user partially: nil fields are left untouched.
type UserPatch struct {
	FirstName *string `json:"firstName" validate:"omitempty,notblank,nomarkup,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,nomarkup,max=100"`
	Username  *string `json:"username" validate:"omitempty,notblank,nomarkup,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	Image     *string `json:"image" validate:"omitempty,max=500"`
}

// NormalizeEmail trims and lower-cases an address so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser maps a validated payload onto a fresh entity. Id and timestamps are left
// for the store to assign.
func NewUser(in CreateUser) *models.User {
	return &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Email:     in.Email,
		Image:     in.Image,
	}
}

// ApplyUserPatch merges the supplied fields onto u.
func ApplyUserPatch(u *models.User, p UserPatch) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Image != nil {
		u.Image = *p.Image
	}
}
