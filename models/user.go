package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the author identity referenced by posts.
type User struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	FirstName string    `gorm:"size:50;not null" json:"firstName"`
	LastName  string    `gorm:"size:100" json:"lastName"`
	Username  string    `gorm:"column:user_name;size:100;not null" json:"username"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:uni_users_email" json:"email"`
	Image     string    `gorm:"column:profile_image;size:500" json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the identifier and stamps both timestamps with the same instant.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = u.CreatedAt
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
