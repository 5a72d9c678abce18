package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a blog entry written by exactly one User.
type Post struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string    `gorm:"size:100;not null;uniqueIndex:uni_posts_title" json:"title"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Image       string    `gorm:"size:500" json:"image"`
	Views       int       `gorm:"not null;default:0" json:"views"`
	Body        Document  `gorm:"not null" json:"body"`
	AuthorID    string    `gorm:"type:varchar(36);index;not null" json:"authorId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Author only declares the foreign key for migrations. It is never loaded or
	// written; resolve authors through AuthorID instead.
	Author *User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}

// BeforeCreate assigns the identifier and stamps both timestamps with the same instant.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = p.CreatedAt
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (p *Post) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return nil
}
