package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a comment on a post
type Comment struct {
	ID        string    `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	Content   string    `gorm:"type:text;not null;column:content" json:"content"`
	UserID    string    `gorm:"type:uuid;not null;index;column:user_id" json:"-"`
	PostID    string    `gorm:"type:uuid;not null;index;column:post_id" json:"-"`
	CreatedAt time.Time `gorm:"not null;index;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at" json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Post *Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// BeforeCreate assigns a UUID primary key
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
