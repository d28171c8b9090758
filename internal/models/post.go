package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post represents a user post with optional image attachments
type Post struct {
	ID        string    `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null;column:title" json:"title"`
	Content   string    `gorm:"type:text;column:content" json:"content"`
	Filenames string    `gorm:"type:text;column:filenames" json:"-"`
	UserID    string    `gorm:"type:uuid;not null;index;column:user_id" json:"-"`
	CreatedAt time.Time `gorm:"not null;index;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;index;column:updated_at" json:"updatedAt"`

	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

// BeforeCreate assigns a UUID primary key
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// Images returns the attachment filenames as an ordered slice.
// Filenames are stored comma-joined in a single text column.
func (p *Post) Images() []string {
	if p.Filenames == "" {
		return []string{}
	}
	return strings.Split(p.Filenames, ",")
}

// SetImages stores the attachment filenames, preserving order
func (p *Post) SetImages(names []string) {
	p.Filenames = strings.Join(names, ",")
}
