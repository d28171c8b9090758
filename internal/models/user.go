package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles assignable to an account
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account
type User struct {
	ID             string    `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	FirstName      string    `gorm:"type:varchar(100);not null;column:first_name" json:"firstName"`
	LastName       string    `gorm:"type:varchar(100);not null;column:last_name" json:"lastName"`
	Age            int       `gorm:"not null;column:age" json:"age"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex;column:email" json:"email"`
	Username       string    `gorm:"type:varchar(100);not null;uniqueIndex;column:username" json:"username"`
	Password       string    `gorm:"type:varchar(255);not null;column:password" json:"-"`
	Role           string    `gorm:"type:varchar(20);not null;default:user;column:role" json:"role"`
	Gender         string    `gorm:"type:varchar(20);not null;column:gender" json:"gender"`
	ProfilePicture string    `gorm:"type:varchar(255);column:profile_picture" json:"profilePicture"`
	CreatedAt      time.Time `gorm:"not null;column:created_at" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"not null;column:updated_at" json:"updatedAt"`

	Posts    []Post    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
	Comments []Comment `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID primary key
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// FullName joins first and last name with a single space
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
