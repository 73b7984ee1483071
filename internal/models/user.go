// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account in the PlayLSD application.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"unique;not null" json:"username"`
	Email       string         `gorm:"unique;not null" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	DisplayName string         `gorm:"size:120" json:"display_name"`
	AvatarURL   string         `json:"avatar_url"`
	Bio         string         `json:"bio"`
	IsAdmin     bool           `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// AuthorName returns the name shown on content this user publishes.
func (u *User) AuthorName() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
