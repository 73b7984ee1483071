package models

import "time"

// EmbedType identifies which player a playlist post embeds.
type EmbedType string

const (
	EmbedTypeSpotify    EmbedType = "spotify"
	EmbedTypeYouTube    EmbedType = "youtube"
	EmbedTypeSoundCloud EmbedType = "soundcloud"
	EmbedTypeOther      EmbedType = "other"
)

// ValidEmbedType reports whether t is a supported embed provider.
func ValidEmbedType(t EmbedType) bool {
	switch t {
	case EmbedTypeSpotify, EmbedTypeYouTube, EmbedTypeSoundCloud, EmbedTypeOther:
		return true
	}
	return false
}

// PlaylistPost is a curated playlist published by an admin. The slug is
// derived from the title and unique across all playlist posts; public pages
// address a post by slug and only see published ones.
type PlaylistPost struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Slug        string     `gorm:"size:220;not null;uniqueIndex" json:"slug"`
	Description string     `gorm:"type:text;not null" json:"description"`
	EmbedURL    string     `gorm:"not null" json:"embed_url"`
	EmbedType   EmbedType  `gorm:"type:varchar(16);not null;default:'other'" json:"embed_type"`
	ImageURL    string     `json:"image_url,omitempty"`
	Tags        StringList `gorm:"type:text;serializer:json" json:"tags"`
	Genres      StringList `gorm:"type:text;serializer:json" json:"genres"`
	Artists     StringList `gorm:"type:text;serializer:json" json:"artists"`
	Keywords    StringList `gorm:"type:text;serializer:json" json:"keywords"`
	Author      string     `gorm:"size:120;not null" json:"author"`
	Published   bool       `gorm:"not null;default:false;index" json:"published"`
	Featured    bool       `gorm:"not null;default:false;index" json:"featured"`
	CreatedAt   time.Time  `json:"date"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (PlaylistPost) TableName() string {
	return "playlist_posts"
}
