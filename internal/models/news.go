package models

import "time"

// NewsPost is an editorial update published by an admin. It shares the
// publish/feature lifecycle with PlaylistPost but is addressed by id, not slug.
type NewsPost struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:200;not null" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Tags      StringList `gorm:"type:text;serializer:json" json:"tags"`
	Author    string     `gorm:"size:120;not null" json:"author"`
	Published bool       `gorm:"not null;default:false;index" json:"published"`
	Featured  bool       `gorm:"not null;default:false;index" json:"featured"`
	CreatedAt time.Time  `json:"date"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (NewsPost) TableName() string {
	return "news_posts"
}
