package models

import "time"

// ChatMessage is a message in the shared music chat. Messages are ephemeral:
// ExpiresAt is stamped at write time and expired rows are excluded from reads
// until the sweeper deletes them.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	TrackURL  string    `json:"track_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
}

// TableName specifies the table name for GORM.
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// Expired reports whether the message is past its expiry at the given time.
func (m *ChatMessage) Expired(now time.Time) bool {
	return !now.Before(m.ExpiresAt)
}
