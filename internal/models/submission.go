package models

import "time"

// SubmissionType distinguishes the two public submission forms.
type SubmissionType string

const (
	// SubmissionTypeSong is a song submitted for playlist consideration.
	SubmissionTypeSong SubmissionType = "song"
	// SubmissionTypePlaylist is a track pitched at a specific curated playlist.
	SubmissionTypePlaylist SubmissionType = "playlist"
)

// SubmissionStatus defines lifecycle states for public submissions.
type SubmissionStatus string

const (
	// SubmissionStatusPending indicates the submission is awaiting review.
	SubmissionStatusPending SubmissionStatus = "pending"
	// SubmissionStatusApproved indicates the submission was accepted.
	SubmissionStatusApproved SubmissionStatus = "approved"
	// SubmissionStatusRejected indicates the submission was declined.
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

// ValidSubmissionStatus reports whether s is one of the three allowed states.
func ValidSubmissionStatus(s SubmissionStatus) bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusApproved, SubmissionStatusRejected:
		return true
	}
	return false
}

// Submission is a public user's request to have a song or track considered
// for inclusion in a playlist. Identity fields are immutable after creation;
// only Status changes, and only through the moderation endpoints.
type Submission struct {
	ID             string           `gorm:"primaryKey;size:36" json:"id"`
	Type           SubmissionType   `gorm:"type:varchar(16);not null;index" json:"type"`
	ArtistName     string           `gorm:"size:120;not null" json:"artist_name"`
	Title          string           `gorm:"size:200" json:"title,omitempty"`
	StreamingLink  string           `json:"streaming_link,omitempty"`
	TrackLink      string           `json:"track_link,omitempty"`
	TargetPlaylist string           `gorm:"size:200" json:"target_playlist,omitempty"`
	Email          string           `gorm:"size:254;not null" json:"email"`
	Genre          string           `gorm:"size:80;not null" json:"genre"`
	Vibe           string           `gorm:"size:80;not null" json:"vibe"`
	Message        string           `gorm:"type:text" json:"message,omitempty"`
	Status         SubmissionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt      time.Time        `json:"date"`
	UpdatedAt      time.Time        `json:"-"`
}

// TableName specifies the table name for GORM.
func (Submission) TableName() string {
	return "submissions"
}
