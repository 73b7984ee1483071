package models

import "time"

// AdminNotificationKind categorizes entries in the admin notification center.
type AdminNotificationKind string

const (
	// NotificationSubmissionReceived is raised when a new submission arrives.
	NotificationSubmissionReceived AdminNotificationKind = "submission_received"
	// NotificationSubmissionReviewed is raised when a submission changes status.
	NotificationSubmissionReviewed AdminNotificationKind = "submission_reviewed"
)

// AdminNotification is an entry in the admin notification center.
type AdminNotification struct {
	ID           uint                  `gorm:"primaryKey" json:"id"`
	Kind         AdminNotificationKind `gorm:"type:varchar(40);not null" json:"kind"`
	Subject      string                `gorm:"size:200;not null" json:"subject"`
	Body         string                `gorm:"type:text" json:"body"`
	SubmissionID string                `gorm:"size:36;index" json:"submission_id,omitempty"`
	Read         bool                  `gorm:"not null;default:false;index" json:"read"`
	CreatedAt    time.Time             `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (AdminNotification) TableName() string {
	return "admin_notifications"
}
