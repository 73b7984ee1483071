package database

import "playlsd/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Submission{},
		&models.PlaylistPost{},
		&models.NewsPost{},
		&models.ChatMessage{},
		&models.AdminNotification{},
	}
}
