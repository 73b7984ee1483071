package database

import (
	"testing"

	"playlsd/internal/config"
	"playlsd/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestConnect_TranslatesDuplicateKeyErrors(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", DBName: ":memory:"}
	db, err := Connect(cfg)
	require.NoError(t, err)

	first := &models.PlaylistPost{
		Title:       "Deep House Mix",
		Slug:        "deep-house-mix",
		Description: "An hour of hypnotic deep house for late night sessions.",
		EmbedURL:    "https://open.spotify.com/playlist/abc",
		EmbedType:   models.EmbedTypeSpotify,
		Author:      "LSD Curator",
	}
	require.NoError(t, db.Create(first).Error)

	dup := &models.PlaylistPost{
		Title:       "Deep House Mix Again",
		Slug:        "deep-house-mix",
		Description: "A second post colliding on the same slug.",
		EmbedURL:    "https://open.spotify.com/playlist/def",
		EmbedType:   models.EmbedTypeSpotify,
		Author:      "LSD Curator",
	}
	err = db.Create(dup).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
