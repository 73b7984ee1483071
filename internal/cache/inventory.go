package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	playlistSlugKeyPrefix = "playlist:slug:%s"
	publishedListsKey     = "playlists:published"
	publishedNewsKey      = "news:published"
)

const (
	// PlaylistTTL bounds staleness of slug-addressed playlist pages.
	PlaylistTTL = 10 * time.Minute
	// ListTTL bounds staleness of the public published listings.
	ListTTL = 2 * time.Minute
)

// PlaylistSlugKey is the cache key for a published playlist looked up by slug.
func PlaylistSlugKey(slug string) string {
	return fmt.Sprintf(playlistSlugKeyPrefix, slug)
}

// PublishedPlaylistsKey is the cache key for the public playlist listing.
func PublishedPlaylistsKey() string {
	return publishedListsKey
}

// PublishedNewsKey is the cache key for the public news listing.
func PublishedNewsKey() string {
	return publishedNewsKey
}

// InvalidatePlaylist drops the slug entry and the published listing.
func InvalidatePlaylist(ctx context.Context, slug string) {
	Invalidate(ctx, PlaylistSlugKey(slug), publishedListsKey)
}

// InvalidateNews drops the published news listing.
func InvalidateNews(ctx context.Context) {
	Invalidate(ctx, publishedNewsKey)
}
