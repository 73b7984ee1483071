package repository

import (
	"context"
	"strings"

	"playlsd/internal/cache"
	"playlsd/internal/models"
	"playlsd/internal/slug"

	"gorm.io/gorm"
)

// PostFilter narrows playlist and news listings. Nil booleans mean "no filter".
type PostFilter struct {
	Published *bool
	Featured  *bool
	Query     string
	Limit     int
	Offset    int
}

// PlaylistRepository defines the interface for playlist post data operations.
// Create and Update take the caller's base slug and uniquify it inside the
// write transaction so the slug reflects the most recently committed state.
type PlaylistRepository interface {
	Create(ctx context.Context, post *models.PlaylistPost) error
	GetByID(ctx context.Context, id uint) (*models.PlaylistPost, error)
	GetBySlug(ctx context.Context, s string, publishedOnly bool) (*models.PlaylistPost, error)
	List(ctx context.Context, filter PostFilter) ([]*models.PlaylistPost, error)
	Update(ctx context.Context, post *models.PlaylistPost, reslug bool) error
	Delete(ctx context.Context, id uint) error
	SetPublished(ctx context.Context, id uint, published bool) (*models.PlaylistPost, error)
	SetFeatured(ctx context.Context, id uint, featured bool) (*models.PlaylistPost, error)
}

// playlistRepository implements PlaylistRepository
type playlistRepository struct {
	db *gorm.DB
}

// NewPlaylistRepository creates a new playlist post repository
func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

// slugTakenIn reports whether s is already used by a post other than excludeID.
// Runs inside the caller's transaction; query errors are reported through errOut.
func slugTakenIn(tx *gorm.DB, excludeID uint, errOut *error) func(string) bool {
	return func(s string) bool {
		var count int64
		q := tx.Model(&models.PlaylistPost{}).Where("slug = ?", s)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			*errOut = err
			return false
		}
		return count > 0
	}
}

func (r *playlistRepository) Create(ctx context.Context, post *models.PlaylistPost) error {
	base := post.Slug
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lookupErr error
		post.Slug = slug.Uniquify(base, slugTakenIn(tx, 0, &lookupErr))
		if lookupErr != nil {
			return lookupErr
		}
		return tx.Create(post).Error
	})
	if err == nil {
		cache.InvalidatePlaylist(ctx, post.Slug)
	}
	return err
}

func (r *playlistRepository) GetByID(ctx context.Context, id uint) (*models.PlaylistPost, error) {
	var post models.PlaylistPost
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *playlistRepository) GetBySlug(ctx context.Context, s string, publishedOnly bool) (*models.PlaylistPost, error) {
	var post models.PlaylistPost

	fetch := func() error {
		q := r.db.WithContext(ctx).Where("slug = ?", s)
		if publishedOnly {
			q = q.Where("published = ?", true)
		}
		return q.First(&post).Error
	}

	// Only the public (published-only) lookup is cache-backed; the admin
	// editor always reads through to the database.
	if publishedOnly {
		if err := cache.Aside(ctx, cache.PlaylistSlugKey(s), &post, cache.PlaylistTTL, fetch); err != nil {
			return nil, err
		}
		return &post, nil
	}

	if err := fetch(); err != nil {
		return nil, err
	}
	return &post, nil
}

// maxCachedListing caps how many rows the cached public listing holds.
const maxCachedListing = 100

// isPublicListing reports whether the filter is the canonical public request:
// published, unfiltered, first page. Only that shape is cache-backed.
func isPublicListing(filter PostFilter) bool {
	return filter.Published != nil && *filter.Published &&
		filter.Featured == nil &&
		strings.TrimSpace(filter.Query) == "" &&
		filter.Offset == 0
}

func (r *playlistRepository) List(ctx context.Context, filter PostFilter) ([]*models.PlaylistPost, error) {
	if isPublicListing(filter) {
		var posts []*models.PlaylistPost
		full := filter
		full.Limit = maxCachedListing
		err := cache.Aside(ctx, cache.PublishedPlaylistsKey(), &posts, cache.ListTTL, func() error {
			var ferr error
			posts, ferr = r.query(ctx, full)
			return ferr
		})
		if err != nil {
			return nil, err
		}
		if filter.Limit > 0 && len(posts) > filter.Limit {
			posts = posts[:filter.Limit]
		}
		return posts, nil
	}
	return r.query(ctx, filter)
}

func (r *playlistRepository) query(ctx context.Context, filter PostFilter) ([]*models.PlaylistPost, error) {
	q := r.db.WithContext(ctx).Model(&models.PlaylistPost{})

	if filter.Published != nil {
		q = q.Where("published = ?", *filter.Published)
	}
	if filter.Featured != nil {
		q = q.Where("featured = ?", *filter.Featured)
	}
	if term := strings.TrimSpace(filter.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ? OR LOWER(genres) LIKE ? OR LOWER(artists) LIKE ?",
			like, like, like, like, like,
		)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var posts []*models.PlaylistPost
	err := q.Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *playlistRepository) Update(ctx context.Context, post *models.PlaylistPost, reslug bool) error {
	oldSlug := ""
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.PlaylistPost
		if err := tx.First(&current, post.ID).Error; err != nil {
			return err
		}
		oldSlug = current.Slug

		if reslug {
			var lookupErr error
			post.Slug = slug.Uniquify(post.Slug, slugTakenIn(tx, post.ID, &lookupErr))
			if lookupErr != nil {
				return lookupErr
			}
		} else {
			post.Slug = current.Slug
		}
		return tx.Save(post).Error
	})
	if err == nil {
		cache.InvalidatePlaylist(ctx, oldSlug)
		cache.InvalidatePlaylist(ctx, post.Slug)
	}
	return err
}

func (r *playlistRepository) Delete(ctx context.Context, id uint) error {
	var post models.PlaylistPost
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, id).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err == nil {
		cache.InvalidatePlaylist(ctx, post.Slug)
	}
	return err
}

func (r *playlistRepository) SetPublished(ctx context.Context, id uint, published bool) (*models.PlaylistPost, error) {
	return r.setFlag(ctx, id, "published", published)
}

func (r *playlistRepository) SetFeatured(ctx context.Context, id uint, featured bool) (*models.PlaylistPost, error) {
	return r.setFlag(ctx, id, "featured", featured)
}

func (r *playlistRepository) setFlag(ctx context.Context, id uint, column string, value bool) (*models.PlaylistPost, error) {
	var post models.PlaylistPost
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, id).Error; err != nil {
			return err
		}
		return tx.Model(&post).Update(column, value).Error
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidatePlaylist(ctx, post.Slug)
	return &post, nil
}
