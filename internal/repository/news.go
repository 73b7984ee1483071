package repository

import (
	"context"
	"strings"

	"playlsd/internal/cache"
	"playlsd/internal/models"

	"gorm.io/gorm"
)

// NewsRepository defines the interface for news post data operations
type NewsRepository interface {
	Create(ctx context.Context, post *models.NewsPost) error
	GetByID(ctx context.Context, id uint) (*models.NewsPost, error)
	List(ctx context.Context, filter PostFilter) ([]*models.NewsPost, error)
	Update(ctx context.Context, post *models.NewsPost) error
	Delete(ctx context.Context, id uint) error
	SetPublished(ctx context.Context, id uint, published bool) (*models.NewsPost, error)
	SetFeatured(ctx context.Context, id uint, featured bool) (*models.NewsPost, error)
}

// newsRepository implements NewsRepository
type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository creates a new news post repository
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(ctx context.Context, post *models.NewsPost) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidateNews(ctx)
	}
	return err
}

func (r *newsRepository) GetByID(ctx context.Context, id uint) (*models.NewsPost, error) {
	var post models.NewsPost
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *newsRepository) List(ctx context.Context, filter PostFilter) ([]*models.NewsPost, error) {
	if isPublicListing(filter) {
		var posts []*models.NewsPost
		full := filter
		full.Limit = maxCachedListing
		err := cache.Aside(ctx, cache.PublishedNewsKey(), &posts, cache.ListTTL, func() error {
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

func (r *newsRepository) query(ctx context.Context, filter PostFilter) ([]*models.NewsPost, error) {
	q := r.db.WithContext(ctx).Model(&models.NewsPost{})

	if filter.Published != nil {
		q = q.Where("published = ?", *filter.Published)
	}
	if filter.Featured != nil {
		q = q.Where("featured = ?", *filter.Featured)
	}
	if term := strings.TrimSpace(filter.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(tags) LIKE ?", like, like, like)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var posts []*models.NewsPost
	err := q.Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *newsRepository) Update(ctx context.Context, post *models.NewsPost) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.NewsPost
		if err := tx.First(&current, post.ID).Error; err != nil {
			return err
		}
		return tx.Save(post).Error
	})
	if err == nil {
		cache.InvalidateNews(ctx)
	}
	return err
}

func (r *newsRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.NewsPost{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateNews(ctx)
	return nil
}

func (r *newsRepository) SetPublished(ctx context.Context, id uint, published bool) (*models.NewsPost, error) {
	return r.setFlag(ctx, id, "published", published)
}

func (r *newsRepository) SetFeatured(ctx context.Context, id uint, featured bool) (*models.NewsPost, error) {
	return r.setFlag(ctx, id, "featured", featured)
}

func (r *newsRepository) setFlag(ctx context.Context, id uint, column string, value bool) (*models.NewsPost, error) {
	var post models.NewsPost
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, id).Error; err != nil {
			return err
		}
		return tx.Model(&post).Update(column, value).Error
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidateNews(ctx)
	return &post, nil
}
