package service

import (
	"context"
	"errors"
	"strings"

	"playlsd/internal/models"
	"playlsd/internal/repository"
	"playlsd/internal/validation"

	"gorm.io/gorm"
)

// NewsService manages editorial news posts. Same publish/feature lifecycle as
// playlists, addressed by id instead of slug.
type NewsService struct {
	repo repository.NewsRepository
}

// NewNewsService creates a new news service.
func NewNewsService(repo repository.NewsRepository) *NewsService {
	return &NewsService{repo: repo}
}

// CreateNewsInput is the admin editor payload for a new news post.
type CreateNewsInput struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
	Featured  bool     `json:"featured"`
}

// UpdateNewsInput is a partial update; nil fields keep stored values.
type UpdateNewsInput struct {
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	Tags      *[]string `json:"tags"`
	Published *bool     `json:"published"`
	Featured  *bool     `json:"featured"`
}

func validateNewsFields(title, content string) error {
	if !validation.MinLen(title, 5) {
		return models.NewFieldValidationError("title", "title must be at least 5 characters")
	}
	if !validation.MinLen(content, 20) {
		return models.NewFieldValidationError("content", "content must be at least 20 characters")
	}
	return nil
}

// Create validates and persists a news post authored by the acting admin.
func (s *NewsService) Create(ctx context.Context, author string, in CreateNewsInput) (*models.NewsPost, error) {
	if strings.TrimSpace(author) == "" {
		return nil, models.NewFieldValidationError("author", "acting admin identity is required")
	}
	if err := validateNewsFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	post := &models.NewsPost{
		Title:     strings.TrimSpace(in.Title),
		Content:   strings.TrimSpace(in.Content),
		Tags:      models.NormalizeStringList(in.Tags),
		Author:    author,
		Published: in.Published,
		Featured:  in.Featured,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update applies a partial update to a news post.
func (s *NewsService) Update(ctx context.Context, id uint, in UpdateNewsInput) (*models.NewsPost, error) {
	post, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("News post", id)
	}
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		post.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		post.Content = strings.TrimSpace(*in.Content)
	}
	if in.Tags != nil {
		post.Tags = models.NormalizeStringList(*in.Tags)
	}
	if in.Published != nil {
		post.Published = *in.Published
	}
	if in.Featured != nil {
		post.Featured = *in.Featured
	}

	if err := validateNewsFields(post.Title, post.Content); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, post); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("News post", id)
		}
		return nil, err
	}
	return post, nil
}

// Delete hard-deletes the post.
func (s *NewsService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("News post", id)
	}
	return err
}

// Get returns a post by id regardless of publish state (admin editor).
func (s *NewsService) Get(ctx context.Context, id uint) (*models.NewsPost, error) {
	post, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("News post", id)
	}
	return post, err
}

// GetPublished returns a post by id, visible only when published.
func (s *NewsService) GetPublished(ctx context.Context, id uint) (*models.NewsPost, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.Published {
		return nil, models.NewNotFoundError("News post", id)
	}
	return post, nil
}

// SetPublished flips the published flag.
func (s *NewsService) SetPublished(ctx context.Context, id uint, published bool) (*models.NewsPost, error) {
	post, err := s.repo.SetPublished(ctx, id, published)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("News post", id)
	}
	return post, err
}

// SetFeatured flips the featured flag.
func (s *NewsService) SetFeatured(ctx context.Context, id uint, featured bool) (*models.NewsPost, error) {
	post, err := s.repo.SetFeatured(ctx, id, featured)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("News post", id)
	}
	return post, err
}

// List returns posts matching the filter, newest first.
func (s *NewsService) List(ctx context.Context, filter repository.PostFilter) ([]*models.NewsPost, error) {
	return s.repo.List(ctx, filter)
}
