package service

import (
	"context"
	"errors"
	"strings"

	"playlsd/internal/models"
	"playlsd/internal/repository"
	"playlsd/internal/slug"
	"playlsd/internal/validation"

	"gorm.io/gorm"
)

// PlaylistService is the playlist half of the catalog: CRUD with slug
// integrity plus publish/feature flag management.
type PlaylistService struct {
	repo repository.PlaylistRepository
}

// NewPlaylistService creates a new playlist service.
func NewPlaylistService(repo repository.PlaylistRepository) *PlaylistService {
	return &PlaylistService{repo: repo}
}

// CreatePlaylistInput is the admin editor payload for a new playlist post.
type CreatePlaylistInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	EmbedURL    string   `json:"embed_url"`
	EmbedType   string   `json:"embed_type"`
	ImageURL    string   `json:"image_url"`
	Tags        []string `json:"tags"`
	Genres      []string `json:"genres"`
	Artists     []string `json:"artists"`
	Keywords    []string `json:"keywords"`
	Published   bool     `json:"published"`
	Featured    bool     `json:"featured"`
}

// UpdatePlaylistInput is a partial update; nil fields keep stored values.
type UpdatePlaylistInput struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	EmbedURL    *string   `json:"embed_url"`
	EmbedType   *string   `json:"embed_type"`
	ImageURL    *string   `json:"image_url"`
	Tags        *[]string `json:"tags"`
	Genres      *[]string `json:"genres"`
	Artists     *[]string `json:"artists"`
	Keywords    *[]string `json:"keywords"`
	Published   *bool     `json:"published"`
	Featured    *bool     `json:"featured"`
}

func validatePlaylistFields(title, description, embedURL, embedType, imageURL string) error {
	if !validation.MinLen(title, 5) {
		return models.NewFieldValidationError("title", "title must be at least 5 characters")
	}
	if !validation.MinLen(description, 20) {
		return models.NewFieldValidationError("description", "description must be at least 20 characters")
	}
	if err := validation.ValidateURL(embedURL); err != nil {
		return models.NewFieldValidationError("embed_url", err.Error())
	}
	if !models.ValidEmbedType(models.EmbedType(embedType)) {
		return models.NewFieldValidationError("embed_type", "embed_type must be spotify, youtube, soundcloud, or other")
	}
	if strings.TrimSpace(imageURL) != "" {
		if err := validation.ValidateURL(imageURL); err != nil {
			return models.NewFieldValidationError("image_url", err.Error())
		}
	}
	return nil
}

// Create validates the input, derives the slug from the title, and persists
// the post. Slug collisions are resolved with a numeric suffix inside the
// write transaction; author is the acting admin's display name.
func (s *PlaylistService) Create(ctx context.Context, author string, in CreatePlaylistInput) (*models.PlaylistPost, error) {
	if strings.TrimSpace(author) == "" {
		return nil, models.NewFieldValidationError("author", "acting admin identity is required")
	}
	if err := validatePlaylistFields(in.Title, in.Description, in.EmbedURL, in.EmbedType, in.ImageURL); err != nil {
		return nil, err
	}

	post := &models.PlaylistPost{
		Title:       strings.TrimSpace(in.Title),
		Slug:        slug.Make(in.Title),
		Description: strings.TrimSpace(in.Description),
		EmbedURL:    strings.TrimSpace(in.EmbedURL),
		EmbedType:   models.EmbedType(in.EmbedType),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Tags:        models.NormalizeStringList(in.Tags),
		Genres:      models.NormalizeStringList(in.Genres),
		Artists:     models.NormalizeStringList(in.Artists),
		Keywords:    models.NormalizeStringList(in.Keywords),
		Author:      author,
		Published:   in.Published,
		Featured:    in.Featured,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConflictError("slug already taken, retry the request")
		}
		return nil, err
	}
	return post, nil
}

// Update applies a partial update. A changed title regenerates the slug,
// excluding the post itself from the collision check.
func (s *PlaylistService) Update(ctx context.Context, id uint, in UpdatePlaylistInput) (*models.PlaylistPost, error) {
	post, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Playlist post", id)
	}
	if err != nil {
		return nil, err
	}

	reslug := false
	if in.Title != nil && strings.TrimSpace(*in.Title) != post.Title {
		post.Title = strings.TrimSpace(*in.Title)
		post.Slug = slug.Make(post.Title)
		reslug = true
	}
	if in.Description != nil {
		post.Description = strings.TrimSpace(*in.Description)
	}
	if in.EmbedURL != nil {
		post.EmbedURL = strings.TrimSpace(*in.EmbedURL)
	}
	if in.EmbedType != nil {
		post.EmbedType = models.EmbedType(*in.EmbedType)
	}
	if in.ImageURL != nil {
		post.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.Tags != nil {
		post.Tags = models.NormalizeStringList(*in.Tags)
	}
	if in.Genres != nil {
		post.Genres = models.NormalizeStringList(*in.Genres)
	}
	if in.Artists != nil {
		post.Artists = models.NormalizeStringList(*in.Artists)
	}
	if in.Keywords != nil {
		post.Keywords = models.NormalizeStringList(*in.Keywords)
	}
	if in.Published != nil {
		post.Published = *in.Published
	}
	if in.Featured != nil {
		post.Featured = *in.Featured
	}

	if err := validatePlaylistFields(post.Title, post.Description, post.EmbedURL, string(post.EmbedType), post.ImageURL); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, post, reslug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Playlist post", id)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConflictError("slug already taken, retry the request")
		}
		return nil, err
	}
	return post, nil
}

// Delete hard-deletes the post.
func (s *PlaylistService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Playlist post", id)
	}
	return err
}

// SetPublished flips the published flag. Publish state is independent of
// featured: a post can be featured while still a draft.
func (s *PlaylistService) SetPublished(ctx context.Context, id uint, published bool) (*models.PlaylistPost, error) {
	post, err := s.repo.SetPublished(ctx, id, published)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Playlist post", id)
	}
	return post, err
}

// SetFeatured flips the featured flag.
func (s *PlaylistService) SetFeatured(ctx context.Context, id uint, featured bool) (*models.PlaylistPost, error) {
	post, err := s.repo.SetFeatured(ctx, id, featured)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Playlist post", id)
	}
	return post, err
}

// Get returns a post by id regardless of publish state (admin editor).
func (s *PlaylistService) Get(ctx context.Context, id uint) (*models.PlaylistPost, error) {
	post, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Playlist post", id)
	}
	return post, err
}

// FindBySlug returns the published post with the given slug. Unpublished
// posts are invisible by slug even to a caller holding the URL; drafts are
// previewed through Get on the admin routes instead.
func (s *PlaylistService) FindBySlug(ctx context.Context, sl string) (*models.PlaylistPost, error) {
	post, err := s.repo.GetBySlug(ctx, sl, true)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Playlist post", sl)
	}
	return post, err
}

// List returns posts matching the filter, newest first.
func (s *PlaylistService) List(ctx context.Context, filter repository.PostFilter) ([]*models.PlaylistPost, error) {
	return s.repo.List(ctx, filter)
}
