package service

import (
	"context"
	"testing"

	"playlsd/internal/models"
	"playlsd/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type newsRepoStub struct {
	createFn       func(ctx context.Context, post *models.NewsPost) error
	getByIDFn      func(ctx context.Context, id uint) (*models.NewsPost, error)
	listFn         func(ctx context.Context, filter repository.PostFilter) ([]*models.NewsPost, error)
	updateFn       func(ctx context.Context, post *models.NewsPost) error
	deleteFn       func(ctx context.Context, id uint) error
	setPublishedFn func(ctx context.Context, id uint, published bool) (*models.NewsPost, error)
	setFeaturedFn  func(ctx context.Context, id uint, featured bool) (*models.NewsPost, error)
}

func (s *newsRepoStub) Create(ctx context.Context, post *models.NewsPost) error {
	return s.createFn(ctx, post)
}

func (s *newsRepoStub) GetByID(ctx context.Context, id uint) (*models.NewsPost, error) {
	return s.getByIDFn(ctx, id)
}

func (s *newsRepoStub) List(ctx context.Context, filter repository.PostFilter) ([]*models.NewsPost, error) {
	return s.listFn(ctx, filter)
}

func (s *newsRepoStub) Update(ctx context.Context, post *models.NewsPost) error {
	return s.updateFn(ctx, post)
}

func (s *newsRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func (s *newsRepoStub) SetPublished(ctx context.Context, id uint, published bool) (*models.NewsPost, error) {
	return s.setPublishedFn(ctx, id, published)
}

func (s *newsRepoStub) SetFeatured(ctx context.Context, id uint, featured bool) (*models.NewsPost, error) {
	return s.setFeaturedFn(ctx, id, featured)
}

func TestNewsCreate_Valid(t *testing.T) {
	var saved *models.NewsPost
	repo := &newsRepoStub{
		createFn: func(_ context.Context, post *models.NewsPost) error {
			saved = post
			return nil
		},
	}
	svc := NewNewsService(repo)

	post, err := svc.Create(context.Background(), "lsd", CreateNewsInput{
		Title:   "New Ambient Series",
		Content: "We are launching a weekly ambient showcase with guest curators.",
		Tags:    []string{"ambient", "announcement"},
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, "New Ambient Series", post.Title)
	assert.Equal(t, "lsd", post.Author)
	assert.False(t, post.Published)
}

func TestNewsCreate_RejectsShortFields(t *testing.T) {
	repo := &newsRepoStub{
		createFn: func(_ context.Context, _ *models.NewsPost) error {
			t.Fatal("create should not be called for invalid input")
			return nil
		},
	}
	svc := NewNewsService(repo)

	_, err := svc.Create(context.Background(), "lsd", CreateNewsInput{
		Title:   "Hi",
		Content: "We are launching a weekly ambient showcase with guest curators.",
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "title", appErr.Field)

	_, err = svc.Create(context.Background(), "lsd", CreateNewsInput{
		Title:   "New Ambient Series",
		Content: "short",
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "content", appErr.Field)
}

func TestNewsGetPublished_HidesDrafts(t *testing.T) {
	repo := &newsRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.NewsPost, error) {
			if id == 1 {
				return &models.NewsPost{ID: 1, Published: true}, nil
			}
			if id == 2 {
				return &models.NewsPost{ID: 2, Published: false}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewNewsService(repo)

	post, err := svc.GetPublished(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, post.Published)

	_, err = svc.GetPublished(context.Background(), 2)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeNotFound, appErr.Code)

	_, err = svc.GetPublished(context.Background(), 3)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
}

func TestNewsUpdate_PartialKeepsStoredValues(t *testing.T) {
	stored := &models.NewsPost{
		ID:      4,
		Title:   "New Ambient Series",
		Content: "We are launching a weekly ambient showcase with guest curators.",
		Author:  "lsd",
	}
	repo := &newsRepoStub{
		getByIDFn: func(_ context.Context, _ uint) (*models.NewsPost, error) {
			copy := *stored
			return &copy, nil
		},
		updateFn: func(_ context.Context, _ *models.NewsPost) error { return nil },
	}
	svc := NewNewsService(repo)

	published := true
	post, err := svc.Update(context.Background(), 4, UpdateNewsInput{Published: &published})
	require.NoError(t, err)

	assert.True(t, post.Published)
	assert.Equal(t, stored.Title, post.Title)
	assert.Equal(t, stored.Content, post.Content)
}
