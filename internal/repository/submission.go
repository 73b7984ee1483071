// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"strings"

	"playlsd/internal/models"

	"gorm.io/gorm"
)

// SubmissionFilter narrows List results. Zero values mean "no filter".
type SubmissionFilter struct {
	Type   models.SubmissionType
	Status models.SubmissionStatus
	Query  string
	Limit  int
	Offset int
}

// SubmissionRepository defines the interface for submission data operations
type SubmissionRepository interface {
	Create(ctx context.Context, sub *models.Submission) error
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	List(ctx context.Context, filter SubmissionFilter) ([]*models.Submission, error)
	SetStatus(ctx context.Context, id string, status models.SubmissionStatus) error
}

// submissionRepository implements SubmissionRepository
type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	var sub models.Submission
	if err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepository) List(ctx context.Context, filter SubmissionFilter) ([]*models.Submission, error) {
	q := r.db.WithContext(ctx).Model(&models.Submission{})

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if term := strings.TrimSpace(filter.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where(
			"LOWER(artist_name) LIKE ? OR LOWER(title) LIKE ? OR LOWER(email) LIKE ? OR LOWER(target_playlist) LIKE ?",
			like, like, like, like,
		)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var subs []*models.Submission
	err := q.Order("created_at DESC").Find(&subs).Error
	return subs, err
}

func (r *submissionRepository) SetStatus(ctx context.Context, id string, status models.SubmissionStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
