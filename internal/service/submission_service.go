// Package service implements the application's domain logic on top of the
// repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"playlsd/internal/models"
	"playlsd/internal/observability"
	"playlsd/internal/repository"
	"playlsd/internal/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionEvents receives lifecycle notifications from the registry.
// Implementations must tolerate being called with a nil receiver.
type SubmissionEvents interface {
	SubmissionReceived(ctx context.Context, sub *models.Submission)
	SubmissionReviewed(ctx context.Context, sub *models.Submission)
}

// SubmissionService is the submission registry: it accepts public
// submissions, lists them for review, and transitions moderation status.
type SubmissionService struct {
	repo             repository.SubmissionRepository
	notificationRepo repository.NotificationRepository
	events           SubmissionEvents
}

// NewSubmissionService creates a new submission service.
func NewSubmissionService(
	repo repository.SubmissionRepository,
	notificationRepo repository.NotificationRepository,
	events SubmissionEvents,
) *SubmissionService {
	return &SubmissionService{
		repo:             repo,
		notificationRepo: notificationRepo,
		events:           events,
	}
}

// SubmitInput is the payload from the public submission forms.
type SubmitInput struct {
	Type           string `json:"type"`
	ArtistName     string `json:"artist_name"`
	Title          string `json:"title"`
	StreamingLink  string `json:"streaming_link"`
	TrackLink      string `json:"track_link"`
	TargetPlaylist string `json:"target_playlist"`
	Email          string `json:"email"`
	Genre          string `json:"genre"`
	Vibe           string `json:"vibe"`
	Message        string `json:"message"`
}

// Submit validates the input for its submission type, assigns a fresh id,
// and persists the submission with status pending.
func (s *SubmissionService) Submit(ctx context.Context, in SubmitInput) (*models.Submission, error) {
	subType := models.SubmissionType(strings.TrimSpace(in.Type))
	if subType != models.SubmissionTypeSong && subType != models.SubmissionTypePlaylist {
		return nil, models.NewFieldValidationError("type", "type must be song or playlist")
	}

	required := []struct {
		field string
		value string
	}{
		{"artist_name", in.ArtistName},
		{"genre", in.Genre},
		{"vibe", in.Vibe},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, models.NewFieldValidationError(f.field, fmt.Sprintf("%s is required", f.field))
		}
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewFieldValidationError("email", err.Error())
	}

	sub := &models.Submission{
		ID:         uuid.NewString(),
		Type:       subType,
		ArtistName: strings.TrimSpace(in.ArtistName),
		Email:      strings.TrimSpace(in.Email),
		Genre:      strings.TrimSpace(in.Genre),
		Vibe:       strings.TrimSpace(in.Vibe),
		Message:    strings.TrimSpace(in.Message),
		Status:     models.SubmissionStatusPending,
	}

	switch subType {
	case models.SubmissionTypeSong:
		if strings.TrimSpace(in.Title) == "" {
			return nil, models.NewFieldValidationError("title", "title is required for song submissions")
		}
		if err := validation.ValidateURL(in.StreamingLink); err != nil {
			return nil, models.NewFieldValidationError("streaming_link", err.Error())
		}
		sub.Title = strings.TrimSpace(in.Title)
		sub.StreamingLink = strings.TrimSpace(in.StreamingLink)
	case models.SubmissionTypePlaylist:
		if err := validation.ValidateURL(in.TrackLink); err != nil {
			return nil, models.NewFieldValidationError("track_link", err.Error())
		}
		if strings.TrimSpace(in.TargetPlaylist) == "" {
			return nil, models.NewFieldValidationError("target_playlist", "target_playlist is required for playlist submissions")
		}
		sub.TrackLink = strings.TrimSpace(in.TrackLink)
		sub.TargetPlaylist = strings.TrimSpace(in.TargetPlaylist)
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	observability.SubmissionsReceived.WithLabelValues(string(sub.Type)).Inc()
	s.recordReceivedNotification(ctx, sub)
	if s.events != nil {
		s.events.SubmissionReceived(ctx, sub)
	}

	return sub, nil
}

// List returns submissions matching the filter, newest first.
func (s *SubmissionService) List(ctx context.Context, filter repository.SubmissionFilter) ([]*models.Submission, error) {
	if filter.Status != "" && !models.ValidSubmissionStatus(filter.Status) {
		return nil, models.NewInvalidStatusError(string(filter.Status))
	}
	return s.repo.List(ctx, filter)
}

// Get returns a single submission by id.
func (s *SubmissionService) Get(ctx context.Context, id string) (*models.Submission, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Submission", id)
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// SetStatus transitions a submission's moderation status. Any of the three
// states may be re-entered: moderation decisions are deliberately reversible.
// Re-applying the current status skips the write but still notifies
// observers, so review UIs see a consistent event stream either way.
func (s *SubmissionService) SetStatus(ctx context.Context, id string, status models.SubmissionStatus) (*models.Submission, error) {
	if !models.ValidSubmissionStatus(status) {
		return nil, models.NewInvalidStatusError(string(status))
	}

	sub, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Submission", id)
	}
	if err != nil {
		return nil, err
	}

	if sub.Status != status {
		if err := s.repo.SetStatus(ctx, id, status); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Submission", id)
			}
			return nil, err
		}
		sub.Status = status
	}

	observability.SubmissionsReviewed.WithLabelValues(string(status)).Inc()
	if s.events != nil {
		s.events.SubmissionReviewed(ctx, sub)
	}

	return sub, nil
}

// recordReceivedNotification writes an entry to the admin notification
// center. Failures are logged, not surfaced: the submission is already saved.
func (s *SubmissionService) recordReceivedNotification(ctx context.Context, sub *models.Submission) {
	if s.notificationRepo == nil {
		return
	}

	subject := sub.Title
	if sub.Type == models.SubmissionTypePlaylist {
		subject = sub.TargetPlaylist
	}
	n := &models.AdminNotification{
		Kind:         models.NotificationSubmissionReceived,
		Subject:      fmt.Sprintf("New %s submission from %s", sub.Type, sub.ArtistName),
		Body:         subject,
		SubmissionID: sub.ID,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		observability.Logger.WarnContext(ctx, "failed to record admin notification",
			"submission_id", sub.ID, "error", err.Error())
	}
}
