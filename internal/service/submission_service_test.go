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

type submissionRepoStub struct {
	createFn    func(ctx context.Context, sub *models.Submission) error
	getByIDFn   func(ctx context.Context, id string) (*models.Submission, error)
	listFn      func(ctx context.Context, filter repository.SubmissionFilter) ([]*models.Submission, error)
	setStatusFn func(ctx context.Context, id string, status models.SubmissionStatus) error
}

func (s *submissionRepoStub) Create(ctx context.Context, sub *models.Submission) error {
	return s.createFn(ctx, sub)
}

func (s *submissionRepoStub) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	return s.getByIDFn(ctx, id)
}

func (s *submissionRepoStub) List(ctx context.Context, filter repository.SubmissionFilter) ([]*models.Submission, error) {
	return s.listFn(ctx, filter)
}

func (s *submissionRepoStub) SetStatus(ctx context.Context, id string, status models.SubmissionStatus) error {
	return s.setStatusFn(ctx, id, status)
}

type eventsRecorder struct {
	received []*models.Submission
	reviewed []*models.Submission
}

func (e *eventsRecorder) SubmissionReceived(_ context.Context, sub *models.Submission) {
	e.received = append(e.received, sub)
}

func (e *eventsRecorder) SubmissionReviewed(_ context.Context, sub *models.Submission) {
	e.reviewed = append(e.reviewed, sub)
}

func validSongInput() SubmitInput {
	return SubmitInput{
		Type:          "song",
		ArtistName:    "Cosmic Waves",
		Title:         "Journey to Andromeda",
		StreamingLink: "https://open.spotify.com/track/abc123",
		Email:         "cosmic@example.com",
		Genre:         "Ambient",
		Vibe:          "Dreamy",
	}
}

func TestSubmit_SongStartsPendingWithFreshID(t *testing.T) {
	var saved *models.Submission
	repo := &submissionRepoStub{
		createFn: func(_ context.Context, sub *models.Submission) error {
			saved = sub
			return nil
		},
	}
	events := &eventsRecorder{}
	svc := NewSubmissionService(repo, nil, events)

	sub, err := svc.Submit(context.Background(), validSongInput())
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, models.SubmissionStatusPending, sub.Status)
	assert.Equal(t, models.SubmissionTypeSong, sub.Type)
	assert.Equal(t, "Journey to Andromeda", sub.Title)
	assert.Len(t, events.received, 1)
}

func TestSubmit_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *SubmitInput)
		field  string
	}{
		{
			name:   "unknown type",
			mutate: func(in *SubmitInput) { in.Type = "album" },
			field:  "type",
		},
		{
			name:   "missing artist name",
			mutate: func(in *SubmitInput) { in.ArtistName = "   " },
			field:  "artist_name",
		},
		{
			name:   "bad email",
			mutate: func(in *SubmitInput) { in.Email = "not-an-email" },
			field:  "email",
		},
		{
			name:   "song without title",
			mutate: func(in *SubmitInput) { in.Title = "" },
			field:  "title",
		},
		{
			name:   "relative streaming link",
			mutate: func(in *SubmitInput) { in.StreamingLink = "/track/abc" },
			field:  "streaming_link",
		},
		{
			name: "playlist with bad track link",
			mutate: func(in *SubmitInput) {
				in.Type = "playlist"
				in.TrackLink = "not-a-url"
				in.TargetPlaylist = "Deep Focus"
			},
			field: "track_link",
		},
		{
			name: "playlist without target",
			mutate: func(in *SubmitInput) {
				in.Type = "playlist"
				in.TrackLink = "https://soundcloud.com/artist/track"
				in.TargetPlaylist = ""
			},
			field: "target_playlist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &submissionRepoStub{
				createFn: func(_ context.Context, _ *models.Submission) error {
					t.Fatal("create should not be called for invalid input")
					return nil
				},
			}
			svc := NewSubmissionService(repo, nil, nil)

			in := validSongInput()
			tt.mutate(&in)

			_, err := svc.Submit(context.Background(), in)
			require.Error(t, err)

			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, models.ErrCodeValidation, appErr.Code)
			assert.Equal(t, tt.field, appErr.Field)
		})
	}
}

func TestSetStatus_RejectsUnknownStatus(t *testing.T) {
	svc := NewSubmissionService(&submissionRepoStub{}, nil, nil)

	_, err := svc.SetStatus(context.Background(), "a1", models.SubmissionStatus("bogus"))
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeInvalidStatus, appErr.Code)
}

func TestSetStatus_MissingSubmission(t *testing.T) {
	repo := &submissionRepoStub{
		getByIDFn: func(_ context.Context, _ string) (*models.Submission, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewSubmissionService(repo, nil, nil)

	_, err := svc.SetStatus(context.Background(), "missing", models.SubmissionStatusApproved)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
}

func TestSetStatus_TransitionsAndReverses(t *testing.T) {
	current := models.SubmissionStatusPending
	repo := &submissionRepoStub{
		getByIDFn: func(_ context.Context, id string) (*models.Submission, error) {
			return &models.Submission{ID: id, Type: models.SubmissionTypeSong, Status: current}, nil
		},
		setStatusFn: func(_ context.Context, _ string, status models.SubmissionStatus) error {
			current = status
			return nil
		},
	}
	events := &eventsRecorder{}
	svc := NewSubmissionService(repo, nil, events)

	sub, err := svc.SetStatus(context.Background(), "a1", models.SubmissionStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusApproved, sub.Status)

	sub, err = svc.SetStatus(context.Background(), "a1", models.SubmissionStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusRejected, sub.Status)

	sub, err = svc.SetStatus(context.Background(), "a1", models.SubmissionStatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusPending, sub.Status)

	assert.Len(t, events.reviewed, 3)
}

func TestSetStatus_NoOpSkipsWriteButNotifies(t *testing.T) {
	writes := 0
	repo := &submissionRepoStub{
		getByIDFn: func(_ context.Context, id string) (*models.Submission, error) {
			return &models.Submission{ID: id, Status: models.SubmissionStatusApproved}, nil
		},
		setStatusFn: func(_ context.Context, _ string, _ models.SubmissionStatus) error {
			writes++
			return nil
		},
	}
	events := &eventsRecorder{}
	svc := NewSubmissionService(repo, nil, events)

	sub, err := svc.SetStatus(context.Background(), "a1", models.SubmissionStatusApproved)
	require.NoError(t, err)

	assert.Equal(t, models.SubmissionStatusApproved, sub.Status)
	assert.Zero(t, writes)
	assert.Len(t, events.reviewed, 1)
}

func TestList_RejectsUnknownStatusFilter(t *testing.T) {
	svc := NewSubmissionService(&submissionRepoStub{}, nil, nil)

	_, err := svc.List(context.Background(), repository.SubmissionFilter{Status: "archived"})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeInvalidStatus, appErr.Code)
}
