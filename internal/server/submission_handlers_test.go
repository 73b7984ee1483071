package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"playlsd/internal/featureflags"
	"playlsd/internal/models"
	"playlsd/internal/repository"
	"playlsd/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockSubmissionRepository is a mock of the SubmissionRepository interface
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) List(ctx context.Context, filter repository.SubmissionFilter) ([]*models.Submission, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) SetStatus(ctx context.Context, id string, status models.SubmissionStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func newSubmissionTestServer(repo repository.SubmissionRepository) *Server {
	return &Server{
		featureFlags:      featureflags.NewManager(""),
		submissionService: service.NewSubmissionService(repo, nil, nil),
	}
}

func TestCreateSubmission(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(repo *MockSubmissionRepository)
		expectedStatus int
		expectedField  string
	}{
		{
			name: "Valid song submission",
			body: map[string]string{
				"type":           "song",
				"artist_name":    "Cosmic Waves",
				"title":          "Journey to Andromeda",
				"streaming_link": "https://open.spotify.com/track/abc",
				"email":          "cosmic@example.com",
				"genre":          "Ambient",
				"vibe":           "Dreamy",
			},
			mockSetup: func(repo *MockSubmissionRepository) {
				repo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Playlist submission with relative link",
			body: map[string]string{
				"type":            "playlist",
				"artist_name":     "Deep Minds",
				"track_link":      "/track/abc",
				"target_playlist": "Deep Focus",
				"email":           "deep@example.com",
				"genre":           "Deep House",
				"vibe":            "Hypnotic",
			},
			mockSetup:      func(repo *MockSubmissionRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "track_link",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockSubmissionRepository)
			tt.mockSetup(repo)

			s := newSubmissionTestServer(repo)
			app := fiber.New()
			app.Post("/submissions", s.CreateSubmission)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/submissions", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedField != "" {
				var errResp models.ErrorResponse
				assert.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
				assert.Equal(t, tt.expectedField, errResp.Field)
				assert.Equal(t, models.ErrCodeValidation, errResp.Code)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestCreateSubmission_StartsPending(t *testing.T) {
	repo := new(MockSubmissionRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	s := newSubmissionTestServer(repo)
	app := fiber.New()
	app.Post("/submissions", s.CreateSubmission)

	body, _ := json.Marshal(map[string]string{
		"type":           "song",
		"artist_name":    "Cosmic Waves",
		"title":          "Journey to Andromeda",
		"streaming_link": "https://open.spotify.com/track/abc",
		"email":          "cosmic@example.com",
		"genre":          "Ambient",
		"vibe":           "Dreamy",
	})
	req := httptest.NewRequest(http.MethodPost, "/submissions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var sub models.Submission
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&sub))
	assert.Equal(t, models.SubmissionStatusPending, sub.Status)
	assert.NotEmpty(t, sub.ID)
}

func TestReviewSubmission(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           map[string]string
		mockSetup      func(repo *MockSubmissionRepository)
		expectedStatus int
	}{
		{
			name:   "Approve pending submission",
			method: http.MethodPost,
			path:   "/admin/submissions/a1/approve",
			mockSetup: func(repo *MockSubmissionRepository) {
				repo.On("GetByID", mock.Anything, "a1").
					Return(&models.Submission{ID: "a1", Status: models.SubmissionStatusPending}, nil)
				repo.On("SetStatus", mock.Anything, "a1", models.SubmissionStatusApproved).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Reject unknown submission",
			method: http.MethodPost,
			path:   "/admin/submissions/missing/reject",
			mockSetup: func(repo *MockSubmissionRepository) {
				repo.On("GetByID", mock.Anything, "missing").
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Unknown status value",
			method:         http.MethodPut,
			path:           "/admin/submissions/a1/status",
			body:           map[string]string{"status": "archived"},
			mockSetup:      func(repo *MockSubmissionRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "Revert to pending",
			method: http.MethodPut,
			path:   "/admin/submissions/a1/status",
			body:   map[string]string{"status": "pending"},
			mockSetup: func(repo *MockSubmissionRepository) {
				repo.On("GetByID", mock.Anything, "a1").
					Return(&models.Submission{ID: "a1", Status: models.SubmissionStatusApproved}, nil)
				repo.On("SetStatus", mock.Anything, "a1", models.SubmissionStatusPending).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockSubmissionRepository)
			tt.mockSetup(repo)

			s := newSubmissionTestServer(repo)
			app := fiber.New()
			app.Post("/admin/submissions/:id/approve", s.ApproveSubmission)
			app.Post("/admin/submissions/:id/reject", s.RejectSubmission)
			app.Put("/admin/submissions/:id/status", s.SetSubmissionStatus)

			var reqBody []byte
			if tt.body != nil {
				reqBody, _ = json.Marshal(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			repo.AssertExpectations(t)
		})
	}
}
