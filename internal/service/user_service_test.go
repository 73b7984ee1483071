package service

import (
	"context"
	"testing"

	"playlsd/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_HashesPassword(t *testing.T) {
	var saved *models.User
	users := &userRepoStub{
		createFn: func(_ context.Context, user *models.User) error {
			saved = user
			return nil
		},
	}
	svc := NewUserService(users)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "wavesrider",
		Email:    "waves@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.NotEqual(t, "correct-horse-battery", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("correct-horse-battery")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := &userRepoStub{
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 1, Email: "waves@example.com"}, nil
		},
	}
	svc := NewUserService(users)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "wavesrider",
		Email:    "waves@example.com",
		Password: "correct-horse-battery",
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeConflict, appErr.Code)
}

func TestAuthenticate_SameErrorForUnknownEmailAndBadPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &userRepoStub{
		getByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			if email == "known@example.com" {
				return &models.User{ID: 1, Email: email, Password: string(hash)}, nil
			}
			return nil, nil
		},
	}
	svc := NewUserService(users)

	_, unknownErr := svc.Authenticate(context.Background(), "nobody@example.com", "whatever")
	_, badPassErr := svc.Authenticate(context.Background(), "known@example.com", "wrong-password")

	var appErr *models.AppError
	require.ErrorAs(t, unknownErr, &appErr)
	assert.Equal(t, models.ErrCodeUnauthorized, appErr.Code)
	require.ErrorAs(t, badPassErr, &appErr)
	assert.Equal(t, models.ErrCodeUnauthorized, appErr.Code)
	assert.Equal(t, unknownErr.Error(), badPassErr.Error())

	user, err := svc.Authenticate(context.Background(), "known@example.com", "right-password")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
}
