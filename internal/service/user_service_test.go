package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/apperr"
	"blogapi/internal/config"
	"blogapi/internal/models"
	"blogapi/internal/storage"
)

type userServiceFixture struct {
	svc       UserService
	userRepo  *MockUserRepository
	uploadDir string
}

func newUserServiceFixture(t *testing.T) *userServiceFixture {
	t.Helper()

	dir := t.TempDir()
	store, err := storage.NewDiskStorage(dir)
	require.NoError(t, err)

	cfg := &config.Config{
		MaxThumbnailSize: 2000000,
		MaxAvatarSize:    500000,
	}

	userRepo := new(MockUserRepository)

	return &userServiceFixture{
		svc:       NewUserService(userRepo, store, cfg),
		userRepo:  userRepo,
		uploadDir: dir,
	}
}

func avatarUpload(size int) *Upload {
	content := bytes.Repeat([]byte("x"), size)
	return &Upload{
		Name: "avatar.jpg",
		Size: int64(size),
		File: bytes.NewReader(content),
	}
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(hash)
}

func TestChangeAvatar(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		f := newUserServiceFixture(t)

		_, err := f.svc.ChangeAvatar(context.Background(), "u1", nil)

		assert.True(t, apperr.IsKind(err, apperr.Validation))
	})

	t.Run("too big", func(t *testing.T) {
		f := newUserServiceFixture(t)

		_, err := f.svc.ChangeAvatar(context.Background(), "u1", avatarUpload(500001))

		assert.True(t, apperr.IsKind(err, apperr.PayloadTooLarge))
		f.userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("first avatar", func(t *testing.T) {
		f := newUserServiceFixture(t)

		f.userRepo.On("GetByID", mock.Anything, "u1").Return(&models.User{UserID: "u1"}, nil)
		f.userRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

		user, err := f.svc.ChangeAvatar(context.Background(), "u1", avatarUpload(1000))

		require.NoError(t, err)
		assert.NotEmpty(t, user.Avatar)
		_, statErr := os.Stat(filepath.Join(f.uploadDir, user.Avatar))
		assert.NoError(t, statErr)
	})

	t.Run("replaces previous avatar file", func(t *testing.T) {
		f := newUserServiceFixture(t)
		require.NoError(t, os.WriteFile(filepath.Join(f.uploadDir, "old.jpg"), []byte("old"), 0o644))

		f.userRepo.On("GetByID", mock.Anything, "u1").
			Return(&models.User{UserID: "u1", Avatar: "old.jpg"}, nil)
		f.userRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		user, err := f.svc.ChangeAvatar(context.Background(), "u1", avatarUpload(1000))

		require.NoError(t, err)
		assert.NotEqual(t, "old.jpg", user.Avatar)
		_, statErr := os.Stat(filepath.Join(f.uploadDir, "old.jpg"))
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestEditUser(t *testing.T) {
	baseReq := EditUserRequest{
		Name:               "Alice Updated",
		Email:              "Alice@X.com",
		CurrentPassword:    "oldpass",
		NewPassword:        "newpass1",
		ConfirmNewPassword: "newpass1",
	}

	t.Run("success rehashes and lowercases email", func(t *testing.T) {
		f := newUserServiceFixture(t)

		stored := &models.User{UserID: "u1", Email: "alice@x.com", PasswordHash: hashOf(t, "oldpass")}
		f.userRepo.On("GetByID", mock.Anything, "u1").Return(stored, nil)
		f.userRepo.On("GetByEmail", mock.Anything, "alice@x.com").Return(stored, nil)
		f.userRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

		user, err := f.svc.EditUser(context.Background(), "u1", baseReq)

		require.NoError(t, err)
		assert.Equal(t, "alice@x.com", user.Email)
		assert.Equal(t, "Alice Updated", user.Name)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpass1")))
	})

	t.Run("missing user", func(t *testing.T) {
		f := newUserServiceFixture(t)

		f.userRepo.On("GetByID", mock.Anything, "ghost").
			Return(nil, apperr.New(apperr.NotFound, "user not found"))

		_, err := f.svc.EditUser(context.Background(), "ghost", baseReq)

		assert.True(t, apperr.IsKind(err, apperr.NotFound))
	})

	t.Run("email owned by another user", func(t *testing.T) {
		f := newUserServiceFixture(t)

		f.userRepo.On("GetByID", mock.Anything, "u1").
			Return(&models.User{UserID: "u1", PasswordHash: hashOf(t, "oldpass")}, nil)
		f.userRepo.On("GetByEmail", mock.Anything, "alice@x.com").
			Return(&models.User{UserID: "u2", Email: "alice@x.com"}, nil)

		_, err := f.svc.EditUser(context.Background(), "u1", baseReq)

		assert.True(t, apperr.IsKind(err, apperr.Conflict))
		f.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := newUserServiceFixture(t)

		stored := &models.User{UserID: "u1", Email: "alice@x.com", PasswordHash: hashOf(t, "a-different-pass")}
		f.userRepo.On("GetByID", mock.Anything, "u1").Return(stored, nil)
		f.userRepo.On("GetByEmail", mock.Anything, "alice@x.com").Return(stored, nil)

		_, err := f.svc.EditUser(context.Background(), "u1", baseReq)

		assert.True(t, apperr.IsKind(err, apperr.Unauthorized))
	})

	t.Run("new password mismatch", func(t *testing.T) {
		f := newUserServiceFixture(t)

		stored := &models.User{UserID: "u1", Email: "alice@x.com", PasswordHash: hashOf(t, "oldpass")}
		f.userRepo.On("GetByID", mock.Anything, "u1").Return(stored, nil)
		f.userRepo.On("GetByEmail", mock.Anything, "alice@x.com").Return(stored, nil)

		req := baseReq
		req.ConfirmNewPassword = "different"

		_, err := f.svc.EditUser(context.Background(), "u1", req)

		assert.True(t, apperr.IsKind(err, apperr.Validation))
		f.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
