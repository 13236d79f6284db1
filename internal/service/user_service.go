package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/apperr"
	"blogapi/internal/config"
	"blogapi/internal/models"
	"blogapi/internal/repository"
	"blogapi/internal/storage"
)

type EditUserRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

type UserService interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	ChangeAvatar(ctx context.Context, userID string, upload *Upload) (*models.User, error)
	EditUser(ctx context.Context, userID string, req EditUserRequest) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	store    storage.Storage
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, store storage.Storage, cfg *config.Config) UserService {
	return &userService{
		userRepo: userRepo,
		store:    store,
		cfg:      cfg,
	}
}

func (s *userService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *userService) ChangeAvatar(ctx context.Context, userID string, upload *Upload) (*models.User, error) {
	if upload == nil {
		return nil, apperr.New(apperr.Validation, "Please choose an image")
	}

	if upload.Size > s.cfg.MaxAvatarSize {
		return nil, apperr.New(apperr.PayloadTooLarge, "Profile picture too big. File should be less than 500kb")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Avatar != "" {
		if err := s.store.Delete(ctx, user.Avatar); err != nil {
			return nil, err
		}
	}

	storedName, err := s.store.Save(ctx, upload.Name, upload.File, upload.Size, s.cfg.MaxAvatarSize)
	if err != nil {
		return nil, err
	}

	user.Avatar = storedName
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) EditUser(ctx context.Context, userID string, req EditUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// The new email must not belong to a different existing user.
	email := strings.ToLower(req.Email)
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil && existing.UserID != userID {
		return nil, apperr.New(apperr.Conflict, "Email already exists")
	}
	if err != nil && !apperr.IsKind(err, apperr.NotFound) {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return nil, apperr.New(apperr.Unauthorized, "Invalid current password")
	}

	if req.NewPassword != req.ConfirmNewPassword {
		return nil, apperr.New(apperr.Validation, "New passwords do not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.Name = req.Name
	user.Email = email
	user.PasswordHash = string(hash)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
