package service

import (
	"io"

	"blogapi/internal/config"
	"blogapi/internal/repository"
	"blogapi/internal/storage"
)

type Service struct {
	Auth AuthService
	User UserService
	Post PostService
}

func NewService(repo *repository.Repository, cfg *config.Config, store storage.Storage) *Service {
	return &Service{
		Auth: NewAuthService(repo.User, cfg),
		User: NewUserService(repo.User, store, cfg),
		Post: NewPostService(repo.Post, repo.User, store, cfg),
	}
}

// Upload describes a file received in a multipart request.
type Upload struct {
	Name string
	Size int64
	File io.Reader
}
