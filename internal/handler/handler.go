package handlers

import (
	"github.com/go-playground/validator/v10"

	"blogapi/internal/config"
	"blogapi/internal/database"
	"blogapi/internal/service"
)

type Handlers struct {
	AuthService service.AuthService
	UserService service.UserService
	PostService service.PostService
	DB          database.MethodsDB
	Cfg         *config.Config
	Validate    *validator.Validate
}

func NewHandlers(services *service.Service, db database.MethodsDB, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService: services.Auth,
		UserService: services.User,
		PostService: services.Post,
		DB:          db,
		Cfg:         cfg,
		Validate:    validator.New(),
	}
}
