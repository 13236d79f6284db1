package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/apperr"
	"blogapi/internal/config"
	"blogapi/internal/models"
	"blogapi/internal/repository"
)

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"password2"`
}

// Identity is the authenticated principal carried in a bearer token.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type LoginResult struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Name  string `json:"name"`
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	IssueToken(userID, name string) (string, error)
	VerifyToken(tokenString string) (*Identity, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	email := strings.ToLower(req.Email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperr.New(apperr.Conflict, "Email already exists")
	}
	if err != nil && !apperr.IsKind(err, apperr.NotFound) {
		return nil, err
	}

	if len(strings.TrimSpace(req.Password)) < 6 {
		return nil, apperr.New(apperr.Validation, "Password should be at least 6 characters")
	}

	if req.Password != req.ConfirmPassword {
		return nil, apperr.New(apperr.Validation, "Passwords do not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login returns the same generic failure for an unknown email and a wrong
// password, so the response never leaks which check failed.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return nil, apperr.New(apperr.Unauthorized, "Invalid credentials")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.New(apperr.Unauthorized, "Invalid credentials")
	}

	token, err := s.IssueToken(user.UserID, user.Name)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: token,
		ID:    user.UserID,
		Name:  user.Name,
	}, nil
}

func (s *authService) IssueToken(userID, name string) (string, error) {
	claims := jwt.MapClaims{
		"id":   userID,
		"name": name,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(s.cfg.TokenDuration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (s *authService) VerifyToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.New(apperr.Unauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.New(apperr.Unauthorized, "Invalid token claims")
	}

	id, ok1 := claims["id"].(string)
	name, ok2 := claims["name"].(string)
	if !ok1 || !ok2 {
		return nil, apperr.New(apperr.Unauthorized, "Invalid token claims")
	}

	return &Identity{ID: id, Name: name}, nil
}
