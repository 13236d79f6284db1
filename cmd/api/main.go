package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"blogapi/cmd/app"
	"blogapi/internal/config"
	handlers "blogapi/internal/handler"
	"blogapi/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	db, _, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, db, cfg)
	auth := middleware.Auth(services.Auth)

	r := mux.NewRouter()

	r.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/users/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", handler.Login).Methods(http.MethodPost)
	api.Handle("/users/change-avatar", auth(http.HandlerFunc(handler.ChangeAvatar))).Methods(http.MethodPost)
	api.Handle("/users/edit-user", auth(http.HandlerFunc(handler.EditUser))).Methods(http.MethodPatch)
	api.HandleFunc("/users", handler.GetUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", handler.GetUser).Methods(http.MethodGet)

	api.Handle("/posts", auth(http.HandlerFunc(handler.CreatePost))).Methods(http.MethodPost)
	api.HandleFunc("/posts", handler.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/categories/{category}", handler.GetPostsByCategory).Methods(http.MethodGet)
	api.HandleFunc("/posts/users/{id}", handler.GetPostsByCreator).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	api.Handle("/posts/{id}", auth(http.HandlerFunc(handler.EditPost))).Methods(http.MethodPatch)
	api.Handle("/posts/{id}", auth(http.HandlerFunc(handler.DeletePost))).Methods(http.MethodDelete)

	// Uploaded thumbnails and avatars are served statically by filename when
	// the disk backend is active.
	if cfg.StorageBackend != "minio" {
		r.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))
	}

	handlerChain := middleware.Chain(
		r,
		middleware.Logging,
		middleware.CORS,
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Server listening on %s", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
