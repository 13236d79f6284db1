package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/service"
)

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxThumbnailSize + 1<<20); err != nil {
		WriteError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	title := r.FormValue("title")
	category := r.FormValue("category")
	description := r.FormValue("description")

	thumbnail, closeUpload, err := formUpload(r, "thumbnail")
	if err != nil {
		WriteError(w, "Invalid thumbnail upload", http.StatusBadRequest)
		return
	}
	defer closeUpload()

	if title == "" || category == "" || description == "" || thumbnail == nil {
		WriteError(w, "Fill in all fields and choose thumbnail", http.StatusUnprocessableEntity)
		return
	}

	if !models.ValidCategory(category) {
		WriteError(w, "Invalid category", http.StatusUnprocessableEntity)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), identity.ID, service.PostContent{
		Title:       title,
		Category:    category,
		Description: description,
	}, thumbnail)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.GetAllPosts(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) GetPostsByCategory(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	posts, err := h.PostService.GetPostsByCategory(r.Context(), category)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPostsByCreator(w http.ResponseWriter, r *http.Request) {
	creatorID := mux.Vars(r)["id"]

	posts, err := h.PostService.GetPostsByCreator(r.Context(), creatorID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) EditPost(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	if err := r.ParseMultipartForm(h.Cfg.MaxThumbnailSize + 1<<20); err != nil {
		WriteError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	title := r.FormValue("title")
	category := r.FormValue("category")
	description := r.FormValue("description")

	if title == "" || category == "" || len(description) < 12 {
		WriteError(w, "Fill in all fields", http.StatusUnprocessableEntity)
		return
	}

	if !models.ValidCategory(category) {
		WriteError(w, "Invalid category", http.StatusUnprocessableEntity)
		return
	}

	// Thumbnail is optional on edit; the stored one is kept when absent.
	thumbnail, closeUpload, err := formUpload(r, "thumbnail")
	if err != nil {
		WriteError(w, "Invalid thumbnail upload", http.StatusBadRequest)
		return
	}
	defer closeUpload()

	post, err := h.PostService.EditPost(r.Context(), identity.ID, postID, service.PostContent{
		Title:       title,
		Category:    category,
		Description: description,
	}, thumbnail)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	if err := h.PostService.DeletePost(r.Context(), identity.ID, postID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, fmt.Sprintf("Post %s deleted successfully", postID), http.StatusOK)
}
