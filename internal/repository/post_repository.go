package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	post.PostID = uuid.New().String()
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	query := `
		INSERT INTO posts (post_id, title, category, description, thumbnail, creator, created_at, updated_at)
		VALUES (:post_id, :title, :category, :description, :thumbnail, :creator, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return apperr.Wrap(apperr.Store, "failed to create post", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	query := `SELECT * FROM posts WHERE post_id = $1`

	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "post not found")
		}
		return nil, apperr.Wrap(apperr.Store, "failed to get post", err)
	}

	return &post, nil
}

func (r *postRepository) GetAll(ctx context.Context) ([]models.Post, error) {
	query := `SELECT * FROM posts ORDER BY updated_at DESC`

	return r.selectPosts(ctx, query)
}

func (r *postRepository) GetByCategory(ctx context.Context, category string) ([]models.Post, error) {
	query := `SELECT * FROM posts WHERE category = $1 ORDER BY updated_at DESC`

	return r.selectPosts(ctx, query, category)
}

func (r *postRepository) GetByCreator(ctx context.Context, creatorID string) ([]models.Post, error) {
	query := `SELECT * FROM posts WHERE creator = $1 ORDER BY updated_at DESC`

	return r.selectPosts(ctx, query, creatorID)
}

func (r *postRepository) selectPosts(ctx context.Context, query string, args ...interface{}) ([]models.Post, error) {
	var posts []models.Post

	err := r.db.SelectContext(ctx, &posts, query, args...)
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to list posts", err)
	}

	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()

	query := `
		UPDATE posts
		SET title = :title, category = :category, description = :description, thumbnail = :thumbnail, updated_at = :updated_at
		WHERE post_id = :post_id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return apperr.Wrap(apperr.Store, "failed to update post", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperr.Wrap(apperr.Store, "failed to check updated rows", err)
	}

	if rowsAffected == 0 {
		return apperr.New(apperr.NotFound, "post not found")
	}

	return nil
}

func (r *postRepository) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return apperr.Wrap(apperr.Store, "failed to delete post", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperr.Wrap(apperr.Store, "failed to check deleted rows", err)
	}

	if rowsAffected == 0 {
		return apperr.New(apperr.NotFound, "post not found")
	}

	return nil
}
