package service

import (
	"context"
	"log"

	"blogapi/internal/apperr"
	"blogapi/internal/config"
	"blogapi/internal/models"
	"blogapi/internal/repository"
	"blogapi/internal/storage"
)

type PostContent struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type PostService interface {
	CreatePost(ctx context.Context, creatorID string, content PostContent, thumbnail *Upload) (*models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	GetPostsByCategory(ctx context.Context, category string) ([]models.Post, error)
	GetPostsByCreator(ctx context.Context, creatorID string) ([]models.Post, error)
	EditPost(ctx context.Context, requesterID, postID string, content PostContent, thumbnail *Upload) (*models.Post, error)
	DeletePost(ctx context.Context, requesterID, postID string) error
}

type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	store    storage.Storage
	cfg      *config.Config
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, store storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
		store:    store,
		cfg:      cfg,
	}
}

// CreatePost saves the thumbnail, persists the post and bumps the creator's
// denormalized post counter. The three steps are not transactional: a failure
// after the post write leaves the counter behind by one, which is accepted.
func (p *postService) CreatePost(ctx context.Context, creatorID string, content PostContent, thumbnail *Upload) (*models.Post, error) {
	if thumbnail == nil {
		return nil, apperr.New(apperr.Validation, "Fill in all fields and choose thumbnail")
	}

	if thumbnail.Size > p.cfg.MaxThumbnailSize {
		return nil, apperr.New(apperr.PayloadTooLarge, "Thumbnail too big. File should be less than 2Mb")
	}

	// The creator must exist before anything is written.
	if _, err := p.userRepo.GetByID(ctx, creatorID); err != nil {
		return nil, err
	}

	storedName, err := p.store.Save(ctx, thumbnail.Name, thumbnail.File, thumbnail.Size, p.cfg.MaxThumbnailSize)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:       content.Title,
		Category:    content.Category,
		Description: content.Description,
		Thumbnail:   storedName,
		Creator:     creatorID,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		if delErr := p.store.Delete(ctx, storedName); delErr != nil {
			log.Printf("Warning: failed to remove thumbnail after create failure: %v", delErr)
		}
		return nil, err
	}

	if err := p.userRepo.AdjustPostCount(ctx, creatorID, 1); err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	return p.postRepo.GetByID(ctx, postID)
}

func (p *postService) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	return p.postRepo.GetAll(ctx)
}

func (p *postService) GetPostsByCategory(ctx context.Context, category string) ([]models.Post, error) {
	return p.postRepo.GetByCategory(ctx, category)
}

func (p *postService) GetPostsByCreator(ctx context.Context, creatorID string) ([]models.Post, error) {
	return p.postRepo.GetByCreator(ctx, creatorID)
}

// EditPost updates a post's fields and optionally replaces its thumbnail.
// A requester who is not the creator gets the stored post back unchanged;
// DeletePost, by contrast, rejects non-creators with Forbidden.
func (p *postService) EditPost(ctx context.Context, requesterID, postID string, content PostContent, thumbnail *Upload) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.Creator != requesterID {
		return post, nil
	}

	if thumbnail != nil {
		if thumbnail.Size > p.cfg.MaxThumbnailSize {
			return nil, apperr.New(apperr.PayloadTooLarge, "Thumbnail too big. File should be less than 2Mb")
		}

		if err := p.store.Delete(ctx, post.Thumbnail); err != nil {
			return nil, err
		}

		storedName, err := p.store.Save(ctx, thumbnail.Name, thumbnail.File, thumbnail.Size, p.cfg.MaxThumbnailSize)
		if err != nil {
			return nil, err
		}

		post.Thumbnail = storedName
	}

	post.Title = content.Title
	post.Category = content.Category
	post.Description = content.Description

	if err := p.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// DeletePost removes the thumbnail file first; if that fails the record is
// kept, so the store never references a file that is already gone.
func (p *postService) DeletePost(ctx context.Context, requesterID, postID string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.Creator != requesterID {
		return apperr.New(apperr.Forbidden, "Post couldn't be deleted")
	}

	if err := p.store.Delete(ctx, post.Thumbnail); err != nil {
		return err
	}

	if err := p.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	if err := p.userRepo.AdjustPostCount(ctx, post.Creator, -1); err != nil {
		return err
	}

	return nil
}
