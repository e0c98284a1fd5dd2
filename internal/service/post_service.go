package service

import (
	"context"
	"errors"

	"flock/internal/models"
	"flock/internal/observability"
	"flock/internal/repository"
	"flock/internal/validation"

	"gorm.io/gorm"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	UserID        uint
	Title         string
	Content       string
	MediaURL      string
	MediaKind     string
	StreamVideoID string
}

type UpdatePostInput struct {
	UserID        uint
	PostID        uint
	Title         string
	Content       string
	MediaURL      string
	MediaKind     string
	StreamVideoID string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxTitleLen = 300
	const maxContentLen = 50000

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}
	if in.Content == "" && in.MediaURL == "" && in.StreamVideoID == "" {
		return nil, models.NewValidationError("Content is required")
	}

	if in.MediaURL != "" && !models.ValidMediaKind(in.MediaKind) {
		return nil, models.NewValidationError("Invalid media kind")
	}
	if in.StreamVideoID != "" {
		if err := validation.ValidateStreamVideoID(in.StreamVideoID); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	post := &models.Post{
		Title:         in.Title,
		Content:       in.Content,
		MediaURL:      in.MediaURL,
		MediaKind:     in.MediaKind,
		StreamVideoID: in.StreamVideoID,
		UserID:        in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset, currentUserID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.GetPost(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}

	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	if in.Title != "" {
		post.Title = in.Title
	}
	if in.Content != "" {
		post.Content = in.Content
	}
	if in.MediaURL != "" {
		if !models.ValidMediaKind(in.MediaKind) {
			return nil, models.NewValidationError("Invalid media kind")
		}
		post.MediaURL = in.MediaURL
		post.MediaKind = in.MediaKind
	}
	if in.StreamVideoID != "" {
		if err := validation.ValidateStreamVideoID(in.StreamVideoID); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.StreamVideoID = in.StreamVideoID
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.GetPost(ctx, in.PostID, in.UserID)
	if err != nil {
		return err
	}

	caller, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return err
	}
	if post.UserID != in.UserID {
		if err := Authorize(caller, ActionDeletePost, post.UserID); err != nil {
			return err
		}
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

// ToggleLike likes the post if the caller has not liked it, otherwise
// removes the like. Repeated toggles walk the count 0, 1, 0, 1.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if _, err := s.GetPost(ctx, postID, 0); err != nil {
		return nil, err
	}

	created, err := s.postRepo.Like(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if !created {
		if _, err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, err
		}
		observability.LikeToggles.WithLabelValues("unliked").Inc()
	} else {
		observability.LikeToggles.WithLabelValues("liked").Inc()
	}

	return s.postRepo.GetByID(ctx, postID, userID)
}
