package service

import (
	"context"
	"strings"
	"testing"

	"flock/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentValidation(t *testing.T) {
	t.Parallel()

	t.Run("content required", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(noopCommentRepo(), noopPostRepo(), noopUserRepo())
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 2})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", err.(*models.AppError).Code)
	})

	t.Run("content too long", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(noopCommentRepo(), noopPostRepo(), noopUserRepo())
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID:  1,
			PostID:  2,
			Content: strings.Repeat("x", 10001),
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", err.(*models.AppError).Code)
	})

	t.Run("missing post", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		svc := NewCommentService(noopCommentRepo(), postRepo, noopUserRepo())
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID:  1,
			PostID:  99,
			Content: "hello",
		})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", err.(*models.AppError).Code)
	})

	t.Run("media kind checked", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(noopCommentRepo(), noopPostRepo(), noopUserRepo())
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID:    1,
			PostID:    2,
			Content:   "look",
			MediaURL:  "/media/i/abc/master.jpg",
			MediaKind: "document",
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", err.(*models.AppError).Code)
	})
}

func TestUpdateCommentOwnerOnly(t *testing.T) {
	t.Parallel()
	repo := noopCommentRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 10, Content: "original"}, nil
	}
	svc := NewCommentService(repo, noopPostRepo(), noopUserRepo())

	_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{
		UserID:    11,
		CommentID: 5,
		Content:   "hijacked",
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", err.(*models.AppError).Code)
}

func TestDeleteCommentAuthorization(t *testing.T) {
	t.Parallel()

	t.Run("stranger forbidden", func(t *testing.T) {
		t.Parallel()
		repo := noopCommentRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 10}, nil
		}
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Roles: []string{models.RoleUser}}, nil
		}
		svc := NewCommentService(repo, noopPostRepo(), userRepo)

		_, err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 11, CommentID: 5})
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", err.(*models.AppError).Code)
	})

	t.Run("admin allowed", func(t *testing.T) {
		t.Parallel()
		repo := noopCommentRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 10}, nil
		}
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Roles: []string{models.RoleAdmin}}, nil
		}
		svc := NewCommentService(repo, noopPostRepo(), userRepo)

		comment, err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 11, CommentID: 5})
		require.NoError(t, err)
		assert.EqualValues(t, 5, comment.ID)
	})

	t.Run("owner allowed", func(t *testing.T) {
		t.Parallel()
		repo := noopCommentRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 10}, nil
		}
		svc := NewCommentService(repo, noopPostRepo(), noopUserRepo())

		_, err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 10, CommentID: 5})
		require.NoError(t, err)
	})
}
