package repository

import (
	"context"
	"testing"

	"flock/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CRUD(t *testing.T) {
	db := newRepoTestDB(t)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author")
	commenter := seedUser(t, db, "commenter")
	post := &models.Post{Title: "t", Content: "c", UserID: author.ID}
	require.NoError(t, db.Create(post).Error)

	comment := &models.Comment{Content: "nice", UserID: commenter.ID, PostID: post.ID}
	require.NoError(t, comments.Create(ctx, comment))

	fetched, err := comments.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "nice", fetched.Content)
	assert.Equal(t, "commenter", fetched.User.Username)

	fetched.Content = "edited"
	require.NoError(t, comments.Update(ctx, fetched))

	fetched, err = comments.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", fetched.Content)

	require.NoError(t, comments.Delete(ctx, comment.ID))
	_, err = comments.GetByID(ctx, comment.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", err.(*models.AppError).Code)
}

func TestCommentRepository_GetByPostIDOrdering(t *testing.T) {
	db := newRepoTestDB(t)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author")
	post := &models.Post{Title: "t", Content: "c", UserID: author.ID}
	require.NoError(t, db.Create(post).Error)
	otherPost := &models.Post{Title: "t2", Content: "c", UserID: author.ID}
	require.NoError(t, db.Create(otherPost).Error)

	for _, content := range []string{"one", "two", "three"} {
		require.NoError(t, comments.Create(ctx, &models.Comment{
			Content: content,
			UserID:  author.ID,
			PostID:  post.ID,
		}))
	}
	require.NoError(t, comments.Create(ctx, &models.Comment{
		Content: "elsewhere",
		UserID:  author.ID,
		PostID:  otherPost.ID,
	}))

	list, err := comments.GetByPostID(ctx, post.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "one", list[0].Content)
	assert.Equal(t, "three", list[2].Content)

	paged, err := comments.GetByPostID(ctx, post.ID, 2, 1)
	require.NoError(t, err)
	assert.Len(t, paged, 2)

	empty, err := comments.GetByPostID(ctx, 9999, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
