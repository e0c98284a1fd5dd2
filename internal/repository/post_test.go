package repository

import (
	"context"
	"testing"

	"flock/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_ComputedFields(t *testing.T) {
	db := newRepoTestDB(t)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author")
	reader := seedUser(t, db, "reader")
	other := seedUser(t, db, "other")

	post := &models.Post{Title: "hello", Content: "world", UserID: author.ID}
	require.NoError(t, posts.Create(ctx, post))

	require.NoError(t, db.Create(&models.Comment{Content: "first", UserID: reader.ID, PostID: post.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{Content: "second", UserID: other.ID, PostID: post.ID}).Error)

	created, err := posts.Like(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, created)
	created, err = posts.Like(ctx, other.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, created)

	fetched, err := posts.GetByID(ctx, post.ID, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.LikesCount)
	assert.Equal(t, 2, fetched.CommentsCount)
	assert.True(t, fetched.Liked)
	assert.Equal(t, "author", fetched.User.Username)

	// Soft-deleted comments drop out of the count.
	require.NoError(t, db.Where("user_id = ?", other.ID).Delete(&models.Comment{}).Error)
	fetched, err = posts.GetByID(ctx, post.ID, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fetched.CommentsCount)

	// An anonymous read never reports liked.
	anon, err := posts.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.False(t, anon.Liked)
	assert.Equal(t, 2, anon.LikesCount)
}

func TestPostRepository_LikeIsIdempotentPerPair(t *testing.T) {
	db := newRepoTestDB(t)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author")
	fan := seedUser(t, db, "fan")

	post := &models.Post{Title: "t", Content: "c", UserID: author.ID}
	require.NoError(t, posts.Create(ctx, post))

	created, err := posts.Like(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, created)

	// Second insert hits the unique pair and reports nothing created.
	created, err = posts.Like(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	removed, err := posts.Unlike(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = posts.Unlike(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	liked, err := posts.IsLiked(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestPostRepository_ListAndUserScoping(t *testing.T) {
	db := newRepoTestDB(t)
	posts := NewPostRepository(db)
	ctx := context.Background()

	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")

	for i := 0; i < 3; i++ {
		require.NoError(t, posts.Create(ctx, &models.Post{Title: "a post", Content: "c", UserID: a.ID}))
	}
	require.NoError(t, posts.Create(ctx, &models.Post{Title: "b post", Content: "c", UserID: b.ID}))

	all, err := posts.List(ctx, 10, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	byA, err := posts.GetByUserID(ctx, a.ID, 10, 0, 0)
	require.NoError(t, err)
	assert.Len(t, byA, 3)

	count, err := posts.CountByUserID(ctx, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	limited, err := posts.List(ctx, 2, 0, 0)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestPostRepository_DeleteIsSoft(t *testing.T) {
	db := newRepoTestDB(t)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author")
	post := &models.Post{Title: "bye", Content: "c", UserID: author.ID}
	require.NoError(t, posts.Create(ctx, post))

	require.NoError(t, posts.Delete(ctx, post.ID))

	_, err := posts.GetByID(ctx, post.ID, 0)
	assert.Error(t, err)

	var total int64
	require.NoError(t, db.Unscoped().Model(&models.Post{}).Where("id = ?", post.ID).Count(&total).Error)
	assert.EqualValues(t, 1, total)
}
