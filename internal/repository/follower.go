package repository

import (
	"context"
	"time"

	"flock/internal/cache"
	"flock/internal/models"

	"gorm.io/gorm"
)

// FollowerRepository defines persistence operations for follower edges.
// An edge is one row per (user_id, follower_id) pair guarded by a unique index.
type FollowerRepository interface {
	Follow(ctx context.Context, userID, followerID uint) (bool, error)
	Unfollow(ctx context.Context, userID, followerID uint) (bool, error)
	Exists(ctx context.Context, userID, followerID uint) (bool, error)
	ListFollowers(ctx context.Context, userID uint) ([]models.User, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)
}

type followerRepository struct {
	db *gorm.DB
}

// NewFollowerRepository returns a new FollowerRepository implementation.
func NewFollowerRepository(db *gorm.DB) FollowerRepository {
	return &followerRepository{db: db}
}

// Follow inserts the edge if absent. Returns true when the edge was created.
func (r *followerRepository) Follow(ctx context.Context, userID, followerID uint) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO followers (user_id, follower_id, created_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (user_id, follower_id) DO NOTHING`,
		userID, followerID, time.Now().UTC(),
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateFollowers(ctx, userID)
	}
	return result.RowsAffected > 0, nil
}

// Unfollow removes the edge. Returns true when a row was removed.
func (r *followerRepository) Unfollow(ctx context.Context, userID, followerID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND follower_id = ?", userID, followerID).
		Delete(&models.Follower{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateFollowers(ctx, userID)
	}
	return result.RowsAffected > 0, nil
}

func (r *followerRepository) Exists(ctx context.Context, userID, followerID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follower{}).
		Where("user_id = ? AND follower_id = ?", userID, followerID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// ListFollowers returns the users following userID, newest first.
// An empty slice, not an error, when the user has no followers.
func (r *followerRepository) ListFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	users := []models.User{}
	key := cache.FollowersKey(userID)

	err := cache.Aside(ctx, key, &users, cache.FollowersTTL, func() error {
		return r.db.WithContext(ctx).
			Joins("JOIN followers ON followers.follower_id = users.id").
			Where("followers.user_id = ?", userID).
			Order("followers.created_at DESC").
			Find(&users).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followerRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follower{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
