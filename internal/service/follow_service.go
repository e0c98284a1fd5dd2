package service

import (
	"context"

	"flock/internal/models"
	"flock/internal/observability"
	"flock/internal/repository"
)

// FollowService carries the follow toggle and follower reads.
type FollowService struct {
	followerRepo repository.FollowerRepository
	userRepo     repository.UserRepository
}

// ToggleResult reports which way a toggle went.
type ToggleResult struct {
	Following     bool  `json:"following"`
	FollowerCount int64 `json:"follower_count"`
}

func NewFollowService(followerRepo repository.FollowerRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followerRepo: followerRepo, userRepo: userRepo}
}

// Toggle follows userID on behalf of followerID if no edge exists, otherwise
// unfollows. Two consecutive toggles are a net no-op.
func (s *FollowService) Toggle(ctx context.Context, userID, followerID uint) (*ToggleResult, error) {
	if userID == followerID {
		return nil, models.NewValidationError("You cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	created, err := s.followerRepo.Follow(ctx, userID, followerID)
	if err != nil {
		return nil, err
	}

	following := true
	if !created {
		// Edge already existed, so this toggle is an unfollow.
		if _, err := s.followerRepo.Unfollow(ctx, userID, followerID); err != nil {
			return nil, err
		}
		following = false
	}

	if following {
		observability.FollowToggles.WithLabelValues("followed").Inc()
	} else {
		observability.FollowToggles.WithLabelValues("unfollowed").Inc()
	}

	count, err := s.followerRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Following: following, FollowerCount: count}, nil
}

// ListFollowers returns the users following userID. An empty slice, never an
// error, when nobody does.
func (s *FollowService) ListFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followerRepo.ListFollowers(ctx, userID)
}

// IsFollowing reports whether followerID currently follows userID.
func (s *FollowService) IsFollowing(ctx context.Context, userID, followerID uint) (bool, error) {
	return s.followerRepo.Exists(ctx, userID, followerID)
}
