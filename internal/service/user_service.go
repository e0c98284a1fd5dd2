package service

import (
	"context"
	"log/slog"

	"flock/internal/cache"
	"flock/internal/models"
	"flock/internal/observability"
	"flock/internal/repository"
	"flock/internal/validation"

	"gorm.io/gorm"
)

// UserService covers profile reads and writes plus the account deletion
// cascade. The cascade needs raw transaction access, so the service holds
// the db handle alongside the repository.
type UserService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	CallerID uint
	UserID   uint
	Username string
	Bio      string
	Avatar   string
}

type UpdateRolesInput struct {
	CallerID uint
	UserID   uint
	Roles    []string
}

func NewUserService(db *gorm.DB, userRepo repository.UserRepository) *UserService {
	return &UserService{db: db, userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	caller, err := s.userRepo.GetByID(ctx, in.CallerID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(caller, ActionUpdateProfile, in.UserID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = in.Username
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateRoles replaces the target's role set. Admin only.
func (s *UserService) UpdateRoles(ctx context.Context, in UpdateRolesInput) (*models.User, error) {
	caller, err := s.userRepo.GetByID(ctx, in.CallerID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(caller, ActionUpdateRoles, in.UserID); err != nil {
		return nil, err
	}

	if len(in.Roles) == 0 {
		return nil, models.NewValidationError("At least one role is required")
	}
	for _, role := range in.Roles {
		if !models.ValidRole(role) {
			return nil, models.NewValidationError("Invalid role: " + role)
		}
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	user.Roles = in.Roles
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account and everything attached to it in a single
// transaction: authored posts and comments, likes, and follower edges in
// both directions. A caller observing success never finds orphans.
func (s *UserService) DeleteUser(ctx context.Context, callerID, targetID uint) error {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	if err := Authorize(caller, ActionDeleteAccount, targetID); err != nil {
		return err
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	// Users the leaver follows keep a cached follower list; capture them so
	// those lists can be invalidated once the edges are gone.
	var followedIDs []uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Follower{}).
			Where("follower_id = ?", targetID).
			Pluck("user_id", &followedIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR follower_id = ?", targetID, targetID).Delete(&models.Follower{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, targetID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateUser(ctx, targetID)
	cache.InvalidateFollowers(ctx, targetID)
	for _, followedID := range followedIDs {
		cache.InvalidateFollowers(ctx, followedID)
	}
	observability.CascadeDeletions.Inc()
	slog.InfoContext(ctx, "user account deleted", "target_id", targetID, "caller_id", callerID)

	return nil
}
