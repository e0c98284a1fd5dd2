package service

import (
	"context"
	"log/slog"
	"time"

	"flock/internal/cache"
	"flock/internal/models"
	"flock/internal/observability"
	"flock/internal/repository"

	"gorm.io/gorm"
)

// ModerationService applies account status changes. Permaban runs its post
// purge in the same transaction as the status write.
type ModerationService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
}

// UpdateStatusInput carries a status change request.
type UpdateStatusInput struct {
	ActorID  uint
	TargetID uint
	Status   string
	Reason   string
	Expiry   *time.Time
}

// NewModerationService returns a new ModerationService.
func NewModerationService(db *gorm.DB, userRepo repository.UserRepository) *ModerationService {
	return &ModerationService{db: db, userRepo: userRepo}
}

// UpdateStatus transitions the target account to the requested status.
// Any moderator or admin may set active, suspended, restricted or verified.
// Permaban is admin only and deletes every post the target authored.
func (s *ModerationService) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*models.User, error) {
	if !models.ValidStatus(in.Status) {
		return nil, models.NewValidationError("Invalid account status")
	}

	actor, err := s.userRepo.GetByID(ctx, in.ActorID)
	if err != nil {
		return nil, err
	}

	action := ActionUpdateStatus
	if in.Status == models.StatusPermaban {
		action = ActionPermaban
	}
	if err := Authorize(actor, action, in.TargetID); err != nil {
		return nil, err
	}

	target, err := s.userRepo.GetByID(ctx, in.TargetID)
	if err != nil {
		return nil, err
	}

	target.Status = in.Status
	target.StatusReason = in.Reason
	target.StatusExpiry = in.Expiry
	if in.Status == models.StatusActive {
		// Returning to active wipes the moderation context.
		target.StatusReason = ""
		target.StatusExpiry = nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.Status == models.StatusPermaban {
			result := tx.Where("user_id = ?", target.ID).Delete(&models.Post{})
			if result.Error != nil {
				return result.Error
			}
			slog.InfoContext(ctx, "permaban post purge",
				"target_id", target.ID,
				"posts_deleted", result.RowsAffected,
			)
		}
		return tx.Model(&models.User{}).
			Where("id = ?", target.ID).
			Updates(map[string]interface{}{
				"status":        target.Status,
				"status_reason": target.StatusReason,
				"status_expiry": target.StatusExpiry,
			}).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateUser(ctx, target.ID)
	observability.StatusChanges.WithLabelValues(in.Status).Inc()

	return target, nil
}
