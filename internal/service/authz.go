package service

import (
	"flock/internal/models"
)

// Action names a capability that can be checked against a caller.
type Action string

const (
	ActionUpdateProfile Action = "update_profile"
	ActionDeleteAccount Action = "delete_account"
	ActionDeletePost    Action = "delete_post"
	ActionDeleteComment Action = "delete_comment"
	ActionUpdateRoles   Action = "update_roles"
	ActionUpdateStatus  Action = "update_status"
	ActionPermaban      Action = "permaban"
)

// Authorize decides whether caller may perform action against a resource
// owned by ownerID. A denial is always a forbidden error, never a silent
// no-op, so callers can distinguish it from not-found.
func Authorize(caller *models.User, action Action, ownerID uint) error {
	if caller == nil {
		return models.NewUnauthorizedError("Authentication required")
	}

	switch action {
	case ActionUpdateProfile, ActionDeleteAccount:
		if caller.ID == ownerID || caller.IsAdmin() {
			return nil
		}
		return models.NewForbiddenError("You can only manage your own account")

	case ActionDeletePost:
		if caller.ID == ownerID || caller.IsAdmin() {
			return nil
		}
		return models.NewForbiddenError("You can only delete your own posts")

	case ActionDeleteComment:
		if caller.ID == ownerID || caller.IsAdmin() {
			return nil
		}
		return models.NewForbiddenError("You can only delete your own comments")

	case ActionUpdateRoles:
		if caller.IsAdmin() {
			return nil
		}
		return models.NewForbiddenError("Only admins can change roles")

	case ActionUpdateStatus:
		if caller.IsModerator() || caller.IsAdmin() {
			return nil
		}
		return models.NewForbiddenError("Only moderators can change account status")

	case ActionPermaban:
		// Moderators may suspend or restrict but never permaban.
		if caller.IsAdmin() {
			return nil
		}
		return models.NewForbiddenError("Only admins can permanently ban accounts")
	}

	return models.NewForbiddenError("Action not permitted")
}
