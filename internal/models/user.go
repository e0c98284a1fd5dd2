// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Role names a user can carry. A user may hold several roles at once.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Moderation statuses a user account can be in.
const (
	StatusActive     = "active"
	StatusPermaban   = "permaban"
	StatusSuspended  = "suspended"
	StatusVerified   = "verified"
	StatusRestricted = "restricted"
)

// User represents a user account in the Flock application.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
	// Roles holds the user's role set. Stored as a JSON array column so the
	// set stays a single row attribute like the rest of the profile.
	Roles  []string `gorm:"serializer:json" json:"roles"`
	Status string   `gorm:"default:active" json:"status"`
	// StatusReason is the human-readable reason for the current status.
	StatusReason string `json:"status_reason,omitempty"`
	// StatusExpiry bounds temporary statuses (suspended, restricted).
	// Nil means no expiry.
	StatusExpiry *time.Time     `json:"status_expiry,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Posts        []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// BeforeCreate ensures every account starts with the default role set and an
// active status.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if len(u.Roles) == 0 {
		u.Roles = []string{RoleUser}
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	return nil
}

// HasRole reports whether the user's role set contains the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// IsModerator reports whether the user holds the moderator role.
func (u *User) IsModerator() bool {
	return u.HasRole(RoleModerator)
}

// IsBanned reports whether the user is currently banned. A permaban is always
// a ban; a suspension only counts while its expiry lies in the future. A
// suspension without an expiry does not ban.
func (u *User) IsBanned() bool {
	if u.Status == StatusPermaban {
		return true
	}
	if u.Status == StatusSuspended && u.StatusExpiry != nil {
		return u.StatusExpiry.After(time.Now())
	}
	return false
}

// IsRestricted reports whether the user is currently restricted. Unlike
// suspensions, a restriction with no expiry holds indefinitely.
func (u *User) IsRestricted() bool {
	if u.Status != StatusRestricted {
		return false
	}
	if u.StatusExpiry == nil {
		return true
	}
	return u.StatusExpiry.After(time.Now())
}

// ValidStatus reports whether s is one of the known moderation statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusPermaban, StatusSuspended, StatusVerified, StatusRestricted:
		return true
	}
	return false
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}
