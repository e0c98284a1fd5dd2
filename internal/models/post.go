// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Media kinds attachable to posts and comments.
const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
)

// Post represents a post in the Flock application.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	// MediaURL and MediaKind describe an optional uploaded attachment.
	MediaURL  string `json:"media_url,omitempty"`
	MediaKind string `json:"media_kind,omitempty"`
	// StreamVideoID references an externally hosted stream video. The
	// playback URL is derived from it, never stored.
	StreamVideoID string `json:"stream_video_id,omitempty"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	User          User   `gorm:"foreignKey:UserID" json:"user"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ValidMediaKind reports whether k is a known media kind.
func ValidMediaKind(k string) bool {
	return k == MediaKindImage || k == MediaKindVideo
}
