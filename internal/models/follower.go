package models

import "time"

// Follower records that FollowerID follows UserID. One row per edge; the
// (user_id, follower_id) pair is unique so the relation behaves as a set.
type Follower struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_followers_pair" json:"user_id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_followers_pair" json:"follower_id"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
	Follower   User      `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
