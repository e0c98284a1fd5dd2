package seed

import (
	"testing"

	"flock/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if migrateErr := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follower{},
	); migrateErr != nil {
		t.Fatalf("migrate: %v", migrateErr)
	}
	return db
}

func TestSeedSocialMesh_SeedsRolesAndEdges(t *testing.T) {
	t.Parallel()

	db := newSeedTestDB(t)
	seeder := NewSeeder(db, Options{SkipBcrypt: true})

	users, err := seeder.SeedSocialMesh(8)
	if err != nil {
		t.Fatalf("seed social mesh: %v", err)
	}
	if len(users) != 8 {
		t.Fatalf("expected 8 seeded users, got %d", len(users))
	}

	var admin models.User
	if err := db.Where("username = ?", "flock_admin").First(&admin).Error; err != nil {
		t.Fatalf("admin fixture missing: %v", err)
	}
	if !admin.IsAdmin() {
		t.Fatalf("admin fixture lacks admin role: %v", admin.Roles)
	}

	var suspended models.User
	if err := db.Where("username = ?", "suspended_sam").First(&suspended).Error; err != nil {
		t.Fatalf("suspended fixture missing: %v", err)
	}
	if !suspended.IsBanned() {
		t.Fatalf("suspended fixture should count as banned until expiry")
	}

	var edges int64
	if err := db.Model(&models.Follower{}).Count(&edges).Error; err != nil {
		t.Fatalf("count follower edges: %v", err)
	}
	if edges == 0 {
		t.Fatal("expected at least one follower edge")
	}
}

func TestRunWithDistribution_PostsMatchMix(t *testing.T) {
	t.Parallel()

	db := newSeedTestDB(t)
	opts := Options{NumUsers: 5, NumPosts: 20, MaxDays: 10, SkipBcrypt: true}

	if err := RunWithDistribution(db, opts, Distribution{Text: 1, Image: 1, Video: 1, Stream: 1}); err != nil {
		t.Fatalf("run: %v", err)
	}

	var total int64
	if err := db.Model(&models.Post{}).Count(&total).Error; err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if total != 20 {
		t.Fatalf("expected 20 posts, got %d", total)
	}

	var streams int64
	if err := db.Model(&models.Post{}).Where("stream_video_id <> ''").Count(&streams).Error; err != nil {
		t.Fatalf("count stream posts: %v", err)
	}
	if streams != 5 {
		t.Fatalf("expected 5 stream posts, got %d", streams)
	}
}
