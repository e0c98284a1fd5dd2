package seed

import (
	"testing"
	"time"

	"flock/internal/models"
)

func TestBuildPostWithKind_TimestampsAndFields(t *testing.T) {
	opts := Options{DryRun: true, MaxDays: 30}
	f := NewFactory(nil, opts)
	user := &models.User{ID: 1}

	p := f.BuildPostWithKind(user, PostKindStream)
	if p.StreamVideoID == "" {
		t.Fatalf("expected stream video ID for stream post")
	}
	if p.MediaURL != "" {
		t.Fatalf("stream posts should not carry an uploaded media URL")
	}

	// timestamp should be within MaxDays
	if time.Since(p.CreatedAt) > (time.Duration(opts.MaxDays)+1)*24*time.Hour {
		t.Fatalf("created_at too old: %v", p.CreatedAt)
	}

	p2 := f.BuildPostWithKind(user, PostKindImage)
	if p2.MediaURL == "" || p2.MediaKind != models.MediaKindImage {
		t.Fatalf("expected image media fields, got url=%q kind=%q", p2.MediaURL, p2.MediaKind)
	}

	p3 := f.BuildPostWithKind(user, PostKindText)
	if p3.MediaURL != "" || p3.StreamVideoID != "" {
		t.Fatalf("text posts should carry no media")
	}
}

func TestCreateUser_DryRunStatusOverride(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true, SkipBcrypt: true})

	u, err := f.CreateUser(func(u *models.User) {
		u.Status = models.StatusVerified
		u.Roles = []string{models.RoleUser, models.RoleModerator}
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("expected synthetic ID in dry-run mode")
	}
	if u.Status != models.StatusVerified || !u.IsModerator() {
		t.Fatalf("overrides not applied: status=%s roles=%v", u.Status, u.Roles)
	}
}
