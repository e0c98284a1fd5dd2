package seed

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"flock/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	MaxDays     int
	BatchSize   int
	ShouldClean bool
	SkipBcrypt  bool
	DryRun      bool
}

// DefaultOptions returns a small mesh suitable for local development.
func DefaultOptions() Options {
	return Options{
		NumUsers:  25,
		NumPosts:  80,
		MaxDays:   60,
		BatchSize: 100,
	}
}

// Distribution describes how posts split across kinds. Values are weights,
// normalized against their sum.
type Distribution struct {
	Text   float64 `yaml:"text"`
	Image  float64 `yaml:"image"`
	Video  float64 `yaml:"video"`
	Stream float64 `yaml:"stream"`
}

var defaultDistribution = Distribution{Text: 0.5, Image: 0.3, Video: 0.1, Stream: 0.1}

// PresetDistributions names a few ready-made post mixes.
var PresetDistributions = map[string]Distribution{
	"default":     defaultDistribution,
	"photography": {Text: 0.1, Image: 0.7, Video: 0.1, Stream: 0.1},
	"streamers":   {Text: 0.2, Image: 0.1, Video: 0.3, Stream: 0.4},
}

// computeCounts splits total across the distribution's kinds. Rounding
// remainders land on text so the counts always sum to total.
func computeCounts(total int, d Distribution) (text, image, video, stream int) {
	sum := d.Text + d.Image + d.Video + d.Stream
	if sum <= 0 || total <= 0 {
		return total, 0, 0, 0
	}
	image = int(math.Round(float64(total) * d.Image / sum))
	video = int(math.Round(float64(total) * d.Video / sum))
	stream = int(math.Round(float64(total) * d.Stream / sum))
	text = total - image - video - stream
	if text < 0 {
		// Rounding overshot; shave the largest bucket.
		switch {
		case image >= video && image >= stream:
			image += text
		case video >= stream:
			video += text
		default:
			stream += text
		}
		text = 0
	}
	return text, image, video, stream
}

// Seeder wires a Factory to higher-level seeding routines.
type Seeder struct {
	db   *gorm.DB
	opts Options
	f    *Factory
}

// NewSeeder creates a Seeder bound to the given DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, opts: opts, f: NewFactory(db, opts)}
}

// Run populates the database with a demo social mesh: users across the role
// and status spectrum, posts in the default kind mix, comments, likes, and
// follower edges.
func Run(db *gorm.DB, opts Options) error {
	return RunWithDistribution(db, opts, defaultDistribution)
}

// RunWithDistribution is Run with an explicit post kind mix.
func RunWithDistribution(db *gorm.DB, opts Options, dist Distribution) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	s := NewSeeder(db, opts)

	users, err := s.SeedSocialMesh(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	log.Printf("%d users created", len(users))

	posts, err := s.SeedPosts(users, opts.NumPosts, dist)
	if err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := s.SeedEngagement(users, posts); err != nil {
		return fmt.Errorf("failed to seed engagement: %w", err)
	}

	log.Println("Database seeding completed successfully")
	return nil
}

// SeedSocialMesh creates count users plus follower edges between them. The
// first users are deterministic accounts covering the role and status
// spectrum so every moderation path has a live example.
func (s *Seeder) SeedSocialMesh(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	fixtures := []func(*models.User){
		func(u *models.User) {
			u.Username = "flock_admin"
			u.Email = "admin@flock.example"
			u.Roles = []string{models.RoleUser, models.RoleAdmin}
			u.Bio = "Keeper of the keys."
		},
		func(u *models.User) {
			u.Username = "flock_mod"
			u.Email = "mod@flock.example"
			u.Roles = []string{models.RoleUser, models.RoleModerator}
			u.Bio = "Keeping the timeline tidy."
		},
		func(u *models.User) {
			u.Username = "verified_vera"
			u.Email = "vera@flock.example"
			u.Status = models.StatusVerified
		},
		func(u *models.User) {
			u.Username = "suspended_sam"
			u.Email = "sam@flock.example"
			u.Status = models.StatusSuspended
			u.StatusReason = "Repeated spam"
			expiry := time.Now().Add(72 * time.Hour)
			u.StatusExpiry = &expiry
		},
		func(u *models.User) {
			u.Username = "restricted_rae"
			u.Email = "rae@flock.example"
			u.Status = models.StatusRestricted
			u.StatusReason = "Cooling off"
		},
	}

	for i := 0; i < count; i++ {
		var overrides []func(*models.User)
		if i < len(fixtures) {
			overrides = append(overrides, fixtures[i])
		}
		user, err := s.f.CreateUser(overrides...)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if s.opts.DryRun {
		return users, nil
	}

	// Follower mesh: each user follows a handful of others.
	// #nosec G404: acceptable for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, follower := range users {
		edges := r.Intn(len(users))/3 + 1
		for j := 0; j < edges; j++ {
			target := users[r.Intn(len(users))]
			if target.ID == follower.ID {
				continue
			}
			// Unique index makes repeats fail; ignore those rows.
			_ = s.f.CreateFollower(target, follower)
		}
	}

	return users, nil
}

// SeedPosts creates total posts spread across users following dist.
func (s *Seeder) SeedPosts(users []*models.User, total int, dist Distribution) ([]*models.Post, error) {
	if len(users) == 0 || total <= 0 {
		return nil, nil
	}

	text, image, video, stream := computeCounts(total, dist)
	kinds := make([]string, 0, total)
	for i := 0; i < text; i++ {
		kinds = append(kinds, PostKindText)
	}
	for i := 0; i < image; i++ {
		kinds = append(kinds, PostKindImage)
	}
	for i := 0; i < video; i++ {
		kinds = append(kinds, PostKindVideo)
	}
	for i := 0; i < stream; i++ {
		kinds = append(kinds, PostKindStream)
	}

	// #nosec G404: acceptable for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.Shuffle(len(kinds), func(i, j int) { kinds[i], kinds[j] = kinds[j], kinds[i] })

	posts := make([]*models.Post, 0, total)
	for _, kind := range kinds {
		user := users[r.Intn(len(users))]
		posts = append(posts, s.f.BuildPostWithKind(user, kind))
	}

	if err := s.f.CreatePostsBatch(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// SeedEngagement scatters comments and likes across the given posts.
func (s *Seeder) SeedEngagement(users []*models.User, posts []*models.Post) error {
	if s.opts.DryRun || len(users) == 0 || len(posts) == 0 {
		return nil
	}

	// #nosec G404: acceptable for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, post := range posts {
		for i := 0; i < r.Intn(4); i++ {
			if _, err := s.f.CreateComment(users[r.Intn(len(users))], post); err != nil {
				return err
			}
		}
		for i := 0; i < r.Intn(6); i++ {
			// Duplicate pairs violate the unique index; skip them.
			_ = s.f.CreateLike(users[r.Intn(len(users))], post)
		}
	}
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, followers, posts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
