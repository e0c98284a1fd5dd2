// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"flock/internal/config"
	"flock/internal/database"
	"flock/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numPosts := flag.Int("posts", 80, "Number of posts to create")
	maxDays := flag.Int("max-days", 60, "Spread post timestamps across this many days")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	preset := flag.String("preset", "", "Path to a YAML seeding preset (overrides other flags)")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *preset != "" {
		p, err := seed.LoadPreset(*preset)
		if err != nil {
			log.Fatalf("Failed to load preset: %v", err)
		}
		log.Printf("Applying preset %q (ignoring other flags)", p.Name)
		if err := seed.RunWithDistribution(db, p.Options(), p.EffectiveDistribution()); err != nil {
			log.Fatalf("Preset seeding failed: %v", err)
		}
		return
	}

	opts := seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		MaxDays:     *maxDays,
		ShouldClean: *shouldClean,
		BatchSize:   100,
	}
	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
