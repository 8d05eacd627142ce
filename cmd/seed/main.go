// Command seed populates the database with demo forum activity.
package main

import (
	"flag"
	"log"

	"smashboard/internal/config"
	"smashboard/internal/database"
	"smashboard/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	numUsers := flag.Int("users", 0, "Number of users to create (0 uses the profile default)")
	numPosts := flag.Int("posts", 0, "Number of posts to create (0 uses the profile default)")
	profilePath := flag.String("profile", "", "Path to a YAML seed profile")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	profile := seed.DefaultProfile()
	if *profilePath != "" {
		profile, err = seed.LoadProfile(*profilePath)
		if err != nil {
			log.Fatalf("Failed to load seed profile: %v", err)
		}
	}
	if *numUsers > 0 {
		profile.Users = *numUsers
	}
	if *numPosts > 0 {
		profile.Posts = *numPosts
	}

	s := seed.NewSeeder(db, profile)
	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}
	if err := s.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
