// Command main runs the database seeder for PlayLSD.
package main

import (
	"flag"
	"log"

	"playlsd/internal/bootstrap"
	"playlsd/internal/config"
	"playlsd/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numSubmissions := flag.Int("submissions", 40, "Number of submissions to create")
	numChat := flag.Int("chat", 60, "Number of chat messages to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d submissions, %d chat messages, clean=%v\n",
		*numUsers, *numSubmissions, *numChat, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, _, err := bootstrap.InitRuntime(cfg, bootstrap.Options{SkipRedis: true})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	s := seed.NewSeeder(db)
	if err := s.Run(seed.Options{
		NumUsers:       *numUsers,
		NumSubmissions: *numSubmissions,
		NumChat:        *numChat,
		ShouldClean:    *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
