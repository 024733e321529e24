// Command main runs the database seeder for Atelier.
package main

import (
	"flag"
	"log"

	"atelier/internal/config"
	"atelier/internal/database"
	"atelier/internal/seed"
)

func main() {
	numProjects := flag.Int("projects", 8, "Number of projects to create")
	numMessages := flag.Int("messages", 20, "Number of contact messages to create")
	shouldClean := flag.Bool("clean", true, "Clean seeded tables before seeding")
	flag.Parse()

	log.Printf("Seeding %d projects and %d messages (clean=%v)", *numProjects, *numMessages, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	projects, err := s.SeedProjects(*numProjects)
	if err != nil {
		log.Fatalf("Project seeding failed: %v", err)
	}
	if err := s.SeedMessages(*numMessages); err != nil {
		log.Fatalf("Message seeding failed: %v", err)
	}

	log.Printf("Done: %d projects with sections and images, %d contact messages", len(projects), *numMessages)
}
