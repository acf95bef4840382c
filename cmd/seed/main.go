// Command main runs the database seeder for BloxMarket.
package main

import (
	"flag"
	"log"

	"bloxmarket/internal/config"
	"bloxmarket/internal/database"
	"bloxmarket/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numTrades := flag.Int("trades", 200, "Number of trades to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fixturesPath := flag.String("fixtures", "", "Optional YAML fixtures file with named accounts and trades")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d trades, clean=%v\n", *numUsers, *numTrades, *shouldClean)

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

	if *fixturesPath != "" {
		fixtures, err := seed.LoadFixtures(*fixturesPath)
		if err != nil {
			log.Fatalf("Failed to load fixtures: %v", err)
		}
		if err := s.ApplyFixtures(fixtures); err != nil {
			log.Fatalf("Fixture seeding failed: %v", err)
		}
	}

	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	if err := s.SeedMarketplace(users, *numTrades); err != nil {
		log.Fatalf("Marketplace seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All test users have the password: password123")
}
