package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedTestData resets the database and populates it with demo users and ratings.
//
// Behavior:
//  1. Clears existing data in `users` and `ratings` tables.
//  2. Creates 20 users (10 male, 10 female) with hashed passwords and
//     coordinates scattered around a city center; every 5th user has no
//     coordinates so distance-filtered listings have something to exclude.
//  3. Generates ratings with guaranteed mutual pairs every 3rd edge.
//
// Compatible with both MySQL and SQLite (AUTO_INCREMENT reset skipped for SQLite).
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// --- Fresh start ---
	if err := db.Exec("DELETE FROM ratings").Error; err != nil {
		return fmt.Errorf("failed to clear ratings: %w", err)
	}
	if err := db.Exec("DELETE FROM users").Error; err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}

	switch db.Dialector.Name() {
	case "mysql":
		db.Exec("ALTER TABLE users AUTO_INCREMENT = 1")
	case "sqlite":
		db.Exec("DELETE FROM sqlite_sequence WHERE name = 'users'")
	}

	log.Println("Cleared existing data")

	// --- Seed Users (10 male, 10 female) ---
	const baseLat, baseLon = 55.7558, 37.6173
	for i := 1; i <= 20; i++ {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		gender := "male"
		if i > 10 {
			gender = "female"
		}

		user := User{
			Gender:       gender,
			FirstName:    fmt.Sprintf("first_name%d", i),
			LastName:     fmt.Sprintf("last_name%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
			Avatar:       fmt.Sprintf("avatars/user%d.png", i),
		}

		// every 5th user registers without coordinates
		if i%5 != 0 {
			lat := baseLat + r.Float64()*0.5 - 0.25
			lon := baseLon + r.Float64()*0.5 - 0.25
			user.Latitude = &lat
			user.Longitude = &lon
		}

		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
	}
	log.Println("Seeded 20 users.")

	// --- Seed Ratings ---
	counter := 0
	for raterID := 1; raterID <= 20; raterID++ {
		for j := 0; j < 4; j++ {
			ratedID := uint64(r.Intn(20) + 1)
			if uint64(raterID) == ratedID {
				continue
			}

			// guarantee a mutual pair every 3rd edge
			if counter%3 == 0 {
				recip := Rating{RaterID: ratedID, RatedID: uint64(raterID)}
				db.Clauses(clause.OnConflict{DoNothing: true}).Create(&recip)
			}

			rating := Rating{RaterID: uint64(raterID), RatedID: ratedID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rating).Error; err != nil {
				return fmt.Errorf("failed to seed rating: %w", err)
			}

			counter++
		}
	}

	return nil
}
