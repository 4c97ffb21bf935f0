package fixtures

import (
	"fmt"
	"log"
	"math/rand"

	authModels "auth/models"
	authUtils "auth/utils"
	"core/models"
	"core/services"

	"gorm.io/gorm"
)

type Fixtures struct {
	db *gorm.DB
}

func NewFixtures(db *gorm.DB) *Fixtures {
	return &Fixtures{db: db}
}

var testUsernames = []string{
	"pablo", "sergio", "laura", "marcos", "irene",
	"david", "carmen", "alejandro", "nuria", "victor",
}

// GenerateTestData seeds 10 members and ~60 matches, confirming most of
// them through the real workflow so ratings, history and badges line up.
func (f *Fixtures) GenerateTestData() error {
	log.Println("Starting fixtures generation...")

	users, err := f.generateUsers()
	if err != nil {
		return fmt.Errorf("failed to generate users: %w", err)
	}

	if err := f.generateMatches(users); err != nil {
		return fmt.Errorf("failed to generate matches: %w", err)
	}

	log.Println("Fixtures generation completed")
	return nil
}

func (f *Fixtures) generateUsers() ([]authModels.User, error) {
	password, err := authUtils.HashPassword("password123")
	if err != nil {
		return nil, err
	}

	users := make([]authModels.User, 0, len(testUsernames))
	for _, username := range testUsernames {
		user := authModels.User{
			Username:  username,
			Password:  password,
			EloRating: 1200,
			IsActive:  true,
		}
		if err := f.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	log.Printf("Created %d test users (password: password123)", len(users))
	return users, nil
}

func (f *Fixtures) generateMatches(users []authModels.User) error {
	matchService := services.NewMatchService(f.db)
	categories := models.Categories()

	confirmed, rejected := 0, 0
	for i := 0; i < 60; i++ {
		submitter := users[rand.Intn(len(users))]
		opponent := users[rand.Intn(len(users))]
		if submitter.ID == opponent.ID {
			continue
		}

		req := models.SubmitMatchRequest{
			OpponentUsername: opponent.Username,
			Category:         string(categories[rand.Intn(len(categories))]),
			Result:           fmt.Sprintf("%d-%d", 3, rand.Intn(3)),
			Won:              rand.Intn(100) < 55,
		}

		match, err := matchService.Submit(submitter.ID, req)
		if err != nil {
			return err
		}

		// Leave roughly one in ten pending, reject one in twenty.
		switch roll := rand.Intn(20); {
		case roll == 0:
			if _, err := matchService.Reject(opponent.ID, false, match.ID); err != nil {
				return err
			}
			rejected++
		case roll <= 2:
			// stays pending
		default:
			if _, _, err := matchService.Confirm(opponent.ID, false, match.ID); err != nil {
				return err
			}
			confirmed++
		}
	}

	achievementService := services.NewAchievementService(f.db)
	for _, user := range users {
		if _, err := achievementService.Evaluate(user.ID); err != nil {
			return err
		}
	}

	log.Printf("Created matches: %d confirmed, %d rejected", confirmed, rejected)
	return nil
}

// ClearAllData wipes every fixture-owned table, keeping admin accounts.
func (f *Fixtures) ClearAllData() error {
	log.Println("Clearing fixture data...")

	tables := []string{"rating_history", "user_badges", "user_achievements", "matches", "refresh_tokens"}
	for _, table := range tables {
		if err := f.db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	if err := f.db.Exec("DELETE FROM users WHERE is_admin = false").Error; err != nil {
		return err
	}

	log.Println("Fixture data cleared")
	return nil
}
