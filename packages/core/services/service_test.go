package services

import (
	"testing"

	authmodels "auth/models"
	"core/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
// A single connection keeps every query on the same in-memory instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrapping test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&authmodels.User{},
		&authmodels.RefreshToken{},
		&models.Match{},
		&models.RatingHistory{},
		&models.UserBadge{},
		&models.UserAchievements{},
	); err != nil {
		t.Fatalf("migrating test schema: %v", err)
	}

	return db
}

type userOption func(*authmodels.User)

func withRating(rating float64) userOption {
	return func(u *authmodels.User) { u.EloRating = rating }
}

func asAdmin() userOption {
	return func(u *authmodels.User) { u.IsAdmin = true }
}

func createUser(t *testing.T, db *gorm.DB, username string, opts ...userOption) *authmodels.User {
	t.Helper()

	user := &authmodels.User{
		Username:  username,
		Password:  "irrelevant",
		EloRating: 1200,
		IsActive:  true,
	}
	for _, opt := range opts {
		opt(user)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("creating user %s: %v", username, err)
	}
	return user
}

// playConfirmed pushes one match through submit+confirm as winner vs loser.
func playConfirmed(t *testing.T, db *gorm.DB, winner, loser *authmodels.User, category models.Category) *models.Match {
	t.Helper()

	matches := NewMatchService(db)
	match, err := matches.Submit(winner.ID, models.SubmitMatchRequest{
		OpponentUsername: loser.Username,
		Category:         string(category),
		Won:              true,
	})
	if err != nil {
		t.Fatalf("submitting match: %v", err)
	}
	if _, _, err := matches.Confirm(loser.ID, false, match.ID); err != nil {
		t.Fatalf("confirming match: %v", err)
	}
	return match
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) *authmodels.User {
	t.Helper()
	var user authmodels.User
	if err := db.First(&user, id).Error; err != nil {
		t.Fatalf("reloading user %d: %v", id, err)
	}
	return &user
}
