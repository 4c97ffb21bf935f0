package services

import (
	"core/models"

	"gorm.io/gorm"
)

type RatingHistoryService struct {
	db *gorm.DB
}

func NewRatingHistoryService(db *gorm.DB) *RatingHistoryService {
	return &RatingHistoryService{db: db}
}

// ForUser returns a user's rating movements, newest first.
func (s *RatingHistoryService) ForUser(userID uint, limit int) ([]models.RatingHistory, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	var history []models.RatingHistory
	if err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Preload("Opponent").
		Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

// Recent returns the latest rating movements across all players, newest
// first. Rollbacks delete their history rows, so only movements from
// still-confirmed matches appear here.
func (s *RatingHistoryService) Recent(limit int) ([]models.RatingHistory, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	var history []models.RatingHistory
	if err := s.db.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Preload("User").
		Preload("Opponent").
		Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}
