package services

import (
	"errors"
	"fmt"
	"strings"

	authmodels "auth/models"
	"core/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetUserByID returns any active-or-not account by id.
func (s *UserService) GetUserByID(id uint) (*authmodels.User, error) {
	var user authmodels.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername resolves a username case-insensitively.
func (s *UserService) GetUserByUsername(username string) (*authmodels.User, error) {
	var user authmodels.User
	if err := s.db.Where("LOWER(username) = LOWER(?)", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// GetRankings returns the club ladder: active non-admin users ordered by
// rating descending, ties broken by user id ascending.
func (s *UserService) GetRankings() ([]models.RankingEntry, error) {
	var users []authmodels.User
	if err := s.db.
		Where("is_active = ? AND is_admin = ?", true, false).
		Order("elo_rating DESC, id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}

	rankings := make([]models.RankingEntry, 0, len(users))
	for i, user := range users {
		rankings = append(rankings, models.RankingEntry{
			Rank:          i + 1,
			UserID:        user.ID,
			Username:      user.Username,
			EloRating:     user.EloRating,
			MatchesPlayed: user.MatchesPlayed,
			MatchesWon:    user.MatchesWon,
			WinRate:       user.WinRate(),
		})
	}
	return rankings, nil
}

// RankOf returns a user's position on the ladder, 0 when the user does not
// appear on it (inactive or admin).
func (s *UserService) RankOf(userID uint) (int, error) {
	rankings, err := s.GetRankings()
	if err != nil {
		return 0, err
	}
	for _, entry := range rankings {
		if entry.UserID == userID {
			return entry.Rank, nil
		}
	}
	return 0, nil
}

// SearchUsers finds active users by case-insensitive username substring,
// excluding the caller.
func (s *UserService) SearchUsers(query string, excludeUserID uint) ([]authmodels.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []authmodels.User{}, nil
	}

	var users []authmodels.User
	if err := s.db.
		Where("is_active = ? AND id != ?", true, excludeUserID).
		Where("LOWER(username) LIKE LOWER(?)", "%"+query+"%").
		Order("username ASC").
		Limit(20).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
