package services

import (
	"time"

	"core/models"

	"gorm.io/gorm"
)

// StatsService derives per-user statistics snapshots from confirmed match
// history. Snapshots feed both the profile endpoints and badge evaluation.
type StatsService struct {
	db    *gorm.DB
	users *UserService
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db, users: NewUserService(db)}
}

// Snapshot computes the full statistics block for a user from their
// confirmed matches ordered by confirmation time. Zero-match users get all
// zeros; the rank is still computed.
func (s *StatsService) Snapshot(userID uint) (*models.DetailedStats, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	var matches []models.Match
	if err := s.db.
		Where("status = ?", models.MatchStatusConfirmed).
		Where("player1_id = ? OR player2_id = ?", userID, userID).
		Order("confirmed_at ASC").
		Find(&matches).Error; err != nil {
		return nil, err
	}

	stats := &models.DetailedStats{
		UserID:     user.ID,
		Username:   user.Username,
		EloRating:  user.EloRating,
		ByCategory: make(map[models.Category]models.CategoryStats),
	}
	for _, c := range models.Categories() {
		stats.ByCategory[c] = models.CategoryStats{}
	}

	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	opponents := make(map[uint]struct{})
	streak := 0

	for _, m := range matches {
		won := m.WinnerID == userID
		opponent := m.Player1ID
		if opponent == userID {
			opponent = m.Player2ID
		}
		opponents[opponent] = struct{}{}

		stats.MatchesPlayed++
		if won {
			stats.MatchesWon++
			streak++
			if streak > stats.MaxStreak {
				stats.MaxStreak = streak
			}
		} else {
			stats.MatchesLost++
			streak = 0
		}

		cat := stats.ByCategory[m.Category]
		cat.Played++
		if won {
			cat.Won++
		}
		stats.ByCategory[m.Category] = cat

		if m.ConfirmedAt != nil {
			if m.ConfirmedAt.After(weekAgo) {
				stats.Last7Days.Matches++
				if won {
					stats.Last7Days.Wins++
				}
			}
			if m.ConfirmedAt.After(monthAgo) {
				stats.Last30Days.Matches++
				if won {
					stats.Last30Days.Wins++
				}
			}
		}
	}

	// The current streak is the run of wins ending at the latest match; a
	// loss anywhere after the run resets it, so the running counter already
	// holds the right value.
	stats.CurrentStreak = streak
	stats.UniqueOpponents = len(opponents)
	if stats.MatchesPlayed > 0 {
		stats.WinRate = float64(stats.MatchesWon) / float64(stats.MatchesPlayed) * 100
	}

	rankings, err := s.users.GetRankings()
	if err != nil {
		return nil, err
	}
	stats.TotalPlayers = len(rankings)
	for _, entry := range rankings {
		if entry.UserID == userID {
			stats.Rank = entry.Rank
			break
		}
	}
	// Rank 1 of N is the 100th percentile, rank N the lowest non-zero one.
	if stats.Rank > 0 {
		stats.Percentile = float64(stats.TotalPlayers-stats.Rank+1) / float64(stats.TotalPlayers) * 100
	}

	return stats, nil
}

// ClubStats aggregates the dashboard header numbers.
func (s *StatsService) ClubStats() (*models.ClubStats, error) {
	var stats models.ClubStats

	if err := s.db.Table("users").
		Where("is_active = ? AND is_admin = ? AND deleted_at IS NULL", true, false).
		Count(&stats.TotalPlayers).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Match{}).
		Where("status = ?", models.MatchStatusConfirmed).
		Count(&stats.TotalMatches).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	if err := s.db.Model(&models.Match{}).
		Where("status = ? AND confirmed_at >= ?", models.MatchStatusConfirmed, weekAgo).
		Count(&stats.MatchesLast7Days).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Match{}).
		Where("status = ? AND confirmed_at >= ? AND confirmed_at < ?",
			models.MatchStatusConfirmed, twoWeeksAgo, weekAgo).
		Count(&stats.MatchesPrevious7Days).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
