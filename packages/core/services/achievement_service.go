package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	authmodels "auth/models"
	"core/catalog"
	"core/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AchievementService evaluates the badge catalog against user statistics
// snapshots, awards new badges idempotently and tracks level progression.
type AchievementService struct {
	db    *gorm.DB
	stats *StatsService
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{db: db, stats: NewStatsService(db)}
}

// Evaluate runs a full catalog pass for one user. Secret badges are checked
// like any other; already-earned badges are never re-awarded even when the
// user later dips below the threshold.
func (s *AchievementService) Evaluate(userID uint) (*models.EvaluationResult, error) {
	stats, err := s.stats.Snapshot(userID)
	if err != nil {
		return nil, err
	}

	earned, err := s.earnedIDs(userID)
	if err != nil {
		return nil, err
	}

	var newBadges []models.BadgeView
	pointsEarned := 0
	now := time.Now()

	for _, badge := range catalog.All() {
		if _, already := earned[badge.ID]; already {
			continue
		}
		if !badge.Met(stats) {
			continue
		}

		award := models.UserBadge{UserID: userID, BadgeID: badge.ID, EarnedAt: now}
		res := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&award)
		if res.Error != nil {
			return nil, res.Error
		}
		// A racing evaluation may have inserted first; the unique index
		// tells us through RowsAffected and we simply skip the points.
		if res.RowsAffected == 0 {
			continue
		}

		newBadges = append(newBadges, badge.View())
		pointsEarned += badge.Points
	}

	record, err := s.achievementsRecord(userID)
	if err != nil {
		return nil, err
	}

	previousLevel := record.Level
	if pointsEarned > 0 {
		record.Experience += pointsEarned
		record.Level = catalog.Level(record.Experience)
		if err := s.db.Model(record).Updates(map[string]interface{}{
			"experience": record.Experience,
			"level":      record.Level,
		}).Error; err != nil {
			return nil, err
		}
	}

	return &models.EvaluationResult{
		NewBadges:    newBadges,
		PointsEarned: pointsEarned,
		Experience:   record.Experience,
		Level:        record.Level,
		LeveledUp:    record.Level > previousLevel,
	}, nil
}

// EvaluateAll sweeps every active user. Used by the hourly cron job as the
// retry path for evaluations the post-confirmation worker missed.
func (s *AchievementService) EvaluateAll() {
	var userIDs []uint
	if err := s.db.Model(&authmodels.User{}).
		Where("is_active = ?", true).
		Pluck("id", &userIDs).Error; err != nil {
		log.Printf("achievement sweep: listing users failed: %v", err)
		return
	}

	for _, id := range userIDs {
		if _, err := s.Evaluate(id); err != nil {
			log.Printf("achievement sweep: user %d: %v", id, err)
		}
	}
}

// Summary returns the user's earned badges, points, experience and title.
func (s *AchievementService) Summary(userID uint) (*models.AchievementSummary, error) {
	var user authmodels.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil, err
	}

	var awards []models.UserBadge
	if err := s.db.Where("user_id = ?", userID).Order("earned_at ASC").Find(&awards).Error; err != nil {
		return nil, err
	}

	badges := make([]models.EarnedBadge, 0, len(awards))
	totalPoints := 0
	for _, award := range awards {
		badge, ok := catalog.ByID(award.BadgeID)
		if !ok {
			continue
		}
		badges = append(badges, models.EarnedBadge{BadgeView: badge.View(), EarnedAt: award.EarnedAt})
		totalPoints += badge.Points
	}

	record, err := s.achievementsRecord(userID)
	if err != nil {
		return nil, err
	}

	return &models.AchievementSummary{
		UserID:       user.ID,
		Username:     user.Username,
		Badges:       badges,
		TotalPoints:  totalPoints,
		Experience:   record.Experience,
		Level:        record.Level,
		Title:        catalog.TitleForLevel(record.Level),
		NextLevelExp: catalog.NextLevelExp(record.Level),
	}, nil
}

// Progress reports completion towards every unearned, non-secret badge.
func (s *AchievementService) Progress(userID uint) ([]models.BadgeProgress, error) {
	stats, err := s.stats.Snapshot(userID)
	if err != nil {
		return nil, err
	}
	earned, err := s.earnedIDs(userID)
	if err != nil {
		return nil, err
	}

	progress := make([]models.BadgeProgress, 0)
	for _, badge := range catalog.Public() {
		if _, already := earned[badge.ID]; already {
			continue
		}
		progress = append(progress, models.BadgeProgress{
			BadgeView: badge.View(),
			Progress:  badge.Progress(stats),
		})
	}
	return progress, nil
}

// Recommendations returns the unearned non-secret badges that are 50-99%
// complete, most complete first, capped at five.
func (s *AchievementService) Recommendations(userID uint) ([]models.BadgeProgress, error) {
	progress, err := s.Progress(userID)
	if err != nil {
		return nil, err
	}

	recommended := make([]models.BadgeProgress, 0, 5)
	for _, p := range progress {
		if p.Progress >= 50 && p.Progress < 100 {
			recommended = append(recommended, p)
		}
	}
	sort.SliceStable(recommended, func(i, j int) bool {
		return recommended[i].Progress > recommended[j].Progress
	})
	if len(recommended) > 5 {
		recommended = recommended[:5]
	}
	return recommended, nil
}

// Leaderboard ranks active users by accumulated badge points.
func (s *AchievementService) Leaderboard(limit int) ([]models.AchievementLeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var users []authmodels.User
	if err := s.db.Where("is_active = ? AND is_admin = ?", true, false).Find(&users).Error; err != nil {
		return nil, err
	}

	entries := make([]models.AchievementLeaderboardEntry, 0, len(users))
	for _, user := range users {
		var awards []models.UserBadge
		if err := s.db.Where("user_id = ?", user.ID).Find(&awards).Error; err != nil {
			return nil, err
		}

		points := 0
		for _, award := range awards {
			if badge, ok := catalog.ByID(award.BadgeID); ok {
				points += badge.Points
			}
		}
		level := catalog.Level(points)

		entries = append(entries, models.AchievementLeaderboardEntry{
			UserID:     user.ID,
			Username:   user.Username,
			Points:     points,
			BadgeCount: len(awards),
			Level:      level,
			Title:      catalog.TitleForLevel(level),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].UserID < entries[j].UserID
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// PublicCatalog lists the non-secret badge definitions.
func (s *AchievementService) PublicCatalog() []models.BadgeView {
	public := catalog.Public()
	views := make([]models.BadgeView, 0, len(public))
	for _, badge := range public {
		views = append(views, badge.View())
	}
	return views
}

// earnedIDs loads the set of badge ids the user already holds.
func (s *AchievementService) earnedIDs(userID uint) (map[string]struct{}, error) {
	var awards []models.UserBadge
	if err := s.db.Where("user_id = ?", userID).Find(&awards).Error; err != nil {
		return nil, err
	}
	earned := make(map[string]struct{}, len(awards))
	for _, award := range awards {
		earned[award.BadgeID] = struct{}{}
	}
	return earned, nil
}

// achievementsRecord fetches the per-user header row, creating it lazily.
func (s *AchievementService) achievementsRecord(userID uint) (*models.UserAchievements, error) {
	var record models.UserAchievements
	err := s.db.Where("user_id = ?", userID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.UserAchievements{UserID: userID, Experience: 0, Level: 1}
		if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
			return nil, err
		}
		// Re-read in case a concurrent request created it first.
		if err := s.db.Where("user_id = ?", userID).First(&record).Error; err != nil {
			return nil, err
		}
		return &record, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
