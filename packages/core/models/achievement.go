package models

import (
	"time"

	authmodels "auth/models"
	"gorm.io/gorm"
)

// Badge rarities and categories used by the catalog.
const (
	RarityCommon    = "common"
	RarityUncommon  = "uncommon"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
	RarityMythic    = "mythic"

	BadgeCategoryProgress  = "progress"
	BadgeCategorySkill     = "skill"
	BadgeCategorySocial    = "social"
	BadgeCategoryStreak    = "streak"
	BadgeCategoryDedicated = "dedication"
	BadgeCategorySpecial   = "special"
)

// UserBadge is one awarded badge. The unique index makes awarding idempotent
// even if two evaluations race.
type UserBadge struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_user_badge" json:"user_id"`
	BadgeID  string    `gorm:"size:64;not null;uniqueIndex:idx_user_badge" json:"badge_id"`
	EarnedAt time.Time `json:"earned_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User authmodels.User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}

// UserAchievements is the per-user gamification header row: accumulated
// experience and the level derived from it. Created lazily on first read.
type UserAchievements struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	Experience int            `gorm:"default:0" json:"experience"`
	Level      int            `gorm:"default:1" json:"level"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	User authmodels.User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

func (UserAchievements) TableName() string {
	return "user_achievements"
}

// BadgeView is a catalog badge as exposed over HTTP.
type BadgeView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Rarity      string `json:"rarity"`
	Points      int    `json:"points"`
	Secret      bool   `json:"secret,omitempty"`
}

// EarnedBadge pairs a catalog badge with the moment it was awarded.
type EarnedBadge struct {
	BadgeView
	EarnedAt time.Time `json:"earned_at"`
}

// BadgeProgress reports how far a user is towards an unearned badge.
type BadgeProgress struct {
	BadgeView
	Progress float64 `json:"progress"`
}

// EvaluationResult is what one evaluation pass produced for a user.
type EvaluationResult struct {
	NewBadges    []BadgeView `json:"new_badges"`
	PointsEarned int         `json:"points_earned"`
	Experience   int         `json:"experience"`
	Level        int         `json:"level"`
	LeveledUp    bool        `json:"leveled_up"`
}

// AchievementSummary is the caller's full gamification state.
type AchievementSummary struct {
	UserID       uint          `json:"user_id"`
	Username     string        `json:"username"`
	Badges       []EarnedBadge `json:"badges"`
	TotalPoints  int           `json:"total_points"`
	Experience   int           `json:"experience"`
	Level        int           `json:"level"`
	Title        string        `json:"title"`
	NextLevelExp int           `json:"next_level_exp"`
}

// AchievementLeaderboardEntry ranks users by accumulated badge points.
type AchievementLeaderboardEntry struct {
	Rank       int    `json:"rank"`
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	Points     int    `json:"points"`
	BadgeCount int    `json:"badge_count"`
	Level      int    `json:"level"`
	Title      string `json:"title"`
}
