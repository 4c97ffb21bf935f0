package models

import (
	"time"

	authmodels "auth/models"
	"gorm.io/gorm"
)

// RatingHistory records one player's rating movement from one confirmed
// match. Rows are deleted again if the match is rolled back.
type RatingHistory struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint           `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"user_id"`
	MatchID    uint           `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"match_id"`
	OpponentID uint           `gorm:"not null" json:"opponent_id"`
	Category   Category       `gorm:"size:20;not null" json:"category"`
	EloBefore  float64        `gorm:"not null" json:"elo_before"`
	EloAfter   float64        `gorm:"not null" json:"elo_after"`
	EloChange  float64        `gorm:"not null" json:"elo_change"`
	Won        bool           `gorm:"not null" json:"won"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     authmodels.User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Match    Match           `gorm:"foreignKey:MatchID;references:ID" json:"match,omitempty"`
	Opponent authmodels.User `gorm:"foreignKey:OpponentID;references:ID" json:"opponent,omitempty"`
}

func (RatingHistory) TableName() string {
	return "rating_history"
}
