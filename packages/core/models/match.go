package models

import (
	"time"

	authmodels "auth/models"
	"gorm.io/gorm"
)

// Match statuses. A match is created pending; only the opponent can move it
// to confirmed or rejected, and only an admin can cancel a confirmed one.
const (
	MatchStatusPending   = "pending"
	MatchStatusConfirmed = "confirmed"
	MatchStatusRejected  = "rejected"
	MatchStatusCancelled = "cancelled"
)

type Match struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Player1ID   uint     `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"player1_id"`
	Player2ID   uint     `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"player2_id"`
	WinnerID    uint     `gorm:"not null;constraint:OnDelete:CASCADE" json:"winner_id"`
	Category    Category `gorm:"size:20;not null" json:"category"`
	Result      string   `gorm:"size:100" json:"result"` // free-text score, e.g. "3-1"
	Status      string   `gorm:"size:20;default:pending;index" json:"status"` // pending, confirmed, rejected, cancelled
	SubmittedBy uint     `gorm:"not null" json:"submitted_by"`

	// Rating snapshots. The *_before values are captured at submission time
	// and are the inputs of the rating update when the match is confirmed.
	// The *_after values stay NULL until confirmation.
	Player1RatingBefore float64  `json:"player1_rating_before"`
	Player2RatingBefore float64  `json:"player2_rating_before"`
	Player1RatingAfter  *float64 `json:"player1_rating_after"`
	Player2RatingAfter  *float64 `json:"player2_rating_after"`

	CreatedAt   time.Time      `json:"created_at"`
	ConfirmedAt *time.Time     `json:"confirmed_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Player1 authmodels.User `gorm:"foreignKey:Player1ID;references:ID" json:"player1,omitempty"`
	Player2 authmodels.User `gorm:"foreignKey:Player2ID;references:ID" json:"player2,omitempty"`
	Winner  authmodels.User `gorm:"foreignKey:WinnerID;references:ID" json:"winner,omitempty"`
}

func (Match) TableName() string {
	return "matches"
}

// LoserID returns the other participant of the match.
func (m *Match) LoserID() uint {
	if m.WinnerID == m.Player1ID {
		return m.Player2ID
	}
	return m.Player1ID
}

// Involves reports whether the user is one of the two participants.
func (m *Match) Involves(userID uint) bool {
	return m.Player1ID == userID || m.Player2ID == userID
}

type SubmitMatchRequest struct {
	OpponentUsername string `json:"opponent_username" binding:"required"`
	Category         string `json:"category" binding:"required,oneof=rey_mesa torneo liga_grupos liga_finales"`
	Result           string `json:"result" binding:"max=100"`
	Won              bool   `json:"won"`
}

type PaginatedMatchResponse struct {
	Data       []Match `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

// MatchFilters narrows history queries.
type MatchFilters struct {
	UserID   uint
	Opponent uint
	Category Category
	Status   string
	Page     int
	PageSize int
}

// RatingDelta is the outcome of applying one confirmed match.
type RatingDelta struct {
	WinnerID     uint    `json:"winner_id"`
	LoserID      uint    `json:"loser_id"`
	WinnerBefore float64 `json:"winner_before"`
	WinnerAfter  float64 `json:"winner_after"`
	LoserBefore  float64 `json:"loser_before"`
	LoserAfter   float64 `json:"loser_after"`
	Exchanged    float64 `json:"exchanged"`
}

// EloPreviewRequest asks what a hypothetical result would do to both ratings.
type EloPreviewRequest struct {
	OpponentUsername string `json:"opponent_username" form:"opponent_username" binding:"required"`
	Category         string `json:"category" form:"category" binding:"required,oneof=rey_mesa torneo liga_grupos liga_finales"`
}

type EloPreviewResponse struct {
	IfWin  RatingDelta `json:"if_win"`
	IfLose RatingDelta `json:"if_lose"`
}
