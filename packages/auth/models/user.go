package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the canonical account record. Rating and match counters are
// mutated only by the match workflow in the core module; admin endpoints
// may correct the flags and the rating.
type User struct {
	ID                  uint           `json:"id" gorm:"primaryKey"`
	Username            string         `json:"username" gorm:"size:255;uniqueIndex;not null"`
	Email               *string        `json:"email,omitempty" gorm:"uniqueIndex"`
	Password            string         `json:"-" gorm:"not null"`
	EloRating           float64        `json:"elo_rating" gorm:"default:1200"`
	MatchesPlayed       int            `json:"matches_played" gorm:"default:0"`
	MatchesWon          int            `json:"matches_won" gorm:"default:0"`
	IsAdmin             bool           `json:"is_admin" gorm:"default:false"`
	IsActive            bool           `json:"is_active" gorm:"default:true"`
	LastLogin           *time.Time     `json:"last_login"`
	ConfirmationToken   *string        `json:"-"`
	PasswordRequestedAt *time.Time     `json:"-"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// WinRate returns the win percentage (0-100) over confirmed matches.
func (u *User) WinRate() float64 {
	if u.MatchesPlayed == 0 {
		return 0
	}
	return float64(u.MatchesWon) / float64(u.MatchesPlayed) * 100
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,excludesall= "`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// IsPasswordRequestExpired reports whether a pending password-reset request
// is older than the given TTL.
func (u *User) IsPasswordRequestExpired(ttlSeconds int) bool {
	if u.PasswordRequestedAt == nil {
		return true
	}
	return time.Since(*u.PasswordRequestedAt).Seconds() > float64(ttlSeconds)
}

type PasswordResetRequest struct {
	Email       string `json:"email" binding:"required,email"`
	CallBackUrl string `json:"callBackUrl" binding:"required"`
}

type PasswordResetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// AdminCreateUserRequest lets an admin provision accounts directly.
type AdminCreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,excludesall= "`
	Password string `json:"password" binding:"required,min=6"`
	IsAdmin  bool   `json:"is_admin"`
	IsActive *bool  `json:"is_active"`
}

// AdminUpdateUserRequest is a partial update; nil fields are left untouched.
type AdminUpdateUserRequest struct {
	EloRating *float64 `json:"elo_rating,omitempty"`
	IsAdmin   *bool    `json:"is_admin,omitempty"`
	IsActive  *bool    `json:"is_active,omitempty"`
}
