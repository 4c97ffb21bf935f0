package models

// ClubStats is the dashboard header block.
type ClubStats struct {
	TotalPlayers         int64 `json:"total_players"`
	TotalMatches         int64 `json:"total_matches"`
	MatchesLast7Days     int64 `json:"matches_last_7_days"`
	MatchesPrevious7Days int64 `json:"matches_previous_7_days"`
}

// RankingEntry is one row of the club ladder.
type RankingEntry struct {
	Rank          int     `json:"rank"`
	UserID        uint    `json:"user_id"`
	Username      string  `json:"username"`
	EloRating     float64 `json:"elo_rating"`
	MatchesPlayed int     `json:"matches_played"`
	MatchesWon    int     `json:"matches_won"`
	WinRate       float64 `json:"win_rate"`
}

// CategoryStats is a user's record within one match category.
type CategoryStats struct {
	Played int `json:"played"`
	Won    int `json:"won"`
}

// PeriodStats is a user's record inside a trailing time window.
type PeriodStats struct {
	Matches int `json:"matches"`
	Wins    int `json:"wins"`
}

// DetailedStats is the full per-user statistics block used both by the
// profile endpoints and as the input snapshot of badge evaluation.
type DetailedStats struct {
	UserID          uint                       `json:"user_id"`
	Username        string                     `json:"username"`
	EloRating       float64                    `json:"elo_rating"`
	MatchesPlayed   int                        `json:"matches_played"`
	MatchesWon      int                        `json:"matches_won"`
	MatchesLost     int                        `json:"matches_lost"`
	WinRate         float64                    `json:"win_rate"`
	CurrentStreak   int                        `json:"current_streak"`
	MaxStreak       int                        `json:"max_streak"`
	UniqueOpponents int                        `json:"unique_opponents"`
	ByCategory      map[Category]CategoryStats `json:"by_category"`
	Last7Days       PeriodStats                `json:"last_7_days"`
	Last30Days      PeriodStats                `json:"last_30_days"`
	Rank            int                        `json:"rank"`
	TotalPlayers    int                        `json:"total_players"`
	Percentile      float64                    `json:"percentile"`
}
