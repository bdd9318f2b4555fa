package models

import "time"

// Read-side shapes. None of these are persisted; every request recomputes
// them from the games table.

// GameWithUser is a game row joined with the owner's display name and avatar,
// used by history listings.
type GameWithUser struct {
	Game     `gorm:"embedded"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// UserStats aggregates one user's history. Score totals and the average only
// count won games; best score and the cumulative counters cover all games.
type UserStats struct {
	TotalGames          int     `json:"total_games"`
	TotalScore          int     `json:"total_score"`
	AverageScore        float64 `json:"average_score"`
	BestScore           int     `json:"best_score"`
	TotalTimePlayed     int     `json:"total_time_played"`
	TotalMoves          int     `json:"total_moves"`
	TotalFactsCollected int     `json:"total_facts_collected"`
}

// TopGame is a single best-game row for the per-difficulty leaderboard.
type TopGame struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"user_id"`
	Username    string     `json:"username"`
	Avatar      string     `json:"avatar"`
	Difficulty  Difficulty `json:"difficulty"`
	Score       int        `json:"score"`
	Moves       int        `json:"moves"`
	TimeElapsed int        `json:"time_elapsed"`
	CompletedAt *time.Time `json:"completed_at"`
}

// TopPlayer ranks users by their won games.
type TopPlayer struct {
	UserID         uint    `json:"user_id"`
	Username       string  `json:"username"`
	Avatar         string  `json:"avatar"`
	GamesCompleted int     `json:"games_completed"`
	BestScore      int     `json:"best_score"`
	AverageScore   float64 `json:"average_score"`
	AverageTime    float64 `json:"average_time"`
}

// LeaderboardEntry is the legacy leaderboard shape; Rank is assigned by
// result position, 1-based.
type LeaderboardEntry struct {
	Username     string  `json:"username"`
	Avatar       string  `json:"avatar"`
	TotalGames   int     `json:"total_games"`
	TotalScore   int     `json:"total_score"`
	AverageScore float64 `json:"average_score"`
	Rank         int     `json:"rank"`
}
