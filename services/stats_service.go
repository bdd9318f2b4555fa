package services

import (
	"catfacts-api/models"

	"gorm.io/gorm"
)

const (
	topGamesLimit    = 10
	topPlayersLimit  = 20
	leaderboardLimit = 50
)

// StatsService is read-only: every call recomputes its aggregates from the
// games table, no materialized views.
type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// UserStats aggregates one user's history. Score totals and the average are
// computed over won games only; best score and the cumulative counters cover
// every game regardless of status. A user with no games gets a zeroed record,
// never an error.
func (s *StatsService) UserStats(userID uint) (*models.UserStats, error) {
	var stats models.UserStats
	err := s.DB.Raw(`
		SELECT
			COUNT(g.id) AS total_games,
			COALESCE(SUM(CASE WHEN g.status = 'won' THEN g.score ELSE 0 END), 0) AS total_score,
			COALESCE(AVG(CASE WHEN g.status = 'won' THEN g.score END), 0) AS average_score,
			COALESCE(MAX(g.score), 0) AS best_score,
			COALESCE(SUM(g.time_elapsed), 0) AS total_time_played,
			COALESCE(SUM(g.moves), 0) AS total_moves,
			COALESCE(SUM(g.matched_pairs), 0) AS total_facts_collected
		FROM games g
		WHERE g.user_id = ?`, userID).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// TopGames returns the ten best individual won games for a difficulty.
// Ties break on fewer moves, then less time.
func (s *StatsService) TopGames(difficulty models.Difficulty) ([]models.TopGame, error) {
	if !difficulty.Valid() {
		return nil, validationf("difficulty must be easy, medium or hard")
	}
	var games []models.TopGame
	err := s.DB.Raw(`
		SELECT g.id, g.user_id, u.name AS username, u.avatar AS avatar,
		       g.difficulty, g.score, g.moves, g.time_elapsed, g.completed_at
		FROM games g
		JOIN users u ON u.id = g.user_id
		WHERE g.status = 'won' AND g.difficulty = ?
		ORDER BY g.score DESC, g.moves ASC, g.time_elapsed ASC
		LIMIT ?`, difficulty, topGamesLimit).Scan(&games).Error
	if err != nil {
		return nil, err
	}
	for i := range games {
		if games[i].Avatar == "" {
			games[i].Avatar = avatarURL(games[i].Username)
		}
	}
	return games, nil
}

// TopPlayers ranks users by their won games; users with none are excluded.
func (s *StatsService) TopPlayers() ([]models.TopPlayer, error) {
	var players []models.TopPlayer
	err := s.DB.Raw(`
		SELECT u.id AS user_id, u.name AS username, u.avatar AS avatar,
		       COUNT(g.id) AS games_completed,
		       MAX(g.score) AS best_score,
		       AVG(g.score) AS average_score,
		       AVG(g.time_elapsed) AS average_time
		FROM games g
		JOIN users u ON u.id = g.user_id
		WHERE g.status = 'won'
		GROUP BY u.id, u.name, u.avatar
		ORDER BY best_score DESC, average_score DESC, games_completed DESC
		LIMIT ?`, topPlayersLimit).Scan(&players).Error
	if err != nil {
		return nil, err
	}
	for i := range players {
		if players[i].Avatar == "" {
			players[i].Avatar = avatarURL(players[i].Username)
		}
	}
	return players, nil
}

// LegacyLeaderboard is the original total-score ranking kept for old clients.
// Rank is assigned by result position, 1-based.
func (s *StatsService) LegacyLeaderboard() ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := s.DB.Raw(`
		SELECT u.name AS username, u.avatar AS avatar,
		       COUNT(g.id) AS total_games,
		       COALESCE(SUM(g.score), 0) AS total_score,
		       COALESCE(AVG(g.score), 0) AS average_score
		FROM users u
		JOIN games g ON g.user_id = u.id
		WHERE g.status = 'won'
		GROUP BY u.id, u.name, u.avatar
		ORDER BY total_score DESC, average_score DESC
		LIMIT ?`, leaderboardLimit).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Rank = i + 1
		if entries[i].Avatar == "" {
			entries[i].Avatar = avatarURL(entries[i].Username)
		}
	}
	return entries, nil
}
