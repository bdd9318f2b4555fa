package services

import (
	"errors"
	"log"
	"time"

	"catfacts-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const allGamesLimit = 100

type GameService struct {
	DB *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{DB: db}
}

// GamePatch carries a partial update for a session. Only set (non-nil)
// fields are applied; everything else is left untouched.
type GamePatch struct {
	Score          *int
	Moves          *int
	TimeElapsed    *int
	MatchedPairs   *int
	FactsCollected *models.FactList
	Status         *models.GameStatus
}

func (p GamePatch) empty() bool {
	return p.Score == nil && p.Moves == nil && p.TimeElapsed == nil &&
		p.MatchedPairs == nil && p.FactsCollected == nil && p.Status == nil
}

// Start opens a new session for a user: zeroed counters, status playing, and
// a fresh opaque session token.
func (s *GameService) Start(userID uint, difficulty models.Difficulty, totalPairs int) (*models.Game, error) {
	if !difficulty.Valid() {
		return nil, validationf("difficulty must be easy, medium or hard")
	}
	if totalPairs < 3 || totalPairs > 20 {
		return nil, validationf("totalPairs must be between 3 and 20")
	}
	if err := s.checkUserExists(userID); err != nil {
		return nil, err
	}

	game := models.Game{
		UserID:         userID,
		SessionID:      uuid.NewString(),
		Difficulty:     difficulty,
		Status:         models.StatusPlaying,
		TotalPairs:     totalPairs,
		CollectedFacts: models.FactList{},
	}
	if err := s.DB.Create(&game).Error; err != nil {
		return nil, err
	}

	log.Printf("🎮 Game started: session=%s user=%d difficulty=%s pairs=%d",
		game.SessionID, userID, difficulty, totalPairs)
	return &game, nil
}

// Update applies a patch to a session. A transition into a terminal status
// stamps the completion time server-side, whatever the client-reported clock
// says. Repeated or backward status writes are accepted; the row simply
// reflects the last write.
func (s *GameService) Update(gameID uint, patch GamePatch) (*models.Game, error) {
	if patch.empty() {
		return nil, validationf("no fields to update")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, validationf("status must be playing, won or abandoned")
	}

	var game models.Game
	if err := s.DB.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	if patch.Score != nil {
		game.Score = *patch.Score
	}
	if patch.Moves != nil {
		game.Moves = *patch.Moves
	}
	if patch.TimeElapsed != nil {
		game.TimeElapsed = *patch.TimeElapsed
	}
	if patch.MatchedPairs != nil {
		game.MatchedPairs = *patch.MatchedPairs
	}
	if patch.FactsCollected != nil {
		game.CollectedFacts = *patch.FactsCollected
	}
	if patch.Status != nil {
		game.Status = *patch.Status
		if patch.Status.Terminal() {
			now := time.Now()
			game.CompletedAt = &now
		}
	}

	if err := s.DB.Save(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// SubmitParams is the legacy one-shot submission: start and complete in a
// single call. TotalQuestions doubles as the pair count, matching the old
// quiz-era field name.
type SubmitParams struct {
	UserID         uint
	Score          int
	TotalQuestions int
	Difficulty     models.Difficulty
	TimeElapsed    int
	Moves          int
	FactsCollected models.FactList
}

// Submit records an already-finished game. Kept for old clients that never
// learned the start/update flow; the session is created directly in won
// status.
func (s *GameService) Submit(p SubmitParams) (*models.Game, error) {
	if p.UserID == 0 || p.TotalQuestions == 0 {
		return nil, validationf("userId, score, and totalQuestions are required")
	}
	if p.Difficulty == "" {
		p.Difficulty = models.DifficultyEasy
	}
	if !p.Difficulty.Valid() {
		return nil, validationf("difficulty must be easy, medium or hard")
	}
	if err := s.checkUserExists(p.UserID); err != nil {
		return nil, err
	}

	now := time.Now()
	facts := p.FactsCollected
	if facts == nil {
		facts = models.FactList{}
	}
	game := models.Game{
		UserID:         p.UserID,
		SessionID:      uuid.NewString(),
		Difficulty:     p.Difficulty,
		Status:         models.StatusWon,
		Score:          p.Score,
		Moves:          p.Moves,
		TimeElapsed:    p.TimeElapsed,
		MatchedPairs:   p.TotalQuestions,
		TotalPairs:     p.TotalQuestions,
		CollectedFacts: facts,
		CompletedAt:    &now,
	}
	if err := s.DB.Create(&game).Error; err != nil {
		return nil, err
	}

	log.Printf("💾 Legacy game submitted: user=%d score=%d", p.UserID, p.Score)
	return &game, nil
}

// GamesForUser returns a user's history, newest first.
func (s *GameService) GamesForUser(userID uint) ([]models.GameWithUser, error) {
	var games []models.GameWithUser
	err := s.DB.Raw(`
		SELECT g.*, u.name AS username, u.avatar AS avatar
		FROM games g
		JOIN users u ON u.id = g.user_id
		WHERE g.user_id = ?
		ORDER BY g.created_at DESC, g.id DESC`, userID).Scan(&games).Error
	if err != nil {
		return nil, err
	}
	fillAvatars(games)
	return games, nil
}

// AllGames returns the 100 most recent games across all users.
func (s *GameService) AllGames() ([]models.GameWithUser, error) {
	var games []models.GameWithUser
	err := s.DB.Raw(`
		SELECT g.*, u.name AS username, u.avatar AS avatar
		FROM games g
		JOIN users u ON u.id = g.user_id
		ORDER BY g.created_at DESC, g.id DESC
		LIMIT ?`, allGamesLimit).Scan(&games).Error
	if err != nil {
		return nil, err
	}
	fillAvatars(games)
	return games, nil
}

func (s *GameService) checkUserExists(userID uint) error {
	var user models.User
	if err := s.DB.Select("id").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func fillAvatars(games []models.GameWithUser) {
	for i := range games {
		if games[i].Avatar == "" {
			games[i].Avatar = avatarURL(games[i].Username)
		}
	}
}
