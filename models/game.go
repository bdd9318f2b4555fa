package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// GameStatus is the lifecycle of a session: playing -> won | abandoned.
type GameStatus string

const (
	StatusPlaying   GameStatus = "playing"
	StatusWon       GameStatus = "won"
	StatusAbandoned GameStatus = "abandoned"
)

func (s GameStatus) Valid() bool {
	return s == StatusPlaying || s == StatusWon || s == StatusAbandoned
}

// Terminal reports whether no further transitions are expected.
func (s GameStatus) Terminal() bool {
	return s == StatusWon || s == StatusAbandoned
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// FactList is the ordered list of facts a player unlocked during a game,
// stored as a JSON array in a text column.
type FactList []string

func (f FactList) Value() (driver.Value, error) {
	if f == nil {
		f = FactList{}
	}
	b, err := json.Marshal([]string(f))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f *FactList) Scan(v interface{}) error {
	switch data := v.(type) {
	case nil:
		*f = FactList{}
		return nil
	case []byte:
		return json.Unmarshal(data, (*[]string)(f))
	case string:
		return json.Unmarshal([]byte(data), (*[]string)(f))
	default:
		return fmt.Errorf("cannot scan %T into FactList", v)
	}
}

// UnmarshalJSON accepts either a string array or a bare number. Old clients
// sent factsCollected as a count rather than the facts themselves; those
// payloads are stored as an empty list, so the count is lost.
func (f *FactList) UnmarshalJSON(b []byte) error {
	var facts []string
	if err := json.Unmarshal(b, &facts); err == nil {
		*f = facts
		return nil
	}
	var count float64
	if err := json.Unmarshal(b, &count); err == nil {
		*f = FactList{}
		return nil
	}
	return fmt.Errorf("factsCollected must be a list of facts or a count")
}

// Game is one memory-game session. SessionID is an opaque token handed to the
// client at start, distinct from the numeric id. TotalPairs is fixed at
// creation; CompletedAt stays null until the session reaches a terminal
// status.
type Game struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"index;not null" json:"user_id"`
	SessionID      string     `gorm:"uniqueIndex;size:36" json:"session_id"`
	Difficulty     Difficulty `gorm:"size:10;default:'easy'" json:"difficulty"`
	Status         GameStatus `gorm:"size:10;default:'playing'" json:"status"`
	Score          int        `json:"score"`
	Moves          int        `json:"moves"`
	TimeElapsed    int        `json:"time_elapsed"`
	MatchedPairs   int        `json:"matched_pairs"`
	TotalPairs     int        `gorm:"<-:create" json:"total_pairs"`
	CollectedFacts FactList   `gorm:"type:text" json:"collected_facts"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at"`
}
