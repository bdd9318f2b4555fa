// Package engine drives a single-player card-matching memory game. It is
// purely local state: the embedding client calls Flip/Resolve/Tick from its
// own event loop, and the engine reports the finished game through a Recorder
// once every pair is matched.
package engine

import (
	"errors"
	"log"
	"math/rand"
	"time"
)

// ScorePerMatch is the fixed score increment for each matched pair.
const ScorePerMatch = 100

// FlipDelay is how long the second card stays visible before the comparison
// is applied. The embedder waits this long before calling Resolve.
const FlipDelay = time.Second

type CardState string

const (
	CardHidden  CardState = "hidden"
	CardFlipped CardState = "flipped"
	CardMatched CardState = "matched"
)

// Card is one slot in the grid. PairID is the shared matching key; each
// PairID appears on exactly two cards.
type Card struct {
	ID     int
	PairID int
	State  CardState
}

type Status string

const (
	StatusPlaying   Status = "playing"
	StatusWon       Status = "won"
	StatusAbandoned Status = "abandoned"
)

// Recorder persists a finished game. Called once on completion; failures are
// logged and swallowed so the player still sees their result.
type Recorder interface {
	RecordResult(score, moves, timeElapsed, factsCollected int) error
}

// Config sets up a new engine. Rand may be nil (a time-seeded source is
// used); Recorder may be nil.
type Config struct {
	Pairs    int
	Facts    []string
	Recorder Recorder
	Rand     *rand.Rand
}

// Engine is not safe for concurrent use; the client UI is single-threaded
// and drives it from one loop.
type Engine struct {
	cards        []Card
	totalPairs   int
	matchedPairs int
	score        int
	moves        int
	elapsed      int
	status       Status

	facts     []string
	collected []string

	pending    [2]int
	pendingSet bool

	recorder Recorder
}

var ErrNoPendingPair = errors.New("no pair awaiting resolution")

// New builds a shuffled 2N-card deck. The shuffle is uniform: every
// permutation is equally likely, with no bias toward original positions.
func New(cfg Config) *Engine {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	cards := make([]Card, 0, cfg.Pairs*2)
	for pair := 0; pair < cfg.Pairs; pair++ {
		cards = append(cards,
			Card{PairID: pair, State: CardHidden},
			Card{PairID: pair, State: CardHidden},
		)
	}
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	for i := range cards {
		cards[i].ID = i
	}

	return &Engine{
		cards:      cards,
		totalPairs: cfg.Pairs,
		status:     StatusPlaying,
		facts:      cfg.Facts,
		recorder:   cfg.Recorder,
	}
}

// Flip turns a card face up. Clicking a matched card, an already-flipped
// card, or any card while two are face up awaiting resolution is a no-op;
// it reports whether the card actually flipped.
func (e *Engine) Flip(i int) bool {
	if e.status != StatusPlaying || i < 0 || i >= len(e.cards) {
		return false
	}
	if e.pendingSet {
		return false
	}
	card := &e.cards[i]
	if card.State != CardHidden {
		return false
	}

	card.State = CardFlipped

	first := -1
	for j := range e.cards {
		if j != i && e.cards[j].State == CardFlipped {
			first = j
			break
		}
	}
	if first >= 0 {
		e.pending = [2]int{first, i}
		e.pendingSet = true
	}
	return true
}

// Resolve applies the pending comparison after the flip delay: a match locks
// both cards, scores, and unlocks a fact; a mismatch hides both. Either way
// the pair attempt counts as one move. Reports whether the pair matched.
func (e *Engine) Resolve() (bool, error) {
	if !e.pendingSet {
		return false, ErrNoPendingPair
	}
	a, b := &e.cards[e.pending[0]], &e.cards[e.pending[1]]
	e.pendingSet = false
	e.moves++

	if a.PairID != b.PairID {
		a.State = CardHidden
		b.State = CardHidden
		return false, nil
	}

	a.State = CardMatched
	b.State = CardMatched
	e.score += ScorePerMatch
	if len(e.facts) > 0 {
		e.collected = append(e.collected, e.facts[e.matchedPairs%len(e.facts)])
	}
	e.matchedPairs++

	if e.matchedPairs == e.totalPairs {
		e.finish(StatusWon)
	}
	return true, nil
}

// Tick advances the one-second timer. It does nothing once the game is over.
func (e *Engine) Tick() {
	if e.status == StatusPlaying {
		e.elapsed++
	}
}

// Abandon ends the session without a win, for explicit exits.
func (e *Engine) Abandon() {
	if e.status == StatusPlaying {
		e.finish(StatusAbandoned)
	}
}

func (e *Engine) finish(status Status) {
	e.status = status
	if e.recorder == nil {
		return
	}
	// Fire-and-forget: a persistence failure must not block the
	// completion screen.
	if err := e.recorder.RecordResult(e.score, e.moves, e.elapsed, len(e.collected)); err != nil {
		log.Printf("failed to record game result: %v", err)
	}
}

func (e *Engine) Cards() []Card { return e.cards }

func (e *Engine) Card(i int) Card { return e.cards[i] }

func (e *Engine) Score() int { return e.score }

func (e *Engine) Moves() int { return e.moves }

func (e *Engine) Elapsed() int { return e.elapsed }

func (e *Engine) MatchedPairs() int { return e.matchedPairs }

func (e *Engine) TotalPairs() int { return e.totalPairs }

func (e *Engine) Status() Status { return e.status }

func (e *Engine) CollectedFacts() []string { return e.collected }

// PairsForDifficulty maps the selectable difficulties to grid sizes.
func PairsForDifficulty(difficulty string) int {
	switch difficulty {
	case "easy":
		return 6
	case "hard":
		return 12
	default:
		return 8
	}
}
